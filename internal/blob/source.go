package blob

// Source is the human-authored YAML document compiled to a binary blob by
// cmd/archic (spec §A.1). Its step shapes mirror the five discriminated
// step kinds of spec §4.2.3/internal/registry.Step directly, so encoding
// is a straight field-by-field translation.
type Source struct {
	Signals    []string           `yaml:"signals"`
	Libraries  []LibrarySource    `yaml:"libraries"`
	Interfaces []InterfaceSource  `yaml:"interfaces"`
	Steps      []StepSource       `yaml:"steps"`
}

type LibrarySource struct {
	Key    string `yaml:"key"`
	Path   string `yaml:"path"`
	Lazy   bool   `yaml:"lazy"`
	Global bool   `yaml:"global"`
}

type InterfaceSource struct {
	Key     string `yaml:"key"`
	Library string `yaml:"library"`
	Symbol  string `yaml:"symbol"`
}

// ParamSource is one named literal value attached to an init or act step.
type ParamSource struct {
	Name  string      `yaml:"name"`
	Value LiteralYAML `yaml:"value"`
}

// SelectorSource mirrors registry.Selector: a name plus an optional index
// path into nested structure.
type SelectorSource struct {
	Name    string `yaml:"name"`
	Indices []int  `yaml:"indices,omitempty"`
}

// StepSource is one step, kind-tagged the way the binary stepRecord is:
// only the field matching Kind is populated.
type StepSource struct {
	Kind   string              `yaml:"kind"` // "init" | "final" | "set" | "assign" | "act"
	Key    string              `yaml:"key"`
	Init   *InitStepSource     `yaml:"init,omitempty"`
	Set    *SetStepSource      `yaml:"set,omitempty"`
	Assign *AssignStepSource   `yaml:"assign,omitempty"`
	Act    *ActStepSource      `yaml:"act,omitempty"`
}

type InitStepSource struct {
	Interface string        `yaml:"interface"`
	Params    []ParamSource `yaml:"params,omitempty"`
}

type SetStepSource struct {
	Slot  SelectorSource `yaml:"slot"`
	Value LiteralYAML    `yaml:"value"`
}

type AssignStepSource struct {
	Slot       SelectorSource  `yaml:"slot"`
	SourceKey  string          `yaml:"source_key"`
	SourceSlot *SelectorSource `yaml:"source_slot,omitempty"`
}

type ActStepSource struct {
	Action SelectorSource `yaml:"action"`
	Params []ParamSource  `yaml:"params,omitempty"`
}

// LiteralYAML is the YAML-surface shape of a Literal: exactly one of the
// four fields is set, matched in this order (int, then float, then bool,
// then string) by ToLiteral.
type LiteralYAML struct {
	Int    *int64   `yaml:"int,omitempty"`
	Float  *float64 `yaml:"float,omitempty"`
	Bool   *bool    `yaml:"bool,omitempty"`
	String *string  `yaml:"string,omitempty"`
}

// ToLiteral converts the YAML-surface value to the internal Literal
// representation used by the binary encoder.
func (l LiteralYAML) ToLiteral() Literal {
	switch {
	case l.Int != nil:
		return IntLiteral(*l.Int)
	case l.Float != nil:
		return FloatLiteral(*l.Float)
	case l.Bool != nil:
		return BoolLiteral(*l.Bool)
	case l.String != nil:
		return StringLiteral(*l.String)
	default:
		return StringLiteral("")
	}
}
