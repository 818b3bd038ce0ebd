package registry

import "github.com/archipelago-host/archi/internal/value"

// StepKind discriminates the five configuration step payloads (spec
// §4.2.3).
type StepKind int

const (
	StepInit StepKind = iota
	StepFinal
	StepSet
	StepAssign
	StepAct
)

func (k StepKind) String() string {
	switch k {
	case StepInit:
		return "init"
	case StepFinal:
		return "final"
	case StepSet:
		return "set"
	case StepAssign:
		return "assign"
	case StepAct:
		return "act"
	default:
		return "unknown"
	}
}

// InitPayload is an INIT step's payload: the interface to look up and the
// init-time keyword parameters.
type InitPayload struct {
	InterfaceKey string
	Params       ParamList
}

// SetPayload is a SET step's payload.
type SetPayload struct {
	Slot  Selector
	Value value.Pointer
}

// AssignPayload is an ASSIGN step's payload (spec §4.2.3): writes slot on
// the step's own key from source-key. If SourceSlot is non-nil, the value
// is obtained via source-key.get(*SourceSlot); otherwise the destination
// receives a pointer to source-key's own handle, pinning source-key's
// context-level reference count.
type AssignPayload struct {
	Slot       Selector
	SourceKey  string
	SourceSlot *Selector
}

// ActPayload is an ACT step's payload.
type ActPayload struct {
	Action Selector
	Params ParamList
}

// Step is one entry in a configuration script (spec §4.2.3). Exactly one
// of the payload fields matching Kind is populated; the rest are nil. FINAL
// steps carry no payload at all.
type Step struct {
	Kind   StepKind
	Key    string
	Init   *InitPayload
	Set    *SetPayload
	Assign *AssignPayload
	Act    *ActPayload
}
