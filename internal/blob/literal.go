package blob

import (
	"math"
	"unsafe"

	"github.com/archipelago-host/archi/internal/value"
)

// literalKind tags the handful of scalar shapes a configuration author can
// write in the YAML source (spec §4.2.3's SET/ASSIGN/ACT payloads carry
// "a value", without further constraining its representation - this
// module picks the concrete scalar set).
type literalKind uint8

const (
	literalInt literalKind = iota
	literalFloat
	literalString
	literalBool
)

// Literal is the decoded form of one scalar value embedded in a step
// payload.
type Literal struct {
	kind literalKind
	i    int64
	f    float64
	s    string
	b    bool
}

func IntLiteral(v int64) Literal    { return Literal{kind: literalInt, i: v} }
func FloatLiteral(v float64) Literal { return Literal{kind: literalFloat, f: v} }
func StringLiteral(v string) Literal { return Literal{kind: literalString, s: v} }
func BoolLiteral(v bool) Literal     { return Literal{kind: literalBool, b: v} }

// ToPointer builds the value.Pointer a registry step sees for this
// literal (spec §3.1-§3.3). Numeric/bool literals carry their value in
// the element layout's NumOf; string literals carry a pointer to a fresh
// copy of the string's bytes (decoding already copies out of the mapped
// blob once, so the handle never outlives the region it was read from).
func (l Literal) ToPointer() value.Pointer {
	switch l.kind {
	case literalInt:
		return value.NewData(nil, false, nil, value.ElementLayout{NumOf: uint64(l.i), Size: 8, Align: 8})
	case literalFloat:
		return value.NewData(nil, false, nil, value.ElementLayout{NumOf: math.Float64bits(l.f), Size: 8, Align: 8})
	case literalBool:
		n := uint64(0)
		if l.b {
			n = 1
		}
		return value.NewData(nil, false, nil, value.ElementLayout{NumOf: n, Size: 1, Align: 1})
	case literalString:
		b := []byte(l.s)
		var data unsafe.Pointer
		if len(b) > 0 {
			data = unsafe.Pointer(&b[0])
		}
		return value.NewData(data, false, nil, value.ElementLayout{NumOf: uint64(len(b)), Size: 1, Align: 1})
	default:
		return value.Zero
	}
}
