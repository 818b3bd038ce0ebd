package value

import (
	"reflect"
	"unsafe"
)

// Flag is a bitset of Pointer attributes (spec §3.3).
type Flag uint32

const (
	// FunctionFlag marks the function-pointer variant live; the
	// data-pointer variant must then be treated as absent, and vice versa.
	FunctionFlag Flag = 1 << iota
	// WritableFlag marks the pointee as mutable through this handle.
	WritableFlag
)

// Has reports whether all bits in mask are set.
func (f Flag) Has(mask Flag) bool { return f&mask == mask }

// Pointer is the universal polymorphic handle (spec §3.3): either a data
// pointer or a function pointer (tagged by FunctionFlag, mutually
// exclusive), an optional shared RefCount, and an ElementLayout describing
// the pointee.
type Pointer struct {
	data   unsafe.Pointer
	fn     any // valid iff flags.Has(FunctionFlag); always a func value
	flags  Flag
	refs   *RefCount
	layout ElementLayout
}

// NewData constructs a data-pointer Pointer. refs may be nil (unowned,
// borrowed).
func NewData(data unsafe.Pointer, writable bool, refs *RefCount, layout ElementLayout) Pointer {
	var flags Flag
	if writable {
		flags |= WritableFlag
	}
	return Pointer{data: data, flags: flags, refs: refs, layout: layout}
}

// NewFunction constructs a function-pointer Pointer. fn must be a non-nil
// Go func value; this is a caller precondition (spec §3.3's tagging
// invariant), violating it is a misuse bug in the calling interface, not a
// runtime condition callers are expected to recover from.
func NewFunction(fn any, writable bool, refs *RefCount, layout ElementLayout) Pointer {
	if fn == nil || reflect.ValueOf(fn).Kind() != reflect.Func {
		panic("value: NewFunction requires a non-nil func value")
	}
	flags := FunctionFlag
	if writable {
		flags |= WritableFlag
	}
	return Pointer{fn: fn, flags: flags, refs: refs, layout: layout}
}

// Zero is the empty, non-function, non-writable, unowned Pointer.
var Zero = Pointer{}

// IsFunction reports the FunctionFlag bit.
func IsFunction(p Pointer) bool { return p.flags.Has(FunctionFlag) }

// IsWritable reports the WritableFlag bit.
func IsWritable(p Pointer) bool { return p.flags.Has(WritableFlag) }

// Flags returns the raw flag set.
func (p Pointer) Flags() Flag { return p.flags }

// Layout returns the element layout describing the pointee.
func (p Pointer) Layout() ElementLayout { return p.layout }

// Refs returns the attached reference count, or nil if the value is
// unowned/borrowed.
func (p Pointer) Refs() *RefCount { return p.refs }

// Data returns the data-pointer variant. Calling it when IsFunction(p) is
// true is a misuse bug; it returns nil in that case rather than panicking,
// since value is a leaf package with no status-code plumbing of its own.
func (p Pointer) Data() unsafe.Pointer {
	if p.flags.Has(FunctionFlag) {
		return nil
	}
	return p.data
}

// Function returns the function-pointer variant, or nil if IsFunction(p)
// is false.
func (p Pointer) Function() any {
	if !p.flags.Has(FunctionFlag) {
		return nil
	}
	return p.fn
}

// WithRefs returns a copy of p with a different attached RefCount. Used by
// interfaces implementing `set` that must swap in a freshly incremented
// RefCount while decrementing the one it replaces (spec §4.2.5).
func (p Pointer) WithRefs(refs *RefCount) Pointer {
	p.refs = refs
	return p
}

// EqualsSemantic reports whether a and b are equal per spec §4.1.2: same
// active variant and same raw address, ignoring layout and flags.
func EqualsSemantic(a, b Pointer) bool {
	if IsFunction(a) != IsFunction(b) {
		return false
	}
	if IsFunction(a) {
		return functionAddress(a.fn) == functionAddress(b.fn)
	}
	return a.data == b.data
}

// functionAddress returns the entry-point address of a Go func value. Two
// distinct closures over the same function literal may share this address;
// that is the standard, documented caveat of comparing Go functions by
// code pointer, and it is the correct notion of "same function pointer"
// for this spec's purposes (it never compares captured closure state).
func functionAddress(fn any) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}
