package value

import (
	"testing"
	"unsafe"
)

func TestPointerFlagInvariant(t *testing.T) {
	x := 42
	dp := NewData(unsafe.Pointer(&x), true, nil, ElementLayout{})
	if IsFunction(dp) {
		t.Fatalf("data pointer reported as function")
	}
	if dp.Function() != nil {
		t.Fatalf("data pointer exposed a function variant")
	}
	if dp.Data() == nil {
		t.Fatalf("data pointer variant missing")
	}

	fp := NewFunction(func() {}, false, nil, ElementLayout{})
	if !IsFunction(fp) {
		t.Fatalf("function pointer not reported as function")
	}
	if fp.Data() != nil {
		t.Fatalf("function pointer exposed a data variant")
	}
	if fp.Function() == nil {
		t.Fatalf("function pointer variant missing")
	}
}

func TestNewFunctionRejectsNonFunc(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic constructing a function Pointer from a non-func value")
		}
	}()
	NewFunction(42, false, nil, ElementLayout{})
}

func TestEqualsSemanticDataPointer(t *testing.T) {
	x, y := 1, 1
	a := NewData(unsafe.Pointer(&x), true, nil, ElementLayout{NumOf: 9})
	b := NewData(unsafe.Pointer(&x), false, nil, ElementLayout{})
	c := NewData(unsafe.Pointer(&y), true, nil, ElementLayout{NumOf: 9})

	if !EqualsSemantic(a, b) {
		t.Fatalf("pointers to the same address with different flags/layout should be equal")
	}
	if EqualsSemantic(a, c) {
		t.Fatalf("pointers to different addresses should not be equal")
	}
}

func TestEqualsSemanticFunctionPointer(t *testing.T) {
	fn := func() int { return 1 }
	a := NewFunction(fn, false, nil, ElementLayout{})
	b := NewFunction(fn, true, nil, ElementLayout{})
	other := NewFunction(func() int { return 2 }, false, nil, ElementLayout{})

	if !EqualsSemantic(a, b) {
		t.Fatalf("same function value should compare equal regardless of flags")
	}
	if EqualsSemantic(a, other) {
		t.Fatalf("distinct functions should not compare equal")
	}
}

func TestEqualsSemanticCrossVariant(t *testing.T) {
	x := 1
	dp := NewData(unsafe.Pointer(&x), false, nil, ElementLayout{})
	fp := NewFunction(func() {}, false, nil, ElementLayout{})
	if EqualsSemantic(dp, fp) {
		t.Fatalf("a data pointer and a function pointer must never compare equal")
	}
}

func TestWithRefsReplacesOwnership(t *testing.T) {
	var freed1, freed2 bool
	rc1 := NewRefCount(func(any) { freed1 = true }, nil)
	rc2 := NewRefCount(func(any) { freed2 = true }, nil)

	x := 1
	p := NewData(unsafe.Pointer(&x), true, rc1, ElementLayout{})
	p2 := p.WithRefs(rc2)

	if p2.Refs() != rc2 {
		t.Fatalf("WithRefs did not swap the refcount")
	}
	Decrement(rc1)
	if !freed1 {
		t.Fatalf("original refcount should have been freed by the caller after swap")
	}
	if freed2 {
		t.Fatalf("new refcount should not be freed yet")
	}
}
