package value

import (
	"math"
	"testing"
)

func TestPaddedSize(t *testing.T) {
	cases := []struct {
		size, align, want uint64
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{3, 4, 4},
		{5, 1, 5},
		{5, 3, 0}, // 3 is not a power of two
		{5, 0, 0}, // zero alignment
	}
	for _, c := range cases {
		if got := PaddedSize(c.size, c.align); got != c.want {
			t.Errorf("PaddedSize(%d, %d) = %d, want %d", c.size, c.align, got, c.want)
		}
	}
}

func TestSizeOfArray(t *testing.T) {
	cases := []struct {
		name string
		l    ElementLayout
		want uint64
	}{
		{"single element, aligned", ElementLayout{NumOf: 1, Size: 8, Align: 8}, 8},
		{"three elements, no pad needed", ElementLayout{NumOf: 3, Size: 4, Align: 4}, 12},
		{"three elements, padded", ElementLayout{NumOf: 3, Size: 5, Align: 4}, 2*8 + 5},
		{"zero num", ElementLayout{NumOf: 0, Size: 4, Align: 4}, 0},
		{"zero size", ElementLayout{NumOf: 4, Size: 0, Align: 4}, 0},
		{"zero align", ElementLayout{NumOf: 4, Size: 4, Align: 0}, 0},
		{"non power of two align", ElementLayout{NumOf: 4, Size: 4, Align: 3}, 0},
		{"overflow", ElementLayout{NumOf: math.MaxUint64, Size: 8, Align: 8}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SizeOfArray(c.l); got != c.want {
				t.Errorf("SizeOfArray(%+v) = %d, want %d", c.l, got, c.want)
			}
		})
	}
}

// Property from spec §8.1: size_of_array(L) > 0 iff L.num*padded(L.size,
// L.align) + L.size fits in a 64-bit word (and the layout is otherwise
// well-formed); zero otherwise.
func TestSizeOfArrayPoisonIsExclusivelyZero(t *testing.T) {
	wellFormed := ElementLayout{NumOf: 10, Size: 6, Align: 4}
	if SizeOfArray(wellFormed) == 0 {
		t.Fatalf("well-formed layout must not poison to zero")
	}
	malformed := []ElementLayout{
		{NumOf: 0, Size: 1, Align: 1},
		{NumOf: 1, Size: 0, Align: 1},
		{NumOf: 1, Size: 1, Align: 0},
		{NumOf: 1, Size: 1, Align: 5},
	}
	for _, l := range malformed {
		if SizeOfArray(l) != 0 {
			t.Errorf("malformed layout %+v did not poison to zero", l)
		}
	}
}
