package registry

import "github.com/archipelago-host/archi/internal/value"

// Param is one (name, value) pair in a named parameter list (spec §3.4).
type Param struct {
	Name  string
	Value value.Pointer
}

// ParamList is a singly-linked named parameter list. Ordering is
// observable; duplicates are permitted. It is typically built once (from a
// configuration step's payload) and then walked read-only, so the slice
// representation below stands in for the spec's linked list without
// changing any observable semantics.
type ParamList []Param

// Lookup scans the list in order for the first occurrence of name
// (first-write-wins, spec §3.4/§9): callers that have already recognised a
// name must ignore later occurrences, which is exactly what returning the
// first match gives them.
func (l ParamList) Lookup(name string) (value.Pointer, bool) {
	for _, p := range l {
		if p.Name == name {
			return p.Value, true
		}
	}
	return value.Pointer{}, false
}

// Each walks the list in order, invoking fn once per name on its first
// occurrence only. Subsequent occurrences of an already-seen name are
// skipped, per the first-write-wins discipline (spec §9).
func (l ParamList) Each(fn func(name string, v value.Pointer)) {
	seen := make(map[string]bool, len(l))
	for _, p := range l {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		fn(p.Name, p.Value)
	}
}
