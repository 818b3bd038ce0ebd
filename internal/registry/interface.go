package registry

import (
	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/value"
)

// Selector names a slot or an action (spec §4.2.1), optionally parameterised
// by integer indices so a single named accessor can address arrays,
// matrices, or other multi-dimensional structures uniformly.
type Selector struct {
	Name    string
	Indices []int
}

// Init constructs the handle of a new context instance. params carries
// keyword arguments (spec §3.4); outHandle receives the produced handle on
// success.
type InitFunc func(params ParamList, outHandle *value.Pointer) archierr.Status

// Finalize destroys a context's handle. Infallible: the spec defines no
// status return for it, only a best-effort teardown.
type FinalizeFunc func(handle value.Pointer)

// Get reads a named, optionally indexed slot.
type GetFunc func(handle value.Pointer, slot Selector, outValue *value.Pointer) archierr.Status

// Set writes a named, optionally indexed slot.
type SetFunc func(handle value.Pointer, slot Selector, v value.Pointer) archierr.Status

// Act invokes a named, optionally indexed action with keyword parameters.
type ActFunc func(handle value.Pointer, action Selector, params ParamList) archierr.Status

// Interface is a static vtable of up to five entry points (spec §4.2.1,
// §3.5). Interfaces are immutable once constructed and shared by
// reference; any entry point may be nil to mean "unsupported".
type Interface struct {
	Name     string
	Init     InitFunc
	Finalize FinalizeFunc
	Get      GetFunc
	Set      SetFunc
	Act      ActFunc
}

// callInit etc. return archierr.Interface when the entry point the
// caller asked for is absent - "a required entry point of an interface is
// absent" (spec §7).
func (i *Interface) callInit(params ParamList, outHandle *value.Pointer) archierr.Status {
	if i == nil || i.Init == nil {
		return archierr.Interface
	}
	return i.Init(params, outHandle)
}

func (i *Interface) callFinalize(handle value.Pointer) {
	if i == nil || i.Finalize == nil {
		return
	}
	i.Finalize(handle)
}

func (i *Interface) callGet(handle value.Pointer, slot Selector, out *value.Pointer) archierr.Status {
	if i == nil || i.Get == nil {
		return archierr.Interface
	}
	return i.Get(handle, slot, out)
}

func (i *Interface) callSet(handle value.Pointer, slot Selector, v value.Pointer) archierr.Status {
	if i == nil || i.Set == nil {
		return archierr.Interface
	}
	return i.Set(handle, slot, v)
}

func (i *Interface) callAct(handle value.Pointer, action Selector, params ParamList) archierr.Status {
	if i == nil || i.Act == nil {
		return archierr.Interface
	}
	return i.Act(handle, action, params)
}
