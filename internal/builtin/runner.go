package builtin

import (
	"unsafe"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/hsp"
	"github.com/archipelago-host/archi/internal/registry"
	"github.com/archipelago-host/archi/internal/value"
)

// runnerRecord is a Runner context's handle: the frame it will run and
// the status left behind by its last execute.
type runnerRecord struct {
	frame  hsp.Frame
	status archierr.Status
}

// Runner is the L1/L2 seam itself: a context whose handle wraps an HSP
// frame, instantiated by a replay step and driven by act("execute") - the
// "a replay step may instantiate a context whose handle is an HSP frame,
// then invoke act('execute') on it, which enters L2" data flow. init's
// "countdown" param, if present, builds a single nested CountDown state;
// get("status") reads back the status left by the last execute.
var Runner = registry.Interface{
	Name: "runner",
	Init: func(params registry.ParamList, out *value.Pointer) archierr.Status {
		rec := &runnerRecord{}
		if v, ok := params.Lookup("countdown"); ok {
			n := int(v.Layout().NumOf)
			rec.frame = hsp.Frame{States: []hsp.State{{Func: CountDown, Data: n}}}
		}
		*out = value.NewData(unsafe.Pointer(rec), true, nil, value.ElementLayout{})
		return archierr.OK
	},
	Get: func(handle value.Pointer, slot registry.Selector, out *value.Pointer) archierr.Status {
		if slot.Name != "status" {
			return archierr.Key
		}
		rec := (*runnerRecord)(handle.Data())
		*out = value.NewData(nil, false, nil, value.ElementLayout{NumOf: uint64(uint32(rec.status))})
		return archierr.OK
	},
	Act: func(handle value.Pointer, action registry.Selector, params registry.ParamList) archierr.Status {
		if action.Name != "execute" {
			return archierr.Key
		}
		rec := (*runnerRecord)(handle.Data())
		rec.status = hsp.Execute(rec.frame, nil)
		return archierr.OK
	},
}
