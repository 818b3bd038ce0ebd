// Package builtin provides small, genuinely functional registry.Interface
// and hsp.State implementations (spec §B.4/§B.5) - the illustrative
// "built-in" surface every archipelago host ships with, analogous to
// zeonica's dummy package but exercised directly rather than standing in
// for something unfinished.
package builtin

import (
	"unsafe"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/registry"
	"github.com/archipelago-host/archi/internal/value"
)

// Counter is the S2/S3 scenario interface from spec §8.4: init allocates
// an int64 handle, zero unless a "start" param supplies its initial value
// (the param's NumOf); set("inc", v) adds v's element NumOf to it;
// get("value", ...) reads it back. finalize is a no-op - a counter owns
// no external resource.
var Counter = registry.Interface{
	Name: "counter",
	Init: func(params registry.ParamList, out *value.Pointer) archierr.Status {
		n := new(int64)
		if start, ok := params.Lookup("start"); ok {
			*n = int64(start.Layout().NumOf)
		}
		*out = value.NewData(unsafe.Pointer(n), true, nil, value.ElementLayout{NumOf: 1, Size: 8, Align: 8})
		return archierr.OK
	},
	Get: func(handle value.Pointer, slot registry.Selector, out *value.Pointer) archierr.Status {
		if slot.Name != "value" {
			return archierr.Key
		}
		n := (*int64)(handle.Data())
		*out = value.NewData(nil, false, nil, value.ElementLayout{NumOf: uint64(*n), Size: 8, Align: 8})
		return archierr.OK
	},
	Set: func(handle value.Pointer, slot registry.Selector, v value.Pointer) archierr.Status {
		if slot.Name != "inc" {
			return archierr.Key
		}
		n := (*int64)(handle.Data())
		*n += int64(v.Layout().NumOf)
		return archierr.OK
	},
}
