package builtin

import (
	"context"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/archilog"
	"github.com/archipelago-host/archi/internal/registry"
	"github.com/archipelago-host/archi/internal/value"
)

// Echo is act("log", params)'s implementation: it writes every parameter
// through archilog.Logger(), used by cmd/archi's demo configuration
// (testdata/demo.yaml) to make an end-to-end demo observable without
// wiring a real plugin.
var Echo = registry.Interface{
	Name: "echo",
	Init: func(params registry.ParamList, out *value.Pointer) archierr.Status {
		*out = value.Zero
		return archierr.OK
	},
	Act: func(handle value.Pointer, action registry.Selector, params registry.ParamList) archierr.Status {
		if action.Name != "log" {
			return archierr.Key
		}
		args := make([]any, 0, len(params)*2)
		params.Each(func(name string, v value.Pointer) {
			args = append(args, name, renderValue(v))
		})
		archilog.For(context.Background(), archilog.LevelInfo, "echo", args...)
		return archierr.OK
	},
}

// renderValue renders a parameter's value.Pointer for logging: the string
// bytes if it carries a data pointer, otherwise its layout's NumOf (the
// shape every scalar literal in internal/blob uses for non-string data).
func renderValue(v value.Pointer) any {
	if v.Data() != nil {
		return stringOf(v)
	}
	return v.Layout().NumOf
}
