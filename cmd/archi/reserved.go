package main

import (
	"bytes"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/blob"
	"github.com/archipelago-host/archi/internal/diag"
	"github.com/archipelago-host/archi/internal/registry"
	"github.com/archipelago-host/archi/internal/value"
)

// executableLibraryKey is the library key a blob's interfaces[] table
// uses to mean "resolve against the main executable's own built-ins"
// (internal/builtin) rather than a shared object opened through
// internal/pluginhost. It backs reserved key archi.executable (spec
// §6.3).
const executableLibraryKey = "archi.executable"

// registrySelf backs reserved key archi.registry (spec §6.3): a context
// whose only slot, get("dump"), renders the registry's current live keys
// as an ASCII table - diagnostic only, never part of replay semantics.
func registrySelf(reg *registry.Registry) registry.Interface {
	return registry.Interface{
		Name: "registry",
		Init: func(params registry.ParamList, out *value.Pointer) archierr.Status {
			*out = value.Zero
			return archierr.OK
		},
		Get: func(handle value.Pointer, slot registry.Selector, out *value.Pointer) archierr.Status {
			if slot.Name != "dump" {
				return archierr.Key
			}
			var buf bytes.Buffer
			diag.RegistryTable(&buf, reg.Keys())
			*out = blob.StringLiteral(buf.String()).ToPointer()
			return archierr.OK
		},
	}
}
