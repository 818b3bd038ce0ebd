package builtin

import (
	"unsafe"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/blob"
	"github.com/archipelago-host/archi/internal/registry"
	"github.com/archipelago-host/archi/internal/value"
)

// libraryRecord is the handle payload for a Library context: the
// registration metadata recorded when the library was opened.
type libraryRecord struct {
	info blob.LibraryInfo
}

// Library backs a plain INIT'd context exposing a library's own
// registration metadata (spec §6.3's archi.executable is one instance of
// this interface). init's params carry "key" and "path" string literals
// and "lazy"/"global" bool literals (see cmd/archi for how the reserved
// keys populate them).
var Library = registry.Interface{
	Name: "library",
	Init: func(params registry.ParamList, out *value.Pointer) archierr.Status {
		rec := &libraryRecord{}
		if v, ok := params.Lookup("key"); ok {
			rec.info.Key = stringOf(v)
		}
		if v, ok := params.Lookup("path"); ok {
			rec.info.Path = stringOf(v)
		}
		if v, ok := params.Lookup("lazy"); ok {
			rec.info.Lazy = v.Layout().NumOf != 0
		}
		if v, ok := params.Lookup("global"); ok {
			rec.info.Global = v.Layout().NumOf != 0
		}
		*out = value.NewData(unsafe.Pointer(rec), true, nil, value.ElementLayout{})
		return archierr.OK
	},
	Get: func(handle value.Pointer, slot registry.Selector, out *value.Pointer) archierr.Status {
		rec := (*libraryRecord)(handle.Data())
		switch slot.Name {
		case "key":
			*out = stringPointer(rec.info.Key)
		case "path":
			*out = stringPointer(rec.info.Path)
		default:
			return archierr.Key
		}
		return archierr.OK
	},
}

func stringOf(v value.Pointer) string {
	n := v.Layout().NumOf
	if n == 0 || v.Data() == nil {
		return ""
	}
	b := unsafe.Slice((*byte)(v.Data()), n)
	return string(b)
}

func stringPointer(s string) value.Pointer {
	b := []byte(s)
	var data unsafe.Pointer
	if len(b) > 0 {
		data = unsafe.Pointer(&b[0])
	}
	return value.NewData(data, false, nil, value.ElementLayout{NumOf: uint64(len(b)), Size: 1, Align: 1})
}
