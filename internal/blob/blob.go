package blob

import (
	"fmt"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/registry"
)

// LibraryInfo is a decoded library table entry (spec §A.1).
type LibraryInfo struct {
	Key          string
	Path         string
	Lazy, Global bool
}

// InterfaceInfo is a decoded interface table entry.
type InterfaceInfo struct {
	Key, LibraryKey, Symbol string
}

// Blob is a parsed configuration blob: the signal-watch set, the library
// and interface tables, and the step script, all fully decoded into plain
// Go values ready for internal/pluginhost and internal/registry to
// consume (spec §6.1).
type Blob struct {
	Signals    []int32
	Libraries  []LibraryInfo
	Interfaces []InterfaceInfo
	Steps      []registry.Step
}

// Parse decodes an in-memory blob image. Load is the mmap-backed
// counterpart used by cmd/archi against a file on disk.
func Parse(data []byte) (*Blob, error) {
	c := newCursor(data)

	magicBytes := c.bytesAtCursor(4)
	if c.err != nil {
		return nil, archierr.FormatError{Err: c.err}
	}
	if string(magicBytes) != magic {
		return nil, archierr.FormatError{Err: fmt.Errorf("blob: bad magic %q", magicBytes)}
	}

	h := header{}
	h.version = c.u16()
	h.flags = c.u16()
	numSignals := c.u32()
	h.signals = make([]int32, numSignals)
	for i := range h.signals {
		h.signals[i] = c.i32()
	}
	h.numLibraries = c.u32()
	h.numInterfaces = c.u32()
	h.numSteps = c.u32()
	h.librariesOff = c.u32()
	h.interfacesOff = c.u32()
	h.stepsOff = c.u32()
	if c.err != nil {
		return nil, archierr.FormatError{Err: c.err}
	}

	libs := make([]LibraryInfo, h.numLibraries)
	for i := range libs {
		rc := newCursor(data)
		rc.pos = int(h.librariesOff) + i*libraryRecordSize
		keyOff, keyLen := rc.u32(), rc.u32()
		pathOff, pathLen := rc.u32(), rc.u32()
		lazy := rc.u8() != 0
		global := rc.u8() != 0
		rc.skip(2)
		if rc.err != nil {
			return nil, archierr.FormatError{Err: rc.err}
		}
		libs[i] = LibraryInfo{
			Key:    c.str(keyOff, keyLen),
			Path:   c.str(pathOff, pathLen),
			Lazy:   lazy,
			Global: global,
		}
	}
	if c.err != nil {
		return nil, archierr.FormatError{Err: c.err}
	}

	ifaces := make([]InterfaceInfo, h.numInterfaces)
	for i := range ifaces {
		rc := newCursor(data)
		rc.pos = int(h.interfacesOff) + i*interfaceRecordSize
		keyOff, keyLen := rc.u32(), rc.u32()
		libKeyOff, libKeyLen := rc.u32(), rc.u32()
		symOff, symLen := rc.u32(), rc.u32()
		if rc.err != nil {
			return nil, archierr.FormatError{Err: rc.err}
		}
		ifaces[i] = InterfaceInfo{
			Key:        c.str(keyOff, keyLen),
			LibraryKey: c.str(libKeyOff, libKeyLen),
			Symbol:     c.str(symOff, symLen),
		}
	}
	if c.err != nil {
		return nil, archierr.FormatError{Err: c.err}
	}

	steps := make([]registry.Step, h.numSteps)
	for i := range steps {
		rc := newCursor(data)
		rc.pos = int(h.stepsOff) + i*stepRecordSize
		kind := rc.u8()
		rc.skip(3)
		keyOff, keyLen := rc.u32(), rc.u32()
		payloadOff, payloadLen := rc.u32(), rc.u32()
		if rc.err != nil {
			return nil, archierr.FormatError{Err: rc.err}
		}
		key := c.str(keyOff, keyLen)
		payload := c.bytesAt(payloadOff, payloadLen)
		if c.err != nil {
			return nil, archierr.FormatError{Err: c.err}
		}

		switch kind {
		case stepKindInit:
			steps[i] = decodeInitPayload(key, payload)
		case stepKindFinal:
			steps[i] = registry.Step{Kind: registry.StepFinal, Key: key}
		case stepKindSet:
			steps[i] = decodeSetPayload(key, payload)
		case stepKindAssign:
			steps[i] = decodeAssignPayload(key, payload)
		case stepKindAct:
			steps[i] = decodeActPayload(key, payload)
		default:
			return nil, archierr.FormatError{Err: fmt.Errorf("blob: unrecognised step kind %d at index %d", kind, i)}
		}
	}

	return &Blob{
		Signals:    h.signals,
		Libraries:  libs,
		Interfaces: ifaces,
		Steps:      steps,
	}, nil
}
