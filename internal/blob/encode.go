package blob

import (
	"fmt"
	"syscall"

	"github.com/archipelago-host/archi/internal/archierr"
)

// signalNumbers maps the handful of POSIX signal names a blob author
// writes under "signals:" to their OS numbers. Kept to the common,
// portable subset (stdlib syscall, not a third-party signal library -
// see DESIGN.md).
var signalNumbers = map[string]int32{
	"SIGHUP":  int32(syscall.SIGHUP),
	"SIGINT":  int32(syscall.SIGINT),
	"SIGQUIT": int32(syscall.SIGQUIT),
	"SIGTERM": int32(syscall.SIGTERM),
	"SIGUSR1": int32(syscall.SIGUSR1),
	"SIGUSR2": int32(syscall.SIGUSR2),
}

// Encode compiles src into the binary blob format (spec §A.1), the
// inverse of Parse.
func Encode(src *Source) ([]byte, error) {
	signals := make([]int32, 0, len(src.Signals))
	for _, name := range src.Signals {
		num, ok := signalNumbers[name]
		if !ok {
			return nil, archierr.FormatError{Err: fmt.Errorf("blob: unrecognised signal name %q", name)}
		}
		signals = append(signals, num)
	}

	headerSize := uint32(headerFixedSize + 4*len(signals) + trailerSize)
	tablesSize := uint32(len(src.Libraries)*libraryRecordSize +
		len(src.Interfaces)*interfaceRecordSize +
		len(src.Steps)*stepRecordSize)
	pool := &writer{base: headerSize + tablesSize}

	type libEnc struct {
		keyOff, keyLen, pathOff, pathLen uint32
		lazy, global                     bool
	}
	libs := make([]libEnc, len(src.Libraries))
	for i, l := range src.Libraries {
		keyOff, keyLen := pool.putString(l.Key)
		pathOff, pathLen := pool.putString(l.Path)
		libs[i] = libEnc{keyOff, keyLen, pathOff, pathLen, l.Lazy, l.Global}
	}

	type ifaceEnc struct {
		keyOff, keyLen, libKeyOff, libKeyLen, symOff, symLen uint32
	}
	ifaces := make([]ifaceEnc, len(src.Interfaces))
	for i, f := range src.Interfaces {
		keyOff, keyLen := pool.putString(f.Key)
		libKeyOff, libKeyLen := pool.putString(f.Library)
		symOff, symLen := pool.putString(f.Symbol)
		ifaces[i] = ifaceEnc{keyOff, keyLen, libKeyOff, libKeyLen, symOff, symLen}
	}

	type stepEnc struct {
		kind                   uint8
		keyOff, keyLen         uint32
		payloadOff, payloadLen uint32
	}
	steps := make([]stepEnc, len(src.Steps))
	for i, s := range src.Steps {
		keyOff, keyLen := pool.putString(s.Key)
		kind, payload, err := encodeStepPayload(s)
		if err != nil {
			return nil, err
		}
		payloadOff, payloadLen := pool.putBytes(payload)
		steps[i] = stepEnc{kind, keyOff, keyLen, payloadOff, payloadLen}
	}

	var out writer
	out.bytes([]byte(magic))
	out.u16(formatVersion)
	flags := uint16(0)
	if len(signals) > 0 {
		flags |= flagSignalWatch
	}
	out.u16(flags)
	out.u32(uint32(len(signals)))
	for _, sig := range signals {
		out.i32(sig)
	}
	out.u32(uint32(len(libs)))
	out.u32(uint32(len(ifaces)))
	out.u32(uint32(len(steps)))

	librariesOff := headerSize
	interfacesOff := librariesOff + uint32(len(libs)*libraryRecordSize)
	stepsOff := interfacesOff + uint32(len(ifaces)*interfaceRecordSize)
	out.u32(librariesOff)
	out.u32(interfacesOff)
	out.u32(stepsOff)

	for _, l := range libs {
		out.u32(l.keyOff)
		out.u32(l.keyLen)
		out.u32(l.pathOff)
		out.u32(l.pathLen)
		if l.lazy {
			out.u8(1)
		} else {
			out.u8(0)
		}
		if l.global {
			out.u8(1)
		} else {
			out.u8(0)
		}
		out.u16(0)
	}
	for _, f := range ifaces {
		out.u32(f.keyOff)
		out.u32(f.keyLen)
		out.u32(f.libKeyOff)
		out.u32(f.libKeyLen)
		out.u32(f.symOff)
		out.u32(f.symLen)
	}
	for _, s := range steps {
		out.u8(s.kind)
		out.pad(3)
		out.u32(s.keyOff)
		out.u32(s.keyLen)
		out.u32(s.payloadOff)
		out.u32(s.payloadLen)
	}

	if uint32(out.buf.Len()) != headerSize+tablesSize {
		return nil, fmt.Errorf("blob: internal layout mismatch: wrote %d header+table bytes, expected %d",
			out.buf.Len(), headerSize+tablesSize)
	}

	out.buf.Write(pool.buf.Bytes())
	return out.buf.Bytes(), nil
}

func encodeStepPayload(s StepSource) (kind uint8, payload []byte, err error) {
	switch s.Kind {
	case "init":
		if s.Init == nil {
			return 0, nil, archierr.FormatError{Err: fmt.Errorf("blob: init step %q missing init payload", s.Key)}
		}
		return stepKindInit, encodeInitPayload(s), nil
	case "final":
		return stepKindFinal, nil, nil
	case "set":
		if s.Set == nil {
			return 0, nil, archierr.FormatError{Err: fmt.Errorf("blob: set step %q missing set payload", s.Key)}
		}
		return stepKindSet, encodeSetPayload(s), nil
	case "assign":
		if s.Assign == nil {
			return 0, nil, archierr.FormatError{Err: fmt.Errorf("blob: assign step %q missing assign payload", s.Key)}
		}
		return stepKindAssign, encodeAssignPayload(s), nil
	case "act":
		if s.Act == nil {
			return 0, nil, archierr.FormatError{Err: fmt.Errorf("blob: act step %q missing act payload", s.Key)}
		}
		return stepKindAct, encodeActPayload(s), nil
	default:
		return 0, nil, archierr.FormatError{Err: fmt.Errorf("blob: unrecognised step kind %q", s.Kind)}
	}
}
