package blob

import (
	"math"

	"github.com/archipelago-host/archi/internal/registry"
)

// The five step payload shapes are self-contained binary sub-encodings:
// unlike the keyOff/keyLen style of the outer tables, a payload's
// internal strings are length-prefixed inline, since nothing outside the
// payload ever needs to address into it independently. Parse hands each
// step record's payload to the matching decode*Payload function below.

func encodeLiteral(w *writer, lit Literal) {
	w.u8(uint8(lit.kind))
	switch lit.kind {
	case literalInt:
		w.u64(uint64(lit.i))
	case literalFloat:
		w.u64(math.Float64bits(lit.f))
	case literalBool:
		if lit.b {
			w.u8(1)
		} else {
			w.u8(0)
		}
	case literalString:
		w.u32(uint32(len(lit.s)))
		w.bytes([]byte(lit.s))
	}
}

func decodeLiteral(c *cursor) Literal {
	switch literalKind(c.u8()) {
	case literalInt:
		return IntLiteral(int64(c.u64()))
	case literalFloat:
		return FloatLiteral(math.Float64frombits(c.u64()))
	case literalBool:
		return BoolLiteral(c.u8() != 0)
	case literalString:
		n := c.u32()
		return StringLiteral(string(c.bytesAtCursor(int(n))))
	default:
		return StringLiteral("")
	}
}

// bytesAtCursor reads n raw bytes from the cursor's current position,
// advancing it, distinct from bytesAt which addresses an arbitrary offset.
func (c *cursor) bytesAtCursor(n int) []byte {
	if !c.need(n) {
		return nil
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

func encodeSelector(w *writer, sel registry.Selector) {
	w.u32(uint32(len(sel.Name)))
	w.bytes([]byte(sel.Name))
	w.u32(uint32(len(sel.Indices)))
	for _, idx := range sel.Indices {
		w.i32(int32(idx))
	}
}

func decodeSelector(c *cursor) registry.Selector {
	nameLen := c.u32()
	name := string(c.bytesAtCursor(int(nameLen)))
	n := c.u32()
	indices := make([]int, n)
	for i := range indices {
		indices[i] = int(c.i32())
	}
	return registry.Selector{Name: name, Indices: indices}
}

func encodeParams(w *writer, params []ParamSource) {
	w.u32(uint32(len(params)))
	for _, p := range params {
		w.u32(uint32(len(p.Name)))
		w.bytes([]byte(p.Name))
		encodeLiteral(w, p.Value.ToLiteral())
	}
}

func decodeParams(c *cursor) registry.ParamList {
	n := c.u32()
	params := make(registry.ParamList, n)
	for i := range params {
		nameLen := c.u32()
		name := string(c.bytesAtCursor(int(nameLen)))
		lit := decodeLiteral(c)
		params[i] = registry.Param{Name: name, Value: lit.ToPointer()}
	}
	return params
}

func encodeInitPayload(step StepSource) []byte {
	var w writer
	w.u32(uint32(len(step.Init.Interface)))
	w.bytes([]byte(step.Init.Interface))
	encodeParams(&w, step.Init.Params)
	return w.buf.Bytes()
}

func decodeInitPayload(key string, data []byte) registry.Step {
	c := newCursor(data)
	ifaceLen := c.u32()
	iface := string(c.bytesAtCursor(int(ifaceLen)))
	params := decodeParams(c)
	return registry.Step{
		Kind: registry.StepInit,
		Key:  key,
		Init: &registry.InitPayload{InterfaceKey: iface, Params: params},
	}
}

func encodeSetPayload(step StepSource) []byte {
	var w writer
	encodeSelector(&w, registry.Selector{Name: step.Set.Slot.Name, Indices: step.Set.Slot.Indices})
	encodeLiteral(&w, step.Set.Value.ToLiteral())
	return w.buf.Bytes()
}

func decodeSetPayload(key string, data []byte) registry.Step {
	c := newCursor(data)
	slot := decodeSelector(c)
	lit := decodeLiteral(c)
	return registry.Step{
		Kind: registry.StepSet,
		Key:  key,
		Set:  &registry.SetPayload{Slot: slot, Value: lit.ToPointer()},
	}
}

func encodeAssignPayload(step StepSource) []byte {
	var w writer
	encodeSelector(&w, registry.Selector{Name: step.Assign.Slot.Name, Indices: step.Assign.Slot.Indices})
	w.u32(uint32(len(step.Assign.SourceKey)))
	w.bytes([]byte(step.Assign.SourceKey))
	if step.Assign.SourceSlot != nil {
		w.u8(1)
		encodeSelector(&w, registry.Selector{Name: step.Assign.SourceSlot.Name, Indices: step.Assign.SourceSlot.Indices})
	} else {
		w.u8(0)
	}
	return w.buf.Bytes()
}

func decodeAssignPayload(key string, data []byte) registry.Step {
	c := newCursor(data)
	slot := decodeSelector(c)
	srcKeyLen := c.u32()
	srcKey := string(c.bytesAtCursor(int(srcKeyLen)))
	hasSlot := c.u8()
	var srcSlot *registry.Selector
	if hasSlot != 0 {
		s := decodeSelector(c)
		srcSlot = &s
	}
	return registry.Step{
		Kind: registry.StepAssign,
		Key:  key,
		Assign: &registry.AssignPayload{
			Slot:       slot,
			SourceKey:  srcKey,
			SourceSlot: srcSlot,
		},
	}
}

func encodeActPayload(step StepSource) []byte {
	var w writer
	encodeSelector(&w, registry.Selector{Name: step.Act.Action.Name, Indices: step.Act.Action.Indices})
	encodeParams(&w, step.Act.Params)
	return w.buf.Bytes()
}

func decodeActPayload(key string, data []byte) registry.Step {
	c := newCursor(data)
	action := decodeSelector(c)
	params := decodeParams(c)
	return registry.Step{
		Kind: registry.StepAct,
		Key:  key,
		Act:  &registry.ActPayload{Action: action, Params: params},
	}
}
