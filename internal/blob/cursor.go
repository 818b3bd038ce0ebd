package blob

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// writer accumulates bytes for one of the blob's variable-length regions
// (a record table or the trailing string/payload pool). base is the
// absolute blob offset this writer's buffer will be placed at, once the
// final layout is known, so offsets handed back by put* are absolute from
// the start of the whole blob, not relative to this writer's own buffer.
type writer struct {
	buf  bytes.Buffer
	base uint32
}

func (w *writer) offset() uint32 { return w.base + uint32(w.buf.Len()) }

func (w *writer) u8(v uint8)   { w.buf.WriteByte(v) }
func (w *writer) u16(v uint16) { binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *writer) u32(v uint32) { binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *writer) i32(v int32)  { binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *writer) u64(v uint64) { binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *writer) pad(n int) {
	for i := 0; i < n; i++ {
		w.buf.WriteByte(0)
	}
}

// putString appends s's bytes and returns its absolute offset and length.
func (w *writer) putString(s string) (off, ln uint32) {
	off = w.offset()
	w.buf.WriteString(s)
	return off, uint32(len(s))
}

// putBytes appends b and returns its absolute offset and length.
func (w *writer) putBytes(b []byte) (off, ln uint32) {
	off = w.offset()
	w.buf.Write(b)
	return off, uint32(len(b))
}

// bytes writes raw bytes without offset bookkeeping, for building a
// self-contained sub-encoding (e.g. a step payload) in a scratch writer
// before it is appended as one unit to the real pool.
func (w *writer) bytes(b []byte) { w.buf.Write(b) }

// cursor reads fixed-width fields sequentially out of a byte slice,
// tracking a running position, and errors rather than panicking on a
// short read (spec §7's "external data is structurally invalid" maps to
// archierr.Format at the boundary helper that calls this).
type cursor struct {
	data []byte
	pos  int
	err  error
}

func newCursor(data []byte) *cursor { return &cursor{data: data} }

func (c *cursor) need(n int) bool {
	if c.err != nil {
		return false
	}
	if c.pos+n > len(c.data) {
		c.err = fmt.Errorf("blob: truncated at offset %d, need %d more bytes", c.pos, n)
		return false
	}
	return true
}

func (c *cursor) u8() uint8 {
	if !c.need(1) {
		return 0
	}
	v := c.data[c.pos]
	c.pos++
	return v
}

func (c *cursor) skip(n int) {
	if !c.need(n) {
		return
	}
	c.pos += n
}

func (c *cursor) u16() uint16 {
	if !c.need(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v
}

func (c *cursor) u32() uint32 {
	if !c.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v
}

func (c *cursor) i32() int32 {
	return int32(c.u32())
}

func (c *cursor) u64() uint64 {
	if !c.need(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8
	return v
}

// str reads a string living elsewhere in the blob, given an (off, len)
// pair already read from a record.
func (c *cursor) str(off, ln uint32) string {
	if c.err != nil {
		return ""
	}
	if uint64(off)+uint64(ln) > uint64(len(c.data)) {
		c.err = fmt.Errorf("blob: string at offset %d len %d out of range", off, ln)
		return ""
	}
	return string(c.data[off : off+ln])
}

func (c *cursor) bytesAt(off, ln uint32) []byte {
	if c.err != nil {
		return nil
	}
	if uint64(off)+uint64(ln) > uint64(len(c.data)) {
		c.err = fmt.Errorf("blob: bytes at offset %d len %d out of range", off, ln)
		return nil
	}
	return c.data[off : off+ln]
}
