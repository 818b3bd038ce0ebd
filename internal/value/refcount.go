// Package value implements the L0 typed-pointer and reference-counting model
// that the rest of archipelago is built on.
package value

import "sync/atomic"

// Destructor is invoked exactly once, when a RefCount's count reaches zero.
// It must not touch the RefCount it was attached to.
type Destructor func(data any)

// RefCount is an owned, atomically updated reference counter paired with a
// destructor and the opaque data handed to it. The zero value is not usable;
// construct with NewRefCount.
type RefCount struct {
	count   atomic.Int64
	destroy Destructor
	data    any
	freed   atomic.Bool
}

// NewRefCount allocates a counter initialized to 1.
func NewRefCount(destroy Destructor, data any) *RefCount {
	rc := &RefCount{destroy: destroy, data: data}
	rc.count.Store(1)
	return rc
}

// Increment bumps the count. A nil handle is a no-op.
func Increment(rc *RefCount) {
	if rc == nil {
		return
	}
	rc.count.Add(1)
}

// Decrement drops the count. A nil handle is a no-op. The decrement that
// brings the count to zero invokes the destructor exactly once, with
// acquire/release ordering equivalent to a standard atomic-refcount free:
// release semantics on every decrement, and the freeing decrement is
// followed by an acquire fence (via CompareAndSwap) before the destructor
// runs, so writes made by other holders prior to their decrement are
// visible here.
func Decrement(rc *RefCount) {
	if rc == nil {
		return
	}
	remaining := rc.count.Add(-1)
	if remaining > 0 {
		return
	}
	// remaining <= 0: either this decrement brought the count to exactly
	// zero (the common case), or the handle was already freed and is
	// being decremented again (a caller bug, but one the core must not
	// loop or panic on - see spec §8.3's "must terminate" requirement).
	// The freed flag, not the count, is authoritative for "did we already
	// run the destructor".
	if !rc.freed.CompareAndSwap(false, true) {
		return
	}
	if rc.destroy != nil {
		rc.destroy(rc.data)
	}
}

// Count reports the current count. Intended for diagnostics and tests only;
// the value may be stale the instant it is read under concurrent use.
func (rc *RefCount) Count() int64 {
	if rc == nil {
		return 0
	}
	return rc.count.Load()
}
