package registry

import "github.com/archipelago-host/archi/internal/value"

// Context is a live instance produced by an interface's Init (spec §3.5).
// Its reference count pins it alive: the registry holds one reference for
// as long as the key is live, and any other context that is handed a
// Pointer to this Context's handle (via SET or an init-param, spec §4.2.5)
// must hold its own reference for as long as it keeps that Pointer.
type Context struct {
	Key    string
	Iface  *Interface
	Handle value.Pointer
	refs   *value.RefCount
}

// Refs returns the Context's own reference count, letting interfaces pin
// (value.Increment) or release (value.Decrement) a reference to this
// Context when wiring a Pointer to its handle into another context (spec
// §4.2.5).
func (c *Context) Refs() *value.RefCount { return c.refs }

func newContext(key string, iface *Interface, handle value.Pointer) *Context {
	ctx := &Context{Key: key, Iface: iface, Handle: handle}
	ctx.refs = value.NewRefCount(func(data any) {
		c := data.(*Context)
		c.Iface.callFinalize(c.Handle)
	}, ctx)
	return ctx
}
