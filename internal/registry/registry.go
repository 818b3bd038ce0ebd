// Package registry implements the L1 context registry and configuration
// replay VM (spec §4.2): a named map of live contexts, and a deterministic
// engine that executes init/finalize/set/get/assign/act steps over it with
// failure-safe undo.
package registry

import (
	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/value"
)

// Registry is a mapping from string key to live Context (spec §3.6). It is
// not safe for concurrent use: per spec §5 it is owned exclusively by the
// single thread that replays configuration steps.
type Registry struct {
	entries map[string]*Context
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Context)}
}

// Add constructs a context under key using iface (spec §4.2.2): rejects a
// duplicate key, calls iface.Init, and on success inserts the context with
// the registry holding one strong reference. On failure nothing is
// inserted and the record is dropped.
func (r *Registry) Add(key string, iface *Interface, params ParamList) archierr.Status {
	if _, exists := r.entries[key]; exists {
		return archierr.Misuse
	}

	var handle value.Pointer
	status := iface.callInit(params, &handle)
	if status != archierr.OK {
		return status
	}

	r.entries[key] = newContext(key, iface, handle)
	return archierr.OK
}

// Remove drops the registry's own reference to key (spec §4.2.2). If
// external references still exist the context survives until the last one
// is dropped; Finalize runs exactly when the count reaches zero. Removing
// an absent key is an error.
func (r *Registry) Remove(key string) archierr.Status {
	ctx, ok := r.entries[key]
	if !ok {
		return archierr.Misuse
	}
	delete(r.entries, key)
	value.Decrement(ctx.refs)
	return archierr.OK
}

// Lookup returns the live context stored under key, if any. It is exposed
// for the replay VM and for interfaces that need direct access to another
// context's handle (e.g. to honor ASSIGN); it is not one of the spec's
// five context entry points.
func (r *Registry) Lookup(key string) (*Context, bool) {
	ctx, ok := r.entries[key]
	return ctx, ok
}

// Keys returns the registry's live keys, in no particular order. Intended
// for diagnostics (§B.3 of SPEC_FULL.md), not for replay semantics.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len reports the number of live entries.
func (r *Registry) Len() int { return len(r.entries) }

// Get invokes context[key].get(slot, &out) (spec §4.2.1).
func (r *Registry) Get(key string, slot Selector) (value.Pointer, archierr.Status) {
	ctx, ok := r.entries[key]
	if !ok {
		return value.Pointer{}, archierr.Misuse
	}
	var out value.Pointer
	status := ctx.Iface.callGet(ctx.Handle, slot, &out)
	return out, status
}

// Set invokes context[key].set(slot, v) (spec §4.2.1).
func (r *Registry) Set(key string, slot Selector, v value.Pointer) archierr.Status {
	ctx, ok := r.entries[key]
	if !ok {
		return archierr.Misuse
	}
	return ctx.Iface.callSet(ctx.Handle, slot, v)
}

// Act invokes context[key].act(action, params) (spec §4.2.1).
func (r *Registry) Act(key string, action Selector, params ParamList) archierr.Status {
	ctx, ok := r.entries[key]
	if !ok {
		return archierr.Misuse
	}
	return ctx.Iface.callAct(ctx.Handle, action, params)
}
