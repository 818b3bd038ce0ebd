// Package pluginhost is the registry's shared-library loading
// collaborator (spec §A.1/§B.1): it resolves a library path and a symbol
// name into a registry.Interface before an INIT step can run. It is
// explicitly a client of the core (spec §1), never imported by
// internal/registry or internal/hsp.
package pluginhost

import (
	"fmt"
	"plugin"
	"sync"

	"github.com/archipelago-host/archi/internal/registry"
)

// Host opens shared objects and resolves interfaces out of them, caching
// opened plugins by key.
type Host struct {
	mu      sync.Mutex
	plugins map[string]*plugin.Plugin
	flags   map[string]libFlags
}

type libFlags struct {
	lazy, global bool
}

// NewHost returns an empty Host.
func NewHost() *Host {
	return &Host{
		plugins: make(map[string]*plugin.Plugin),
		flags:   make(map[string]libFlags),
	}
}

// OpenLibrary opens the shared object at path via plugin.Open and stores
// it under key for later ResolveInterface calls.
//
// lazy and global are recorded but do not change plugin.Open's actual
// dlopen behavior - Go's plugin package always resolves eagerly and does
// not expose RTLD_GLOBAL/RTLD_LAZY (see DESIGN.md's open-question entry).
// They are stored on Host; nothing in this module reads them back, and
// --dry-run does not report them.
func (h *Host) OpenLibrary(key, path string, lazy, global bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.plugins[key]; exists {
		return fmt.Errorf("pluginhost: library key %q already open", key)
	}
	p, err := plugin.Open(path)
	if err != nil {
		return fmt.Errorf("pluginhost: open %q: %w", path, err)
	}
	h.plugins[key] = p
	h.flags[key] = libFlags{lazy: lazy, global: global}
	return nil
}

// ResolveInterface looks up an exported symbol named symbol in the
// library opened under libraryKey. The symbol must be either a
// registry.Interface value, a *registry.Interface, or a
// func() registry.Interface.
func (h *Host) ResolveInterface(libraryKey, symbol string) (registry.Interface, error) {
	h.mu.Lock()
	p, ok := h.plugins[libraryKey]
	h.mu.Unlock()
	if !ok {
		return registry.Interface{}, fmt.Errorf("pluginhost: library key %q not open", libraryKey)
	}

	sym, err := p.Lookup(symbol)
	if err != nil {
		return registry.Interface{}, fmt.Errorf("pluginhost: lookup %q: %w", symbol, err)
	}

	switch v := sym.(type) {
	case registry.Interface:
		return v, nil
	case *registry.Interface:
		return *v, nil
	case func() registry.Interface:
		return v(), nil
	default:
		return registry.Interface{}, fmt.Errorf(
			"pluginhost: symbol %q has unexpected type %T, want registry.Interface/*registry.Interface/func() registry.Interface",
			symbol, sym)
	}
}

// HasLibrary reports whether key has been opened.
func (h *Host) HasLibrary(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.plugins[key]
	return ok
}
