// Package signalwatch is the signal-watch collaborator described in spec
// §A.1/§B.2: it owns the OS-level os/signal.Notify channel for the blob's
// signal-watch set and exposes what it has seen through a minimal
// registry.Interface, so an HSP state function can poll it and call abort
// (spec §5 "Cancellation & timeout").
package signalwatch

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/registry"
	"github.com/archipelago-host/archi/internal/value"
)

// Watcher watches a fixed set of OS signal numbers and remembers the most
// recently observed one.
type Watcher struct {
	ch    chan os.Signal
	mu    sync.Mutex
	last  syscall.Signal
	seen  bool
}

// New starts watching the given signal numbers (decoded from a blob
// header's signal-watch set).
func New(numbers []int32) *Watcher {
	w := &Watcher{ch: make(chan os.Signal, len(numbers)+1)}
	if len(numbers) == 0 {
		return w
	}

	sigs := make([]os.Signal, len(numbers))
	for i, n := range numbers {
		sigs[i] = syscall.Signal(n)
	}
	signal.Notify(w.ch, sigs...)

	go func() {
		for s := range w.ch {
			if sig, ok := s.(syscall.Signal); ok {
				w.mu.Lock()
				w.last, w.seen = sig, true
				w.mu.Unlock()
			}
		}
	}()
	return w
}

// Stop stops receiving signals on this watcher's channel.
func (w *Watcher) Stop() {
	signal.Stop(w.ch)
	close(w.ch)
}

// Pending returns the most recently observed signal number and whether
// one has been seen since the last reset.
func (w *Watcher) Pending() (int32, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return int32(w.last), w.seen
}

// reset clears the pending flag.
func (w *Watcher) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seen = false
}

// Context returns the registry.Interface backing the reserved
// "archi.signal" key (spec §6.3): get("pending") returns the observed
// signal number (0 if none), act("reset") clears it.
func (w *Watcher) Context() registry.Interface {
	return registry.Interface{
		Name: "signalwatch",
		Init: func(params registry.ParamList, out *value.Pointer) archierr.Status {
			*out = value.Zero
			return archierr.OK
		},
		Get: func(handle value.Pointer, slot registry.Selector, out *value.Pointer) archierr.Status {
			if slot.Name != "pending" {
				return archierr.Key
			}
			num, seen := w.Pending()
			n := uint64(0)
			if seen {
				n = uint64(num)
			}
			*out = value.NewData(nil, false, nil, value.ElementLayout{NumOf: n})
			return archierr.OK
		},
		Act: func(handle value.Pointer, action registry.Selector, params registry.ParamList) archierr.Status {
			if action.Name != "reset" {
				return archierr.Key
			}
			w.reset()
			return archierr.OK
		},
	}
}
