package hsp

import "github.com/archipelago-host/archi/internal/archierr"

// TransitionFunc is consulted before every state dispatch (spec §3.9,
// §4.3.2). It receives the state that just finished (null on the very
// first call), the prospective next state peeked from the top of the
// stack (null if the stack is empty), a status cell it may set to abort
// the engine outright, and its own opaque data. Returning a non-null
// State overrides the prospective next state without consuming the
// stack's top; returning a null State lets the engine pop the stack as
// usual.
type TransitionFunc func(current, prospective State, status *archierr.Status, data any) State

// Transition pairs a TransitionFunc with the data it closes over (spec
// §3.9).
type Transition struct {
	Func TransitionFunc
	Data any
}
