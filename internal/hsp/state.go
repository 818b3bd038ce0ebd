// Package hsp implements the L2 Hierarchical State Processor: a
// single-threaded, cooperative, stack-based execution engine with a
// transition hook and enum-style non-local control transfer from inside
// state functions (spec §4.3, §9).
package hsp

import "github.com/archipelago-host/archi/internal/archierr"

// StateFunc is a state's executable body. It receives the execution
// context (spec §3.10) and returns the Outcome that advances or aborts the
// engine. Returning Continue() is equivalent to Advance(0, nil) (spec
// §8.3).
//
// Go has neither setjmp/longjmp nor first-class non-local return, so
// unlike the source this never "calls advance and keeps running": the
// function simply returns the Outcome it wants applied, and by
// construction no code after that return can execute - which is exactly
// the observable contract the spec asks for (§9 design notes).
type StateFunc func(ec *ExecutionContext) Outcome

// State is a (function, data, metadata) triple (spec §3.7). A state is
// null iff Func is nil; null states are never pushed onto the stack.
type State struct {
	Func     StateFunc
	Data     any
	Metadata any // opaque; the engine never dereferences it
}

// IsNull reports whether s has no function, the one condition under which
// a state may not be pushed.
func (s State) IsNull() bool { return s.Func == nil }

// ExecutionContext is created for the duration of one Execute call and
// destroyed on return; it never outlives that call (spec §3.10).
type ExecutionContext struct {
	current State
	stack   *stack
	status  archierr.Status
}

// Current returns the state currently executing.
func (ec *ExecutionContext) Current() State { return ec.current }

// StackDepth returns the number of states on the stack, not counting the
// one currently executing.
func (ec *ExecutionContext) StackDepth() int { return ec.stack.depth() }

// Status returns the execution context's status cell as of the start of
// this invocation.
func (ec *ExecutionContext) Status() archierr.Status { return ec.status }
