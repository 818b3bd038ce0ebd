package hsp

import "github.com/archipelago-host/archi/internal/archierr"

type outcomeKind int

const (
	outcomeContinue outcomeKind = iota
	outcomeAdvance
	outcomeAbort
)

// Outcome is what a StateFunc returns to tell the engine how to continue
// (spec §4.3.3, §9). A state function computes exactly one Outcome and
// returns it; there is no way in Go to produce more than one, which is
// what the source enforced at runtime ("a state function must not call
// advance more than once").
type Outcome struct {
	kind   outcomeKind
	pops   int
	pushed []State
	status archierr.Status
}

// Continue is equivalent to Advance(0, nil): pop nothing, push nothing,
// resume the normal pop-and-run loop (spec §8.3).
func Continue() Outcome {
	return Outcome{kind: outcomeContinue}
}

// Advance pops numPopped states off the stack and pushes pushed in array
// order (pushed[0] ends up on top). Null entries in pushed are dropped
// before pushing (spec §4.3.3).
func Advance(numPopped int, pushed []State) Outcome {
	return Outcome{kind: outcomeAdvance, pops: numPopped, pushed: pushed}
}

// Abort forces the engine to stop: the stack is cleared and Execute
// returns status immediately, without running any further state function
// or consulting the transition again (spec §4.3.3, scenario S6).
func Abort(status archierr.Status) Outcome {
	return Outcome{kind: outcomeAbort, status: status}
}
