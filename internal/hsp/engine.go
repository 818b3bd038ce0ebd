package hsp

import "github.com/archipelago-host/archi/internal/archierr"

// Execute runs the HSP main loop (spec §4.3.2): it splices entry onto a
// fresh stack, then repeatedly consults transition (if set), pops the
// next state, runs it, and applies its Outcome, until the stack empties
// with no override pending or a state function aborts.
//
// Grounded on the source's PC-driven dispatch loop ("elect next PC, run
// instruction group") generalized to states instead of instructions, with
// the source's setjmp/longjmp non-local return replaced by the Outcome
// enum a StateFunc returns (spec §9 design notes).
func Execute(entry Frame, transition *Transition) archierr.Status {
	st := &stack{}
	if !entry.IsEmpty() {
		if !st.push(entry.States) {
			return archierr.NoMemory
		}
	}

	var current State
	var status archierr.Status

	for {
		var next State

		if transition != nil && transition.Func != nil {
			top := st.peek()
			override := transition.Func(current, top, &status, transition.Data)
			if status != archierr.OK {
				return status
			}
			switch {
			case !override.IsNull():
				next = override
			case st.depth() > 0:
				popped, _ := st.pop(1)
				next = popped[0]
			default:
				return archierr.OK
			}
		} else {
			if st.depth() == 0 {
				return archierr.OK
			}
			popped, _ := st.pop(1)
			next = popped[0]
		}

		current = next
		ec := &ExecutionContext{current: current, stack: st, status: status}
		outcome := current.Func(ec)

		if outcome.kind == outcomeAbort {
			st.clear()
			return outcome.status
		}

		if outcome.pops > st.depth() {
			st.clear()
			return archierr.Misuse
		}
		if outcome.pops > 0 {
			if _, ok := st.pop(outcome.pops); !ok {
				st.clear()
				return archierr.Misuse
			}
		}
		if len(outcome.pushed) > 0 {
			if !st.push(outcome.pushed) {
				st.clear()
				return archierr.NoMemory
			}
		}
	}
}
