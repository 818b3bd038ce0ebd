package builtin

import (
	"context"
	"fmt"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/archilog"
	"github.com/archipelago-host/archi/internal/hsp"
)

// Log is a leaf hsp.State function that writes its Data (expected to be a
// string) through archilog.Logger() and returns normally - the simplest
// possible linear-trace building block (spec §8.4 scenario S4).
func Log(ec *hsp.ExecutionContext) hsp.Outcome {
	msg, _ := ec.Current().Data.(string)
	archilog.For(context.Background(), archilog.LevelInfo, "state", "msg", msg)
	return hsp.Continue()
}

// CountDown pushes a copy of itself with Data decremented until it
// reaches zero, at which point it logs completion and returns normally -
// used to exercise Advance's push-and-loop path.
func CountDown(ec *hsp.ExecutionContext) hsp.Outcome {
	n, _ := ec.Current().Data.(int)
	if n <= 0 {
		archilog.For(context.Background(), archilog.LevelInfo, "countdown done")
		return hsp.Continue()
	}
	archilog.For(context.Background(), archilog.LevelDebug, "countdown", "n", n)
	return hsp.Advance(0, []hsp.State{{Func: CountDown, Data: n - 1}})
}

// Dispatch is the S5 scenario's "pick" state (spec §8.4): Data must be a
// DispatchTable, and it pushes exactly the target named by Index.
type DispatchTable struct {
	Index   int
	Targets []hsp.State
}

func Dispatch(ec *hsp.ExecutionContext) hsp.Outcome {
	table, ok := ec.Current().Data.(DispatchTable)
	if !ok || table.Index < 0 || table.Index >= len(table.Targets) {
		return hsp.Abort(archierr.Misuse)
	}
	return hsp.Advance(0, []hsp.State{table.Targets[table.Index]})
}

// Panic aborts unconditionally with Data's status (falling back to
// archierr.Failure if Data is not an archierr.Status) - the S6 scenario's
// building block.
func Panic(ec *hsp.ExecutionContext) hsp.Outcome {
	status, ok := ec.Current().Data.(archierr.Status)
	if !ok {
		status = archierr.Failure
	}
	archilog.For(context.Background(), archilog.LevelError, fmt.Sprintf("aborting: %s", status))
	return hsp.Abort(status)
}
