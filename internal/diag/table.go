package diag

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/archipelago-host/archi/internal/registry"
)

// TraceTable renders a replay trace as an ASCII table (spec §B.3), used
// by --dry-run's report.
func TraceTable(w io.Writer, trace []registry.StepResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "kind", "key", "status"})
	for _, r := range trace {
		t.AppendRow(table.Row{r.Index, r.Step.Kind.String(), r.Step.Key, r.Status.String()})
	}
	t.Render()
}

// RegistryTable renders a registry's live keys as an ASCII table, backing
// the diagnostic-only "archi.registry" slot "dump".
func RegistryTable(w io.Writer, keys []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"key"})
	for _, k := range keys {
		t.AppendRow(table.Row{k})
	}
	t.Render()
}
