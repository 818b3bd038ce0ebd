package diag_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/diag"
	"github.com/archipelago-host/archi/internal/hsp"
	"github.com/archipelago-host/archi/internal/registry"
)

func TestProfileWriterWriteTo(t *testing.T) {
	pw := diag.NewProfileWriter()
	wrapped := pw.WrapState("greet", func(ec *hsp.ExecutionContext) hsp.Outcome {
		return hsp.Continue()
	})
	status := hsp.Execute(hsp.Frame{States: []hsp.State{{Func: wrapped}}}, nil)
	if status != archierr.OK {
		t.Fatalf("status = %v, want OK", status)
	}

	path := filepath.Join(t.TempDir(), "out.pprof")
	if err := pw.WriteTo(path); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat profile output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("profile output is empty")
	}
}

func TestAuditLogRecordStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.sqlite")
	a, err := diag.OpenAuditLog(path)
	if err != nil {
		t.Fatalf("OpenAuditLog: %v", err)
	}
	defer a.Close()

	result := registry.StepResult{
		Index:  0,
		Step:   registry.Step{Kind: registry.StepInit, Key: "c"},
		Status: archierr.OK,
	}
	if err := a.RecordStep("demo.blob", 0, result, 5*time.Millisecond); err != nil {
		t.Fatalf("RecordStep: %v", err)
	}
}

func TestTraceTableRenders(t *testing.T) {
	var buf bytes.Buffer
	trace := []registry.StepResult{
		{Index: 0, Step: registry.Step{Kind: registry.StepInit, Key: "c"}, Status: archierr.OK},
		{Index: 1, Step: registry.Step{Kind: registry.StepFinal, Key: "c"}, Status: archierr.OK},
	}
	diag.TraceTable(&buf, trace)

	out := buf.String()
	if !strings.Contains(out, "init") || !strings.Contains(out, "final") {
		t.Fatalf("table output missing expected rows: %q", out)
	}
}
