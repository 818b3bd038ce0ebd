package main

import (
	_ "embed"
	"testing"

	"github.com/archipelago-host/archi/internal/archic"
	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/blob"
	"github.com/archipelago-host/archi/internal/pluginhost"
	"github.com/archipelago-host/archi/internal/registry"
)

//go:embed testdata/demo.yaml
var demoSource []byte

// TestDemoBlobCompilesAndReplays exercises the whole pipeline end to end:
// YAML source -> compiled blob image -> parsed blob -> resolved
// interfaces -> replayed steps, including a step that drives the
// Hierarchical State Processor via builtin.Runner's act("execute").
func TestDemoBlobCompilesAndReplays(t *testing.T) {
	image, err := archic.Compile(demoSource)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	b, err := blob.Parse(image)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	host := pluginhost.NewHost()
	interfaces, err := resolveInterfaces(host, b.Libraries, b.Interfaces)
	if err != nil {
		t.Fatalf("resolveInterfaces: %v", err)
	}

	reg := registry.New()
	vm := registry.NewVM(reg, interfaces)
	var trace []registry.StepResult
	status := vm.Replay(b.Steps, &trace)
	if status != archierr.OK {
		t.Fatalf("Replay status = %v, trace = %+v", status, trace)
	}
	if len(trace) != len(b.Steps) {
		t.Fatalf("trace has %d entries, want %d", len(trace), len(b.Steps))
	}
	if reg.Len() != 0 {
		t.Fatalf("registry has %d live entries after the demo's own FINAL steps, want 0", reg.Len())
	}
}
