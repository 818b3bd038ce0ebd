package blob_test

import (
	"testing"

	"github.com/archipelago-host/archi/internal/blob"
	"github.com/archipelago-host/archi/internal/registry"
)

// TestEncodeParseRoundTrip is the round-trip property from spec §8.2:
// Parse(Encode(src)) reproduces src's observable content.
func TestEncodeParseRoundTrip(t *testing.T) {
	src := &blob.Source{
		Signals: []string{"SIGINT", "SIGTERM"},
		Libraries: []blob.LibrarySource{
			{Key: "libcounter", Path: "/opt/archi/libcounter.so", Lazy: true, Global: false},
		},
		Interfaces: []blob.InterfaceSource{
			{Key: "counter", Library: "libcounter", Symbol: "Counter"},
		},
		Steps: []blob.StepSource{
			{
				Kind: "init", Key: "c",
				Init: &blob.InitStepSource{
					Interface: "counter",
					Params: []blob.ParamSource{
						{Name: "start", Value: blob.LiteralYAML{Int: int64Ptr(0)}},
					},
				},
			},
			{
				Kind: "set", Key: "c",
				Set: &blob.SetStepSource{
					Slot:  blob.SelectorSource{Name: "inc"},
					Value: blob.LiteralYAML{Int: int64Ptr(7)},
				},
			},
			{
				Kind: "assign", Key: "d",
				Assign: &blob.AssignStepSource{
					Slot:       blob.SelectorSource{Name: "ref"},
					SourceKey:  "c",
					SourceSlot: &blob.SelectorSource{Name: "value"},
				},
			},
			{
				Kind: "act", Key: "c",
				Act: &blob.ActStepSource{
					Action: blob.SelectorSource{Name: "log"},
					Params: []blob.ParamSource{
						{Name: "msg", Value: blob.LiteralYAML{String: strPtr("hello")}},
					},
				},
			},
			{Kind: "final", Key: "c"},
		},
	}

	encoded, err := blob.Encode(src)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	parsed, err := blob.Parse(encoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(parsed.Signals) != 2 {
		t.Fatalf("signals = %v, want 2 entries", parsed.Signals)
	}
	if len(parsed.Libraries) != 1 || parsed.Libraries[0].Key != "libcounter" ||
		parsed.Libraries[0].Path != "/opt/archi/libcounter.so" || !parsed.Libraries[0].Lazy {
		t.Fatalf("libraries = %+v", parsed.Libraries)
	}
	if len(parsed.Interfaces) != 1 || parsed.Interfaces[0].Symbol != "Counter" {
		t.Fatalf("interfaces = %+v", parsed.Interfaces)
	}
	if len(parsed.Steps) != 5 {
		t.Fatalf("steps = %d, want 5", len(parsed.Steps))
	}

	initStep := parsed.Steps[0]
	if initStep.Kind != registry.StepInit || initStep.Init.InterfaceKey != "counter" {
		t.Fatalf("init step = %+v", initStep)
	}
	if len(initStep.Init.Params) != 1 || initStep.Init.Params[0].Name != "start" {
		t.Fatalf("init params = %+v", initStep.Init.Params)
	}
	if initStep.Init.Params[0].Value.Layout().NumOf != 0 {
		t.Fatalf("init start value = %d, want 0", initStep.Init.Params[0].Value.Layout().NumOf)
	}

	setStep := parsed.Steps[1]
	if setStep.Kind != registry.StepSet || setStep.Set.Slot.Name != "inc" ||
		setStep.Set.Value.Layout().NumOf != 7 {
		t.Fatalf("set step = %+v", setStep)
	}

	assignStep := parsed.Steps[2]
	if assignStep.Kind != registry.StepAssign || assignStep.Assign.SourceKey != "c" ||
		assignStep.Assign.SourceSlot == nil || assignStep.Assign.SourceSlot.Name != "value" {
		t.Fatalf("assign step = %+v", assignStep)
	}

	actStep := parsed.Steps[3]
	if actStep.Kind != registry.StepAct || actStep.Act.Action.Name != "log" {
		t.Fatalf("act step = %+v", actStep)
	}

	finalStep := parsed.Steps[4]
	if finalStep.Kind != registry.StepFinal || finalStep.Key != "c" {
		t.Fatalf("final step = %+v", finalStep)
	}
}

func TestEncodeRejectsUnknownSignal(t *testing.T) {
	_, err := blob.Encode(&blob.Source{Signals: []string{"SIGBOGUS"}})
	if err == nil {
		t.Fatalf("expected an error for an unrecognised signal name")
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	_, err := blob.Parse([]byte("not a blob at all"))
	if err == nil {
		t.Fatalf("expected an error for a bad magic")
	}
}

func TestEncodeAssignWithoutSourceSlot(t *testing.T) {
	src := &blob.Source{
		Steps: []blob.StepSource{
			{
				Kind: "assign", Key: "d",
				Assign: &blob.AssignStepSource{
					Slot:      blob.SelectorSource{Name: "ref"},
					SourceKey: "c",
				},
			},
		},
	}
	encoded, err := blob.Encode(src)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	parsed, err := blob.Parse(encoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Steps[0].Assign.SourceSlot != nil {
		t.Fatalf("expected a nil SourceSlot, got %+v", parsed.Steps[0].Assign.SourceSlot)
	}
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
