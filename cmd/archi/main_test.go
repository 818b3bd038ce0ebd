package main

import (
	"context"
	"testing"

	"github.com/archipelago-host/archi/internal/blob"
	"github.com/archipelago-host/archi/internal/pluginhost"
	"github.com/archipelago-host/archi/internal/registry"
)

func TestResolveInterfacesBuiltin(t *testing.T) {
	host := pluginhost.NewHost()
	libs := []blob.LibraryInfo{{Key: executableLibraryKey}}
	ifaces := []blob.InterfaceInfo{{Key: "c", LibraryKey: executableLibraryKey, Symbol: "counter"}}

	resolved, err := resolveInterfaces(host, libs, ifaces)
	if err != nil {
		t.Fatalf("resolveInterfaces: %v", err)
	}
	if _, ok := resolved["c"]; !ok {
		t.Fatalf("resolved map missing key %q", "c")
	}
}

func TestResolveInterfacesUnknownBuiltin(t *testing.T) {
	host := pluginhost.NewHost()
	ifaces := []blob.InterfaceInfo{{Key: "x", LibraryKey: executableLibraryKey, Symbol: "does-not-exist"}}

	if _, err := resolveInterfaces(host, nil, ifaces); err == nil {
		t.Fatalf("expected an error for an unrecognised built-in symbol")
	}
}

func TestBootstrapReservedInstallsKeys(t *testing.T) {
	reg := registry.New()
	bootstrapReserved(context.Background(), reg)

	if _, ok := reg.Lookup("archi.registry"); !ok {
		t.Fatalf("archi.registry not installed")
	}
	if _, ok := reg.Lookup("archi.executable"); !ok {
		t.Fatalf("archi.executable not installed")
	}
}

func TestInstallInputFileReplacesPrevious(t *testing.T) {
	reg := registry.New()
	ctx := context.Background()

	installInputFile(ctx, reg, "/tmp/a.blob")
	firstCtx, _ := reg.Lookup("archi.input_file")

	installInputFile(ctx, reg, "/tmp/b.blob")
	secondCtx, ok := reg.Lookup("archi.input_file")
	if !ok {
		t.Fatalf("archi.input_file missing after second install")
	}
	if firstCtx == secondCtx {
		t.Fatalf("expected a fresh context to replace the previous one")
	}
}
