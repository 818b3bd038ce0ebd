// Command archi is the plugin-driven configuration replay host (spec §6):
// it loads a sequence of memory-mapped configuration blobs, opens the
// shared libraries and resolves the interfaces each one declares, replays
// its step script against a context registry, and hands control to the
// Hierarchical State Processor wherever a step wires one up and invokes
// it. Boot/replay/exit follows the same thin-driver shape as zeonica's
// samples/*/main.go.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tebeka/atexit"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/archilog"
	"github.com/archipelago-host/archi/internal/blob"
	"github.com/archipelago-host/archi/internal/builtin"
	"github.com/archipelago-host/archi/internal/diag"
	"github.com/archipelago-host/archi/internal/hostconfig"
	"github.com/archipelago-host/archi/internal/pluginhost"
	"github.com/archipelago-host/archi/internal/registry"
	"github.com/archipelago-host/archi/internal/signalwatch"
)

const banner = "archi - plugin-driven configuration replay host"

// builtins maps the symbol names a blob may ask for against
// executableLibraryKey to the in-process registry.Interface values that
// back them (spec §B.4).
var builtins = map[string]registry.Interface{
	"counter": builtin.Counter,
	"library": builtin.Library,
	"echo":    builtin.Echo,
	"runner":  builtin.Runner,
}

func main() {
	opts, err := hostconfig.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "archi:", err)
		atexit.Exit(archierr.ExitCode(archierr.Misuse))
	}

	archilog.Init(os.Stdout, opts.Verbosity, !opts.NoColor)
	ctx := archilog.WithCorrelation(context.Background())

	if !opts.NoLogo {
		fmt.Println(banner)
	}

	if opts.Stats {
		if snap, err := diag.Snapshot(); err != nil {
			archilog.For(ctx, archilog.LevelWarning, "resource snapshot unavailable", "error", err)
		} else {
			archilog.For(ctx, archilog.LevelNotice, "host resource snapshot",
				"mem_used_pct", snap.MemUsedPercent, "mem_available", snap.MemAvailable, "cpu_pct", snap.CPUPercent)
		}
	}

	var profiler *diag.ProfileWriter
	if opts.ProfileOut != "" {
		profiler = diag.NewProfileWriter()
	}

	var audit *diag.AuditLog
	if opts.AuditDB != "" {
		a, err := diag.OpenAuditLog(opts.AuditDB)
		if err != nil {
			archilog.For(ctx, archilog.LevelError, "failed to open audit database", "error", err)
			atexit.Exit(archierr.ExitCode(archierr.Resource))
		}
		audit = a
		defer audit.Close()
	}

	reg := registry.New()
	host := pluginhost.NewHost()
	bootstrapReserved(ctx, reg)

	status := archierr.OK
	for _, path := range opts.Blobs {
		status = runBlob(archilog.WithCorrelation(ctx), reg, host, path, opts, profiler, audit)
		if status != archierr.OK {
			archilog.For(ctx, archilog.LevelError, "replay failed", "blob", path, "status", status.String())
			break
		}
	}

	if profiler != nil {
		if err := profiler.WriteTo(opts.ProfileOut); err != nil {
			archilog.For(ctx, archilog.LevelWarning, "failed to write profile", "error", err)
		}
	}

	atexit.Exit(archierr.ExitCode(status))
}

// bootstrapReserved populates the reserved keys that live for the whole
// process (spec §6.3): archi.registry and archi.executable. The
// per-blob keys (archi.input_file, archi.signal) are populated in
// runBlob.
func bootstrapReserved(ctx context.Context, reg *registry.Registry) {
	selfIface := registrySelf(reg)
	if status := reg.Add("archi.registry", &selfIface, nil); status != archierr.OK {
		archilog.For(ctx, archilog.LevelError, "failed to install archi.registry", "status", status.String())
	}

	exe, _ := os.Executable()
	params := registry.ParamList{
		{Name: "key", Value: blob.StringLiteral("archi.executable").ToPointer()},
		{Name: "path", Value: blob.StringLiteral(exe).ToPointer()},
	}
	if status := reg.Add("archi.executable", &builtin.Library, params); status != archierr.OK {
		archilog.For(ctx, archilog.LevelError, "failed to install archi.executable", "status", status.String())
	}
}

// runBlob loads, resolves, and replays one configuration blob (spec
// §6.1). It owns the per-blob reserved keys archi.input_file and
// archi.signal, tearing down the previous blob's before installing its
// own.
func runBlob(
	ctx context.Context,
	reg *registry.Registry,
	host *pluginhost.Host,
	path string,
	opts hostconfig.Options,
	profiler *diag.ProfileWriter,
	audit *diag.AuditLog,
) archierr.Status {
	b, closeBlob, err := blob.Load(path)
	if err != nil {
		archilog.For(ctx, archilog.LevelError, "failed to load blob", "path", path, "error", err)
		return archierr.FromError(err)
	}
	defer closeBlob()

	interfaces, err := resolveInterfaces(host, b.Libraries, b.Interfaces)
	if err != nil {
		archilog.For(ctx, archilog.LevelError, "failed to resolve interfaces", "path", path, "error", err)
		return archierr.Interface
	}

	installInputFile(ctx, reg, path)
	watcher := installSignalWatch(ctx, reg, b.Signals)
	if watcher != nil {
		defer watcher.Stop()
	}

	if opts.DryRun {
		trace := make([]registry.StepResult, len(b.Steps))
		for i, step := range b.Steps {
			trace[i] = registry.StepResult{Index: i, Step: step, Status: archierr.OK}
		}
		diag.TraceTable(os.Stdout, trace)
		return archierr.OK
	}

	vm := registry.NewVM(reg, interfaces)
	var trace []registry.StepResult
	start := time.Now()
	status := vm.Replay(b.Steps, &trace)
	elapsed := time.Since(start)

	if audit != nil {
		for _, result := range trace {
			if err := audit.RecordStep(path, result.Index, result, elapsed); err != nil {
				archilog.For(ctx, archilog.LevelWarning, "failed to record audit row", "error", err)
				break
			}
		}
	}
	if profiler != nil {
		// One sample per replayed blob, labeled by path: the step script's
		// own wall-clock cost.
		profiler.Sample(path, elapsed)
	}

	if status != archierr.OK {
		if snap, serr := diag.Snapshot(); serr == nil {
			archilog.For(ctx, archilog.LevelError, "replay aborted", "status", status.String(),
				"mem_used_pct", snap.MemUsedPercent, "cpu_pct", snap.CPUPercent)
		}
	}
	return status
}

// installInputFile removes the previous blob's archi.input_file context,
// if any, and installs one describing path.
func installInputFile(ctx context.Context, reg *registry.Registry, path string) {
	if _, ok := reg.Lookup("archi.input_file"); ok {
		reg.Remove("archi.input_file")
	}
	params := registry.ParamList{
		{Name: "key", Value: blob.StringLiteral("archi.input_file").ToPointer()},
		{Name: "path", Value: blob.StringLiteral(path).ToPointer()},
	}
	if status := reg.Add("archi.input_file", &builtin.Library, params); status != archierr.OK {
		archilog.For(ctx, archilog.LevelWarning, "failed to install archi.input_file", "status", status.String())
	}
}

// installSignalWatch removes the previous blob's archi.signal context,
// if any, and installs a fresh one iff signals is non-empty (spec §6.3).
func installSignalWatch(ctx context.Context, reg *registry.Registry, signals []int32) *signalwatch.Watcher {
	if _, ok := reg.Lookup("archi.signal"); ok {
		reg.Remove("archi.signal")
	}
	if len(signals) == 0 {
		return nil
	}
	w := signalwatch.New(signals)
	iface := w.Context()
	if status := reg.Add("archi.signal", &iface, nil); status != archierr.OK {
		archilog.For(ctx, archilog.LevelWarning, "failed to install archi.signal", "status", status.String())
	}
	return w
}

// resolveInterfaces opens every declared library (except
// executableLibraryKey, which resolves in-process) and resolves every
// declared interface, keyed by interfaces[i].key as referenced by INIT
// steps.
func resolveInterfaces(host *pluginhost.Host, libs []blob.LibraryInfo, ifaces []blob.InterfaceInfo) (map[string]*registry.Interface, error) {
	for _, lib := range libs {
		if lib.Key == executableLibraryKey || host.HasLibrary(lib.Key) {
			continue
		}
		if err := host.OpenLibrary(lib.Key, lib.Path, lib.Lazy, lib.Global); err != nil {
			return nil, err
		}
	}

	resolved := make(map[string]*registry.Interface, len(ifaces))
	for _, ifc := range ifaces {
		if ifc.LibraryKey == executableLibraryKey {
			iface, ok := builtins[ifc.Symbol]
			if !ok {
				return nil, fmt.Errorf("archi: no built-in interface named %q", ifc.Symbol)
			}
			ifaceCopy := iface
			resolved[ifc.Key] = &ifaceCopy
			continue
		}
		iface, err := host.ResolveInterface(ifc.LibraryKey, ifc.Symbol)
		if err != nil {
			return nil, err
		}
		ifaceCopy := iface
		resolved[ifc.Key] = &ifaceCopy
	}
	return resolved, nil
}
