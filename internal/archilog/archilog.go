package archilog

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/rs/xid"
)

var (
	mu     sync.Mutex
	logger = slog.New(newHandler(io.Discard, LevelInfo, false))
)

// Init installs the process-wide logger, mirroring zeonica's
// slog.SetDefault(...) boot-time pattern (test/histogram/main.go). It
// must be called exactly once, before any other package logs (spec §9).
func Init(w io.Writer, level slog.Level, color bool) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(newHandler(w, level, color))
}

// Logger returns the current process-wide logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

type corrKey struct{}

// WithCorrelation returns a context carrying a fresh correlation ID,
// minted once per replayed blob, used only for logging (spec §A.2: never
// for control flow - the core stays context-free per spec §5).
func WithCorrelation(ctx context.Context) context.Context {
	return context.WithValue(ctx, corrKey{}, xid.New().String())
}

// Correlation extracts the correlation ID stashed by WithCorrelation, or
// "" if none is present.
func Correlation(ctx context.Context) string {
	id, _ := ctx.Value(corrKey{}).(string)
	return id
}

// For logs a record at level, stamping the corr attribute if ctx carries
// one.
func For(ctx context.Context, level slog.Level, msg string, args ...any) {
	if id := Correlation(ctx); id != "" {
		args = append(args, "corr", id)
	}
	Logger().Log(ctx, level, msg, args...)
}
