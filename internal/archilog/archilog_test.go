package archilog_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/archipelago-host/archi/internal/archilog"
)

func TestParseLevelNames(t *testing.T) {
	cases := map[string]bool{
		"quiet": true, "error": true, "warning": true, "notice": true,
		"info": true, "debug": true, "max": true, "3": true, "bogus": false,
	}
	for name, want := range cases {
		_, ok := archilog.ParseLevel(name)
		if ok != want {
			t.Fatalf("ParseLevel(%q) ok = %v, want %v", name, ok, want)
		}
	}
}

func TestInitAndLogRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	warn, _ := archilog.ParseLevel("warning")
	archilog.Init(&buf, warn, false)

	archilog.Logger().Info("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("info line appeared at warning level: %q", buf.String())
	}

	archilog.Logger().Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("warning line missing: %q", buf.String())
	}
}

func TestCorrelationRoundTrip(t *testing.T) {
	ctx := archilog.WithCorrelation(context.Background())
	if archilog.Correlation(ctx) == "" {
		t.Fatalf("expected a non-empty correlation id")
	}
	if archilog.Correlation(context.Background()) != "" {
		t.Fatalf("expected no correlation id on a bare context")
	}
}

func TestForStampsCorrelation(t *testing.T) {
	var buf bytes.Buffer
	info, _ := archilog.ParseLevel("info")
	archilog.Init(&buf, info, false)

	ctx := archilog.WithCorrelation(context.Background())
	archilog.For(ctx, info, "replaying", "blob", "demo.blob")

	out := buf.String()
	if !strings.Contains(out, "corr=") || !strings.Contains(out, "blob=demo.blob") {
		t.Fatalf("log line missing expected fields: %q", out)
	}
}
