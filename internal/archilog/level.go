// Package archilog is the process-global logging sink (spec §9 "Global
// state", §6.4). It is built on log/slog the way zeonica's core/util.go
// extends slog.Level with extra levels rather than reaching for a
// separate logging framework.
package archilog

import "log/slog"

// Level is archipelago's six-step verbosity scale (spec §6.4), expressed
// as slog.Level values so a Level can be passed straight to
// slog.HandlerOptions.Level. slog's own four levels (Warn/Info/Debug plus
// the implicit Error) are extended with Notice, sitting between Warn and
// Info, and Max, one step past Debug - the same "offset from a built-in
// level" trick zeonica uses for LevelTrace/LevelWaveform.
const (
	LevelQuiet   slog.Level = slog.LevelError + 4
	LevelError   slog.Level = slog.LevelError
	LevelWarning slog.Level = slog.LevelWarn
	LevelNotice  slog.Level = slog.LevelWarn - 2
	LevelInfo    slog.Level = slog.LevelInfo
	LevelDebug   slog.Level = slog.LevelDebug
	LevelMax     slog.Level = slog.LevelDebug - 4
)

var byName = map[string]slog.Level{
	"quiet":   LevelQuiet,
	"error":   LevelError,
	"warning": LevelWarning,
	"notice":  LevelNotice,
	"info":    LevelInfo,
	"debug":   LevelDebug,
	"max":     LevelMax,
}

var byOrdinal = []slog.Level{
	LevelQuiet, LevelError, LevelWarning, LevelNotice, LevelInfo, LevelDebug, LevelMax,
}

// ParseLevel accepts either a case-folded name ("quiet".."max") or a bare
// ordinal "0".."6" (spec §6.2's -v/--verbose argument shapes).
func ParseLevel(name string) (slog.Level, bool) {
	if lvl, ok := byName[name]; ok {
		return lvl, true
	}
	if len(name) == 1 && name[0] >= '0' && name[0] <= '6' {
		return byOrdinal[name[0]-'0'], true
	}
	return 0, false
}

// LevelName renders lvl back to its canonical name, or slog's own
// "INFO+N"-style text for an unrecognised level.
func LevelName(lvl slog.Level) string {
	for name, v := range byName {
		if v == lvl {
			return name
		}
	}
	return lvl.String()
}
