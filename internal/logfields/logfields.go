package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyPlugin     = "plugin"
	KeyIndex      = "index"
	KeyPath       = "path"
	KeyLocalPath  = "local_path"
	KeyMode       = "mode"
	KeyArgs       = "args"
	KeyDurationMS = "duration_ms"
	KeyLines      = "lines"
	KeyExitCode   = "exit_code"
	KeyFormat     = "format"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Plugin(name string) slog.Attr     { return slog.String(KeyPlugin, name) }
func Index(i int) slog.Attr            { return slog.Int(KeyIndex, i) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func LocalPath(p string) slog.Attr     { return slog.String(KeyLocalPath, p) }
func Mode(m string) slog.Attr          { return slog.String(KeyMode, m) }
func Args(a []string) slog.Attr        { return slog.Any(KeyArgs, a) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Lines(n int) slog.Attr            { return slog.Int(KeyLines, n) }
func ExitCode(code int) slog.Attr      { return slog.Int(KeyExitCode, code) }
func Format(f string) slog.Attr        { return slog.String(KeyFormat, f) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
