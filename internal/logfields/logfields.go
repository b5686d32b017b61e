package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyPage       = "page"
	KeySource     = "source"
	KeyExtension  = "extension"
	KeyCount      = "count"
	KeyOutput     = "output"
	KeyCommand    = "command"
	KeyBaseURL    = "base_url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Page(p string) slog.Attr          { return slog.String(KeyPage, p) }
func Source(s string) slog.Attr        { return slog.String(KeySource, s) }
func Extension(ext string) slog.Attr   { return slog.String(KeyExtension, ext) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Output(p string) slog.Attr        { return slog.String(KeyOutput, p) }
func Command(c string) slog.Attr       { return slog.String(KeyCommand, c) }
func BaseURL(u string) slog.Attr       { return slog.String(KeyBaseURL, u) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
