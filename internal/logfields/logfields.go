package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPagePath     = "page_path"
	KeyMatchPath    = "match_path"
	KeyLanguage     = "language"
	KeyOriginalPath = "original_path"
	KeyOutcome      = "outcome"
	KeyAlternates   = "alternates"
	KeyPlugin       = "plugin"
	KeyBuildID      = "build_id"
	KeyDurationMS   = "duration_ms"
	KeyFile         = "file"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func PagePath(p string) slog.Attr       { return slog.String(KeyPagePath, p) }
func MatchPath(p string) slog.Attr      { return slog.String(KeyMatchPath, p) }
func Language(l string) slog.Attr       { return slog.String(KeyLanguage, l) }
func OriginalPath(p string) slog.Attr   { return slog.String(KeyOriginalPath, p) }
func Outcome(o string) slog.Attr        { return slog.String(KeyOutcome, o) }
func Alternates(n int) slog.Attr        { return slog.Int(KeyAlternates, n) }
func Plugin(name string) slog.Attr      { return slog.String(KeyPlugin, name) }
func BuildID(id string) slog.Attr       { return slog.String(KeyBuildID, id) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func File(path string) slog.Attr        { return slog.String(KeyFile, path) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
