// Package logging builds the service's slog logger and masks personal data
// before it reaches the output.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a JSON logger that redacts email attributes.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	}))
}

// RedactEmail masks an email address for safe logging.
// "john.doe@example.com" becomes "jo***@example.com"; local parts of two
// characters or fewer are fully masked.
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	name := parts[0]
	if len(name) > 2 {
		return name[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}

// IsEmailKey reports whether an attribute key carries an email address.
func IsEmailKey(key string) bool {
	key = strings.ToLower(key)
	return key == "email" || strings.HasSuffix(key, "_email")
}

// Secret replaces a value that must never be logged.
const Secret = "[REDACTED]"

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}
	switch key := strings.ToLower(a.Key); {
	case IsEmailKey(key):
		return slog.String(a.Key, RedactEmail(a.Value.String()))
	case key == "password" || strings.HasSuffix(key, "_password"):
		return slog.String(a.Key, Secret)
	}
	return a
}
