package environment

import (
	"context"
	"log/slog"
)

// LogKey is the attribute key written by LoggerExtractor.
const LogKey = "env"

// LoggerExtractor returns a logger context extractor. Records whose context
// carries no environment are left untouched.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		env := FromContext(ctx)
		if env == "" {
			return slog.Attr{}, false
		}
		return slog.String(LogKey, env.String()), true
	}
}
