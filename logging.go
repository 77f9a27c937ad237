package transcode

import (
	"context"
	"log/slog"
)

// DiscardLogging enables logging with sinks that drop everything.
func DiscardLogging() Logging {
	return Logging{
		Enabled:  true,
		LogError: func(string, any) {},
	}
}

// SlogLogging routes failures and warnings to l. Failures are logged at
// error level, warnings at warn level; the garbage value is attached as an
// attribute.
func SlogLogging(l *slog.Logger) Logging {
	if l == nil {
		l = slog.Default()
	}
	return Logging{
		Enabled: true,
		LogError: func(msg string, garbage any) {
			l.LogAttrs(context.Background(), slog.LevelError, msg, slog.Any("garbage", garbage))
		},
		LogWarning: func(msg string, garbage any) {
			l.LogAttrs(context.Background(), slog.LevelWarn, msg, slog.Any("value", garbage))
		},
	}
}
