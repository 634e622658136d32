package observability

import (
	"log/slog"
	"os"
)

func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	// Trace-aware wrapper so log lines carry trace/span ids when a span is
	// active on the request context.
	return slog.New(NewTraceHandler(handler))
}
