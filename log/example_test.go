package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/fbxtree/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"), log.WithPretty(false))
	logger.Info("parsed", slog.String("file", "cube.fbx"))
	// Output:
	// {"level":"INFO","msg":"parsed","file":"cube.fbx"}
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("unterminated scope", slog.Int("line", 12))
	// Output:
	// level=WARN msg="unterminated scope" line=12
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stdout, log.WithLevel(log.LevelDebug))
	logger.InfoContext(ctx, "processing request with context")
	logger.DebugContext(ctx, "request details", slog.String("method", "POST"))
}
