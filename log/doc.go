// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Time layout, caller information, level, and encoding are fixed when a
// [Logger] is created using functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parsed", slog.String("file", "cube.fbx"))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Reconfigure an existing logger with [Logger.Wrap], or the package-level
// logger with [Config].
//
// # Context-Aware Logging
//
// Each level has a context-aware variant. The context-unaware variants use
// [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Records below the configured level are discarded.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText]. With [WithPretty] enabled, keys
// and values are colorized and JSON records are indented.
package log
