// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is configured once with functional options and never mutated;
// [Logger.Wrap] and [Logger.With] return modified copies.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("translated", slog.String("source", path))
//	logger.Error("failed", slog.Any("error", err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package default Logger, used by the package-level functions such as
// [Info] and [ErrorContext], is reconfigured with [Config].
//
// # Context-Aware Logging
//
// Each level has a context-aware and a context-unaware variant. The latter
// use [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Levels
//
// The levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and
// [LevelError]. Messages below the configured level are discarded, and the
// zero Logger discards everything.
//
// # Output Formats
//
// [FormatJSON] (the default) and [FormatText] select the standard slog
// handlers, or colorized variants of them with [WithPretty].
package log
