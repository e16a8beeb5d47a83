// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// A [Logger] is an immutable value: configuration is applied once through
// functional options, and [Logger.Wrap] or [Logger.With] derive new loggers.
// The zero Logger discards everything, so library code can hold one without
// checking whether logging was configured.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("session started", slog.Int("files", 2))
//
// # Levels
//
// The package adds [LevelTrace] below [LevelDebug]. The interpreter emits its
// per-block records (tokenize, parse, cache lookups, definitions) at trace
// level.
//
// # Output Formats
//
// Two formats are supported: [FormatText] (default) and [FormatJSON]. With
// [WithPretty] enabled, output is styled with lipgloss for the writer it is
// bound to; writers that are not terminals receive the same layout without
// escape sequences. Pretty handlers flatten groups and [slog.LogValuer]
// values into dotted keys, so structured errors render as
// error.error=..., error.cause=....
//
// # Time Formatting
//
// [WithTimeLayout] accepts any named layout of the [time] package
// ("RFC3339", "Kitchen", ...), a custom layout, or "none" to omit
// timestamps. Timestamps are omitted by default.
//
// # Default Logger
//
// Package-level functions such as [Info] and [ErrorContext] write through a
// default logger on [os.Stderr], reconfigured with [Config].
package log
