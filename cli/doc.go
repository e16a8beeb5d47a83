// Package cli contains the command line interface for miniml.
//
// # Usage
//
//	miniml [flags] [run] [FILE...]
//	miniml fmt {native|json|yaml|go|tokens} [FILE]
//	miniml repl [FILE...]
//	miniml init [--force]
//
// Files are resolved against the working directory and then the search path,
// formed by each --path directory followed by the entries of $MINIML_PATH.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory. Keys are flag names; nested mappings are joined with hyphens.
// Command-line flags override the file. Write the current flag values with:
//
//	miniml --log-level=info init --force
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (text, json)
//   - --log-time-layout: timestamp layout, or none
//   - --log-caller: include caller information
//   - --log-pretty: colorize output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o miniml .
//
//   - --pprof-mode: profile kind (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory
package cli
