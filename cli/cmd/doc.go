// Package cmd implements the miniml subcommands: run, fmt, repl and init.
//
// Commands receive their ambient settings (the kong context, the source
// search path and the interpreter options) through [context.Context], see
// [WithContext], [WithSearchPath] and [WithOptions].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
