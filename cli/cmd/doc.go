// Package cmd implements the konst subcommands: fmt, query, repl and init.
//
// Commands receive their inputs and outputs through the [context.Context]
// bound by the cli package, so they can be run without a terminal.
package cmd

const (
	// CacheIdentifier is the kong variable holding the cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the configuration file
	// path.
	ConfigIdentifier = "config"
)
