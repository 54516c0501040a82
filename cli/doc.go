// Package cli contains the command line interface for konst.
//
// # Usage
//
// Sources are translated to JSON unless another command is given:
//
//	konst app.konst              # same as: konst fmt json app.konst
//	konst fmt yaml app.konst
//	konst fmt env --prefix APP_ app.konst
//	konst query 'port + 1' app.konst
//	konst repl app.konst
//	konst init --force
//
// Sources are files or '-' for stdin, which is read when no sources are
// given. Multiple sources are joined in order, so constants declared in one
// file may be used in the next.
//
// # Configuration Loader
//
// Default flag values are read from the configuration file in the user
// configuration directory, itself written in the konst language (see
// [resolve]). The init command writes the current flags to that file.
// A JSON file of the same name with the extension ".json" is read as well.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o konst .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the pprof
//     directory under the user cache directory)
//
// # Examples
//
//	# Trace the parser while translating
//	konst --log-level=trace --log-format=text app.konst
//
//	# Limit nesting of untrusted input
//	konst --max-depth=16 - < untrusted.konst
//
//	# CPU profiling
//	konst --pprof-mode=cpu app.konst
package cli
