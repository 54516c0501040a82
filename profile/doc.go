// Package profile provides optional runtime profiling for the konst command.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag. Without the tag, [Modes] is empty and
// [Profiler.Start] returns a no-op.
//
//	go build -tags pprof .
//	konst --pprof-mode cpu --pprof-dir ./profiles app.konst
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// Profile files are named after their mode (cpu.pprof, mem.pprof, ...) and
// written to the cache directory by default.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
