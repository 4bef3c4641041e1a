// Package profile provides optional runtime profiling using
// [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag. Without
// it, [Modes] is empty and [Profiler.Start] returns a no-op.
//
//	p := profile.Make(profile.WithMode("cpu"), profile.WithPath("/tmp/prof"))
//	defer p.Start().Stop()
//
// Supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, and trace. Profile files are written to the configured
// directory and can be analyzed with "go tool pprof".
package profile
