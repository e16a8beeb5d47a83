// Package profile provides optional runtime profiling of the interpreter.
//
// Profiling is compiled in only with the "pprof" build tag, using
// [github.com/pkg/profile]. Without the tag, [Config.Start] always returns a
// no-op and [Modes] is empty.
//
//	go build -tags pprof .
//	miniml --pprof-mode cpu fib.ml
//	go tool pprof -http=: "$XDG_CACHE_HOME/miniml/pprof/cpu.pprof"
//
// Supported modes: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
// thread, trace. Recursive programs are usually best inspected with cpu or
// allocs; deep recursion through closures shows up under heap.
package profile
