// Package trace provides tracing for the linker-script front-end.
//
// It records what the driver and the interpreter did: pass boundaries
// (load, tokenize, interpret), every directive dispatched, INCLUDE frames
// pushed and popped, and the first error of a run.
//
// # Usage
//
//	ldscript parse --trace=- --trace-level=detail link.t
//
// # Implementations
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: immediate write to a file/stderr as text or NDJSON
//   - SlogTracer: forwards events to log/slog handlers, fanned out with slog-multi
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only error events
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: directives and include frames
//   - LevelDebug: everything, including each resolved file specifier
//
// Tracers are propagated through the driver via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "interpret", 0)
//	defer span.End("")
package trace
