// Package trace records scoped spans of the pine compiler.
//
// Tracing is off by default. The CLI enables it with
//
//	pinec build --trace=- --trace-level=phase main.pn
//
// Levels, from quiet to verbose: off, error, phase, detail, debug. Spans are
// scoped (driver, pass, unit, node); a level admits every scope at or above
// its granularity.
//
// Events are written through a zap logger. Text and JSON encodings are
// supported; file outputs are rotated by lumberjack.
//
// Tracers travel in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
