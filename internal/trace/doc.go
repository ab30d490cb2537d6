// Package trace records what the sable tools are doing: commands, passes
// (lex, coerce), per-file work and single items.
//
//	sable diag --trace=- --trace-level=detail src/
//
// Tracers: Nop, StreamTracer (text or NDJSON as events happen), RingTracer
// (last N events, dumped at exit) and MultiTracer. The tracer and the
// innermost span travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "lex", trace.A("file", name))
//	defer span.End("")
//	trace.Point(ctx, trace.ScopeItem, "cache_hit", "")
package trace
