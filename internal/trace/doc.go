// Package trace provides the tracing subsystem of the reorganizer.
//
// Tracing records pass boundaries and per-container decisions so a run over a
// large unit can be inspected after the fact.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	reorg reorganize --trace=- --trace-level=detail unit.yaml
//
// # Architecture
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when a run fails
//   - MultiTracer: combines several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only failure dumps
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-container decisions
//   - LevelDebug: everything including node-level events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "insert", parentID)
//	defer span.End("")
package trace
