package trace

import (
	"context"
	"slices"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
	activeSpans atomic.Int64
)

func nextSeq() uint64 { return seqCounter.Add(1) }

// Active returns how many emitted spans have begun and not yet ended.
func Active() int64 { return activeSpans.Load() }

// ctxState is what a context carries: the tracer and the innermost span.
type ctxState struct {
	tracer Tracer
	span   uint64
	depth  int
}

type ctxKey struct{}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// WithTracer attaches t to ctx. Spans started below it nest from the root.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: t})
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// CurrentSpan returns the ID of the innermost span started through ctx.
func CurrentSpan(ctx context.Context) uint64 {
	return stateOf(ctx).span
}

// Span is an open interval of work. A nil *Span is valid and does nothing,
// which is what Start returns when the scope is filtered out.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	depth   int
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
	ended   atomic.Bool
}

// Start opens a span under the innermost span of ctx and returns a context
// carrying it. Filtered scopes return ctx unchanged and a nil span.
func Start(ctx context.Context, scope Scope, name string, attrs ...Attr) (context.Context, *Span) {
	st := stateOf(ctx)
	if !Enabled(st.tracer, scope) {
		return ctx, nil
	}
	s := &Span{
		tracer:  st.tracer,
		id:      spanCounter.Add(1),
		parent:  st.span,
		depth:   st.depth,
		scope:   scope,
		name:    name,
		started: time.Now(),
		attrs:   slices.Clip(attrs),
	}
	activeSpans.Add(1)
	s.tracer.Emit(&Event{
		Time:     s.started,
		Seq:      nextSeq(),
		Kind:     KindBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Depth:    s.depth,
		Name:     name,
		Attrs:    attrs,
	})
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: st.tracer, span: s.id, depth: st.depth + 1}), s
}

// Set adds an attribute reported on the end event.
func (s *Span) Set(key string, value any) *Span {
	if s != nil {
		s.attrs = append(s.attrs, A(key, value))
	}
	return s
}

// ID returns the span ID, 0 for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// End closes the span once; later calls return 0.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.ended.Swap(true) {
		return 0
	}
	activeSpans.Add(-1)
	now := time.Now()
	elapsed := now.Sub(s.started)
	s.tracer.Emit(&Event{
		Time:     now,
		Seq:      nextSeq(),
		Kind:     KindEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Depth:    s.depth,
		Name:     s.name,
		Detail:   detail,
		Elapsed:  elapsed,
		Attrs:    s.attrs,
	})
	return elapsed
}

// Point emits an instant event under the innermost span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string, attrs ...Attr) {
	st := stateOf(ctx)
	if !Enabled(st.tracer, scope) {
		return
	}
	st.tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: st.span,
		Depth:    st.depth,
		Name:     name,
		Detail:   detail,
		Attrs:    attrs,
	})
}
