package trace

import (
	"errors"
	"io"
	"sync"
)

// admits lets heartbeats through regardless of scope so a stuck run is
// visible even at LevelError.
func admits(l Level, ev *Event) bool {
	return ev.Kind == KindHeartbeat || l.ShouldEmit(ev.Scope)
}

// StreamTracer writes each event as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	buf    []byte
	errs   int // неудачные записи; трассировка не роняет основную работу
}

// NewStreamTracer writes to w; FormatAuto means text.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !admits(t.level, ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = AppendEvent(t.buf[:0], ev, t.format)
	if _, err := t.w.Write(t.buf); err != nil {
		t.errs++
	}
}

// WriteErrors returns how many events could not be written.
func (t *StreamTracer) WriteErrors() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errs
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer when it is an io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }

// RingTracer keeps the most recent events in memory.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	total  uint64 // events ever stored
	level  Level
}

// NewRingTracer keeps up to capacity events (default 4096).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !admits(t.level, ev) {
		return
	}
	t.mu.Lock()
	t.events[t.total%uint64(len(t.events))] = *ev
	t.total++
	t.mu.Unlock()
}

// Len returns the number of events currently held.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(min(t.total, uint64(len(t.events))))
}

// Snapshot returns the held events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.events))
	n := min(t.total, size)
	out := make([]Event, 0, n)
	for i := t.total - n; i < t.total; i++ {
		out = append(out, t.events[i%size])
	}
	return out
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	var buf []byte
	for _, ev := range t.Snapshot() {
		buf = AppendEvent(buf, &ev, format)
	}
	_, err := w.Write(buf)
	return err
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
func (t *RingTracer) Level() Level { return t.level }

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers, level: level}
}

// Ring returns the first ring tracer among the targets.
func (t *MultiTracer) Ring() (*RingTracer, bool) {
	for _, tr := range t.tracers {
		if r, ok := tr.(*RingTracer); ok {
			return r, true
		}
	}
	return nil, false
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Level() Level { return t.level }
