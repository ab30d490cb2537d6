// Package observ measures wall-clock durations of driver phases.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// PhaseReport is one finished phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the serializable summary of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

type phase struct {
	name string
	dur  time.Duration
	note string
}

// Timer collects phase durations in start order. A nil *Timer records
// nothing, so callers need not branch on --timings.
type Timer struct {
	mu     sync.Mutex
	phases []phase
}

func NewTimer() *Timer { return &Timer{} }

// Phase starts a named phase and returns the function that ends it. The
// returned function records only on its first call.
func (t *Timer) Phase(name string) (end func(note string)) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, phase{name: name})
	t.mu.Unlock()

	started := time.Now()
	var once sync.Once
	return func(note string) {
		once.Do(func() {
			t.mu.Lock()
			t.phases[idx].dur = time.Since(started)
			t.phases[idx].note = note
			t.mu.Unlock()
		})
	}
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// Report снимает копию фаз; для пустого таймера возвращает нулевой Report.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.dur), Note: p.note})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the report as an aligned text table.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", name, ms)
		if note != "" {
			fmt.Fprintf(&sb, "  // %s", note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}
