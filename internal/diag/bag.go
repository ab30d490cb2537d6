package diag

import (
	"cmp"
	"math"
	"slices"

	"fortio.org/safecast"

	"sable/internal/source"
)

// Bag collects diagnostics up to a fixed limit and counts what did not fit.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
}

// clampLimit сводит произвольный int к uint16 с насыщением.
func clampLimit(n int) uint16 {
	v, err := safecast.Conv[uint16](n)
	switch {
	case err == nil:
		return v
	case n < 0:
		return 0
	default:
		return math.MaxUint16
	}
}

func NewBag(max int) *Bag {
	limit := clampLimit(max)
	return &Bag{items: make([]Diagnostic, 0, min(int(limit), 64)), max: limit}
}

// Add returns false when the bag is full; the diagnostic is then only counted.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) AddError(e *Error) bool {
	if e == nil {
		return false
	}
	return b.Add(e.Diagnostic())
}

func (b *Bag) Cap() uint16  { return b.max }
func (b *Bag) Dropped() int { return b.dropped }
func (b *Bag) Len() int     { return len(b.items) }

// Items отдаёт внутренний срез, не модифицировать.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) has(min Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity.AtLeast(min) })
}

func (b *Bag) HasErrors() bool   { return b.has(SevError) }
func (b *Bag) HasWarnings() bool { return b.has(SevWarning) }

// Filter returns the diagnostics of one kind in bag order.
func (b *Bag) Filter(kind Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range b.items {
		if d.Kind() == kind {
			out = append(out, d)
		}
	}
	return out
}

// Merge appends other's diagnostics, raising the limit so none are lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if need := len(b.items) + len(other.items); need > int(b.max) {
		b.max = clampLimit(need)
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// Sort orders by file, start, end, then errors before warnings, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// Dedup keeps the first of diagnostics sharing code, severity, primary span
// and message, and returns how many were removed. Order is preserved.
func (b *Bag) Dedup() int {
	seen := make(map[dedupKey]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		k := dedupKey{d.Code, d.Severity, d.Primary, d.Message}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, d)
	}
	removed := len(b.items) - len(kept)
	clear(b.items[len(kept):])
	b.items = kept
	return removed
}
