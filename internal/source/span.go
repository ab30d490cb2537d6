package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one File.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.Start == s.End }

// Len is zero for an inverted span.
func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// A span from another file leaves s unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	return Span{File: s.File, Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// Contains reports whether off lies inside s.
func (s Span) Contains(off uint32) bool { return s.Start <= off && off < s.End }

// Head and Tail collapse s to an empty span at one of its ends.
func (s Span) Head() Span { return Span{File: s.File, Start: s.Start, End: s.Start} }
func (s Span) Tail() Span { return Span{File: s.File, Start: s.End, End: s.End} }

// Spanned pairs a value with the span it was derived from.
type Spanned[T any] struct {
	Span Span
	Node T
}

func NewSpanned[T any](span Span, node T) Spanned[T] {
	return Spanned[T]{Span: span, Node: node}
}
