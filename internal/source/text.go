package source

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrSpanOutOfBounds: span выходит за пределы файла или перевёрнут.
	ErrSpanOutOfBounds = errors.New("span out of bounds")
	// ErrSpanMisaligned: граница span попадает внутрь UTF-8 последовательности.
	ErrSpanMisaligned = errors.New("span boundary inside a UTF-8 scalar")
	// ErrSpanForeignFile: span принадлежит другому файлу.
	ErrSpanForeignFile = errors.New("span belongs to another file")
)

// SpanError reports a span that cannot be applied to a File.
type SpanError struct {
	Path   string
	Span   Span
	Len    int
	Reason error
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("%s: span [%d, %d) of %d bytes: %v", e.Path, e.Span.Start, e.Span.End, e.Len, e.Reason)
}

func (e *SpanError) Unwrap() error { return e.Reason }

// Validate checks that span addresses whole scalars inside f.
func (f *File) Validate(span Span) error {
	fail := func(reason error) error {
		return &SpanError{Path: f.Path, Span: span, Len: len(f.Content), Reason: reason}
	}
	if span.File != f.ID {
		return fail(ErrSpanForeignFile)
	}
	n := uint64(len(f.Content))
	if span.Start > span.End || uint64(span.End) > n {
		return fail(ErrSpanOutOfBounds)
	}
	if !f.isBoundary(span.Start) || !f.isBoundary(span.End) {
		return fail(ErrSpanMisaligned)
	}
	return nil
}

func (f *File) isBoundary(off uint32) bool {
	if int(off) == len(f.Content) {
		return true
	}
	return utf8.RuneStart(f.Content[off])
}

// Slice returns the exact text covered by span.
func (f *File) Slice(span Span) (string, error) {
	if err := f.Validate(span); err != nil {
		return "", err
	}
	return string(f.Content[span.Start:span.End]), nil
}

// LineCol maps a byte offset to a 1-based line/column pair.
// Column counts bytes.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Location is a span together with the file it points into.
// A Location without a File has no display position.
type Location struct {
	File *File
	Span Span
}

// LocationOf builds a Location for span inside f.
func LocationOf(f *File, span Span) Location {
	return Location{File: f, Span: span}
}

// Known reports whether the location is attached to a source.
func (l Location) Known() bool {
	return l.File != nil
}

// LineCol returns the start position of the location.
func (l Location) LineCol() (LineCol, bool) {
	if l.File == nil {
		return LineCol{}, false
	}
	return l.File.LineCol(l.Span.Start), true
}

// String renders "line:col", or "?" for a detached location.
func (l Location) String() string {
	lc, ok := l.LineCol()
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}

// Text returns the covered source text, or "" when the span does not apply.
func (l Location) Text() string {
	if l.File == nil {
		return ""
	}
	s, err := l.File.Slice(l.Span)
	if err != nil {
		return ""
	}
	return s
}
