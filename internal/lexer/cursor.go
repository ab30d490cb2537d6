package lexer

import (
	"bytes"

	"sable/internal/source"
)

// Cursor walks the bytes of one file. Offsets fit in uint32 because
// FileSet.Add rejects larger files.
type Cursor struct {
	file *source.File
	src  []byte
	off  uint32
}

// NewCursor starts at offset 0 of f.
func NewCursor(f *source.File) Cursor {
	return Cursor{file: f, src: f.Content}
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() uint32 { return c.off }

// EOF reports whether every byte has been consumed.
func (c *Cursor) EOF() bool {
	return int(c.off) >= len(c.src)
}

// Peek returns the current byte, 0 at the end.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt returns the byte n positions ahead of the cursor, 0 past the end.
func (c *Cursor) PeekAt(n int) byte {
	i := int(c.off) + n
	if i >= len(c.src) {
		return 0
	}
	return c.src[i]
}

// Bump consumes and returns one byte; 0 at the end.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// Advance consumes n bytes, stopping at the end.
func (c *Cursor) Advance(n int) {
	rest := len(c.src) - int(c.off)
	c.off += uint32(min(n, rest)) // #nosec G115 -- bounded by len(src)
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() == b && !c.EOF() {
		c.off++
		return true
	}
	return false
}

// Accept consumes s if the input continues with it.
func (c *Cursor) Accept(s string) bool {
	if !bytes.HasPrefix(c.Rest(), []byte(s)) {
		return false
	}
	c.Advance(len(s))
	return true
}

// Rest returns the unread bytes.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.src[c.off:]
}

// Mark запоминает позицию начала лексемы.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.off) }

// SpanFrom returns the span [m, current).
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file.ID, Start: uint32(m), End: c.off}
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) { c.off = uint32(m) }
