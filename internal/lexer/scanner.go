package lexer

import (
	"iter"

	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
)

// Scanned is one item of the token stream: either a token or a lexical error.
// Exactly one of Token (Err == nil) or Err is meaningful; for errors Token
// still carries the span and raw text of the rejected input, with Kind Invalid.
type Scanned struct {
	Token source.Spanned[token.Token]
	Err   *diag.Error
}

// IsErr reports whether the item is a lexical error.
func (s Scanned) IsErr() bool { return s.Err != nil }

// Span returns the span of the token or of the rejected input.
func (s Scanned) Span() source.Span { return s.Token.Span }

// Scanner is the pull contract between the lexer and its consumers.
// Next returns false once the input is exhausted and keeps returning false
// afterwards. No end-of-input item is produced.
type Scanner interface {
	Next() (Scanned, bool)
	Source() *source.File
}

var _ Scanner = (*Lexer)(nil)

// All returns the remaining items as a sequence. The sequence shares the
// lexer's position, so it can be ranged over only once.
func (lx *Lexer) All() iter.Seq[Scanned] {
	return func(yield func(Scanned) bool) {
		for {
			item, ok := lx.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Collect drains s, splitting tokens from errors.
func Collect(s Scanner) (tokens []token.Token, errs []*diag.Error) {
	for {
		item, ok := s.Next()
		if !ok {
			return tokens, errs
		}
		if item.IsErr() {
			errs = append(errs, item.Err)
			continue
		}
		tokens = append(tokens, item.Token.Node)
	}
}
