package lexer

import (
	"sable/internal/diag"
	"sable/internal/token"
)

func isHorizontalSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\f', '\v':
		return true
	}
	return false
}

func isNewline(b byte) bool { return b == '\n' }

// collectLeadingTrivia fills lx.hold with the trivia in front of the next
// significant token. Runs of horizontal space and runs of newlines each
// become one item; comments are kept one per item. An unterminated block
// comment consumes the rest of the file and is returned as an error.
func (lx *Lexer) collectLeadingTrivia() *diag.Error {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case isHorizontalSpace(b):
			lx.skipWhile(isHorizontalSpace)
			lx.keep(token.TriviaSpace, start)
		case isNewline(b):
			lx.skipWhile(isNewline)
			lx.keep(token.TriviaNewline, start)
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.lineComment(start)
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			if err := lx.blockComment(start); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *Lexer) keep(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// "//" до конца строки; "///" считается doc-комментарием.
func (lx *Lexer) lineComment(start Mark) {
	lx.cursor.Advance(2)
	kind := token.TriviaLineComment
	if lx.cursor.Eat('/') {
		kind = token.TriviaDocLine
	}
	lx.skipWhile(func(b byte) bool { return !isNewline(b) })
	lx.keep(kind, start)
}

// блочные комментарии вкладываются
func (lx *Lexer) blockComment(start Mark) *diag.Error {
	lx.cursor.Advance(2)
	for depth := 1; depth > 0; {
		switch {
		case lx.cursor.EOF():
			return lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		case lx.cursor.Accept("/*"):
			depth++
		case lx.cursor.Accept("*/"):
			depth--
		default:
			lx.bumpRune()
		}
	}
	lx.keep(token.TriviaBlockComment, start)
	return nil
}
