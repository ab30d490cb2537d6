package lexer

import (
	"sable/internal/diag"
	"sable/internal/token"
	"sable/internal/types"
)

// scanIdentOrKeyword сканирует идентификатор и классифицирует его:
// ключевое слово, null, имя примитивного типа или Ident.
// Ключевые слова регистрозависимые. Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() (token.Token, *diag.Error) {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	switch {
	case r == utf8RuneError && sz <= 1:
		lx.bumpRune()
		lx.skipToSync()
		return token.Token{}, lx.errLex(diag.LexInvalidUTF8, lx.cursor.SpanFrom(start), "invalid UTF-8 sequence")
	case !isIdentStartRune(r):
		lx.bumpRune()
		lx.skipToSync()
		return token.Token{}, lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "unknown character "+quoteRune(r))
	}
	lx.bumpRune()

	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			// ASCII fast-path; Peek на EOF даёт 0
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, _ := lx.peekRune()
		if !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)

	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
		return tok, nil
	}
	if st, ok := types.LookupPrimitive(tok.Text); ok {
		tok.Kind = token.TypeIdent
		tok.Type = st
	}
	return tok, nil
}
