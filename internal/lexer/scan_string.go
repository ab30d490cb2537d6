package lexer

import (
	"sable/internal/diag"
	"sable/internal/token"
)

// scanString сканирует "..." с escape \n \t \r \0 \\ \" \' \xNN \u{...}.
// Перевод строки или EOF до закрывающей кавычки: LexUnterminatedString,
// span заканчивается перед переводом строки.
func (lx *Lexer) scanString() (token.Token, *diag.Error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'

	badEscape := false
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			if badEscape {
				return token.Token{}, lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "unknown escape sequence in string literal")
			}
			return lx.emit(token.StringLit, start), nil
		case '\\':
			lx.cursor.Bump()
			if !lx.scanEscape() {
				badEscape = true
			}
		case '\n':
			return token.Token{}, lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "newline in string literal")
		default:
			lx.bumpRune()
		}
	}
	return token.Token{}, lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
}

// scanChar сканирует 'x' или '\n'. Ровно одна единица (руна или escape)
// между кавычками. Если после единицы нет закрывающей кавычки, ошибка
// покрывает кавычку с единицей, а дальше пропускаем до точки синхронизации.
// Исключение: кавычка найдена раньше точки синхронизации, тогда это
// литерал из нескольких символов ('ab').
func (lx *Lexer) scanChar() (token.Token, *diag.Error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''

	if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
		return token.Token{}, lx.errLex(diag.LexUnterminatedChar, lx.cursor.SpanFrom(start), "unterminated character literal")
	}
	if lx.cursor.Eat('\'') {
		return token.Token{}, lx.errLex(diag.LexEmptyChar, lx.cursor.SpanFrom(start), "empty character literal")
	}

	escOK := true
	if lx.cursor.Eat('\\') {
		escOK = lx.scanEscape()
	} else {
		lx.bumpRune()
	}

	if lx.cursor.Eat('\'') {
		if !escOK {
			return token.Token{}, lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "unknown escape sequence in character literal")
		}
		return lx.emit(token.CharLit, start), nil
	}
	if n := lx.quoteBeforeSync(); n >= 0 {
		lx.cursor.Advance(n + 1)
		return token.Token{}, lx.errLex(diag.LexMultiChar, lx.cursor.SpanFrom(start), "character literal holds more than one character")
	}
	sp := lx.cursor.SpanFrom(start)
	lx.skipToSync()
	return token.Token{}, lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
}

// quoteBeforeSync returns the distance to the next quote when no sync point
// comes first, or -1.
func (lx *Lexer) quoteBeforeSync() int {
	for i, b := range lx.cursor.Rest() {
		switch {
		case b == '\'':
			return i
		case isSyncByte(b):
			return -1
		}
	}
	return -1
}

// scanEscape поглощает escape после '\'. Возвращает false для неизвестного
// escape; перевод строки не поглощается.
func (lx *Lexer) scanEscape() bool {
	switch lx.cursor.Peek() {
	case 'n', 't', 'r', '0', '\\', '"', '\'':
		lx.cursor.Bump()
		return true
	case 'x':
		lx.cursor.Bump()
		for range 2 {
			if !isHex(lx.cursor.Peek()) {
				return false
			}
			lx.cursor.Bump()
		}
		return true
	case 'u':
		lx.cursor.Bump()
		if !lx.cursor.Eat('{') {
			return false
		}
		n := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		return lx.cursor.Eat('}') && n >= 1 && n <= 6
	case '\n', 0:
		return false
	}
	lx.bumpRune()
	return false
}
