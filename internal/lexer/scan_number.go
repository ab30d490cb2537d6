package lexer

import (
	"sable/internal/diag"
	"sable/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10.
// Дробная часть только если за '.' идёт цифра: "1.": это IntLit и Dot,
// "1...": IntLit и DotDotDot.
// Число, к которому прилипли буквы или цифры не своей системы ("12ab",
// "0b102", "0x"),: ошибка LexBadNumber; хвост пропускается до точки
// синхронизации.
func (lx *Lexer) scanNumber() (token.Token, *diag.Error) {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if digit := radixDigit(lx.cursor.Peek(), lx.cursor.PeekAt(1)); digit != nil {
		lx.cursor.Advance(2)
		n := 0
		for {
			b := lx.cursor.Peek()
			if digit(b) {
				n++
			} else if b != '_' {
				break
			}
			lx.cursor.Bump()
		}
		if n == 0 {
			return lx.badNumber(start, "missing digits after base prefix")
		}
		return lx.finishNumber(kind, start)
	}

	// десятичная целая часть
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// дробная часть
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "expected digit after exponent")
		}
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	return lx.finishNumber(kind, start)
}

// finishNumber отклоняет число, за которым сразу идёт продолжение идентификатора.
func (lx *Lexer) finishNumber(kind token.Kind, start Mark) (token.Token, *diag.Error) {
	if r, sz := lx.peekRune(); sz > 0 && isIdentContinueRune(r) {
		return lx.badNumber(start, "invalid digit or suffix in number literal")
	}
	return lx.emit(kind, start), nil
}

func (lx *Lexer) badNumber(start Mark, msg string) (token.Token, *diag.Error) {
	lx.skipToSync()
	return token.Token{}, lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), msg)
}

// radixDigit returns the digit class for a 0b/0o/0x prefix, nil otherwise.
func radixDigit(b0, b1 byte) func(byte) bool {
	if b0 != '0' {
		return nil
	}
	switch b1 {
	case 'b', 'B':
		return func(b byte) bool { return b == '0' || b == '1' }
	case 'o', 'O':
		return func(b byte) bool { return b >= '0' && b <= '7' }
	case 'x', 'X':
		return isHex
	}
	return nil
}
