package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

const (
	utf8RuneError = utf8.RuneError
	utf8RuneSelf  = utf8.RuneSelf
)

// peekRune декодирует руну под курсором; size 0 на EOF, 1 на битом байте.
func (lx *Lexer) peekRune() (r rune, size int) {
	switch b := lx.cursor.Peek(); {
	case lx.cursor.EOF():
		return utf8.RuneError, 0
	case b < utf8.RuneSelf:
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.cursor.Rest())
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Advance(sz)
}

// skipWhile consumes bytes while keep holds.
func (lx *Lexer) skipWhile(keep func(byte) bool) {
	for !lx.cursor.EOF() && keep(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func inRange(b, lo, hi byte) bool { return lo <= b && b <= hi }

func isDec(b byte) bool { return inRange(b, '0', '9') }
func isHex(b byte) bool { return isDec(b) || inRange(b|0x20, 'a', 'f') }

func isIdentStartByte(b byte) bool {
	return b == '_' || inRange(b|0x20, 'a', 'z')
}
func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool    { return r == '_' || unicode.IsLetter(r) }
func isIdentContinueRune(r rune) bool { return isIdentStartRune(r) || unicode.IsDigit(r) }

func quoteRune(r rune) string { return strconv.QuoteRune(r) }
