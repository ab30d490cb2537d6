package lexer

import (
	"sable/internal/diag"
	"sable/internal/token"
)

// multiOps проверяются по порядку, длинные раньше коротких.
var multiOps = [...]struct {
	text string
	kind token.Kind
}{
	{"...", token.DotDotDot},
	{"=>", token.FatArrow},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
}

// Жадность: сначала многосимвольные операторы, затем одиночные.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, *diag.Error) {
	start := lx.cursor.Mark()

	for _, op := range multiOps {
		if lx.cursor.Accept(op.text) {
			return lx.emit(op.kind, start), nil
		}
	}

	if k, ok := singleOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.emit(k, start), nil
	}

	// неизвестный символ: съедаем его и хвост до точки синхронизации
	r, _ := lx.peekRune()
	lx.bumpRune()
	lx.skipToSync()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{}, lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteRune(r))
}

var singleOps = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'!': token.Bang,
	'=': token.Assign,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	':': token.Colon,
	';': token.Semicolon,
	'.': token.Dot,
	',': token.Comma,
	'?': token.Question,
}
