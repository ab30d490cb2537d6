package lexer

import (
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *Scanned       // 1 элементный буфер
	hold   []token.Trivia // накопленные leading trivia
	done   bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Source returns the file being scanned.
func (lx *Lexer) Source() *source.File {
	return lx.file
}

// Next возвращает следующий значимый токен с уже собранным Leading или
// лексическую ошибку. После конца ввода всегда возвращает false.
func (lx *Lexer) Next() (Scanned, bool) {
	if lx.look != nil {
		item := *lx.look
		lx.look = nil
		return item, true
	}
	if lx.done {
		return Scanned{}, false
	}

	// незакрытый блочный комментарий доходит до EOF: ошибка вместо токена
	if err := lx.collectLeadingTrivia(); err != nil {
		lx.hold = nil
		return lx.failed(err), true
	}

	if lx.cursor.EOF() {
		// trivia в конце файла ни к чему не приклеиваем
		lx.done = true
		lx.hold = nil
		return Scanned{}, false
	}

	ch := lx.cursor.Peek()
	var (
		tok token.Token
		err *diag.Error
	)

	switch {
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok, err = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok, err = lx.scanNumber()

	case ch == '"':
		tok, err = lx.scanString()

	case ch == '\'':
		tok, err = lx.scanChar()

	default:
		tok, err = lx.scanOperatorOrPunct()
	}

	if err != nil {
		lx.hold = nil
		return lx.failed(err), true
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return Scanned{Token: source.NewSpanned(tok.Span, tok)}, true
}

// Peek возвращает следующий элемент, не потребляя его.
func (lx *Lexer) Peek() (Scanned, bool) {
	item, ok := lx.Next()
	if ok {
		lx.look = &item
	}
	return item, ok
}

func (lx *Lexer) failed(err *diag.Error) Scanned {
	sp := err.Span()
	tok := token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	return Scanned{Token: source.NewSpanned(sp, tok), Err: err}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
