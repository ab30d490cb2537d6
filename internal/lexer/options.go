package lexer

import (
	"sable/internal/diag"
	"sable/internal/source"
)

type Options struct {
	// Reporter получает копию каждой лексической ошибки. Может быть nil -
	// ошибки всё равно приходят элементами потока.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) *diag.Error {
	e := diag.Errorf(source.LocationOf(lx.file, sp), code, "%s", msg)
	e.Report(lx.opts.Reporter)
	return e
}
