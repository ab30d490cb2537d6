package diagfmt

import (
	"fmt"

	"sable/internal/source"
)

// displayPath formats the path of f according to mode.
func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	default:
		return f.FormatPath(mode.String(), "")
	}
}

// position renders "path:line:col" for the start of span.
func position(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>:?"
	}
	lc := f.LineCol(span.Start)
	return fmt.Sprintf("%s:%d:%d", displayPath(fs, f, mode), lc.Line, lc.Col)
}
