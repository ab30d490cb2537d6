package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sable/internal/diag"
	"sable/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	caret, note     *color.Color
	added, removed  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgRed, color.Bold),
		note:    color.New(color.FgCyan),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note, p.added, p.removed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		position(fs, d.Primary, opts.PathMode),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	if f := fs.Get(d.Primary.File); f != nil {
		writeSnippet(w, f, d.Primary, opts, p)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), position(fs, n.Span, opts.PathMode), n.Msg)
		}
	}

	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  fix #%d: %s\n", i+1, fix.Title)
			for _, edit := range fix.Edits {
				start, end := fs.Resolve(edit.Span)
				fmt.Fprintf(w, "    edit %d:%d-%d:%d apply=%q\n", start.Line, start.Col, end.Line, end.Col, edit.NewText)
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					fmt.Fprintf(w, "    preview unavailable: %v\n", err)
					continue
				}
				fmt.Fprintln(w, "    preview:")
				for _, line := range preview.before {
					fmt.Fprintf(w, "      %s\n", p.removed.Sprint("- "+line))
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "      %s\n", p.added.Sprint("+ "+line))
				}
			}
		}
	}
}

// writeSnippet печатает строку span (и Context строк перед ней) с подчёркиванием.
// Многострочный span подчёркивается до конца первой строки.
func writeSnippet(w io.Writer, f *source.File, span source.Span, opts PrettyOpts, p palette) {
	start := f.LineCol(span.Start)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if opts.Context > 0 {
		ctx := uint32(opts.Context)
		if ctx >= first {
			first = 1
		} else {
			first -= ctx
		}
	}

	gw := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		text := clip(f.GetLine(ln), opts.Width)
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gw, ln), text)
	}

	line := f.GetLine(start.Line)
	col := int(start.Col - 1)
	if col > len(line) {
		col = len(line)
	}
	underlined := ""
	if span.End > span.Start {
		n := int(span.End - span.Start)
		underlined = line[col:min(col+n, len(line))]
	}
	fmt.Fprintf(w, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", gw, ""),
		padFor(line[:col]),
		p.caret.Sprint(caret(underlined)))
}

// padFor returns whitespace that occupies the same display width as prefix.
// Tabs stay tabs so the caret lines up in the terminal.
func padFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func caret(underlined string) string {
	n := runewidth.StringWidth(underlined)
	if n <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", n-1)
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "...")
}
