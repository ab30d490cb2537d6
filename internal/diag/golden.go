package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"sable/internal/source"
)

// shortLine is one rendered row: "<sev> <code> <path>:<line>:<col> <msg>".
type shortLine struct {
	sev, code, path, msg string
	line, col            uint32
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

func compareShort(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set), sorted by position. Paths are relative to the
// FileSet base directory; virtual files keep their registered name.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return FormatShortDiagnostics(diags, fs, includeNotes, "relative")
}

// FormatShortDiagnostics is FormatGoldenDiagnostics with a caller-chosen path
// mode ("absolute", "relative", "basename", "auto").
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool, pathMode string) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	base := fs.BaseDir()
	row := func(sev string, code Code, sp source.Span, msg string) (shortLine, bool) {
		f := fs.Get(sp.File)
		if f == nil {
			return shortLine{}, false
		}
		path := f.Path
		if f.Flags&source.FileVirtual == 0 {
			path = f.FormatPath(pathMode, base)
		}
		pos := f.LineCol(sp.Start)
		return shortLine{
			sev:  sev,
			code: code.ID(),
			path: slashPath(path),
			line: pos.Line,
			col:  pos.Col,
			msg:  oneLine(msg),
		}, true
	}

	var rows []shortLine
	for _, d := range diags {
		if r, ok := row(strings.ToLower(sevWord(d.Severity)), d.Code, d.Primary, d.Message); ok {
			rows = append(rows, r)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if r, ok := row("note", d.Code, n.Span, n.Msg); ok {
				rows = append(rows, r)
			}
		}
	}
	slices.SortStableFunc(rows, compareShort)

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return strings.Join(out, "\n")
}

// sevWord maps anything below warning to info.
func sevWord(s Severity) string {
	if s == SevError || s == SevWarning {
		return s.String()
	}
	return SevInfo.String()
}

func slashPath(p string) string {
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// oneLine folds line breaks into spaces.
func oneLine(msg string) string {
	msg = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg)
	return strings.TrimSpace(msg)
}
