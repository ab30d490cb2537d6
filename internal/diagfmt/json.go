package diagfmt

import (
	"encoding/json"
	"io"

	"sable/internal/diag"
	"sable/internal/source"
)

// LocationJSON is a span in machine-readable form. Line and column fields
// are filled only with JSONOpts.IncludePositions.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Kind     string       `json:"kind"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON. Dropped counts both
// what the bag refused and what Max cut off.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(sp source.Span) LocationJSON {
	f := b.fs.Get(sp.File)
	loc := LocationJSON{File: displayPath(b.fs, f, b.opts.PathMode), StartByte: sp.Start, EndByte: sp.End}
	if b.opts.IncludePositions && f != nil {
		from, to := f.LineCol(sp.Start), f.LineCol(sp.End)
		loc.StartLine, loc.StartCol = from.Line, from.Col
		loc.EndLine, loc.EndCol = to.Line, to.Col
	}
	return loc
}

func (b jsonBuilder) edit(e diag.FixEdit) FixEditJSON {
	out := FixEditJSON{Location: b.location(e.Span), NewText: e.NewText}
	if f := b.fs.Get(e.Span.File); f != nil {
		if old, err := f.Slice(e.Span); err == nil {
			out.OldText = old
		}
	}
	if b.opts.IncludePreviews {
		if p, err := buildFixEditPreview(b.fs, e); err == nil {
			out.BeforeLines, out.AfterLines = p.before, p.after
		}
	}
	return out
}

func (b jsonBuilder) diagnostic(d *diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Kind:     d.Kind().Name(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	if b.opts.IncludeNotes {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	if b.opts.IncludeFixes {
		for _, fix := range d.Fixes {
			fj := FixJSON{Title: fix.Title}
			for _, e := range fix.Edits {
				fj.Edits = append(fj.Edits, b.edit(e))
			}
			out.Fixes = append(out.Fixes, fj)
		}
	}
	return out
}

// BuildDiagnosticsOutput converts bag into the JSON document without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	keep := len(items)
	if opts.Max > 0 {
		keep = min(keep, opts.Max)
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, keep),
		Count:       keep,
		Dropped:     bag.Dropped() + len(items) - keep,
	}
	for i := range keep {
		out.Diagnostics[i] = b.diagnostic(&items[i])
	}
	return out
}

// JSON writes the indented document for bag to w.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
