package diag

import "sable/internal/source"

// Note points at a secondary span that explains the primary one.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces the bytes of Span with NewText.
type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is the span-based form of an Error, the one renderers consume.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// Kind returns the error kind implied by the diagnostic code.
func (d Diagnostic) Kind() Kind { return d.Code.Kind() }

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}
