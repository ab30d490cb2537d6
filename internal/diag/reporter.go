package diag

import "sable/internal/source"

// Reporter receives diagnostics from a phase as they are found.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter пишет всё в Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Pending is a diagnostic under construction. Emit hands it to the reporter
// at most once; later calls are ignored.
type Pending struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func report(r Reporter, sev Severity, code Code, sp source.Span, msg string) *Pending {
	return &Pending{to: r, d: New(sev, code, sp, msg)}
}

func ReportError(r Reporter, code Code, sp source.Span, msg string) *Pending {
	return report(r, SevError, code, sp, msg)
}

func ReportWarning(r Reporter, code Code, sp source.Span, msg string) *Pending {
	return report(r, SevWarning, code, sp, msg)
}

func ReportInfo(r Reporter, code Code, sp source.Span, msg string) *Pending {
	return report(r, SevInfo, code, sp, msg)
}

func (p *Pending) WithNote(sp source.Span, msg string) *Pending {
	p.d = p.d.WithNote(sp, msg)
	return p
}

func (p *Pending) WithFix(title string, edits ...FixEdit) *Pending {
	p.d = p.d.WithFix(title, edits...)
	return p
}

// Diagnostic returns what has been built so far without emitting it.
func (p *Pending) Diagnostic() Diagnostic { return p.d }

func (p *Pending) Emit() {
	if p.sent {
		return
	}
	p.sent = true
	if p.to != nil {
		p.to.Report(p.d)
	}
}
