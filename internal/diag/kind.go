package diag

import (
	"errors"
	"fmt"

	"sable/internal/source"
)

// Kind is the coarse category of an Error.
type Kind uint8

const (
	InternalError Kind = iota
	TypeError
	LexError
	ParseError
)

func (k Kind) String() string {
	switch k {
	case InternalError:
		return "[InternalError]"
	case TypeError:
		return "[TypeError]"
	case LexError:
		return "[LexError]"
	case ParseError:
		return "[ParseError]"
	}
	return "[UnknownError]"
}

// Name returns the kind without brackets.
func (k Kind) Name() string {
	s := k.String()
	return s[1 : len(s)-1]
}

// defaultCode is used when an Error is built from a Kind alone.
func (k Kind) defaultCode() Code {
	switch k {
	case TypeError:
		return TypeCannotCoerce
	case LexError:
		return LexInfo
	case ParseError:
		return SynInfo
	}
	return InternalUnknown
}

// Error is a location-tagged, kind-tagged message. It is the error value
// returned by the lexer, the type model and the coercion engine.
type Error struct {
	Kind    Kind
	Code    Code
	Loc     source.Location
	Message string
	Notes   []Note
	cause   error
}

// NewError constructs an Error. It has no side effects.
func NewError(loc source.Location, kind Kind, message string) *Error {
	return &Error{Kind: kind, Code: kind.defaultCode(), Loc: loc, Message: message}
}

// Errorf constructs an Error whose kind follows from code.
func Errorf(loc source.Location, code Code, format string, args ...any) *Error {
	return &Error{Kind: code.Kind(), Code: code, Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// Wrap turns err into an Error of the given kind, keeping err as the cause.
func Wrap(loc source.Location, code Code, err error) *Error {
	return &Error{Kind: code.Kind(), Code: code, Loc: loc, Message: err.Error(), cause: err}
}

// WithCode returns a copy of e with a more specific code.
func (e *Error) WithCode(code Code) *Error {
	cp := *e
	cp.Code = code
	return &cp
}

// At returns a copy of e placed at loc. Notes anchored at the old primary
// span move along with it.
func (e *Error) At(loc source.Location) *Error {
	cp := *e
	if len(e.Notes) > 0 {
		cp.Notes = make([]Note, len(e.Notes))
		for i, n := range e.Notes {
			if n.Span == e.Loc.Span {
				n.Span = loc.Span
			}
			cp.Notes[i] = n
		}
	}
	cp.Loc = loc
	return &cp
}

// WithNote returns a copy of e with an extra note attached.
func (e *Error) WithNote(sp source.Span, msg string) *Error {
	cp := *e
	cp.Notes = append(append([]Note(nil), e.Notes...), Note{Span: sp, Msg: msg})
	return &cp
}

// Error renders "<kind> at <line>:<col> : <message>".
func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s : %s", e.Kind, e.Loc, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Span returns the primary span.
func (e *Error) Span() source.Span { return e.Loc.Span }

// Diagnostic converts e into the rich diagnostic record used by bags and
// renderers.
func (e *Error) Diagnostic() Diagnostic {
	code := e.Code
	if code == UnknownCode {
		code = e.Kind.defaultCode()
	}
	return Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  e.Message,
		Primary:  e.Loc.Span,
		Notes:    e.Notes,
	}
}

// Report forwards e to r.
func (e *Error) Report(r Reporter) {
	if e == nil || r == nil {
		return
	}
	r.Report(e.Diagnostic())
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf classifies any error. Span misuse and unknown errors are internal.
func KindOf(err error) Kind {
	if de, ok := AsError(err); ok {
		return de.Kind
	}
	return InternalError
}

// FromSpanError converts a source span failure into an internal Error.
func FromSpanError(loc source.Location, err error) *Error {
	code := InternalUnknown
	switch {
	case errors.Is(err, source.ErrSpanMisaligned):
		code = InternalSpanMisaligned
	case errors.Is(err, source.ErrSpanOutOfBounds), errors.Is(err, source.ErrSpanForeignFile):
		code = InternalSpanOutOfBounds
	}
	return Wrap(loc, code, err)
}
