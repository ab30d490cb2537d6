// Package diag defines the diagnostic model shared by the lexer, the type
// model and the coercion engine.
//
// Two layers live here:
//
//   - Error is the compact, kind-tagged value ({location, kind, message})
//     returned by library calls. It implements the error interface and renders
//     as "[TypeError] at 1:1 : message". Kind is one of InternalError,
//     TypeError, LexError, ParseError; ParseError is reserved for an external
//     parser and only exists so rendering stays uniform.
//   - Diagnostic is the rich record (severity, code, primary span, notes,
//     fixes) accumulated in a Bag through a Reporter. Error.Diagnostic bridges
//     the two.
//
// Codes are grouped in ranges: LEX1xxx, SYN2xxx, TYP3xxx, IO4xxx, INT9xxx.
// The range decides the Kind (Code.Kind).
//
// Package diag does no formatting beyond Error.Error and the single-line
// short/golden forms in golden.go; the other renderers live in
// internal/diagfmt.
package diag
