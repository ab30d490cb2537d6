package token

import (
	"sable/internal/source"
	"sable/internal/types"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Type    types.SimpleType // только для TypeIdent
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal, null included.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool { return t.Kind.IsPunctOrOp() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// String renders the token as it appeared in source: the lexeme for
// identifiers and literals, the resolved type for type identifiers and the
// fixed spelling otherwise.
func (t Token) String() string {
	switch t.Kind {
	case Ident, IntLit, FloatLit, StringLit, CharLit:
		return t.Text
	case TypeIdent:
		return t.Type.String()
	}
	return t.Kind.String()
}
