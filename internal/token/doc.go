// Package token defines lexical token kinds and trivia.
// Invariants:
//   - Token.Text is the exact source lexeme, quotes included for string and
//     char literals.
//   - Token.Span covers Text exactly (half-open byte range).
//   - Primitive type names (u8, f64, string, void, ...) are TypeIdent tokens
//     carrying the resolved types.SimpleType; other names are identifiers.
//   - `null` is NullLit, not a keyword.
//   - Whitespace and comments never appear in the token stream; they are kept
//     as leading Trivia of the following token.
package token
