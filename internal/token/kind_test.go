package token_test

import (
	"testing"

	"sable/internal/source"
	"sable/internal/token"
	"sable/internal/types"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.NullLit, token.IntLit, token.FloatLit, token.StringLit, token.CharLit,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.TypeIdent, token.KwLet, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestOperatorSpellings(t *testing.T) {
	ops := map[token.Kind]string{
		token.LParen: "(", token.RParen: ")", token.LBrace: "{", token.RBrace: "}",
		token.LBracket: "[", token.RBracket: "]", token.Bang: "!", token.Assign: "=",
		token.Plus: "+", token.Minus: "-", token.Star: "*", token.Slash: "/", token.Percent: "%",
		token.Lt: "<", token.Gt: ">", token.Amp: "&", token.Pipe: "|", token.DotDotDot: "...",
		token.Colon: ":", token.Semicolon: ";", token.Dot: ".", token.Comma: ",", token.Question: "?",
		token.EqEq: "==", token.BangEq: "!=", token.LtEq: "<=", token.GtEq: ">=",
		token.AndAnd: "&&", token.OrOr: "||", token.FatArrow: "=>",
	}
	for k, want := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Errorf("%s should be punct/op", k.Name())
		}
		if got := k.String(); got != want {
			t.Errorf("%s.String() = %q, want %q", k.Name(), got, want)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.IntLit, token.TypeIdent}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsIdent(t *testing.T) {
	if !tok(token.Ident).IsIdent() {
		t.Fatalf("Ident should be ident")
	}
	if tok(token.KwFn).IsIdent() {
		t.Fatalf("KwFn must not be ident")
	}
}

func TestIsKeyword(t *testing.T) {
	keywords := []token.Kind{
		token.KwLet, token.KwFn, token.KwIf, token.KwElse, token.KwImport, token.KwFrom,
		token.KwReturn, token.KwExtern, token.KwWhile, token.KwType, token.KwStruct,
		token.KwTrait, token.KwEnum, token.KwNew, token.KwDelete, token.KwSizeof, token.KwAs,
		token.KwStatic, token.KwInline, token.KwAbstract, token.KwMut,
	}
	for _, k := range keywords {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	if tok(token.NullLit).IsKeyword() {
		t.Fatal("null is a literal, not a keyword")
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  token.Token
		want string
	}{
		{token.Token{Kind: token.Ident, Text: "foo"}, "foo"},
		{token.Token{Kind: token.IntLit, Text: "0xff"}, "0xff"},
		{token.Token{Kind: token.CharLit, Text: "'a'"}, "'a'"},
		{token.Token{Kind: token.StringLit, Text: `"hi"`}, `"hi"`},
		{token.Token{Kind: token.TypeIdent, Text: "u8", Type: types.MakeUint(types.Width8)}, "u8"},
		{token.Token{Kind: token.NullLit, Text: "null"}, "null"},
		{token.Token{Kind: token.KwLet, Text: "let"}, "let"},
		{token.Token{Kind: token.FatArrow, Text: "=>"}, "=>"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
