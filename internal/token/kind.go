package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token. The lexer never yields it; errors
	// travel separately.
	Invalid Kind = iota

	// Ident represents an identifier token.
	Ident
	// TypeIdent is a primitive type name (u8, string, void, ...); the token
	// carries the resolved type.
	TypeIdent

	NullLit   // null
	IntLit    // 42, 0xff, 0b1010, 1_000
	FloatLit  // 1.5, 2e10
	StringLit // "..."
	CharLit   // 'x'

	KwLet      // let
	KwFn       // fn
	KwIf       // if
	KwElse     // else
	KwImport   // import
	KwFrom     // from
	KwReturn   // return
	KwExtern   // extern
	KwWhile    // while
	KwType     // type
	KwStruct   // struct
	KwTrait    // trait
	KwEnum     // enum
	KwNew      // new
	KwDelete   // delete
	KwSizeof   // sizeof
	KwAs       // as
	KwStatic   // static
	KwInline   // inline
	KwAbstract // abstract
	KwMut      // mut

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Bang      // !
	Assign    // =
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Lt        // <
	Gt        // >
	Amp       // &
	Pipe      // |
	DotDotDot // ... (vararg)
	Colon     // :
	Semicolon // ;
	Dot       // .
	Comma     // ,
	Question  // ?
	EqEq      // ==
	BangEq    // !=
	LtEq      // <=
	GtEq      // >=
	AndAnd    // &&
	OrOr      // ||
	FatArrow  // =>

	kindCount
)

var kindText = [...]string{
	Invalid:   "invalid",
	Ident:     "identifier",
	TypeIdent: "type identifier",
	NullLit:   "null",
	IntLit:    "integer literal",
	FloatLit:  "float literal",
	StringLit: "string literal",
	CharLit:   "char literal",

	KwLet:      "let",
	KwFn:       "fn",
	KwIf:       "if",
	KwElse:     "else",
	KwImport:   "import",
	KwFrom:     "from",
	KwReturn:   "return",
	KwExtern:   "extern",
	KwWhile:    "while",
	KwType:     "type",
	KwStruct:   "struct",
	KwTrait:    "trait",
	KwEnum:     "enum",
	KwNew:      "new",
	KwDelete:   "delete",
	KwSizeof:   "sizeof",
	KwAs:       "as",
	KwStatic:   "static",
	KwInline:   "inline",
	KwAbstract: "abstract",
	KwMut:      "mut",

	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
	Bang:      "!",
	Assign:    "=",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Lt:        "<",
	Gt:        ">",
	Amp:       "&",
	Pipe:      "|",
	DotDotDot: "...",
	Colon:     ":",
	Semicolon: ";",
	Dot:       ".",
	Comma:     ",",
	Question:  "?",
	EqEq:      "==",
	BangEq:    "!=",
	LtEq:      "<=",
	GtEq:      ">=",
	AndAnd:    "&&",
	OrOr:      "||",
	FatArrow:  "=>",
}

// String returns the fixed spelling for keywords and operators and a short
// description for identifier and literal kinds.
func (k Kind) String() string {
	if k < kindCount {
		return kindText[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Name returns the Go identifier of the kind, used by the JSON token dump.
func (k Kind) Name() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

var kindNames = [...]string{
	Invalid: "Invalid", Ident: "Ident", TypeIdent: "TypeIdent",
	NullLit: "NullLit", IntLit: "IntLit", FloatLit: "FloatLit", StringLit: "StringLit", CharLit: "CharLit",
	KwLet: "KwLet", KwFn: "KwFn", KwIf: "KwIf", KwElse: "KwElse", KwImport: "KwImport", KwFrom: "KwFrom",
	KwReturn: "KwReturn", KwExtern: "KwExtern", KwWhile: "KwWhile", KwType: "KwType", KwStruct: "KwStruct",
	KwTrait: "KwTrait", KwEnum: "KwEnum", KwNew: "KwNew", KwDelete: "KwDelete", KwSizeof: "KwSizeof",
	KwAs: "KwAs", KwStatic: "KwStatic", KwInline: "KwInline", KwAbstract: "KwAbstract", KwMut: "KwMut",
	LParen: "LParen", RParen: "RParen", LBrace: "LBrace", RBrace: "RBrace", LBracket: "LBracket",
	RBracket: "RBracket", Bang: "Bang", Assign: "Assign", Plus: "Plus", Minus: "Minus", Star: "Star",
	Slash: "Slash", Percent: "Percent", Lt: "Lt", Gt: "Gt", Amp: "Amp", Pipe: "Pipe",
	DotDotDot: "DotDotDot", Colon: "Colon", Semicolon: "Semicolon", Dot: "Dot", Comma: "Comma",
	Question: "Question", EqEq: "EqEq", BangEq: "BangEq", LtEq: "LtEq", GtEq: "GtEq",
	AndAnd: "AndAnd", OrOr: "OrOr", FatArrow: "FatArrow",
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwLet && k <= KwMut
}

// IsLiteral reports whether k is a literal kind, null included.
func (k Kind) IsLiteral() bool {
	return k >= NullLit && k <= CharLit
}

// IsPunctOrOp reports whether k is punctuation or an operator.
func (k Kind) IsPunctOrOp() bool {
	return k >= LParen && k <= FatArrow
}
