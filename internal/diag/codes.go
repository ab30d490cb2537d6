package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexEmptyChar                Code = 1006
	LexBadEscape                Code = 1007
	LexInvalidUTF8              Code = 1008
	LexMultiChar                Code = 1009

	// Парсерные (зарезервируем, парсер внешний)
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynBadTypeText     Code = 2002

	// Типовые
	TypeInfo                Code = 3000
	TypeCannotCoerce        Code = 3001
	TypeUnsupportedCoercion Code = 3002
	TypeVoidCoercion        Code = 3003
	TypeUserMismatch        Code = 3004
	TypeNarrowing           Code = 3005
	TypeSignChange          Code = 3006
	TypeIntFloat            Code = 3007
	TypeLiteralOutOfRange   Code = 3008

	// I/O
	IOLoadFileError Code = 4001

	// Внутренние ошибки компилятора
	InternalInfo                Code = 9000
	InternalUnknown             Code = 9001
	InternalSpanOutOfBounds     Code = 9002
	InternalSpanMisaligned      Code = 9003
	InternalInvalidArrayBase    Code = 9004
	InternalInvalidPointerDepth Code = 9005
	InternalCacheCorrupt        Code = 9006
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexUnterminatedChar:         "Unterminated character literal",
		LexEmptyChar:                "Empty character literal",
		LexBadEscape:                "Unknown escape sequence",
		LexInvalidUTF8:              "Invalid UTF-8 sequence",
		LexMultiChar:                "Character literal holds more than one character",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynBadTypeText:              "Malformed type expression",
		TypeInfo:                    "Type information",
		TypeCannotCoerce:            "Cannot coerce type",
		TypeUnsupportedCoercion:     "Unsupported pointer or array coercion",
		TypeVoidCoercion:            "Coercion involving void or varargs",
		TypeUserMismatch:            "User-defined types differ",
		TypeNarrowing:               "Narrowing numeric conversion",
		TypeSignChange:              "Signed/unsigned conversion",
		TypeIntFloat:                "Integer/float conversion",
		TypeLiteralOutOfRange:       "Literal out of range",
		IOLoadFileError:             "I/O load file error",
		InternalInfo:                "Internal information",
		InternalUnknown:             "Internal compiler error",
		InternalSpanOutOfBounds:     "Span out of bounds",
		InternalSpanMisaligned:      "Span not on a character boundary",
		InternalInvalidArrayBase:    "Invalid array element type",
		InternalInvalidPointerDepth: "Invalid pointer depth",
		InternalCacheCorrupt:        "Corrupt cache entry",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Kind returns the error kind a code belongs to. I/O and unknown codes are
// internal.
func (c Code) Kind() Kind {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return LexError
	case ic >= 2000 && ic < 3000:
		return ParseError
	case ic >= 3000 && ic < 4000:
		return TypeError
	}
	return InternalError
}
