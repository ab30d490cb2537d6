package types

import (
	"strconv"
	"strings"

	"fortio.org/safecast"

	"sable/internal/diag"
	"sable/internal/source"
)

// DefaultPointerAlignment and DefaultPointerOffset are used by Parse, since
// the type text carries no layout.
const (
	DefaultPointerAlignment uint32 = 8
	DefaultPointerOffset    uint32 = 8
)

// Parse reads canonical type text back into a Type:
//
//	type   = "*"+ simple | "[" ("?" | digits) "]" simple | simple
//	simple = i8 | i16 | i32 | i64 | u8 | u16 | u32 | u64 | f16 | f32 | f64
//	       | char | bool | string | void | "..." | file "." name
//
// The file part of a user type may itself contain dots; the name is the text
// after the last one.
func Parse(text string) (Type, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Type{}, parseErr(text, "empty type")
	}

	if strings.HasPrefix(s, "*") {
		refs := len(s) - len(strings.TrimLeft(s, "*"))
		base, err := parseSimple(s[refs:], text)
		if err != nil {
			return Type{}, err
		}
		n, err := safecast.Conv[uint32](refs)
		if err != nil {
			return Type{}, parseErr(text, "too many pointer levels")
		}
		p, err := NewPointer(DefaultPointerAlignment, DefaultPointerOffset, n, base)
		if err != nil {
			return Type{}, err
		}
		return FromPointer(p), nil
	}

	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return Type{}, parseErr(text, "missing ']'")
		}
		sizeText := s[1:end]
		base, err := parseSimple(s[end+1:], text)
		if err != nil {
			return Type{}, err
		}
		var (
			size    uint32
			runtime bool
		)
		if sizeText == "?" {
			runtime = true
		} else {
			v, perr := strconv.ParseUint(sizeText, 10, 32)
			if perr != nil {
				return Type{}, parseErr(text, "bad array size "+strconv.Quote(sizeText))
			}
			size = uint32(v) // #nosec G115 -- bitSize 32 above
		}
		a, err := NewArray(size, runtime, base)
		if err != nil {
			return Type{}, err
		}
		return FromArray(a), nil
	}

	base, err := parseSimple(s, text)
	if err != nil {
		return Type{}, err
	}
	return FromSimple(base), nil
}

// MustParse is Parse for tests and tables; it panics on error.
func MustParse(text string) Type {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

func parseSimple(s, full string) (SimpleType, error) {
	if s == "" {
		return SimpleType{}, parseErr(full, "missing base type")
	}
	if s == "..." {
		return Varargs, nil
	}
	if p, ok := LookupPrimitive(s); ok {
		return p, nil
	}
	dot := strings.LastIndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return SimpleType{}, parseErr(full, "unknown type "+strconv.Quote(s))
	}
	name := s[dot+1:]
	if !isIdent(name) {
		return SimpleType{}, parseErr(full, "bad type name "+strconv.Quote(name))
	}
	return MakeUser(s[:dot], name), nil
}

func isIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}

func parseErr(text, msg string) *diag.Error {
	return diag.Errorf(source.Location{}, diag.SynBadTypeText, "%s in type %q", msg, text)
}
