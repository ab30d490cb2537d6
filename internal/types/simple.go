package types

import (
	"fmt"
	"strings"

	"sable/internal/diag"
	"sable/internal/source"
)

// UserType names a user-defined type by its declaring file and name.
type UserType struct {
	File string
	Name string
}

func (u UserType) String() string {
	return u.File + "." + u.Name
}

// SimpleType is a non-composite type. Width is meaningful for numeric kinds
// only; User for KindUser only.
type SimpleType struct {
	Kind  Kind
	Width Width
	User  UserType
}

var (
	Char    = SimpleType{Kind: KindChar}
	Bool    = SimpleType{Kind: KindBool}
	String  = SimpleType{Kind: KindString}
	Void    = SimpleType{Kind: KindVoid}
	Varargs = SimpleType{Kind: KindVarargs}
)

// MakeInt describes a signed integer of the given width.
func MakeInt(width Width) SimpleType {
	return SimpleType{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) SimpleType {
	return SimpleType{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) SimpleType {
	return SimpleType{Kind: KindFloat, Width: width}
}

// MakeUser describes a user-defined type.
func MakeUser(file, name string) SimpleType {
	return SimpleType{Kind: KindUser, User: UserType{File: file, Name: name}}
}

func (s SimpleType) String() string {
	switch s.Kind {
	case KindInt:
		return fmt.Sprintf("i%d", s.Width)
	case KindUint:
		return fmt.Sprintf("u%d", s.Width)
	case KindFloat:
		return fmt.Sprintf("f%d", s.Width)
	case KindChar:
		return "char"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindVarargs:
		return "..."
	case KindUser:
		return s.User.String()
	}
	return "<invalid>"
}

// IsVoidLike reports void and varargs, which no value can have.
func (s SimpleType) IsVoidLike() bool {
	return s.Kind == KindVoid || s.Kind == KindVarargs
}

// IsU8 reports whether s is the unsigned byte type.
func (s SimpleType) IsU8() bool {
	return s.Kind == KindUint && s.Width == Width8
}

// Validate checks widths and user names.
func (s SimpleType) Validate() error {
	switch s.Kind {
	case KindInt, KindUint:
		switch s.Width {
		case Width8, Width16, Width32, Width64:
			return nil
		}
		return invalidf("invalid integer width %d", s.Width)
	case KindFloat:
		switch s.Width {
		case Width16, Width32, Width64:
			return nil
		}
		return invalidf("invalid float width %d", s.Width)
	case KindUser:
		if s.User.Name == "" || s.User.File == "" {
			return invalidf("user type %q needs both file and name", s.User.String())
		}
		if strings.Contains(s.User.Name, ".") {
			return invalidf("user type name %q must not contain '.'", s.User.Name)
		}
		return nil
	case KindChar, KindBool, KindString, KindVoid, KindVarargs:
		return nil
	}
	return invalidf("invalid simple type kind %s", s.Kind)
}

var primitives = map[string]SimpleType{
	"i8":     MakeInt(Width8),
	"i16":    MakeInt(Width16),
	"i32":    MakeInt(Width32),
	"i64":    MakeInt(Width64),
	"u8":     MakeUint(Width8),
	"u16":    MakeUint(Width16),
	"u32":    MakeUint(Width32),
	"u64":    MakeUint(Width64),
	"f16":    MakeFloat(Width16),
	"f32":    MakeFloat(Width32),
	"f64":    MakeFloat(Width64),
	"char":   Char,
	"bool":   Bool,
	"string": String,
	"void":   Void,
}

// LookupPrimitive resolves a primitive type name such as "u8" or "void".
// Varargs is not a name and is not found here.
func LookupPrimitive(name string) (SimpleType, bool) {
	s, ok := primitives[name]
	return s, ok
}

func invalidf(format string, args ...any) *diag.Error {
	return diag.Errorf(source.Location{}, diag.InternalUnknown, format, args...)
}
