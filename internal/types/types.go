package types

import "fmt"

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindUint
	KindFloat
	KindChar
	KindBool
	KindString
	KindVoid
	KindVarargs
	KindUser
	KindPointer
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindVarargs:
		return "varargs"
	case KindUser:
		return "user"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsNumeric reports whether k is an integer or float kind.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindUint || k == KindFloat
}

// IsSimple reports whether k can appear as a SimpleType kind.
func (k Kind) IsSimple() bool {
	return k >= KindInt && k <= KindUser
}

// Width captures the precision of integers/floats.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Type is either a SimpleType or a complex type (Pointer or Array).
// The zero Type is invalid. Type values are comparable with ==.
type Type struct {
	kind   Kind
	simple SimpleType
	ptr    Pointer
	arr    Array
}

// FromSimple wraps a simple type.
func FromSimple(s SimpleType) Type {
	return Type{kind: s.Kind, simple: s}
}

// FromPointer wraps a pointer type.
func FromPointer(p Pointer) Type {
	return Type{kind: KindPointer, ptr: p}
}

// FromArray wraps an array type.
func FromArray(a Array) Type {
	return Type{kind: KindArray, arr: a}
}

func (t Type) Kind() Kind { return t.kind }

// IsComplex reports whether t is a pointer or an array.
func (t Type) IsComplex() bool {
	return t.kind == KindPointer || t.kind == KindArray
}

func (t Type) IsValid() bool { return t.kind != KindInvalid }

// Simple returns the simple type when t is not complex.
func (t Type) Simple() (SimpleType, bool) {
	if t.IsComplex() || t.kind == KindInvalid {
		return SimpleType{}, false
	}
	return t.simple, true
}

func (t Type) Pointer() (Pointer, bool) {
	return t.ptr, t.kind == KindPointer
}

func (t Type) Array() (Array, bool) {
	return t.arr, t.kind == KindArray
}

// Base returns the innermost simple type: the pointee or element type for
// complex types, t itself otherwise.
func (t Type) Base() SimpleType {
	switch t.kind {
	case KindPointer:
		return t.ptr.base
	case KindArray:
		return t.arr.base
	}
	return t.simple
}

// String renders the canonical type text.
func (t Type) String() string {
	switch t.kind {
	case KindInvalid:
		return "<invalid>"
	case KindPointer:
		return t.ptr.String()
	case KindArray:
		return t.arr.String()
	}
	return t.simple.String()
}
