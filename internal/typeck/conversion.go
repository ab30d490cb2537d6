package typeck

import (
	"sable/internal/source"
	"sable/internal/types"
)

// Conversion describes how a successful coercion is realized.
type Conversion uint8

const (
	// ConvNone is the zero value; it never describes a successful coercion.
	ConvNone Conversion = iota
	// ConvIdentity: source and target are the same type.
	ConvIdentity
	// ConvWidening: numeric widening within one signedness family.
	ConvWidening
	// ConvByteArrayToString: an array of u8 viewed as a string.
	ConvByteArrayToString
	// ConvNominal: two user types with the same file and name.
	ConvNominal
	// ConvLiteral: a typed literal whose value fits the target type.
	ConvLiteral
)

func (c Conversion) String() string {
	switch c {
	case ConvIdentity:
		return "identity"
	case ConvWidening:
		return "widening"
	case ConvByteArrayToString:
		return "byte-array-to-string"
	case ConvNominal:
		return "nominal"
	case ConvLiteral:
		return "literal"
	}
	return "none"
}

// ImplicitConversion records an accepted coercion of the value at Span.
// Later phases use it to materialize the conversion.
type ImplicitConversion struct {
	Source types.TypeID
	Target types.TypeID
	Kind   Conversion
	Span   source.Span
}
