package typeck

import (
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/types"
)

// CoerceLiteral coerces a typed literal. A literal is not bound to its
// nominal width: an integer literal coerces to any integer type whose range
// holds the value, a float literal to any float type that holds it.
// Other targets follow Coerce on the literal's type.
func CoerceLiteral(lit types.Literal, dst types.Type) (Conversion, *diag.Error) {
	src := types.FromSimple(lit.Type)
	d, ok := dst.Simple()
	if !ok || !sameFamily(lit.Type, d) {
		return Classify(src, dst)
	}
	if lit.Type == d {
		return ConvIdentity, nil
	}
	if lit.FitsIn(d) {
		return ConvLiteral, nil
	}
	return ConvNone, diag.Errorf(source.Location{}, diag.TypeLiteralOutOfRange,
		"cannot coerce type `%s` to `%s`!", lit, dst).
		WithNote(source.Span{}, "value "+lit.Value()+" does not fit in "+d.String())
}

// Целые литералы переходят между знаковыми и беззнаковыми типами.
func sameFamily(a, b types.SimpleType) bool {
	isInt := func(k types.Kind) bool { return k == types.KindInt || k == types.KindUint }
	switch {
	case isInt(a.Kind) && isInt(b.Kind):
		return true
	case a.Kind == types.KindFloat && b.Kind == types.KindFloat:
		return true
	}
	return false
}
