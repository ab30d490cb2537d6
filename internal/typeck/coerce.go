package typeck

import (
	"fmt"

	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/types"
)

// Coerce reports whether a value of type src may be used where dst is
// expected. It returns nil on success and a TypeError otherwise. The error
// carries no location; callers place it with (*diag.Error).At.
func Coerce(src, dst types.Type) error {
	if _, err := Classify(src, dst); err != nil {
		return err
	}
	return nil
}

// Classify is Coerce that also tells how the coercion is realized.
// Rules apply in order: void/varargs targets, void/varargs sources,
// u8 arrays to string, remaining pointer/array cases, user types, numbers,
// then the remaining simple kinds.
func Classify(src, dst types.Type) (Conversion, *diag.Error) {
	if !src.IsValid() || !dst.IsValid() {
		return ConvNone, diag.Errorf(source.Location{}, diag.InternalUnknown,
			"cannot coerce invalid type `%s` to `%s`", src, dst)
	}

	if isVoidLike(dst) {
		return ConvNone, cannot(diag.TypeVoidCoercion, src, dst, "nothing can be coerced to "+dst.String())
	}
	if isVoidLike(src) {
		return ConvNone, cannot(diag.TypeVoidCoercion, src, dst, src.String()+" has no value")
	}

	if arr, ok := src.Array(); ok && arr.Base().IsU8() && dst.Kind() == types.KindString {
		return ConvByteArrayToString, nil
	}
	if src.IsComplex() || dst.IsComplex() {
		return ConvNone, cannot(diag.TypeUnsupportedCoercion, src, dst, "coercion involving pointers or arrays is not supported")
	}

	s, _ := src.Simple()
	d, _ := dst.Simple()

	switch {
	case s.Kind == types.KindUser || d.Kind == types.KindUser:
		if s == d {
			return ConvNominal, nil
		}
		return ConvNone, cannot(diag.TypeUserMismatch, src, dst, "user types coerce only to themselves")

	case s.Kind.IsNumeric() && d.Kind.IsNumeric():
		return classifyNumeric(src, dst, s, d)
	}

	if s == d {
		return ConvIdentity, nil
	}
	return ConvNone, cannot(diag.TypeCannotCoerce, src, dst, "")
}

// Численная политика: только тождество и расширение внутри одного семейства.
func classifyNumeric(src, dst types.Type, s, d types.SimpleType) (Conversion, *diag.Error) {
	switch {
	case s == d:
		return ConvIdentity, nil
	case s.Kind != d.Kind && (s.Kind == types.KindFloat || d.Kind == types.KindFloat):
		return ConvNone, cannot(diag.TypeIntFloat, src, dst, "conversion between integer and float requires an explicit cast")
	case s.Kind != d.Kind:
		return ConvNone, cannot(diag.TypeSignChange, src, dst, "signedness change requires an explicit cast")
	case s.Width < d.Width:
		return ConvWidening, nil
	}
	return ConvNone, cannot(diag.TypeNarrowing, src, dst,
		fmt.Sprintf("narrowing from %d to %d bits requires an explicit cast", s.Width, d.Width))
}

func isVoidLike(t types.Type) bool {
	s, ok := t.Simple()
	return ok && s.IsVoidLike()
}

// cannot builds the coercion failure. The message always names both types.
func cannot(code diag.Code, src, dst types.Type, note string) *diag.Error {
	e := diag.Errorf(source.Location{}, code, "cannot coerce type `%s` to `%s`!", src, dst)
	if note != "" {
		e = e.WithNote(source.Span{}, note)
	}
	return e
}
