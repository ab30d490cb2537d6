package types

import (
	"fmt"
	"math"
	"strconv"

	"fortio.org/safecast"

	"sable/internal/diag"
	"sable/internal/source"
)

// Literal is a numeric value tagged with its type. Only the field matching
// Type.Kind is meaningful.
type Literal struct {
	Type  SimpleType
	Int   int64
	Uint  uint64
	Float float64
}

// IntLiteral builds a signed literal, checking that v fits width.
func IntLiteral(width Width, v int64) (Literal, error) {
	lit := Literal{Type: MakeInt(width), Int: v}
	if err := lit.Type.Validate(); err != nil {
		return Literal{}, err
	}
	if !fitsInt(v, width) {
		return Literal{}, outOfRange(lit.Type, strconv.FormatInt(v, 10))
	}
	return lit, nil
}

// UintLiteral builds an unsigned literal, checking that v fits width.
func UintLiteral(width Width, v uint64) (Literal, error) {
	lit := Literal{Type: MakeUint(width), Uint: v}
	if err := lit.Type.Validate(); err != nil {
		return Literal{}, err
	}
	if !fitsUint(v, width) {
		return Literal{}, outOfRange(lit.Type, strconv.FormatUint(v, 10))
	}
	return lit, nil
}

// FloatLiteral builds a float literal, checking that v is finite in width.
func FloatLiteral(width Width, v float64) (Literal, error) {
	lit := Literal{Type: MakeFloat(width), Float: v}
	if err := lit.Type.Validate(); err != nil {
		return Literal{}, err
	}
	if !FitsFloat(v, width) {
		return Literal{}, outOfRange(lit.Type, formatFloat(v))
	}
	return lit, nil
}

// Value renders only the literal value.
func (l Literal) Value() string {
	switch l.Type.Kind {
	case KindInt:
		return strconv.FormatInt(l.Int, 10)
	case KindUint:
		return strconv.FormatUint(l.Uint, 10)
	case KindFloat:
		return formatFloat(l.Float)
	}
	return "?"
}

// String renders "<width> (<value>)", e.g. "u8 (255)".
func (l Literal) String() string {
	return fmt.Sprintf("%s (%s)", l.Type, l.Value())
}

// IsNegative reports whether the literal holds a value below zero.
func (l Literal) IsNegative() bool {
	switch l.Type.Kind {
	case KindInt:
		return l.Int < 0
	case KindFloat:
		return l.Float < 0
	}
	return false
}

// FitsIn reports whether the literal value is representable in dst.
// Integer literals fit any integer type whose range holds the value; float
// literals fit any float width where they stay finite.
func (l Literal) FitsIn(dst SimpleType) bool {
	switch l.Type.Kind {
	case KindInt:
		switch dst.Kind {
		case KindInt:
			return fitsInt(l.Int, dst.Width)
		case KindUint:
			u, err := safecast.Conv[uint64](l.Int)
			return err == nil && fitsUint(u, dst.Width)
		}
	case KindUint:
		switch dst.Kind {
		case KindUint:
			return fitsUint(l.Uint, dst.Width)
		case KindInt:
			i, err := safecast.Conv[int64](l.Uint)
			return err == nil && fitsInt(i, dst.Width)
		}
	case KindFloat:
		if dst.Kind == KindFloat {
			return FitsFloat(l.Float, dst.Width)
		}
	}
	return false
}

func fitsInt(v int64, w Width) bool {
	var err error
	switch w {
	case Width8:
		_, err = safecast.Conv[int8](v)
	case Width16:
		_, err = safecast.Conv[int16](v)
	case Width32:
		_, err = safecast.Conv[int32](v)
	case Width64:
		return true
	default:
		return false
	}
	return err == nil
}

func fitsUint(v uint64, w Width) bool {
	var err error
	switch w {
	case Width8:
		_, err = safecast.Conv[uint8](v)
	case Width16:
		_, err = safecast.Conv[uint16](v)
	case Width32:
		_, err = safecast.Conv[uint32](v)
	case Width64:
		return true
	default:
		return false
	}
	return err == nil
}

// maxHalf is the largest finite IEEE 754 binary16 value.
const maxHalf = 65504

// FitsFloat reports whether v is finite and within the range of width.
func FitsFloat(v float64, w Width) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	a := math.Abs(v)
	switch w {
	case Width16:
		return a <= maxHalf
	case Width32:
		return a <= math.MaxFloat32
	case Width64:
		return true
	}
	return false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func outOfRange(t SimpleType, value string) *diag.Error {
	return diag.Errorf(source.Location{}, diag.TypeLiteralOutOfRange, "literal %s does not fit in type `%s`", value, t)
}
