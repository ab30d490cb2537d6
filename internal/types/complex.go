package types

import (
	"strconv"
	"strings"

	"sable/internal/diag"
	"sable/internal/source"
)

// PointerInfo exposes pointer layout and pointee.
type PointerInfo interface {
	Alignment() uint32
	Offset() uint32
	References() uint32
	Base() SimpleType
}

// ArrayInfo exposes array size and element type.
type ArrayInfo interface {
	Size() uint32
	RuntimeSized() bool
	Base() SimpleType
}

var (
	_ PointerInfo = Pointer{}
	_ ArrayInfo   = Array{}
)

// Pointer is a pointer of one or more levels of indirection to a simple type.
type Pointer struct {
	alignment  uint32
	offset     uint32
	references uint32
	base       SimpleType
}

// NewPointer builds a pointer with references levels of indirection.
// references must be at least 1.
func NewPointer(alignment, offset, references uint32, base SimpleType) (Pointer, error) {
	if references == 0 {
		return Pointer{}, diag.Errorf(source.Location{}, diag.InternalInvalidPointerDepth,
			"pointer to '%s' must have at least one level of indirection", base)
	}
	if err := base.Validate(); err != nil {
		return Pointer{}, err
	}
	return Pointer{alignment: alignment, offset: offset, references: references, base: base}, nil
}

func (p Pointer) Alignment() uint32  { return p.alignment }
func (p Pointer) Offset() uint32     { return p.offset }
func (p Pointer) References() uint32 { return p.references }
func (p Pointer) Base() SimpleType   { return p.base }

// String renders references stars followed by the base type.
func (p Pointer) String() string {
	return strings.Repeat("*", int(p.references)) + p.base.String()
}

// Array is a fixed-size or runtime-sized sequence of a simple type.
type Array struct {
	size         uint32
	runtimeSized bool
	base         SimpleType
}

// NewArray builds an array type. Void and varargs elements are rejected with
// an InternalError.
func NewArray(size uint32, runtimeSized bool, base SimpleType) (Array, error) {
	switch base.Kind {
	case KindVoid:
		return Array{}, diag.Errorf(source.Location{}, diag.InternalInvalidArrayBase, "array cannot have type 'void'")
	case KindVarargs:
		return Array{}, diag.Errorf(source.Location{}, diag.InternalInvalidArrayBase, "array cannot have type '...'")
	}
	if err := base.Validate(); err != nil {
		return Array{}, err
	}
	if runtimeSized {
		size = 0
	}
	return Array{size: size, runtimeSized: runtimeSized, base: base}, nil
}

func (a Array) Size() uint32       { return a.size }
func (a Array) RuntimeSized() bool { return a.runtimeSized }
func (a Array) Base() SimpleType   { return a.base }

// String renders "[?]base" for runtime-sized arrays and "[N]base" otherwise.
func (a Array) String() string {
	if a.runtimeSized {
		return "[?]" + a.base.String()
	}
	return "[" + strconv.FormatUint(uint64(a.size), 10) + "]" + a.base.String()
}
