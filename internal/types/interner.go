package types

import (
	"fmt"

	"fortio.org/safecast"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Builtins stores TypeIDs for the primitive types.
type Builtins struct {
	I8, I16, I32, I64 TypeID
	U8, U16, U32, U64 TypeID
	F16, F32, F64     TypeID
	Char              TypeID
	Bool              TypeID
	String            TypeID
	Void              TypeID
	Varargs           TypeID
}

// Interner provides stable TypeIDs for structurally equal types.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		types: make([]Type, 1, 64), // 0: NoTypeID
		index: make(map[Type]TypeID, 64),
	}
	b := &in.builtins
	b.I8 = in.Intern(FromSimple(MakeInt(Width8)))
	b.I16 = in.Intern(FromSimple(MakeInt(Width16)))
	b.I32 = in.Intern(FromSimple(MakeInt(Width32)))
	b.I64 = in.Intern(FromSimple(MakeInt(Width64)))
	b.U8 = in.Intern(FromSimple(MakeUint(Width8)))
	b.U16 = in.Intern(FromSimple(MakeUint(Width16)))
	b.U32 = in.Intern(FromSimple(MakeUint(Width32)))
	b.U64 = in.Intern(FromSimple(MakeUint(Width64)))
	b.F16 = in.Intern(FromSimple(MakeFloat(Width16)))
	b.F32 = in.Intern(FromSimple(MakeFloat(Width32)))
	b.F64 = in.Intern(FromSimple(MakeFloat(Width64)))
	b.Char = in.Intern(FromSimple(Char))
	b.Bool = in.Intern(FromSimple(Bool))
	b.String = in.Intern(FromSimple(String))
	b.Void = in.Intern(FromSimple(Void))
	b.Varargs = in.Intern(FromSimple(Varargs))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Len returns the number of interned types.
func (in *Interner) Len() int {
	return len(in.types) - 1
}

// Intern ensures the provided type has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if !t.IsValid() {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the type for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// Label renders id for messages; unknown ids and a nil interner give "?".
func Label(in *Interner, id TypeID) string {
	if in == nil {
		return "?"
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return "?"
	}
	return tt.String()
}
