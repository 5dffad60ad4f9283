package ast

import (
	"pine/internal/source"
)

// TypeKind is the closed set of source types.
type TypeKind uint8

const (
	TypeUnit TypeKind = iota
	TypeBool
	TypeI8
	TypeI32
	TypeI64
	TypeU8
	TypeU32
	TypeU64
	TypeF32
	TypeF64
	TypeString
	TypeStruct
)

var typeKindNames = [...]string{
	TypeUnit:   "_",
	TypeBool:   "bool",
	TypeI8:     "i8",
	TypeI32:    "i32",
	TypeI64:    "i64",
	TypeU8:     "u8",
	TypeU32:    "u32",
	TypeU64:    "u64",
	TypeF32:    "f32",
	TypeF64:    "f64",
	TypeString: "str",
	TypeStruct: "struct",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "?"
}

// Type is a type reference as written in source. Name is set only for TypeStruct.
type Type struct {
	Kind TypeKind
	Name source.StringID
	Span source.Span
}

// Format renders the type in source syntax.
func (t Type) Format(strs *source.Interner) string {
	if t.Kind == TypeStruct {
		if s, ok := strs.Lookup(t.Name); ok {
			return s
		}
	}
	return t.Kind.String()
}
