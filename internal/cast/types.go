package cast

// TypeKind enumerates C types the generator can spell.
type TypeKind uint8

const (
	TypeVoid TypeKind = iota

	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeUSize

	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeISize

	TypeF32
	TypeF64

	TypeString
	TypeStruct
	TypePointer
)

var typeSpelling = [...]string{
	TypeVoid:   "void",
	TypeU8:     "uint8_t",
	TypeU16:    "uint16_t",
	TypeU32:    "uint32_t",
	TypeU64:    "uint64_t",
	TypeUSize:  "size_t",
	TypeI8:     "int8_t",
	TypeI16:    "int16_t",
	TypeI32:    "int32_t",
	TypeI64:    "int64_t",
	TypeISize:  "ssize_t",
	TypeF32:    "float",
	TypeF64:    "double",
	TypeString: "char*",
}

// Type is a C type. Name is set for TypeStruct, Elem for TypePointer.
type Type struct {
	Kind TypeKind
	Name string
	Elem *Type
}

func Prim(kind TypeKind) Type { return Type{Kind: kind} }

func StructType(name string) Type { return Type{Kind: TypeStruct, Name: name} }

func PointerTo(elem Type) Type { return Type{Kind: TypePointer, Elem: &elem} }

// String spells the type in C, e.g. "int32_t" or "Point*".
func (t Type) String() string {
	switch t.Kind {
	case TypeStruct:
		return t.Name
	case TypePointer:
		if t.Elem == nil {
			return "void*"
		}
		return t.Elem.String() + "*"
	}
	if int(t.Kind) < len(typeSpelling) {
		return typeSpelling[t.Kind]
	}
	return "void"
}

// PointsToStruct reports whether t is a pointer to a named struct.
func (t Type) PointsToStruct() bool {
	return t.Kind == TypePointer && t.Elem != nil && t.Elem.Kind == TypeStruct
}

func (t Type) IsVoid() bool { return t.Kind == TypeVoid }
