package cast

type UnaryOp uint8

const (
	UnaryMinus       UnaryOp = iota // -x
	UnaryPlus                       // +x
	UnaryNot                        // !x
	UnaryComplement                 // ~x
	UnaryAddress                    // &x
	UnaryIndirection                // *x
	UnaryPreInc                     // ++x
	UnaryPreDec                     // --x
	UnaryPostInc                    // x++
	UnaryPostDec                    // x--
)

var unarySpelling = [...]string{
	UnaryMinus:       "-",
	UnaryPlus:        "+",
	UnaryNot:         "!",
	UnaryComplement:  "~",
	UnaryAddress:     "&",
	UnaryIndirection: "*",
	UnaryPreInc:      "++",
	UnaryPreDec:      "--",
	UnaryPostInc:     "++",
	UnaryPostDec:     "--",
}

func (op UnaryOp) String() string {
	if int(op) < len(unarySpelling) {
		return unarySpelling[op]
	}
	return "?"
}

// IsPostfix reports whether the operator is written after its operand.
func (op UnaryOp) IsPostfix() bool {
	return op == UnaryPostInc || op == UnaryPostDec
}

type BinaryOp uint8

const (
	BinaryIndex BinaryOp = iota // a[b]
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryAdd
	BinarySub
	BinaryShl
	BinaryShr
	BinaryLess
	BinaryGreater
	BinaryLessEq
	BinaryGreaterEq
	BinaryEq
	BinaryNotEq
	BinaryBitAnd
	BinaryBitXor
	BinaryBitOr
	BinaryLogicalAnd
	BinaryLogicalOr
)

var binarySpelling = [...]string{
	BinaryIndex:      "[]",
	BinaryMul:        "*",
	BinaryDiv:        "/",
	BinaryMod:        "%",
	BinaryAdd:        "+",
	BinarySub:        "-",
	BinaryShl:        "<<",
	BinaryShr:        ">>",
	BinaryLess:       "<",
	BinaryGreater:    ">",
	BinaryLessEq:     "<=",
	BinaryGreaterEq:  ">=",
	BinaryEq:         "==",
	BinaryNotEq:      "!=",
	BinaryBitAnd:     "&",
	BinaryBitXor:     "^",
	BinaryBitOr:      "|",
	BinaryLogicalAnd: "&&",
	BinaryLogicalOr:  "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binarySpelling) {
		return binarySpelling[op]
	}
	return "?"
}

type AssignOp uint8

const (
	Assign AssignOp = iota
	AssignMul
	AssignDiv
	AssignMod
	AssignAdd
	AssignSub
	AssignShl
	AssignShr
	AssignBitAnd
	AssignBitXor
	AssignBitOr
)

var assignSpelling = [...]string{
	Assign:       "=",
	AssignMul:    "*=",
	AssignDiv:    "/=",
	AssignMod:    "%=",
	AssignAdd:    "+=",
	AssignSub:    "-=",
	AssignShl:    "<<=",
	AssignShr:    ">>=",
	AssignBitAnd: "&=",
	AssignBitXor: "^=",
	AssignBitOr:  "|=",
}

func (op AssignOp) String() string {
	if int(op) < len(assignSpelling) {
		return assignSpelling[op]
	}
	return "?"
}

// MemberOp selects `.` or `->`.
type MemberOp uint8

const (
	MemberDirect   MemberOp = iota // a.b
	MemberIndirect                 // a->b
)

func (op MemberOp) String() string {
	if op == MemberIndirect {
		return "->"
	}
	return "."
}
