package ast

import (
	"pine/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent is a variable reference.
	ExprIdent ExprKind = iota
	// ExprLit is a literal.
	ExprLit
	// ExprAssign is `target = value`.
	ExprAssign
	// ExprCall is `callee(args...)`.
	ExprCall
	// ExprMember is `target.field`.
	ExprMember
	ExprUnary
	ExprBinary
	ExprGroup
	// ExprStructLit is `Name { field: value, ... }`.
	ExprStructLit
)

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprLitKind enumerates literal flavours.
type ExprLitKind uint8

const (
	ExprLitBool ExprLitKind = iota
	ExprLitNil
	ExprLitInt
	ExprLitFloat
	ExprLitString
)

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// Арифметические
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	// Сравнения
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
	ExprBinaryEq
	ExprBinaryNotEq

	// Логические
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr
)

func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	case ExprBinaryMod:
		return "%"
	case ExprBinaryLess:
		return "<"
	case ExprBinaryLessEq:
		return "<="
	case ExprBinaryGreater:
		return ">"
	case ExprBinaryGreaterEq:
		return ">="
	case ExprBinaryEq:
		return "=="
	case ExprBinaryNotEq:
		return "!="
	case ExprBinaryLogicalAnd:
		return "and"
	case ExprBinaryLogicalOr:
		return "or"
	}
	return "?"
}

// ExprUnaryOp enumerates prefix operators.
type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota // -x
	ExprUnaryNot                    // !x
)

func (op ExprUnaryOp) String() string {
	if op == ExprUnaryNot {
		return "!"
	}
	return "-"
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprLiteralData struct {
	Kind  ExprLitKind
	Bool  bool
	Int   uint64
	Float float64
	Text  string // исходный текст числа или декодированная строка
}

type ExprAssignData struct {
	Target ExprID
	Value  ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprMemberData struct {
	Target    ExprID
	Field     source.StringID
	FieldSpan source.Span
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type StructLitField struct {
	Name  source.StringID
	Span  source.Span
	Value ExprID
}

type ExprStructLitData struct {
	Name     source.StringID
	NameSpan source.Span
	Fields   []StructLitField
}
