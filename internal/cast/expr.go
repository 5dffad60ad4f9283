package cast

type Expr interface {
	exprNode()
}

// ConstKind tags the payload of a Constant.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstUint
	ConstFloat
	ConstString
)

type (
	Ident struct {
		Name string
	}

	// Constant is a literal; only the field selected by Kind is meaningful.
	Constant struct {
		Kind  ConstKind
		Int   int64
		Uint  uint64
		Float float64
		Str   string
	}

	MemberExpr struct {
		X     Expr
		Op    MemberOp
		Field string
	}

	CallExpr struct {
		Fun  Expr
		Args []Expr
	}

	CastExpr struct {
		Type Type
		X    Expr
	}

	BinaryExpr struct {
		Op    BinaryOp
		Left  Expr
		Right Expr
	}

	UnaryExpr struct {
		Op UnaryOp
		X  Expr
	}

	SizeOf struct {
		Type Type
	}

	AssignExpr struct {
		Lhs Expr
		Op  AssignOp
		Rhs Expr
	}

	// TypeExpr puts a type in expression position.
	TypeExpr struct {
		Type Type
	}
)

func (*Ident) exprNode()      {}
func (*Constant) exprNode()   {}
func (*MemberExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*CastExpr) exprNode()   {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*SizeOf) exprNode()     {}
func (*AssignExpr) exprNode() {}
func (*TypeExpr) exprNode()   {}

func Id(name string) *Ident { return &Ident{Name: name} }

func IntConst(v int64) *Constant { return &Constant{Kind: ConstInt, Int: v} }

func UintConst(v uint64) *Constant { return &Constant{Kind: ConstUint, Uint: v} }

func FloatConst(v float64) *Constant { return &Constant{Kind: ConstFloat, Float: v} }

func StringConst(s string) *Constant { return &Constant{Kind: ConstString, Str: s} }

// Call builds `name(args...)`.
func Call(name string, args ...Expr) *CallExpr {
	return &CallExpr{Fun: Id(name), Args: args}
}

// Set builds the statement `lhs = rhs;`.
func Set(lhs, rhs Expr) *ExprStmt {
	return &ExprStmt{X: &AssignExpr{Lhs: lhs, Op: Assign, Rhs: rhs}}
}
