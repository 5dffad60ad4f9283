package cast

type Stmt interface {
	stmtNode()
}

type (
	EmptyStmt    struct{}
	ContinueStmt struct{}
	BreakStmt    struct{}

	// ReturnStmt with a nil Value is a bare `return;`.
	ReturnStmt struct {
		Value Expr
	}

	Block struct {
		Stmts []Stmt
	}

	// IfStmt with a nil Else has no else branch.
	IfStmt struct {
		Cond Expr
		Then Stmt
		Else Stmt
	}

	WhileStmt struct {
		Cond Expr
		Body Stmt
	}

	// VarDecl declares a local without an initializer.
	VarDecl struct {
		Name string
		Type Type
	}

	ExprStmt struct {
		X Expr
	}
)

func (*EmptyStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*BreakStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()   {}
func (*Block) stmtNode()        {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*VarDecl) stmtNode()      {}
func (*ExprStmt) stmtNode()     {}
