package check

import (
	"pine/internal/ast"
	"pine/internal/diag"
)

func (c *checker) checkStmt(id ast.StmtID) {
	stmt := c.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block, _ := c.builder.Stmts.Block(id)
		for _, child := range block.Stmts {
			c.checkStmt(child)
		}
	case ast.StmtExpr:
		es, _ := c.builder.Stmts.Expr(id)
		c.checkExpr(es.Expr)
	case ast.StmtIf:
		ifs, _ := c.builder.Stmts.If(id)
		c.checkExpr(ifs.Cond)
		c.checkStmt(ifs.Then)
		c.checkStmt(ifs.Else)
	case ast.StmtReturn:
		ret, _ := c.builder.Stmts.Return(id)
		c.checkExpr(ret.Value)
	case ast.StmtLoop:
		loop, _ := c.builder.Stmts.Loop(id)
		c.checkStmt(loop.Body)
	case ast.StmtLet:
		let, _ := c.builder.Stmts.Let(id)
		c.checkLet(let)
	}
}

func (c *checker) checkLet(let *ast.LetStmt) {
	c.checkName(let.Name, let.NameSpan, "variable")
	c.checkType(let.Type)

	lit, ok := c.builder.Exprs.StructLit(let.Value)
	if !ok {
		c.checkExpr(let.Value)
		return
	}
	litSpan := c.builder.Exprs.Get(let.Value).Span

	if let.Type.Kind != ast.TypeStruct || let.Type.Name != lit.Name {
		c.errorf(diag.SemStructTypeMismatch, litSpan,
			"cannot initialize `%s` of type `%s` with a `%s` literal",
			c.name(let.Name), let.Type.Format(c.builder.StringsInterner), c.name(lit.Name)).
			WithNote(let.Type.Span, "declared type is here").
			Emit()
		c.checkStructLitValues(lit)
		return
	}
	c.checkStructLit(let, lit)
}
