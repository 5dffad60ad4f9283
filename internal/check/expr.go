package check

import (
	"pine/internal/ast"
	"pine/internal/diag"
)

// checkExpr walks an expression outside of a let initializer position.
func (c *checker) checkExpr(id ast.ExprID) {
	expr := c.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprAssign:
		data, _ := c.builder.Exprs.Assign(id)
		c.checkExpr(data.Target)
		c.checkExpr(data.Value)
	case ast.ExprCall:
		data, _ := c.builder.Exprs.Call(id)
		c.checkExpr(data.Callee)
		for _, arg := range data.Args {
			c.checkExpr(arg)
		}
	case ast.ExprMember:
		data, _ := c.builder.Exprs.Member(id)
		c.checkExpr(data.Target)
	case ast.ExprUnary:
		data, _ := c.builder.Exprs.Unary(id)
		c.checkExpr(data.Operand)
	case ast.ExprBinary:
		data, _ := c.builder.Exprs.Binary(id)
		c.checkExpr(data.Left)
		c.checkExpr(data.Right)
	case ast.ExprGroup:
		data, _ := c.builder.Exprs.Group(id)
		c.checkExpr(data.Inner)
	case ast.ExprStructLit:
		data, _ := c.builder.Exprs.StructLit(id)
		c.errorf(diag.SemStructLitPosition, expr.Span, "`%s` literal can only initialize a `let` binding", c.name(data.Name)).
			WithNote(expr.Span, "bind it first: `let v: "+c.name(data.Name)+" = ...`").
			Emit()
		if _, ok := c.result.Structs[data.Name]; !ok {
			c.unknownStruct(data.Name, data.NameSpan)
		}
		c.checkStructLitValues(data)
	}
}
