package lower

import (
	"math"

	"pine/internal/ast"
	"pine/internal/cast"
)

var binaryOps = map[ast.ExprBinaryOp]cast.BinaryOp{
	ast.ExprBinaryAdd:        cast.BinaryAdd,
	ast.ExprBinarySub:        cast.BinarySub,
	ast.ExprBinaryMul:        cast.BinaryMul,
	ast.ExprBinaryDiv:        cast.BinaryDiv,
	ast.ExprBinaryMod:        cast.BinaryMod,
	ast.ExprBinaryLess:       cast.BinaryLess,
	ast.ExprBinaryLessEq:     cast.BinaryLessEq,
	ast.ExprBinaryGreater:    cast.BinaryGreater,
	ast.ExprBinaryGreaterEq:  cast.BinaryGreaterEq,
	ast.ExprBinaryEq:         cast.BinaryEq,
	ast.ExprBinaryNotEq:      cast.BinaryNotEq,
	ast.ExprBinaryLogicalAnd: cast.BinaryLogicalAnd,
	ast.ExprBinaryLogicalOr:  cast.BinaryLogicalOr,
}

func (l *lowerer) lowerExpr(id ast.ExprID) cast.Expr {
	expr := l.b.Exprs.Get(id)
	if expr == nil {
		l.failf("expression %d not found", id)
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := l.b.Exprs.Ident(id)
		return cast.Id(l.b.Name(data.Name))
	case ast.ExprLit:
		data, _ := l.b.Exprs.Literal(id)
		return l.lowerLiteral(data)
	case ast.ExprAssign:
		data, _ := l.b.Exprs.Assign(id)
		return &cast.AssignExpr{Lhs: l.lowerExpr(data.Target), Op: cast.Assign, Rhs: l.lowerExpr(data.Value)}
	case ast.ExprCall:
		data, _ := l.b.Exprs.Call(id)
		args := make([]cast.Expr, len(data.Args))
		for i, arg := range data.Args {
			args[i] = l.lowerExpr(arg)
		}
		return &cast.CallExpr{Fun: l.lowerExpr(data.Callee), Args: args}
	case ast.ExprMember:
		data, _ := l.b.Exprs.Member(id)
		return &cast.MemberExpr{X: l.lowerExpr(data.Target), Op: cast.MemberIndirect, Field: l.b.Name(data.Field)}
	case ast.ExprUnary:
		data, _ := l.b.Exprs.Unary(id)
		op := cast.UnaryMinus
		if data.Op == ast.ExprUnaryNot {
			op = cast.UnaryNot
		}
		return &cast.UnaryExpr{Op: op, X: l.lowerExpr(data.Operand)}
	case ast.ExprBinary:
		data, _ := l.b.Exprs.Binary(id)
		op, ok := binaryOps[data.Op]
		if !ok {
			l.failf("unknown binary operator %d", data.Op)
		}
		return &cast.BinaryExpr{Op: op, Left: l.lowerExpr(data.Left), Right: l.lowerExpr(data.Right)}
	case ast.ExprGroup:
		// writer и так расставляет скобки
		data, _ := l.b.Exprs.Group(id)
		return l.lowerExpr(data.Inner)
	case ast.ExprStructLit:
		data, _ := l.b.Exprs.StructLit(id)
		l.failf("struct literal %s outside of a let initializer", l.b.Name(data.Name))
	}
	l.failf("unknown expression kind %d", expr.Kind)
	return nil
}

func (l *lowerer) lowerLiteral(lit *ast.ExprLiteralData) cast.Expr {
	switch lit.Kind {
	case ast.ExprLitBool:
		if lit.Bool {
			return cast.IntConst(1)
		}
		return cast.IntConst(0)
	case ast.ExprLitInt:
		if lit.Int > math.MaxInt64 {
			return cast.UintConst(lit.Int)
		}
		return cast.IntConst(int64(lit.Int))
	case ast.ExprLitFloat:
		return cast.FloatConst(lit.Float)
	case ast.ExprLitString:
		return cast.StringConst(lit.Text)
	case ast.ExprLitNil:
		return &cast.CastExpr{Type: cast.PointerTo(cast.Prim(cast.TypeVoid)), X: cast.IntConst(0)}
	}
	l.failf("unknown literal kind %d", lit.Kind)
	return nil
}
