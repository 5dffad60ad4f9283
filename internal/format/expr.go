package format

import (
	"strconv"
	"strings"

	"pine/internal/ast"
)

func (p *printer) expr(id ast.ExprID) string {
	e := p.b.Exprs
	switch e.Get(id).Kind {
	case ast.ExprIdent:
		x, _ := e.Ident(id)
		return p.name(x.Name)
	case ast.ExprLit:
		x, _ := e.Literal(id)
		return literal(x)
	case ast.ExprAssign:
		x, _ := e.Assign(id)
		return p.expr(x.Target) + " = " + p.expr(x.Value)
	case ast.ExprCall:
		x, _ := e.Call(id)
		args := make([]string, 0, len(x.Args))
		for _, a := range x.Args {
			args = append(args, p.expr(a))
		}
		return p.expr(x.Callee) + "(" + strings.Join(args, ", ") + ")"
	case ast.ExprMember:
		x, _ := e.Member(id)
		return p.expr(x.Target) + "." + p.name(x.Field)
	case ast.ExprUnary:
		x, _ := e.Unary(id)
		return x.Op.String() + p.expr(x.Operand)
	case ast.ExprBinary:
		x, _ := e.Binary(id)
		return p.expr(x.Left) + " " + x.Op.String() + " " + p.expr(x.Right)
	case ast.ExprGroup:
		x, _ := e.Group(id)
		return "(" + p.expr(x.Inner) + ")"
	case ast.ExprStructLit:
		x, _ := e.StructLit(id)
		if len(x.Fields) == 0 {
			return p.name(x.Name) + " {}"
		}
		fields := make([]string, 0, len(x.Fields))
		for _, f := range x.Fields {
			fields = append(fields, p.name(f.Name)+": "+p.expr(f.Value))
		}
		return p.name(x.Name) + " { " + strings.Join(fields, ", ") + " }"
	}
	return ""
}

func literal(x *ast.ExprLiteralData) string {
	switch x.Kind {
	case ast.ExprLitBool:
		return strconv.FormatBool(x.Bool)
	case ast.ExprLitNil:
		return "nil"
	case ast.ExprLitInt:
		if x.Text != "" {
			return x.Text
		}
		return strconv.FormatUint(x.Int, 10)
	case ast.ExprLitFloat:
		if x.Text != "" {
			return x.Text
		}
		return strconv.FormatFloat(x.Float, 'g', -1, 64)
	default:
		return Quote(x.Text)
	}
}

// Quote renders s as a pine string literal.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
