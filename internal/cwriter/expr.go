package cwriter

import (
	"fmt"
	"strconv"
	"strings"

	"pine/internal/cast"
)

// emitBare writes e without outer parentheses. Used where the surrounding
// syntax already delimits the expression: statements, conditions, arguments.
func (e *Emitter) emitBare(x cast.Expr) {
	switch x := x.(type) {
	case *cast.BinaryExpr:
		e.emitBinary(x)
	case *cast.AssignExpr:
		e.emitExpr(x.Lhs)
		fmt.Fprintf(&e.buf, " %s ", x.Op)
		e.emitBare(x.Rhs)
	default:
		e.emitExpr(x)
	}
}

// emitExpr writes x in operand position; every binary and assignment gets parentheses.
func (e *Emitter) emitExpr(x cast.Expr) {
	switch x := x.(type) {
	case *cast.Ident:
		e.buf.WriteString(x.Name)
	case *cast.Constant:
		e.emitConstant(x)
	case *cast.TypeExpr:
		e.buf.WriteString(x.Type.String())
	case *cast.SizeOf:
		fmt.Fprintf(&e.buf, "sizeof(%s)", x.Type)
	case *cast.MemberExpr:
		e.emitPostfixOperand(x.X)
		e.buf.WriteString(x.Op.String())
		e.buf.WriteString(x.Field)
	case *cast.CallExpr:
		e.emitPostfixOperand(x.Fun)
		e.buf.WriteByte('(')
		for i, arg := range x.Args {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			e.emitBare(arg)
		}
		e.buf.WriteByte(')')
	case *cast.CastExpr:
		fmt.Fprintf(&e.buf, "(%s)", x.Type)
		e.emitExpr(x.X)
	case *cast.UnaryExpr:
		if x.Op.IsPostfix() {
			e.emitPostfixOperand(x.X)
			e.buf.WriteString(x.Op.String())
			return
		}
		e.buf.WriteString(x.Op.String())
		switch x.X.(type) {
		case *cast.UnaryExpr, *cast.CastExpr:
			// "- -x" не должен склеиться в "--x"
			e.buf.WriteByte('(')
			e.emitExpr(x.X)
			e.buf.WriteByte(')')
		default:
			e.emitExpr(x.X)
		}
	case *cast.BinaryExpr:
		if x.Op == cast.BinaryIndex {
			e.emitBinary(x)
			return
		}
		e.buf.WriteByte('(')
		e.emitBinary(x)
		e.buf.WriteByte(')')
	case *cast.AssignExpr:
		e.buf.WriteByte('(')
		e.emitBare(x)
		e.buf.WriteByte(')')
	default:
		panic(fmt.Sprintf("cwriter: unexpected expression %T", x))
	}
}

func (e *Emitter) emitBinary(x *cast.BinaryExpr) {
	if x.Op == cast.BinaryIndex {
		e.emitPostfixOperand(x.Left)
		e.buf.WriteByte('[')
		e.emitBare(x.Right)
		e.buf.WriteByte(']')
		return
	}
	e.emitExpr(x.Left)
	fmt.Fprintf(&e.buf, " %s ", x.Op)
	e.emitExpr(x.Right)
}

// emitPostfixOperand parenthesizes anything that does not bind as tightly as a postfix operator.
func (e *Emitter) emitPostfixOperand(x cast.Expr) {
	switch x := x.(type) {
	case *cast.Ident, *cast.CallExpr, *cast.MemberExpr, *cast.SizeOf:
		e.emitExpr(x)
	case *cast.Constant:
		if x.Kind == cast.ConstString {
			e.emitExpr(x)
			return
		}
		e.buf.WriteByte('(')
		e.emitExpr(x)
		e.buf.WriteByte(')')
	case *cast.BinaryExpr, *cast.AssignExpr:
		e.emitExpr(x)
	default:
		e.buf.WriteByte('(')
		e.emitExpr(x)
		e.buf.WriteByte(')')
	}
}

func (e *Emitter) emitConstant(c *cast.Constant) {
	switch c.Kind {
	case cast.ConstInt:
		if c.Int < 0 {
			fmt.Fprintf(&e.buf, "(%d)", c.Int)
			return
		}
		e.buf.WriteString(strconv.FormatInt(c.Int, 10))
	case cast.ConstUint:
		e.buf.WriteString(strconv.FormatUint(c.Uint, 10))
		e.buf.WriteString("ULL")
	case cast.ConstFloat:
		e.buf.WriteString(FormatFloat(c.Float))
	case cast.ConstString:
		e.buf.WriteString(Quote(c.Str))
	}
}

// FormatFloat spells v as a C double constant; the result always carries a
// decimal point or an exponent.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}

// Quote returns s as a C string literal. Control bytes are written as
// three-digit octal escapes; bytes >= 0x80 pass through unchanged.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '?':
			// триграфы
			b.WriteString(`\?`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03o`, c)
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
