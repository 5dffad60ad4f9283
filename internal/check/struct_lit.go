package check

import (
	"fmt"
	"strings"

	"pine/internal/ast"
	"pine/internal/diag"
	"pine/internal/source"
)

// checkStructLit validates `let name: S = S { ... }`. Lowering evaluates every
// field into a block-local temporary named after the field, so a field
// initializer must not mention a name that an earlier (or the same)
// temporary hides.
func (c *checker) checkStructLit(let *ast.LetStmt, lit *ast.ExprStructLitData) {
	info, ok := c.result.Structs[lit.Name]
	if !ok {
		// тип let уже отрепорчен как неизвестный
		c.checkStructLitValues(lit)
		return
	}

	declared := make(map[source.StringID]bool, len(info.Fields))
	for _, f := range info.Fields {
		declared[f.Name] = true
	}

	temps := make(map[source.StringID]bool, len(lit.Fields))
	for _, f := range lit.Fields {
		switch {
		case !declared[f.Name]:
			b := c.errorf(diag.SemUnknownField, f.Span, "struct `%s` has no field `%s`", c.name(lit.Name), c.name(f.Name))
			if hint, ok := suggest(c.name(f.Name), c.fieldNames(info)); ok {
				b.WithNote(f.Span, fmt.Sprintf("did you mean `%s`?", hint))
			}
			b.Emit()
		case temps[f.Name]:
			c.errorf(diag.SemDuplicateField, f.Span, "field `%s` is initialized more than once", c.name(f.Name)).Emit()
		}
		temps[f.Name] = true

		c.checkExpr(f.Value)
		c.checkShadowing(f, temps)
	}

	var missing []string
	for _, f := range info.Fields {
		if !temps[f.Name] {
			missing = append(missing, "`"+c.name(f.Name)+"`")
		}
	}
	if len(missing) > 0 {
		c.errorf(diag.SemMissingField, lit.NameSpan, "missing field(s) %s in `%s` literal", strings.Join(missing, ", "), c.name(lit.Name)).
			WithNote(info.Decl.NameSpan, "struct is declared here").
			Emit()
	}

	if temps[let.Name] {
		c.errorf(diag.SemTemporaryShadowing, let.NameSpan,
			"variable `%s` has the same name as a field of its `%s` initializer", c.name(let.Name), c.name(lit.Name)).
			WithNote(let.NameSpan, "rename the variable").
			Emit()
	}
}

func (c *checker) checkShadowing(f ast.StructLitField, temps map[source.StringID]bool) {
	for _, ref := range c.identsIn(f.Value) {
		if temps[ref.name] {
			c.errorf(diag.SemTemporaryShadowing, ref.span,
				"`%s` would refer to the field temporary of the same name", c.name(ref.name)).
				WithNote(f.Span, "bind the value to a differently named variable first").
				Emit()
			return
		}
	}
}

type identRef struct {
	name source.StringID
	span source.Span
}

// identsIn collects identifier references of an expression in source order.
func (c *checker) identsIn(id ast.ExprID) []identRef {
	var out []identRef
	var walk func(ast.ExprID)
	walk = func(id ast.ExprID) {
		expr := c.builder.Exprs.Get(id)
		if expr == nil {
			return
		}
		switch expr.Kind {
		case ast.ExprIdent:
			data, _ := c.builder.Exprs.Ident(id)
			out = append(out, identRef{name: data.Name, span: expr.Span})
		case ast.ExprAssign:
			data, _ := c.builder.Exprs.Assign(id)
			walk(data.Target)
			walk(data.Value)
		case ast.ExprCall:
			data, _ := c.builder.Exprs.Call(id)
			walk(data.Callee)
			for _, arg := range data.Args {
				walk(arg)
			}
		case ast.ExprMember:
			data, _ := c.builder.Exprs.Member(id)
			walk(data.Target)
		case ast.ExprUnary:
			data, _ := c.builder.Exprs.Unary(id)
			walk(data.Operand)
		case ast.ExprBinary:
			data, _ := c.builder.Exprs.Binary(id)
			walk(data.Left)
			walk(data.Right)
		case ast.ExprGroup:
			data, _ := c.builder.Exprs.Group(id)
			walk(data.Inner)
		case ast.ExprStructLit:
			data, _ := c.builder.Exprs.StructLit(id)
			for _, f := range data.Fields {
				walk(f.Value)
			}
		}
	}
	walk(id)
	return out
}

func (c *checker) checkStructLitValues(lit *ast.ExprStructLitData) {
	for _, f := range lit.Fields {
		c.checkExpr(f.Value)
	}
}

func (c *checker) fieldNames(info *StructInfo) []string {
	names := make([]string, len(info.Fields))
	for i, f := range info.Fields {
		names[i] = c.name(f.Name)
	}
	return names
}
