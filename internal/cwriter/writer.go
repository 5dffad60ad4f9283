// Package cwriter renders C translation units as source text.
package cwriter

import (
	"fmt"
	"io"
	"strings"

	"pine/internal/cast"
)

const indentUnit = "    "

// Emitter accumulates the text of one unit.
type Emitter struct {
	buf   strings.Builder
	depth int
}

// String renders unit.
func String(unit *cast.TranslationUnit) string {
	e := &Emitter{}
	e.emitUnit(unit)
	return e.buf.String()
}

// Write renders unit into w.
func Write(w io.Writer, unit *cast.TranslationUnit) error {
	if _, err := io.WriteString(w, String(unit)); err != nil {
		return fmt.Errorf("write %s: %w", unit.FileName(), err)
	}
	return nil
}

func (e *Emitter) emitUnit(unit *cast.TranslationUnit) {
	if unit.IsHeader {
		e.buf.WriteString("#pragma once\n\n")
	}
	for _, inc := range unit.Includes {
		if inc.System {
			fmt.Fprintf(&e.buf, "#include <%s>\n", inc.Name)
		} else {
			fmt.Fprintf(&e.buf, "#include \"%s\"\n", inc.Name)
		}
	}
	for i, d := range unit.Decls {
		if i > 0 || len(unit.Includes) > 0 {
			e.buf.WriteByte('\n')
		}
		e.emitDecl(d)
	}
}

func (e *Emitter) emitDecl(d cast.Decl) {
	switch d := d.(type) {
	case *cast.StructDecl:
		fmt.Fprintf(&e.buf, "typedef struct %s {\n", d.Name)
		for _, m := range d.Members {
			fmt.Fprintf(&e.buf, "%s%s %s;\n", indentUnit, memberType(m.Type), m.Name)
		}
		fmt.Fprintf(&e.buf, "} %s;\n", d.Name)
	case *cast.GlobalVar:
		fmt.Fprintf(&e.buf, "%s %s", d.Type, d.Name)
		if d.Init != nil {
			e.buf.WriteString(" = ")
			e.emitBare(d.Init)
		}
		e.buf.WriteString(";\n")
	case *cast.FuncDecl:
		e.emitSignature(d)
		if d.Body == nil {
			e.buf.WriteString(";\n")
			return
		}
		e.buf.WriteByte(' ')
		e.emitBlock(d.Body)
		e.buf.WriteByte('\n')
	}
}

// memberType prefixes struct pointers with `struct` so members may refer to
// structs whose typedef comes later.
func memberType(t cast.Type) string {
	if t.PointsToStruct() {
		return "struct " + t.String()
	}
	return t.String()
}

func (e *Emitter) emitSignature(fn *cast.FuncDecl) {
	fmt.Fprintf(&e.buf, "%s %s(", fn.Ret, fn.Name)
	if len(fn.Params) == 0 {
		e.buf.WriteString("void")
	}
	for i, p := range fn.Params {
		if i > 0 {
			e.buf.WriteString(", ")
		}
		fmt.Fprintf(&e.buf, "%s %s", p.Type, p.Name)
	}
	e.buf.WriteByte(')')
}

func (e *Emitter) indent() {
	for range e.depth {
		e.buf.WriteString(indentUnit)
	}
}

// emitBlock writes `{ ... }` starting at the current position; the closing
// brace is not followed by a newline.
func (e *Emitter) emitBlock(b *cast.Block) {
	e.buf.WriteString("{\n")
	e.depth++
	for _, s := range b.Stmts {
		e.indent()
		e.emitStmt(s)
		e.buf.WriteByte('\n')
	}
	e.depth--
	e.indent()
	e.buf.WriteByte('}')
}

// emitBody writes the body of if/while: blocks inline, anything else on its own line.
func (e *Emitter) emitBody(s cast.Stmt) {
	if b, ok := s.(*cast.Block); ok {
		e.buf.WriteByte(' ')
		e.emitBlock(b)
		return
	}
	e.buf.WriteByte('\n')
	e.depth++
	e.indent()
	e.emitStmt(s)
	e.depth--
}

func (e *Emitter) emitStmt(s cast.Stmt) {
	switch s := s.(type) {
	case *cast.EmptyStmt:
		e.buf.WriteByte(';')
	case *cast.ContinueStmt:
		e.buf.WriteString("continue;")
	case *cast.BreakStmt:
		e.buf.WriteString("break;")
	case *cast.ReturnStmt:
		if s.Value == nil {
			e.buf.WriteString("return;")
			return
		}
		e.buf.WriteString("return ")
		e.emitBare(s.Value)
		e.buf.WriteByte(';')
	case *cast.Block:
		e.emitBlock(s)
	case *cast.IfStmt:
		e.buf.WriteString("if (")
		e.emitBare(s.Cond)
		e.buf.WriteByte(')')
		e.emitBody(s.Then)
		if s.Else == nil {
			return
		}
		if _, ok := s.Then.(*cast.Block); ok {
			e.buf.WriteString(" else")
		} else {
			e.buf.WriteByte('\n')
			e.indent()
			e.buf.WriteString("else")
		}
		if nested, ok := s.Else.(*cast.IfStmt); ok {
			e.buf.WriteByte(' ')
			e.emitStmt(nested)
			return
		}
		e.emitBody(s.Else)
	case *cast.WhileStmt:
		e.buf.WriteString("while (")
		e.emitBare(s.Cond)
		e.buf.WriteByte(')')
		e.emitBody(s.Body)
	case *cast.VarDecl:
		fmt.Fprintf(&e.buf, "%s %s;", s.Type, s.Name)
	case *cast.ExprStmt:
		e.emitBare(s.X)
		e.buf.WriteByte(';')
	default:
		panic(fmt.Sprintf("cwriter: unexpected statement %T", s))
	}
}
