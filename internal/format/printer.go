package format

import (
	"bytes"
	"errors"
	"strings"

	"pine/internal/ast"
	"pine/internal/source"
)

const indentWidth = 4

type printer struct {
	b     *ast.Builder
	sf    *source.File
	buf   bytes.Buffer
	depth int
}

// FormatFile renders fid. sf is the file the AST was parsed from; it is
// consulted for the two spellings the AST does not record (`else if`
// versus `else: if`, brace versus indented struct bodies).
func FormatFile(sf *source.File, b *ast.Builder, fid ast.FileID) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if !fid.IsValid() {
		return nil, errors.New("format: invalid file id")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}

	p := &printer{b: b, sf: sf}
	for i, id := range file.Items {
		if i > 0 {
			p.buf.WriteByte('\n')
		}
		p.item(id)
	}
	return p.buf.Bytes(), nil
}

func (p *printer) write(s string) { p.buf.WriteString(s) }

func (p *printer) line(s string) {
	p.buf.WriteString(strings.Repeat(" ", p.depth*indentWidth))
	p.buf.WriteString(s)
}

func (p *printer) newline() { p.buf.WriteByte('\n') }

func (p *printer) name(id source.StringID) string { return p.b.Name(id) }

func (p *printer) typ(t ast.Type) string { return t.Format(p.b.StringsInterner) }

func (p *printer) item(id ast.ItemID) {
	if fn, ok := p.b.Items.Fn(id); ok {
		p.fn(fn)
		return
	}
	if decl, ok := p.b.Items.Type(id); ok {
		p.typeDecl(decl)
	}
}

func (p *printer) params(ps []ast.Param) string {
	parts := make([]string, 0, len(ps))
	for _, prm := range ps {
		parts = append(parts, p.name(prm.Name)+": "+p.typ(prm.Type))
	}
	return strings.Join(parts, ", ")
}

func (p *printer) fn(fn *ast.FnItem) {
	p.line("fun " + p.name(fn.Name) + "(" + p.params(p.b.Items.FnParams(fn)) + ") -> " + p.typ(fn.Return) + ":")
	p.block(fn.Body)
}

func (p *printer) typeDecl(decl *ast.TypeItem) {
	fields := p.b.Items.TypeFields(decl)
	switch {
	case len(fields) == 0:
		p.line("type " + p.name(decl.Name) + " {}")
		p.newline()
		return
	case p.braceBody(decl):
		p.line("type " + p.name(decl.Name) + " { " + p.params(fields) + " }")
		p.newline()
		return
	}
	p.line("type " + p.name(decl.Name) + ":")
	p.newline()
	p.depth++
	for _, f := range fields {
		p.line(p.name(f.Name) + ": " + p.typ(f.Type))
		p.newline()
	}
	p.depth--
}

// braceBody reports whether the declaration was written as `type T { ... }`.
func (p *printer) braceBody(decl *ast.TypeItem) bool {
	rest := p.sf.Content[min(int(decl.NameSpan.End), len(p.sf.Content)):]
	rest = bytes.TrimLeft(rest, " \t")
	return len(rest) > 0 && rest[0] == '{'
}

// block prints a statement block after a header ending in ':'.
func (p *printer) block(id ast.StmtID) {
	p.newline()
	p.depth++
	blk, ok := p.b.Stmts.Block(id)
	if !ok {
		p.stmt(id)
	} else {
		for _, st := range blk.Stmts {
			p.stmt(st)
		}
	}
	p.depth--
}

func (p *printer) stmt(id ast.StmtID) {
	s := p.b.Stmts
	switch s.Get(id).Kind {
	case ast.StmtBlock:
		blk, _ := s.Block(id)
		for _, st := range blk.Stmts {
			p.stmt(st)
		}
		return
	case ast.StmtExpr:
		es, _ := s.Expr(id)
		p.line(p.expr(es.Expr))
	case ast.StmtIf:
		p.line("")
		p.ifStmt(id)
		return
	case ast.StmtReturn:
		rs, _ := s.Return(id)
		if rs.Value.IsValid() {
			p.line("return " + p.expr(rs.Value))
		} else {
			p.line("return")
		}
	case ast.StmtBreak:
		p.line("break")
	case ast.StmtLet:
		ls, _ := s.Let(id)
		p.line("let " + p.name(ls.Name) + ": " + p.typ(ls.Type) + " = " + p.expr(ls.Value))
	case ast.StmtLoop:
		lp, _ := s.Loop(id)
		p.line("loop:")
		p.block(lp.Body)
		return
	case ast.StmtEmpty:
		p.line("_")
	}
	p.newline()
}

// ifStmt prints from the current column; the caller wrote the indentation.
func (p *printer) ifStmt(id ast.StmtID) {
	is, _ := p.b.Stmts.If(id)
	p.write("if " + p.expr(is.Cond) + ":")
	p.block(is.Then)
	if !is.Else.IsValid() {
		return
	}
	if nested, ok := p.elseIf(is.Else); ok {
		p.line("else ")
		p.ifStmt(nested)
		return
	}
	p.line("else:")
	p.block(is.Else)
}

// elseIf recognizes the block the parser wraps around `else if`: a single
// if statement with nothing but `else` in front of it.
func (p *printer) elseIf(els ast.StmtID) (ast.StmtID, bool) {
	blk, ok := p.b.Stmts.Block(els)
	if !ok || len(blk.Stmts) != 1 {
		return ast.NoStmtID, false
	}
	nested := blk.Stmts[0]
	st := p.b.Stmts.Get(nested)
	if st.Kind != ast.StmtIf {
		return ast.NoStmtID, false
	}
	before := bytes.TrimRight(p.sf.Content[:min(int(st.Span.Start), len(p.sf.Content))], " \t\r\n")
	if !bytes.HasSuffix(before, []byte("else")) {
		return ast.NoStmtID, false
	}
	return nested, true
}
