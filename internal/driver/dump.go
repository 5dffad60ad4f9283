package driver

import (
	"io"

	"github.com/kr/pretty"

	"pine/internal/ast"
)

// The dump tree is the AST with ids resolved and names interned back to
// strings, so kr/pretty prints something a human can read.
type (
	DumpFile struct {
		Items []any
	}
	DumpFn struct {
		Name   string
		Params []DumpParam
		Return string
		Body   any
	}
	DumpStruct struct {
		Name   string
		Fields []DumpParam
	}
	DumpParam struct {
		Name string
		Type string
	}
	DumpBlock struct {
		Stmts []any
	}
	DumpLet struct {
		Name  string
		Type  string
		Value any
	}
	DumpIf struct {
		Cond any
		Then any
		Else any
	}
	DumpLoop   struct{ Body any }
	DumpReturn struct{ Value any }
	DumpBreak  struct{}
	DumpExpr   struct{ Expr any }

	DumpIdent   struct{ Name string }
	DumpLiteral struct {
		Kind  string
		Value any
	}
	DumpAssign struct{ Target, Value any }
	DumpCall   struct {
		Callee any
		Args   []any
	}
	DumpMember struct {
		Target any
		Field  string
	}
	DumpUnary struct {
		Op      string
		Operand any
	}
	DumpBinary struct {
		Op          string
		Left, Right any
	}
	DumpStructLit struct {
		Name   string
		Fields []DumpFieldInit
	}
	DumpFieldInit struct {
		Name  string
		Value any
	}
)

// DumpAST writes the parsed file as a kr/pretty tree.
func DumpAST(w io.Writer, b *ast.Builder, file ast.FileID) error {
	_, err := pretty.Fprintf(w, "%# v\n", BuildDump(b, file))
	return err
}

// BuildDump resolves file into the dump tree.
func BuildDump(b *ast.Builder, file ast.FileID) DumpFile {
	d := dumper{b: b}
	f := b.Files.Get(file)
	out := DumpFile{Items: make([]any, 0, len(f.Items))}
	for _, id := range f.Items {
		out.Items = append(out.Items, d.item(id))
	}
	return out
}

type dumper struct {
	b *ast.Builder
}

func (d dumper) typ(t ast.Type) string {
	return t.Format(d.b.StringsInterner)
}

func (d dumper) params(ps []ast.Param) []DumpParam {
	out := make([]DumpParam, 0, len(ps))
	for _, p := range ps {
		out = append(out, DumpParam{Name: d.b.Name(p.Name), Type: d.typ(p.Type)})
	}
	return out
}

func (d dumper) item(id ast.ItemID) any {
	if fn, ok := d.b.Items.Fn(id); ok {
		return DumpFn{
			Name:   d.b.Name(fn.Name),
			Params: d.params(d.b.Items.FnParams(fn)),
			Return: d.typ(fn.Return),
			Body:   d.stmt(fn.Body),
		}
	}
	if decl, ok := d.b.Items.Type(id); ok {
		return DumpStruct{Name: d.b.Name(decl.Name), Fields: d.params(d.b.Items.TypeFields(decl))}
	}
	return nil
}

func (d dumper) stmt(id ast.StmtID) any {
	if !id.IsValid() {
		return nil
	}
	s := d.b.Stmts
	switch s.Get(id).Kind {
	case ast.StmtBlock:
		blk, _ := s.Block(id)
		out := DumpBlock{Stmts: make([]any, 0, len(blk.Stmts))}
		for _, st := range blk.Stmts {
			out.Stmts = append(out.Stmts, d.stmt(st))
		}
		return out
	case ast.StmtExpr:
		es, _ := s.Expr(id)
		return DumpExpr{Expr: d.expr(es.Expr)}
	case ast.StmtIf:
		is, _ := s.If(id)
		return DumpIf{Cond: d.expr(is.Cond), Then: d.stmt(is.Then), Else: d.stmt(is.Else)}
	case ast.StmtReturn:
		rs, _ := s.Return(id)
		return DumpReturn{Value: d.expr(rs.Value)}
	case ast.StmtBreak:
		return DumpBreak{}
	case ast.StmtLet:
		ls, _ := s.Let(id)
		return DumpLet{Name: d.b.Name(ls.Name), Type: d.typ(ls.Type), Value: d.expr(ls.Value)}
	case ast.StmtLoop:
		lp, _ := s.Loop(id)
		return DumpLoop{Body: d.stmt(lp.Body)}
	}
	return nil
}

func (d dumper) expr(id ast.ExprID) any {
	if !id.IsValid() {
		return nil
	}
	e := d.b.Exprs
	switch e.Get(id).Kind {
	case ast.ExprIdent:
		x, _ := e.Ident(id)
		return DumpIdent{Name: d.b.Name(x.Name)}
	case ast.ExprLit:
		x, _ := e.Literal(id)
		return literalDump(x)
	case ast.ExprAssign:
		x, _ := e.Assign(id)
		return DumpAssign{Target: d.expr(x.Target), Value: d.expr(x.Value)}
	case ast.ExprCall:
		x, _ := e.Call(id)
		args := make([]any, 0, len(x.Args))
		for _, a := range x.Args {
			args = append(args, d.expr(a))
		}
		return DumpCall{Callee: d.expr(x.Callee), Args: args}
	case ast.ExprMember:
		x, _ := e.Member(id)
		return DumpMember{Target: d.expr(x.Target), Field: d.b.Name(x.Field)}
	case ast.ExprUnary:
		x, _ := e.Unary(id)
		return DumpUnary{Op: x.Op.String(), Operand: d.expr(x.Operand)}
	case ast.ExprBinary:
		x, _ := e.Binary(id)
		return DumpBinary{Op: x.Op.String(), Left: d.expr(x.Left), Right: d.expr(x.Right)}
	case ast.ExprGroup:
		x, _ := e.Group(id)
		return d.expr(x.Inner)
	case ast.ExprStructLit:
		x, _ := e.StructLit(id)
		fields := make([]DumpFieldInit, 0, len(x.Fields))
		for _, f := range x.Fields {
			fields = append(fields, DumpFieldInit{Name: d.b.Name(f.Name), Value: d.expr(f.Value)})
		}
		return DumpStructLit{Name: d.b.Name(x.Name), Fields: fields}
	}
	return nil
}

func literalDump(x *ast.ExprLiteralData) DumpLiteral {
	switch x.Kind {
	case ast.ExprLitBool:
		return DumpLiteral{Kind: "bool", Value: x.Bool}
	case ast.ExprLitNil:
		return DumpLiteral{Kind: "nil"}
	case ast.ExprLitInt:
		return DumpLiteral{Kind: "int", Value: x.Int}
	case ast.ExprLitFloat:
		return DumpLiteral{Kind: "float", Value: x.Float}
	default:
		return DumpLiteral{Kind: "string", Value: x.Text}
	}
}
