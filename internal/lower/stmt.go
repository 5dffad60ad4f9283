package lower

import (
	"pine/internal/ast"
	"pine/internal/cast"
)

// lowerBlock lowers a StmtBlock; one source statement may expand to several.
func (l *lowerer) lowerBlock(id ast.StmtID) *cast.Block {
	block, ok := l.b.Stmts.Block(id)
	if !ok {
		l.failf("statement %d is not a block", id)
	}
	out := &cast.Block{Stmts: make([]cast.Stmt, 0, len(block.Stmts))}
	for _, child := range block.Stmts {
		out.Stmts = append(out.Stmts, l.lowerStmt(child)...)
	}
	return out
}

func (l *lowerer) lowerStmt(id ast.StmtID) []cast.Stmt {
	stmt := l.b.Stmts.Get(id)
	if stmt == nil {
		l.failf("statement %d not found", id)
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		return []cast.Stmt{l.lowerBlock(id)}
	case ast.StmtExpr:
		es, _ := l.b.Stmts.Expr(id)
		return []cast.Stmt{&cast.ExprStmt{X: l.lowerExpr(es.Expr)}}
	case ast.StmtIf:
		ifs, _ := l.b.Stmts.If(id)
		out := &cast.IfStmt{
			Cond: l.lowerExpr(ifs.Cond),
			Then: l.lowerBlock(ifs.Then),
		}
		if ifs.Else.IsValid() {
			out.Else = l.lowerBlock(ifs.Else)
		}
		return []cast.Stmt{out}
	case ast.StmtReturn:
		ret, _ := l.b.Stmts.Return(id)
		out := &cast.ReturnStmt{}
		if ret.Value.IsValid() {
			out.Value = l.lowerExpr(ret.Value)
		}
		return []cast.Stmt{out}
	case ast.StmtBreak:
		return []cast.Stmt{&cast.BreakStmt{}}
	case ast.StmtEmpty:
		return []cast.Stmt{&cast.EmptyStmt{}}
	case ast.StmtLoop:
		loop, _ := l.b.Stmts.Loop(id)
		return []cast.Stmt{&cast.WhileStmt{
			Cond: cast.IntConst(1),
			Body: l.lowerBlock(loop.Body),
		}}
	case ast.StmtLet:
		let, _ := l.b.Stmts.Let(id)
		return l.lowerLet(let)
	}
	l.failf("unknown statement kind %s", stmt.Kind)
	return nil
}

// lowerLet: `let x: T = e` становится `T x; x = e;`.
func (l *lowerer) lowerLet(let *ast.LetStmt) []cast.Stmt {
	name := l.b.Name(let.Name)
	if lit, ok := l.b.Exprs.StructLit(let.Value); ok {
		return l.lowerStructInit(name, lit)
	}
	return []cast.Stmt{
		&cast.VarDecl{Name: name, Type: l.lowerType(let.Type)},
		cast.Set(cast.Id(name), l.lowerExpr(let.Value)),
	}
}

// lowerStructInit expands `let p: Point = Point { y: b, x: a }` into
//
//	Point* p;
//	{
//	    int32_t y;
//	    y = b;
//	    int32_t x;
//	    x = a;
//	    p = _Point__internal__new_gc(x, y);
//	}
//
// Temporaries follow the literal order, constructor arguments the declaration order.
func (l *lowerer) lowerStructInit(target string, lit *ast.ExprStructLitData) []cast.Stmt {
	structName := l.b.Name(lit.Name)
	sd, ok := l.structs[structName]
	if !ok {
		l.failf("struct literal of undeclared struct %s", structName)
	}
	memberType := make(map[string]cast.Type, len(sd.Members))
	for _, m := range sd.Members {
		memberType[m.Name] = m.Type
	}

	inner := make([]cast.Stmt, 0, 2*len(lit.Fields)+1)
	initialized := make(map[string]bool, len(lit.Fields))
	for _, f := range lit.Fields {
		field := l.b.Name(f.Name)
		ty, ok := memberType[field]
		if !ok {
			l.failf("struct %s has no field %s", structName, field)
		}
		if initialized[field] {
			l.failf("field %s of %s initialized twice", field, structName)
		}
		initialized[field] = true
		inner = append(inner,
			&cast.VarDecl{Name: field, Type: ty},
			cast.Set(cast.Id(field), l.lowerExpr(f.Value)),
		)
	}

	args := make([]cast.Expr, len(sd.Members))
	for i, m := range sd.Members {
		if !initialized[m.Name] {
			l.failf("field %s of %s is not initialized", m.Name, structName)
		}
		args[i] = cast.Id(m.Name)
	}
	inner = append(inner, cast.Set(cast.Id(target), cast.Call(ConstructorName(structName), args...)))

	return []cast.Stmt{
		&cast.VarDecl{Name: target, Type: cast.PointerTo(cast.StructType(structName))},
		&cast.Block{Stmts: inner},
	}
}
