package ast

import "pine/internal/source"

// NodeKind tags the node handed to a SpanVisitor.
type NodeKind uint8

const (
	NodeFile NodeKind = iota
	NodeItem
	NodeParam
	NodeType
	NodeStmt
	NodeExpr
)

func (k NodeKind) String() string {
	switch k {
	case NodeFile:
		return "file"
	case NodeItem:
		return "item"
	case NodeParam:
		return "param"
	case NodeType:
		return "type"
	case NodeStmt:
		return "stmt"
	case NodeExpr:
		return "expr"
	}
	return "node"
}

// SpanVisitor receives every node span in pre-order. Returning false stops the walk.
type SpanVisitor func(kind NodeKind, sp source.Span) bool

// WalkSpans visits the spans of the file and every node reachable from it.
func WalkSpans(b *Builder, file FileID, visit SpanVisitor) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	w := walker{b: b, visit: visit}
	if !w.emit(NodeFile, f.Span) {
		return
	}
	for _, id := range f.Items {
		if !w.item(id) {
			return
		}
	}
}

type walker struct {
	b     *Builder
	visit SpanVisitor
}

func (w *walker) emit(kind NodeKind, sp source.Span) bool {
	return w.visit(kind, sp)
}

func (w *walker) item(id ItemID) bool {
	it := w.b.Items.Get(id)
	if it == nil {
		return true
	}
	if !w.emit(NodeItem, it.Span) {
		return false
	}
	switch it.Kind {
	case ItemFn:
		fn, _ := w.b.Items.Fn(id)
		if !w.params(w.b.Items.FnParams(fn)) {
			return false
		}
		if !w.emit(NodeType, fn.Return.Span) {
			return false
		}
		return w.stmt(fn.Body)
	case ItemType:
		decl, _ := w.b.Items.Type(id)
		return w.params(w.b.Items.TypeFields(decl))
	}
	return true
}

func (w *walker) params(params []Param) bool {
	for _, p := range params {
		if !w.emit(NodeParam, p.Span) {
			return false
		}
		if !w.emit(NodeType, p.Type.Span) {
			return false
		}
	}
	return true
}

func (w *walker) stmt(id StmtID) bool {
	st := w.b.Stmts.Get(id)
	if st == nil {
		return true
	}
	if !w.emit(NodeStmt, st.Span) {
		return false
	}
	switch st.Kind {
	case StmtBlock:
		block, _ := w.b.Stmts.Block(id)
		for _, child := range block.Stmts {
			if !w.stmt(child) {
				return false
			}
		}
	case StmtExpr:
		es, _ := w.b.Stmts.Expr(id)
		return w.expr(es.Expr)
	case StmtIf:
		ifs, _ := w.b.Stmts.If(id)
		return w.expr(ifs.Cond) && w.stmt(ifs.Then) && w.stmt(ifs.Else)
	case StmtReturn:
		ret, _ := w.b.Stmts.Return(id)
		return w.expr(ret.Value)
	case StmtLet:
		let, _ := w.b.Stmts.Let(id)
		return w.emit(NodeType, let.Type.Span) && w.expr(let.Value)
	case StmtLoop:
		loop, _ := w.b.Stmts.Loop(id)
		return w.stmt(loop.Body)
	}
	return true
}

func (w *walker) expr(id ExprID) bool {
	ex := w.b.Exprs.Get(id)
	if ex == nil {
		return true
	}
	if !w.emit(NodeExpr, ex.Span) {
		return false
	}
	switch ex.Kind {
	case ExprAssign:
		as, _ := w.b.Exprs.Assign(id)
		return w.expr(as.Target) && w.expr(as.Value)
	case ExprCall:
		call, _ := w.b.Exprs.Call(id)
		if !w.expr(call.Callee) {
			return false
		}
		for _, arg := range call.Args {
			if !w.expr(arg) {
				return false
			}
		}
	case ExprMember:
		mem, _ := w.b.Exprs.Member(id)
		return w.expr(mem.Target)
	case ExprUnary:
		un, _ := w.b.Exprs.Unary(id)
		return w.expr(un.Operand)
	case ExprBinary:
		bin, _ := w.b.Exprs.Binary(id)
		return w.expr(bin.Left) && w.expr(bin.Right)
	case ExprGroup:
		grp, _ := w.b.Exprs.Group(id)
		return w.expr(grp.Inner)
	case ExprStructLit:
		lit, _ := w.b.Exprs.StructLit(id)
		for _, f := range lit.Fields {
			if !w.expr(f.Value) {
				return false
			}
		}
	}
	return true
}
