package ast

import (
	"testing"

	"pine/internal/source"
)

func TestArena_OneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be empty")
	}
	first := a.Allocate(10)
	second := a.Allocate(20)
	if first != 1 || second != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first, second)
	}
	if *a.Get(second) != 20 {
		t.Fatalf("unexpected value %d", *a.Get(second))
	}
	if a.Get(3) != nil {
		t.Fatalf("out of range index must be nil")
	}
	if a.Len() != 2 {
		t.Fatalf("expected len 2, got %d", a.Len())
	}
}

func TestTypedAccessorsRejectOtherKinds(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := source.Span{File: 1, Start: 0, End: 1}
	ident := b.Exprs.NewIdent(sp, b.StringsInterner.Intern("x"))
	if _, ok := b.Exprs.Call(ident); ok {
		t.Fatalf("ident must not be readable as call")
	}
	if data, ok := b.Exprs.Ident(ident); !ok || b.Name(data.Name) != "x" {
		t.Fatalf("ident accessor failed")
	}
	brk := b.Stmts.NewBreak(sp)
	if _, ok := b.Stmts.Loop(brk); ok {
		t.Fatalf("break must not be readable as loop")
	}
	if _, ok := b.Stmts.Block(NoStmtID); ok {
		t.Fatalf("NoStmtID must not resolve")
	}
}

func TestWalkSpans_VisitsEveryNode(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := func(start, end uint32) source.Span { return source.Span{File: 1, Start: start, End: end} }

	// fun f(a: i32) -> i32: return a + 1
	a := b.StringsInterner.Intern("a")
	left := b.Exprs.NewIdent(sp(29, 30), a)
	right := b.Exprs.NewLiteral(sp(33, 34), ExprLiteralData{Kind: ExprLitInt, Int: 1, Text: "1"})
	sum := b.Exprs.NewBinary(sp(29, 34), ExprBinaryAdd, left, right)
	ret := b.Stmts.NewReturn(sp(22, 34), sum)
	body := b.Stmts.NewBlock(sp(22, 34), []StmtID{ret})
	params := []Param{{Name: a, Type: Type{Kind: TypeI32, Span: sp(9, 12)}, Span: sp(6, 12)}}
	fn := b.Items.NewFn(b.StringsInterner.Intern("f"), sp(4, 5), params, Type{Kind: TypeI32, Span: sp(17, 20)}, body, sp(0, 34))
	file := b.NewFile(sp(0, 34))
	b.PushItem(file, fn)

	counts := map[NodeKind]int{}
	WalkSpans(b, file, func(kind NodeKind, _ source.Span) bool {
		counts[kind]++
		return true
	})
	want := map[NodeKind]int{NodeFile: 1, NodeItem: 1, NodeParam: 1, NodeType: 2, NodeStmt: 2, NodeExpr: 3}
	for kind, n := range want {
		if counts[kind] != n {
			t.Errorf("%s: got %d, want %d", kind, counts[kind], n)
		}
	}

	visited := 0
	WalkSpans(b, file, func(NodeKind, source.Span) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Fatalf("walk must stop when the visitor returns false, visited %d", visited)
	}
}
