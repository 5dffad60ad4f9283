package ast

import (
	"pine/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtExpr
	StmtIf
	StmtReturn
	StmtBreak
	StmtLet
	StmtLoop
	StmtEmpty
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "block"
	case StmtExpr:
		return "expr"
	case StmtIf:
		return "if"
	case StmtReturn:
		return "return"
	case StmtBreak:
		return "break"
	case StmtLet:
		return "let"
	case StmtLoop:
		return "loop"
	case StmtEmpty:
		return "empty"
	}
	return "unknown"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

type ExprStmt struct {
	Expr ExprID
}

type IfStmt struct {
	Cond ExprID
	Then StmtID // StmtBlock
	Else StmtID // StmtBlock или NoStmtID
}

type ReturnStmt struct {
	Value ExprID // NoExprID для голого return
}

type LetStmt struct {
	Name     source.StringID
	NameSpan source.Span
	Type     Type
	Value    ExprID
}

type LoopStmt struct {
	Body StmtID // StmtBlock
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[BlockStmt]
	Exprs   *Arena[ExprStmt]
	Ifs     *Arena[IfStmt]
	Returns *Arena[ReturnStmt]
	Lets    *Arena[LetStmt]
	Loops   *Arena[LoopStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Blocks:  NewArena[BlockStmt](capHint / 4),
		Exprs:   NewArena[ExprStmt](capHint),
		Ifs:     NewArena[IfStmt](capHint / 8),
		Returns: NewArena[ReturnStmt](capHint / 8),
		Lets:    NewArena[LetStmt](capHint / 4),
		Loops:   NewArena[LoopStmt](capHint / 16),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(BlockStmt{Stmts: stmts})
	return s.new(StmtBlock, span, PayloadID(payload))
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(ExprStmt{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(ReturnStmt{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewLet(span source.Span, name source.StringID, nameSpan source.Span, ty Type, value ExprID) StmtID {
	payload := s.Lets.Allocate(LetStmt{Name: name, NameSpan: nameSpan, Type: ty, Value: value})
	return s.new(StmtLet, span, PayloadID(payload))
}

func (s *Stmts) Let(id StmtID) (*LetStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewLoop(span source.Span, body StmtID) StmtID {
	payload := s.Loops.Allocate(LoopStmt{Body: body})
	return s.new(StmtLoop, span, PayloadID(payload))
}

func (s *Stmts) Loop(id StmtID) (*LoopStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLoop {
		return nil, false
	}
	return s.Loops.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, NoPayloadID)
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}
