package parser

import (
	"pine/internal/ast"
	"pine/internal/source"
	"pine/internal/token"
)

// parseBlock разбирает тело после ':'. Однострочная форма содержит один
// оператор; многострочная открывается NEWLINE INDENT и закрывается DEDENT.
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	if !p.at(token.NewLine) {
		stmt, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewBlock(p.stmtSpan(stmt), []ast.StmtID{stmt}), true
	}

	p.advance()
	if _, ok := p.expect(token.Indent); !ok {
		return ast.NoStmtID, false
	}

	var stmts []ast.StmtID
	for {
		stmt, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		stmts = append(stmts, stmt)

		if p.blockClosed {
			p.blockClosed = false
		} else {
			switch {
			case p.at(token.NewLine):
				p.advance()
			case !p.at(token.Dedent):
				return ast.NoStmtID, p.unexpected("newline")
			}
		}
		if p.at(token.Dedent) {
			p.advance()
			break
		}
	}
	p.blockClosed = true

	span := p.stmtSpan(stmts[0]).Cover(p.stmtSpan(stmts[len(stmts)-1]))
	return p.arenas.Stmts.NewBlock(span, stmts), true
}

// parseStmt разбирает один оператор без завершающего NEWLINE.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.tok.Kind {
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		tok := p.advance()
		return p.arenas.Stmts.NewBreak(tok.Span), true
	case token.KwLoop:
		return p.parseLoopStmt()
	case token.KwLet:
		return p.parseLetStmt()
	case token.Underscore:
		tok := p.advance()
		return p.arenas.Stmts.NewEmpty(tok.Span), true
	}

	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.exprSpan(expr), expr), true
}

// 'if' expr ':' block ('else' (':' block | if_stmt))?
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()

	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.Colon); !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	end := p.stmtSpan(then)

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		// else продолжает оператор, даже если then-блок был многострочным
		p.blockClosed = false
		p.advance()
		switch p.tok.Kind {
		case token.KwIf:
			nested, nestedOK := p.parseIfStmt()
			if !nestedOK {
				return ast.NoStmtID, false
			}
			els = p.arenas.Stmts.NewBlock(p.stmtSpan(nested), []ast.StmtID{nested})
		case token.Colon:
			p.advance()
			if els, ok = p.parseBlock(); !ok {
				return ast.NoStmtID, false
			}
		default:
			return ast.NoStmtID, p.unexpected(":", "if")
		}
		end = p.stmtSpan(els)
	}

	return p.arenas.Stmts.NewIf(ifTok.Span.Cover(end), cond, then, els), true
}

// 'return' expr?
func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()
	if p.at_or(token.NewLine, token.Dedent, token.EOF, token.KwElse) {
		return p.arenas.Stmts.NewReturn(retTok.Span, ast.NoExprID), true
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(retTok.Span.Cover(p.exprSpan(value)), value), true
}

// 'loop' ':' block
func (p *Parser) parseLoopStmt() (ast.StmtID, bool) {
	loopTok := p.advance()
	if _, ok := p.expect(token.Colon); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLoop(loopTok.Span.Cover(p.stmtSpan(body)), body), true
}

// 'let' IDENT ':' type '=' expr
func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	letTok := p.advance()

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.Colon); !ok {
		return ast.NoStmtID, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.Assign); !ok {
		return ast.NoStmtID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	span := letTok.Span.Cover(p.exprSpan(value))
	return p.arenas.Stmts.NewLet(span, name, nameSpan, ty, value), true
}

func (p *Parser) stmtSpan(id ast.StmtID) source.Span {
	return p.arenas.Stmts.Get(id).Span
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	return p.arenas.Exprs.Get(id).Span
}
