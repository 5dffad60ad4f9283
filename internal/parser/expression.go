package parser

import (
	"pine/internal/ast"
	"pine/internal/diag"
	"pine/internal/source"
	"pine/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		prec, isRightAssoc := binaryPrec(p.tok.Kind)
		if prec < minPrec || prec < 0 {
			return left, true
		}
		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		finalSpan := p.exprSpan(left).Cover(p.exprSpan(right))
		if opTok.Kind == token.Assign {
			if !p.isAssignable(left) {
				return ast.NoExprID, p.fail(&Error{Code: diag.SynInvalidAssignTarget, Span: p.exprSpan(left)})
			}
			left = p.arenas.Exprs.NewAssign(finalSpan, left, right)
			continue
		}
		left = p.arenas.Exprs.NewBinary(finalSpan, binaryOps[opTok.Kind], left, right)
	}
}

// присваивать можно только переменной или полю
func (p *Parser) isAssignable(id ast.ExprID) bool {
	switch p.arenas.Exprs.Get(id).Kind {
	case ast.ExprIdent, ast.ExprMember:
		return true
	default:
		return false
	}
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}

	var prefixes []prefixOp
	for {
		op, ok := unaryOp(p.tok.Kind)
		if !ok {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: opTok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		finalSpan := prefixes[i].span.Cover(p.exprSpan(expr))
		expr = p.arenas.Exprs.NewUnary(finalSpan, prefixes[i].op, expr)
	}
	return expr, true
}

// parsePostfixExpr обрабатывает вызовы и доступ к полям
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.tok.Kind {
		case token.LParen:
			expr, ok = p.parseCallExpr(expr)
		case token.Dot:
			expr, ok = p.parseMemberExpr(expr)
		default:
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

// callee '(' (expr (',' expr)*)? ')'
func (p *Parser) parseCallExpr(callee ast.ExprID) (ast.ExprID, bool) {
	p.advance()
	var args []ast.ExprID
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RParen)
	if !ok {
		return ast.NoExprID, false
	}
	span := p.exprSpan(callee).Cover(closeTok.Span)
	return p.arenas.Exprs.NewCall(span, callee, args), true
}

// target '.' IDENT
func (p *Parser) parseMemberExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance()
	field, fieldSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.exprSpan(target).Cover(fieldSpan)
	return p.arenas.Exprs.NewMember(span, target, field, fieldSpan), true
}

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.tok
	switch tok.Kind {
	case token.Ident:
		if p.next.Kind == token.LBrace {
			return p.parseStructLit()
		}
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true

	case token.KwSelf:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.StringsInterner.Intern("self")), true

	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Kind: ast.ExprLitInt, Int: tok.Int, Text: tok.Text}), true

	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Kind: ast.ExprLitFloat, Float: tok.Float, Text: tok.Text}), true

	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Kind: ast.ExprLitString, Text: tok.Text}), true

	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Kind: ast.ExprLitBool, Bool: tok.Kind == token.KwTrue}), true

	case token.KwNil:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Kind: ast.ExprLitNil}), true

	case token.LParen:
		return p.parseGroupExpr()
	}
	return ast.NoExprID, p.unexpected("expression")
}

// '(' expr ')'
func (p *Parser) parseGroupExpr() (ast.ExprID, bool) {
	openTok := p.advance()
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RParen)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewGroup(openTok.Span.Cover(closeTok.Span), inner), true
}

// IDENT '{' (IDENT ':' expr (',' IDENT ':' expr)* ','?)? '}'
func (p *Parser) parseStructLit() (ast.ExprID, bool) {
	name, nameSpan, _ := p.parseIdent()
	p.advance() // {

	var fields []ast.StructLitField
	for !p.at(token.RBrace) {
		fieldName, fieldSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok = p.expect(token.Colon); !ok {
			return ast.NoExprID, false
		}
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		fields = append(fields, ast.StructLitField{
			Name:  fieldName,
			Span:  fieldSpan.Cover(p.exprSpan(value)),
			Value: value,
		})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RBrace)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewStructLit(nameSpan.Cover(closeTok.Span), name, nameSpan, fields), true
}
