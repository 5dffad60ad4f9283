package parser

import (
	"pine/internal/ast"
	"pine/internal/token"
)

// parseFnItem: `fun IDENT ( params ) -> type : block`
func (p *Parser) parseFnItem() (ast.ItemID, bool) {
	funTok := p.advance()

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.LParen); !ok {
		return ast.NoItemID, false
	}
	params, ok := p.parseParams()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.RParen); !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Arrow); !ok {
		return ast.NoItemID, false
	}
	ret, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Colon); !ok {
		return ast.NoItemID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}

	span := funTok.Span.Cover(p.arenas.Stmts.Get(body).Span)
	return p.arenas.Items.NewFn(name, nameSpan, params, ret, body, span), true
}

// parseParams: (IDENT ':' type (',' IDENT ':' type)*)?
func (p *Parser) parseParams() ([]ast.Param, bool) {
	var params []ast.Param
	if p.at(token.RParen) {
		return params, true
	}
	for {
		param, ok := p.parseField()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if !p.at(token.Comma) {
			return params, true
		}
		p.advance()
	}
}

// parseField: `IDENT ':' type`; общая форма параметра и поля структуры.
func (p *Parser) parseField() (ast.Param, bool) {
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.Param{}, false
	}
	if _, ok = p.expect(token.Colon); !ok {
		return ast.Param{}, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.Param{}, false
	}
	return ast.Param{Name: name, Type: ty, Span: nameSpan.Cover(ty.Span)}, true
}
