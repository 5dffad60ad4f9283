package parser

import (
	"pine/internal/ast"
	"pine/internal/source"
	"pine/internal/token"
)

// parseTypeItem разбирает объявление структуры в одной из двух форм:
//
//	type Point:
//	    x: i32
//	    y: i32
//
//	type Point { x: i32, y: i32 }
func (p *Parser) parseTypeItem() (ast.ItemID, bool) {
	typeTok := p.advance()

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	var (
		fields []ast.Param
		end    source.Span
	)
	switch p.tok.Kind {
	case token.Colon:
		p.advance()
		fields, end, ok = p.parseIndentedFields()
	case token.LBrace:
		p.advance()
		fields, end, ok = p.parseBracedFields()
	default:
		ok = p.unexpected(":", "{")
	}
	if !ok {
		return ast.NoItemID, false
	}

	span := typeTok.Span.Cover(end)
	return p.arenas.Items.NewType(name, nameSpan, fields, span), true
}

// NEWLINE INDENT (field NEWLINE)* DEDENT
func (p *Parser) parseIndentedFields() ([]ast.Param, source.Span, bool) {
	if _, ok := p.expect(token.NewLine); !ok {
		return nil, source.Span{}, false
	}
	if _, ok := p.expect(token.Indent); !ok {
		return nil, source.Span{}, false
	}
	var (
		fields []ast.Param
		end    source.Span
	)
	for {
		field, ok := p.parseField()
		if !ok {
			return nil, source.Span{}, false
		}
		fields = append(fields, field)
		end = field.Span

		switch {
		case p.at(token.NewLine):
			p.advance()
		case !p.at(token.Dedent):
			return nil, source.Span{}, p.unexpected("newline")
		}
		if p.at(token.Dedent) {
			p.advance()
			p.blockClosed = true
			return fields, end, true
		}
	}
}

// '{' (field (',' field)* ','?)? '}'
func (p *Parser) parseBracedFields() ([]ast.Param, source.Span, bool) {
	var fields []ast.Param
	for !p.at(token.RBrace) {
		field, ok := p.parseField()
		if !ok {
			return nil, source.Span{}, false
		}
		fields = append(fields, field)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RBrace)
	if !ok {
		return nil, source.Span{}, false
	}
	return fields, closeTok.Span, true
}
