package parser

import (
	"pine/internal/ast"
	"pine/internal/diag"
	"pine/internal/token"
)

var typeKeywords = map[token.Kind]ast.TypeKind{
	token.KwBool: ast.TypeBool,
	token.KwI8:   ast.TypeI8,
	token.KwI32:  ast.TypeI32,
	token.KwI64:  ast.TypeI64,
	token.KwU8:   ast.TypeU8,
	token.KwU32:  ast.TypeU32,
	token.KwU64:  ast.TypeU64,
	token.KwF32:  ast.TypeF32,
	token.KwF64:  ast.TypeF64,
	token.KwStr:  ast.TypeString,
}

// parseType: примитив, `_` (unit) или имя структуры.
func (p *Parser) parseType() (ast.Type, bool) {
	tok := p.tok
	if kind, ok := typeKeywords[tok.Kind]; ok {
		p.advance()
		return ast.Type{Kind: kind, Span: tok.Span}, true
	}
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return ast.Type{Kind: ast.TypeUnit, Span: tok.Span}, true
	case token.Ident:
		p.advance()
		return ast.Type{
			Kind: ast.TypeStruct,
			Name: p.arenas.StringsInterner.Intern(tok.Text),
			Span: tok.Span,
		}, true
	}

	if p.tokErr != nil {
		return ast.Type{}, p.fail(fromLexer(p.tokErr))
	}
	if tok.Kind == token.EOF {
		return ast.Type{}, p.fail(&Error{Code: diag.SynUnexpectedEOF, Span: tok.Span, Expected: []string{"type"}})
	}
	return ast.Type{}, p.fail(&Error{Code: diag.SynExpectedType, Span: tok.Span, Found: tok.Describe()})
}
