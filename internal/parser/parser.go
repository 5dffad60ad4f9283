package parser

import (
	"context"
	"slices"

	"pine/internal/ast"
	"pine/internal/diag"
	"pine/internal/lexer"
	"pine/internal/source"
	"pine/internal/token"
)

// TokenSource is the part of the lexer the parser consumes.
type TokenSource interface {
	Next() (token.Token, error)
}

type Options struct {
	Reporter diag.Reporter
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx     TokenSource
	arenas *ast.Builder
	file   ast.FileID
	opts   Options

	// двухтокенный lookahead: tok: текущий, next: следующий
	tok, next       token.Token
	tokErr, nextErr *lexer.Error

	lastSpan source.Span // span последнего съеденного токена
	failure  *Error

	// составной оператор закончился многострочным блоком (NEWLINE уже съеден)
	blockClosed bool
}

// ParseFile parses one file into arenas. The first error aborts the parse; it
// is reported to opts.Reporter and returned as *Error.
func ParseFile(ctx context.Context, lx TokenSource, arenas *ast.Builder, opts Options) (ast.FileID, error) {
	p := Parser{
		lx:     lx,
		arenas: arenas,
		opts:   opts,
	}
	p.tok, p.tokErr = p.pull(token.Token{})
	p.next, p.nextErr = p.pull(p.tok)

	startSpan := p.tok.Span
	p.file = arenas.NewFile(startSpan)

	if err := p.parseItems(ctx); err != nil {
		return ast.NoFileID, err
	}
	arenas.Files.Get(p.file).Span = startSpan.Cover(p.tok.Span)
	return p.file, nil
}

// pull читает токен из лексера; после EOF поток заморожен.
func (p *Parser) pull(prev token.Token) (token.Token, *lexer.Error) {
	if prev.Kind == token.EOF {
		return prev, nil
	}
	tok, err := p.lx.Next()
	if err == nil {
		return tok, nil
	}
	if lexErr, ok := err.(*lexer.Error); ok {
		return token.Token{Kind: token.Invalid, Span: lexErr.Span, Text: lexErr.Text}, lexErr
	}
	// io.EOF: источник исчерпан без EOF-токена
	return token.Token{Kind: token.EOF, Span: source.At(p.lastSpan.File, p.lastSpan.End)}, nil
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.tok.Kind)
}

// parseItems: основной цикл верхнего уровня: пока не EOF: parseItem.
func (p *Parser) parseItems(ctx context.Context) error {
	for {
		for p.at(token.NewLine) {
			p.advance()
		}
		if p.at(token.EOF) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		itemID, ok := p.parseItem()
		if ok {
			p.arenas.PushItem(p.file, itemID)
			ok = p.endOfLine()
		}
		if !ok {
			return p.failure
		}
	}
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.tok.Kind {
	case token.KwFun:
		return p.parseFnItem()
	case token.KwType:
		return p.parseTypeItem()
	default:
		return ast.NoItemID, p.unexpected("fun", "type")
	}
}

// parseIdent: ожидает Ident и интернирует его.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if !p.at(token.Ident) {
		return source.NoStringID, p.tok.Span, p.unexpected("identifier")
	}
	tok := p.advance()
	return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
}
