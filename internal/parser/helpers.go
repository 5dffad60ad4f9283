package parser

import (
	"pine/internal/diag"
	"pine/internal/token"
)

// advance: съедает текущий токен, сдвигает lookahead и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.tok
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	if tok.Kind == token.EOF {
		return tok
	}
	p.tok, p.tokErr = p.next, p.nextErr
	p.next, p.nextErr = p.pull(p.tok)
	return tok
}

// expect: ожидаем конкретный токен; иначе UnrecognizedToken с описанием ожидаемого.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{Kind: token.Invalid, Span: p.tok.Span}, p.unexpected(describeKind(k))
}

// endOfLine закрывает строку: NEWLINE, конец блока или EOF.
func (p *Parser) endOfLine() bool {
	if p.blockClosed {
		p.blockClosed = false
		return true
	}
	switch p.tok.Kind {
	case token.NewLine:
		p.advance()
		return true
	case token.EOF, token.Dedent:
		return true
	}
	return p.unexpected("newline")
}

// unexpected репортует ошибку на текущем токене. Если токен пришёл с
// лексической ошибкой, наружу уходит она.
func (p *Parser) unexpected(expected ...string) bool {
	if p.tokErr != nil {
		return p.fail(fromLexer(p.tokErr))
	}
	if p.at(token.EOF) {
		return p.fail(&Error{Code: diag.SynUnexpectedEOF, Span: p.tok.Span, Expected: expected})
	}
	return p.fail(&Error{
		Code:     diag.SynUnrecognizedToken,
		Span:     p.tok.Span,
		Found:    p.tok.Describe(),
		Expected: expected,
	})
}

// fail запоминает первую ошибку и репортит её; всегда возвращает false.
func (p *Parser) fail(err *Error) bool {
	if p.failure != nil {
		return false
	}
	p.failure = err
	// лексер уже сообщил о своей ошибке сам
	if err.Lex == nil {
		diag.Emit(p.opts.Reporter, err.Diagnostic())
	}
	return false
}

func describeKind(k token.Kind) string {
	switch k {
	case token.Ident:
		return "identifier"
	case token.NewLine:
		return "newline"
	case token.Indent:
		return "indent"
	case token.Dedent:
		return "dedent"
	}
	return k.String()
}
