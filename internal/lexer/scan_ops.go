package lexer

import (
	"pine/internal/token"
)

// scanOperatorOrPunct: односимвольные токены и пары через lookahead на один байт.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, error) {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) (token.Token, error) {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}, nil
	}

	switch {
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	}

	var k token.Kind
	switch lx.cursor.Peek() {
	case '(':
		k = token.LParen
	case ')':
		k = token.RParen
	case '{':
		k = token.LBrace
	case '}':
		k = token.RBrace
	case '[':
		k = token.LBracket
	case ']':
		k = token.RBracket
	case ',':
		k = token.Comma
	case '.':
		k = token.Dot
	case '-':
		k = token.Minus
	case '+':
		k = token.Plus
	case '/':
		k = token.Slash
	case '%':
		k = token.Percent
	case '*':
		k = token.Star
	case ':':
		k = token.Colon
	case '|':
		k = token.Pipe
	case '!':
		k = token.Bang
	case '=':
		k = token.Assign
	case '>':
		k = token.Gt
	case '<':
		k = token.Lt
	case '_':
		k = token.Underscore
	default:
		return lx.unexpected()
	}
	lx.cursor.Bump()
	return emit(k)
}
