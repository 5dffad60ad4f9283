package lexer

import (
	"strings"

	"pine/internal/diag"
	"pine/internal/token"
)

// scanString читает "..." с экранированием; Text: декодированное значение.
// '\n', NUL или конец файла до закрывающей кавычки дают UnterminatedString.
func (lx *Lexer) scanString() (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // "

	var (
		sb     strings.Builder
		escErr *Error
	)
	for {
		if lx.cursor.EOF() {
			return lx.unterminated(start)
		}
		b := lx.cursor.Peek()
		switch b {
		case '\n', 0:
			return lx.unterminated(start)
		case '"':
			lx.cursor.Bump()
			if escErr != nil {
				return token.Token{}, escErr
			}
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start), Text: sb.String()}, nil
		case '\\':
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			r, sz := lx.peekRune()
			if sz == 0 || r == '\n' {
				return lx.unterminated(start)
			}
			lx.bumpRune()
			switch r {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			case '\\', '"':
				sb.WriteRune(r)
			default:
				if escErr == nil {
					escErr = lx.fail(&Error{Code: diag.LexBadEscape, Span: lx.cursor.SpanFrom(escStart), Char: r})
				}
			}
		default:
			r, _ := lx.peekRune()
			sb.WriteRune(r)
			lx.bumpRune()
		}
	}
}

func (lx *Lexer) unterminated(start Mark) (token.Token, error) {
	return token.Token{}, lx.fail(&Error{Code: diag.LexUnterminatedString, Span: lx.cursor.SpanFrom(start)})
}
