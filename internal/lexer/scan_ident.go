package lexer

import (
	"golang.org/x/text/unicode/norm"

	"pine/internal/diag"
	"pine/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет таблицу ключевых слов.
// Не-ASCII идентификаторы приводятся к NFC, чтобы одинаковые имена совпадали.
func (lx *Lexer) scanIdentOrKeyword() (token.Token, error) {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return lx.unexpected()
	}
	ascii := r < utf8RuneSelf
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, _ := lx.peekRune()
		if !isIdentContinueRune(r2) {
			break
		}
		ascii = false
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if !ascii {
		text = norm.NFC.String(text)
	}

	if text == "_" {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}, nil
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}, nil
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}, nil
}

// unexpected пропускает текущую руну и возвращает ошибку с её span.
func (lx *Lexer) unexpected() (token.Token, error) {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	lx.bumpRune()
	return token.Token{}, lx.fail(&Error{
		Code: diag.LexUnexpectedInput,
		Span: lx.cursor.SpanFrom(start),
		Char: r,
	})
}
