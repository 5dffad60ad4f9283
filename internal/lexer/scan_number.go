package lexer

import (
	"errors"
	"strconv"

	"pine/internal/diag"
	"pine/internal/token"
)

// scanNumber: цифры, одна '.' с цифрой после неё делает FloatLit.
func (lx *Lexer) scanNumber() (token.Token, error) {
	start := lx.cursor.Mark()
	lx.skipDigits()

	kind := token.IntLit
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.skipDigits()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	tok := token.Token{Kind: kind, Span: sp, Text: text}

	if kind == token.FloatLit {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, lx.fail(&Error{Code: diag.LexBadNumber, Span: sp, Text: text})
		}
		tok.Float = v
		return tok, nil
	}

	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		code := diag.LexBadNumber
		if errors.Is(err, strconv.ErrRange) {
			code = diag.LexIntegerOverflow
		}
		return token.Token{}, lx.fail(&Error{Code: code, Span: sp, Text: text})
	}
	tok.Int = v
	return tok, nil
}

func (lx *Lexer) skipDigits() {
	for isDec(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
}
