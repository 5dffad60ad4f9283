package lexer

import (
	"pine/internal/diag"
	"pine/internal/source"
	"pine/internal/token"
)

const indentWidth = 4

// scanNewLine consumes '\n' plus any following blank or comment-only lines,
// measures the indentation of the next line and queues the Indent/Dedent
// tokens that follow the NewLine.
func (lx *Lexer) scanNewLine() (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	nl := token.Token{Kind: token.NewLine, Span: lx.cursor.SpanFrom(start), Text: "\n"}

	var (
		lineStart Mark
		width     int
	)
	for {
		lineStart = lx.cursor.Mark()
		width = lx.measureIndent()
		if lx.cursor.Peek() == '/' {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '/' {
				lx.skipLineComment()
			}
		}
		if lx.cursor.EOF() {
			width = 0
			break
		}
		if lx.cursor.Peek() != '\n' {
			break
		}
		lx.cursor.Bump()
	}

	var err *Error
	if width%indentWidth != 0 {
		err = lx.fail(&Error{
			Code:  diag.LexIndentNotMultipleOfFour,
			Span:  lx.cursor.SpanFrom(lineStart),
			Width: width,
		})
		width -= width % indentWidth
	}

	steps := width / indentWidth
	prevSteps := lx.prevIndent / indentWidth
	at := source.At(lx.file.ID, lx.cursor.Off)
	switch {
	case steps > prevSteps:
		for range steps - prevSteps {
			lx.queue = append(lx.queue, token.Token{Kind: token.Indent, Span: at})
		}
	case steps < prevSteps:
		for range prevSteps - steps {
			lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: at})
		}
	}
	lx.prevIndent = width

	if err != nil {
		lx.queue = append([]token.Token{nl}, lx.queue...)
		return token.Token{}, err
	}
	return nl, nil
}

// measureIndent skips leading whitespace and returns its width in columns.
func (lx *Lexer) measureIndent() int {
	width := 0
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			width++
		case '\t':
			width += indentWidth
		case '\r':
		default:
			return width
		}
		lx.cursor.Bump()
	}
	return width
}
