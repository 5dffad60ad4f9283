package lexer

import (
	"fmt"

	"pine/internal/diag"
	"pine/internal/source"
)

// Error is a lexical error anchored to a span. The lexer keeps going after
// returning one.
type Error struct {
	Code  diag.Code
	Span  source.Span
	Char  rune // UnexpectedInput / BadEscape
	Width int  // IndentNotMultipleOfFour
	Text  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code.ID(), e.Span, e.message())
}

func (e *Error) message() string {
	switch e.Code {
	case diag.LexUnexpectedInput:
		return fmt.Sprintf("unexpected character %q", e.Char)
	case diag.LexIndentNotMultipleOfFour:
		return fmt.Sprintf("indentation of %d columns is not a multiple of four", e.Width)
	case diag.LexBadEscape:
		return fmt.Sprintf("unknown escape sequence \\%c", e.Char)
	case diag.LexIntegerOverflow:
		return fmt.Sprintf("integer literal %s does not fit into u64", e.Text)
	case diag.LexBadNumber:
		return fmt.Sprintf("malformed number %s", e.Text)
	}
	return e.Code.Title()
}

// Diagnostic converts the error into its renderable form.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     e.Code,
		Message:  e.message(),
		Primary:  e.Span,
	}
	if e.Code == diag.LexIndentNotMultipleOfFour {
		d.Notes = append(d.Notes, diag.Note{Span: e.Span, Msg: "indent blocks with 4 spaces per level"})
	}
	return d
}
