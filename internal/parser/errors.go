package parser

import (
	"fmt"
	"strings"

	"pine/internal/diag"
	"pine/internal/lexer"
	"pine/internal/source"
)

// Error is a syntax error. It aborts the parse of the file.
type Error struct {
	Code     diag.Code
	Span     source.Span
	Found    string   // описание найденного токена
	Expected []string // что ожидалось, в порядке перечисления
	Lex      *lexer.Error
}

func fromLexer(err *lexer.Error) *Error {
	return &Error{Code: err.Code, Span: err.Span, Lex: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code.ID(), e.Span, e.message())
}

func (e *Error) Unwrap() error {
	if e.Lex != nil {
		return e.Lex
	}
	return nil
}

func (e *Error) message() string {
	if e.Lex != nil {
		return e.Lex.Diagnostic().Message
	}
	switch e.Code {
	case diag.SynUnexpectedEOF:
		return "unexpected end of file"
	case diag.SynUnrecognizedToken:
		return "unrecognized token " + e.Found
	case diag.SynExpectedType:
		return "expected type"
	case diag.SynInvalidAssignTarget:
		return "invalid assignment target"
	}
	return e.Code.Title()
}

// Diagnostic converts the error into its renderable form.
func (e *Error) Diagnostic() diag.Diagnostic {
	if e.Lex != nil {
		return e.Lex.Diagnostic()
	}
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     e.Code,
		Message:  e.message(),
		Primary:  e.Span,
	}
	if len(e.Expected) > 0 {
		d.Notes = append(d.Notes, diag.Note{Span: e.Span, Msg: "expected: " + joinExpected(e.Expected)})
	}
	if e.Code == diag.SynExpectedType && e.Found != "" {
		d.Notes = append(d.Notes, diag.Note{Span: e.Span, Msg: "found: " + e.Found})
	}
	return d
}

// joinExpected renders "X", "X or Y", "X, Y, or Z".
func joinExpected(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = quoteExpected(it)
	}
	switch len(quoted) {
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// слова-описания (identifier, newline, ...) без кавычек, токены в кавычках
func quoteExpected(s string) string {
	switch s {
	case "identifier", "newline", "indent", "dedent", "expression", "type":
		return s
	}
	return "`" + s + "`"
}
