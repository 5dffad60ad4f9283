package token

import (
	"fmt"

	"pine/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Int   uint64  // IntLit payload
	Float float64 // FloatLit payload
}

// IsLiteral reports whether the token is a numeric, boolean, nil or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsLayout reports whether the token only carries line structure.
func (t Token) IsLayout() bool {
	switch t.Kind {
	case NewLine, Indent, Dedent:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAnd && t.Kind <= KwStr
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Describe renders the token for "found: X" style messages.
func (t Token) Describe() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("identifier `%s`", t.Text)
	case IntLit, FloatLit:
		return fmt.Sprintf("number `%s`", t.Text)
	case StringLit:
		return fmt.Sprintf("string %q", t.Text)
	case EOF, NewLine, Indent, Dedent, Invalid:
		return t.Kind.String()
	default:
		return "`" + t.Kind.String() + "`"
	}
}
