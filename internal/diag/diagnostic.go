package diag

import (
	"pine/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Error makes a Diagnostic usable as a plain error value.
func (d Diagnostic) Error() string {
	return d.Code.ID() + ": " + d.Message
}
