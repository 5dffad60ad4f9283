package lexer

import (
	"pine/internal/diag"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: ошибки всё равно возвращаются из Next
}

func (lx *Lexer) fail(err *Error) *Error {
	diag.Emit(lx.opts.Reporter, err.Diagnostic())
	return err
}
