package driver

import (
	"context"

	"pine/internal/diag"
	"pine/internal/lexer"
	"pine/internal/source"
	"pine/internal/token"
)

type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize lexes the whole file. Lexical errors go to the bag; the stream
// continues past them, so Tokens always ends with EOF.
func Tokenize(ctx context.Context, files *source.Cache, path string, maxDiagnostics int) (*TokenizeResult, error) {
	file, err := Load(files, path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for tok, lexErr := range lx.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if lexErr != nil {
			continue
		}
		tokens = append(tokens, tok)
	}

	return &TokenizeResult{File: file, Tokens: tokens, Bag: bag}, nil
}
