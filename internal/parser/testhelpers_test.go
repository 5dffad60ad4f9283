package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"pine/internal/ast"
	"pine/internal/diag"
	"pine/internal/lexer"
	"pine/internal/source"
	"pine/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func runParse(input string) (*ast.Builder, ast.FileID, *source.File, *diag.Bag, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pn", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)

	id, err := ParseFile(context.Background(), lx, builder, Options{Reporter: reporter})
	return builder, id, file, bag, err
}

// parseSource parses input and fails the test on any error.
func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	builder, fileID, file, bag, err := runParse(input)
	if err != nil {
		t.Fatalf("unexpected parse error: %v (diagnostics: %s)", err, diagnosticsSummary(bag))
	}
	if err := testkit.CheckSpanInvariants(builder, fileID, file); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return builder, fileID, bag
}

// parseError parses input and expects it to fail with a *Error.
func parseError(t *testing.T, input string) (*Error, *diag.Bag) {
	t.Helper()
	_, _, _, bag, err := runParse(input)
	if err == nil {
		t.Fatalf("expected parse error for %q", input)
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.Error, got %T: %v", err, err)
	}
	return perr, bag
}

// singleFn returns the only function of a parsed file.
func singleFn(t *testing.T, b *ast.Builder, fileID ast.FileID) *ast.FnItem {
	t.Helper()
	file := b.Files.Get(fileID)
	if len(file.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(file.Items))
	}
	fn, ok := b.Items.Fn(file.Items[0])
	if !ok {
		t.Fatalf("expected function item")
	}
	return fn
}

// bodyStmts returns the statements of a function body.
func bodyStmts(t *testing.T, b *ast.Builder, fn *ast.FnItem) []ast.StmtID {
	t.Helper()
	block, ok := b.Stmts.Block(fn.Body)
	if !ok {
		t.Fatalf("function body is not a block")
	}
	return block.Stmts
}
