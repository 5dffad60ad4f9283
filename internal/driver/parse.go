package driver

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pine/internal/ast"
	"pine/internal/diag"
	"pine/internal/lexer"
	"pine/internal/parser"
	"pine/internal/source"
	"pine/internal/testkit"
)

type ParseResult struct {
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID // NoFileID when the parse failed
	Bag     *diag.Bag
}

// OK reports a complete AST without errors.
func (r *ParseResult) OK() bool {
	return r != nil && r.FileID.IsValid() && !r.Bag.HasErrors()
}

// Parse parses one file. Syntax errors are reported into the result bag;
// the returned error is reserved for I/O failures and cancellation.
func Parse(ctx context.Context, files *source.Cache, path string, maxDiagnostics int) (*ParseResult, error) {
	file, err := Load(files, path)
	if err != nil {
		return nil, err
	}
	return ParseFile(ctx, file, maxDiagnostics)
}

// ParseFile parses an already loaded file into a fresh builder.
func ParseFile(ctx context.Context, file *source.File, maxDiagnostics int) (*ParseResult, error) {
	return parseFile(ctx, file, diag.NewBag(maxDiagnostics))
}

func parseFile(ctx context.Context, file *source.File, bag *diag.Bag) (*ParseResult, error) {
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	fileID, err := parser.ParseFile(ctx, lx, builder, parser.Options{Reporter: reporter})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		fileID = ast.NoFileID
	}
	return &ParseResult{File: file, Builder: builder, FileID: fileID, Bag: bag}, nil
}

// ParseDirResult is the outcome for one file of ParseDir.
type ParseDirResult struct {
	Path  string
	Parse *ParseResult
	// Invariant holds the first span-invariant violation, if any.
	Invariant error
}

// ParseDir parses every *.pn under dir concurrently, jobs at a time
// (GOMAXPROCS when jobs <= 0). Results follow the sorted file order.
func ParseDir(ctx context.Context, files *source.Cache, dir string, maxDiagnostics, jobs int) ([]ParseDirResult, error) {
	paths, err := listSources(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	// загрузка последовательная: Cache не рассчитан на конкурентный Open
	loaded := make([]*source.File, len(paths))
	for i, p := range paths {
		if loaded[i], err = Load(files, p); err != nil {
			return nil, err
		}
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]ParseDirResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			res, err := parseFile(gctx, loaded[i], diag.NewBag(maxDiagnostics))
			if err != nil {
				return err
			}
			results[i] = ParseDirResult{Path: path, Parse: res}
			if res.OK() {
				results[i].Invariant = testkit.CheckSpanInvariants(res.Builder, res.FileID, loaded[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
