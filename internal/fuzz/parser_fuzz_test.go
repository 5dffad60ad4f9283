package fuzztests

import (
	"context"
	"testing"
	"time"

	"pine/internal/ast"
	"pine/internal/diag"
	"pine/internal/format"
	"pine/internal/lexer"
	"pine/internal/parser"
	"pine/internal/source"
	"pine/internal/testkit"
)

// parseTimeout bounds one parse; exceeding it means a loop in error recovery.
const parseTimeout = 5 * time.Second

type parsed struct {
	file *source.File
	b    *ast.Builder
	id   ast.FileID
	bag  *diag.Bag
}

func parseBytes(ctx context.Context, input []byte) parsed {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.pn", input))
	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	id, err := parser.ParseFile(ctx, lexer.New(file, lexer.Options{Reporter: reporter}), b, parser.Options{Reporter: reporter})
	if err != nil {
		id = ast.NoFileID
	}
	return parsed{file: file, b: b, id: id, bag: bag}
}

func (p parsed) ok() bool {
	return p.id != ast.NoFileID && !p.bag.HasErrors()
}

func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		p := parseBytes(context.Background(), clamp(input, maxFuzzInput))
		if !p.ok() {
			return
		}
		if err := testkit.CheckSpanInvariants(p.b, p.id, p.file); err != nil {
			t.Fatalf("span invariant: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang runs the parser under a deadline.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("fun f() -> _:\n  return\n"))            // отступ не кратен 4
	f.Add([]byte("fun f() -> _:\n\tloop: break\n"))        // табуляция
	f.Add([]byte("fun f( -> _: return\n"))                 // незакрытые скобки
	f.Add([]byte("type T {\n    x: i32\n"))                // незакрытая фигурная
	f.Add([]byte("fun f() -> _:\n        if x:\n  y\n"))   // рваный DEDENT
	f.Add([]byte("fun f() -> _: let p: P = P { a: P { b: 1 } }\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = parseBytes(ctx, input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzFormatIdempotent checks that formatted output parses and is a fixed point.
func FuzzFormatIdempotent(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		p := parseBytes(context.Background(), clamp(input, maxFuzzInput))
		if !p.ok() {
			return
		}
		once, err := format.FormatFile(p.file, p.b, p.id)
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		q := parseBytes(context.Background(), once)
		if !q.ok() {
			t.Fatalf("formatted output does not parse: %+v\n%s", q.bag.Items(), once)
		}
		twice, err := format.FormatFile(q.file, q.b, q.id)
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		if string(once) != string(twice) {
			t.Fatalf("not idempotent:\n%s\nvs\n%s", once, twice)
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
