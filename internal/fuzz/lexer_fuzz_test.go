package fuzztests

import (
	"testing"

	"pine/internal/diag"
	"pine/internal/lexer"
	"pine/internal/source"
	"pine/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.pn", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		var last token.Token
		depth := 0
		for tok, err := range lx.All() {
			if err != nil {
				continue
			}
			if tok.Span.Start < last.Span.Start || tok.Span.End > uint32(len(file.Content)) {
				t.Fatalf("span %v out of order or bounds after %v", tok.Span, last.Span)
			}
			switch tok.Kind {
			case token.Indent:
				depth++
			case token.Dedent:
				depth--
			}
			if depth < 0 {
				t.Fatalf("more DEDENT than INDENT at %v", tok.Span)
			}
			last = tok
		}
		if last.Kind != token.EOF {
			t.Fatalf("stream ended with %v, want EOF", last.Kind)
		}
		if depth != 0 {
			t.Fatalf("unbalanced indentation: %d", depth)
		}
	})
}
