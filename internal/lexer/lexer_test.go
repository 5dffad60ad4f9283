package lexer_test

import (
	"errors"
	"io"
	"testing"

	"pine/internal/diag"
	"pine/internal/lexer"
	"pine/internal/source"
	"pine/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pn", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

// collect собирает токены и ошибки до EOF включительно
func collect(t *testing.T, lx *lexer.Lexer) ([]token.Token, []*lexer.Error) {
	t.Helper()
	var (
		toks []token.Token
		errs []*lexer.Error
	)
	for i := 0; i < 10_000; i++ {
		tok, err := lx.Next()
		if errors.Is(err, io.EOF) {
			return toks, errs
		}
		if err != nil {
			var lerr *lexer.Error
			if !errors.As(err, &lerr) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			errs = append(errs, lerr)
			continue
		}
		toks = append(toks, tok)
	}
	t.Fatal("lexer did not terminate")
	return nil, nil
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

// expectTokens проверяет последовательность токенов (EOF в конце подразумевается)
func expectTokens(t *testing.T, input string, expected []token.Kind) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	toks, errs := collect(t, lx)
	if len(errs) != 0 || len(reporter.diagnostics) != 0 {
		t.Fatalf("input %q: unexpected errors %v", input, errs)
	}
	expected = append(expected, token.EOF)
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("input %q: expected %v, got %v", input, expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("input %q: token %d: expected %v, got %v (all: %v)", input, i, expected[i], got[i], got)
		}
	}
	return toks
}

func TestSingleCharTokens(t *testing.T) {
	expectTokens(t, "( ) { } [ ] , . - + / % * : | ! = > < _", []token.Kind{
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Slash, token.Percent, token.Star,
		token.Colon, token.Pipe, token.Bang, token.Assign, token.Gt, token.Lt, token.Underscore,
	})
}

func TestMultiCharTokens(t *testing.T) {
	expectTokens(t, ">=", []token.Kind{token.GtEq})
	expectTokens(t, ">= <= == != ->", []token.Kind{token.GtEq, token.LtEq, token.EqEq, token.BangEq, token.Arrow})
	expectTokens(t, "a->b", []token.Kind{token.Ident, token.Arrow, token.Ident})
}

func TestNumbers(t *testing.T) {
	toks := expectTokens(t, "123", []token.Kind{token.IntLit})
	if toks[0].Int != 123 {
		t.Fatalf("expected 123, got %d", toks[0].Int)
	}
	toks = expectTokens(t, "123.456", []token.Kind{token.FloatLit})
	if toks[0].Float != 123.456 {
		t.Fatalf("expected 123.456, got %v", toks[0].Float)
	}
	toks = expectTokens(t, "-1", []token.Kind{token.Minus, token.IntLit})
	if toks[1].Int != 1 {
		t.Fatalf("expected 1, got %d", toks[1].Int)
	}
	toks = expectTokens(t, "1 + 2", []token.Kind{token.IntLit, token.Plus, token.IntLit})
	if toks[0].Int != 1 || toks[2].Int != 2 {
		t.Fatalf("unexpected payloads %d %d", toks[0].Int, toks[2].Int)
	}
	// точка без цифры после неё: доступ к полю
	expectTokens(t, "1.x", []token.Kind{token.IntLit, token.Dot, token.Ident})
}

func TestIntegerOverflow(t *testing.T) {
	lx, reporter := makeTestLexer("18446744073709551616 1")
	toks, errs := collect(t, lx)
	if len(errs) != 1 || errs[0].Code != diag.LexIntegerOverflow {
		t.Fatalf("expected overflow error, got %v", errs)
	}
	if len(reporter.diagnostics) != 1 {
		t.Fatalf("expected one reported diagnostic, got %d", len(reporter.diagnostics))
	}
	if got := kinds(toks); len(got) != 2 || got[0] != token.IntLit {
		t.Fatalf("lexer must continue after overflow, got %v", got)
	}
}

func TestStrings(t *testing.T) {
	toks := expectTokens(t, `"hello"`, []token.Kind{token.StringLit})
	if toks[0].Text != "hello" {
		t.Fatalf("expected hello, got %q", toks[0].Text)
	}
	if toks[0].Span.Start != 0 || toks[0].Span.End != 7 {
		t.Fatalf("string span must include quotes, got %v", toks[0].Span)
	}
	toks = expectTokens(t, `"a\n\t\"b\\"`, []token.Kind{token.StringLit})
	if toks[0].Text != "a\n\t\"b\\" {
		t.Fatalf("unexpected decoded text %q", toks[0].Text)
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, _ := makeTestLexer("\"abc\nx")
	toks, errs := collect(t, lx)
	if len(errs) != 1 || errs[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string, got %v", errs)
	}
	if errs[0].Span.Start != 0 || errs[0].Span.End != 4 {
		t.Fatalf("unexpected span %v", errs[0].Span)
	}
	if got := kinds(toks); len(got) != 3 || got[0] != token.NewLine || got[1] != token.Ident {
		t.Fatalf("expected recovery after string, got %v", got)
	}
}

func TestBadEscape(t *testing.T) {
	lx, _ := makeTestLexer(`"a\qb" x`)
	toks, errs := collect(t, lx)
	if len(errs) != 1 || errs[0].Code != diag.LexBadEscape || errs[0].Char != 'q' {
		t.Fatalf("expected bad escape, got %v", errs)
	}
	if got := kinds(toks); len(got) != 2 || got[0] != token.Ident {
		t.Fatalf("expected x after the bad string, got %v", got)
	}
}

func TestComments(t *testing.T) {
	expectTokens(t, "// hello", nil)
	expectTokens(t, "// hello\n", []token.Kind{token.NewLine})
	toks := expectTokens(t, "hello // world\nworld", []token.Kind{token.Ident, token.NewLine, token.Ident})
	if toks[0].Text != "hello" || toks[2].Text != "world" {
		t.Fatalf("unexpected idents %q %q", toks[0].Text, toks[2].Text)
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := expectTokens(t, "fun main let x_1 _y _ i32", []token.Kind{
		token.KwFun, token.Ident, token.KwLet, token.Ident, token.Ident, token.Underscore, token.KwI32,
	})
	if toks[4].Text != "_y" {
		t.Fatalf("expected _y, got %q", toks[4].Text)
	}
}

func TestUnicodeIdentNormalized(t *testing.T) {
	toks := expectTokens(t, "cafe\u0301", []token.Kind{token.Ident})
	if toks[0].Text != "caf\u00e9" {
		t.Fatalf("expected NFC form, got %q", toks[0].Text)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	lx, reporter := makeTestLexer("a $ b")
	toks, errs := collect(t, lx)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	}
	e := errs[0]
	if e.Code != diag.LexUnexpectedInput || e.Char != '$' || e.Span.Start != 2 || e.Span.End != 3 {
		t.Fatalf("unexpected error %+v", e)
	}
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code.ID() != "LEX::0000" {
		t.Fatalf("unexpected diagnostics %+v", reporter.diagnostics)
	}
	if got := kinds(toks); len(got) != 3 || got[1] != token.Ident {
		t.Fatalf("expected best-effort recovery, got %v", got)
	}
}

func TestNextAfterEOF(t *testing.T) {
	lx, _ := makeTestLexer("x")
	for range 2 {
		if _, err := lx.Next(); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	for range 3 {
		if _, err := lx.Next(); !errors.Is(err, io.EOF) {
			t.Fatalf("expected io.EOF after the EOF token, got %v", err)
		}
	}
}

func TestExactlyOneEOF(t *testing.T) {
	inputs := []string{
		"", "\n", "\n\n\n", "    ", "a\n    b", "\"open", "$$$", "a\n   b\n",
		"fun f() -> _:\n    loop:\n        break\n",
	}
	for _, in := range inputs {
		lx, _ := makeTestLexer(in)
		eofs := 0
		for tok, err := range lx.All() {
			if err == nil && tok.Kind == token.EOF {
				eofs++
			}
		}
		if eofs != 1 {
			t.Fatalf("input %q: expected exactly one EOF, got %d", in, eofs)
		}
	}
}

func TestSpansWithinSource(t *testing.T) {
	in := "fun main() -> _:\n    let p: Point = Point { x: 1, y: 2 }\n    print_int(p.x)\n"
	lx, _ := makeTestLexer(in)
	toks, errs := collect(t, lx)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	for _, tok := range toks {
		if tok.Span.Start > tok.Span.End || int(tok.Span.End) > len(in) {
			t.Fatalf("bad span %v for %v", tok.Span, tok.Kind)
		}
	}
}
