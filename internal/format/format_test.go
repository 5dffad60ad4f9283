package format

import (
	"context"
	"slices"
	"testing"

	"pine/internal/ast"
	"pine/internal/diag"
	"pine/internal/lexer"
	"pine/internal/parser"
	"pine/internal/source"
	"pine/internal/token"
)

func parse(t *testing.T, src string) (*source.File, *ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fmt.pn", []byte(src)))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	fid, err := parser.ParseFile(context.Background(), lexer.New(file, lexer.Options{Reporter: reporter}), b, parser.Options{Reporter: reporter})
	if err != nil || bag.HasErrors() {
		t.Fatalf("parse failed: %v %+v\n%s", err, bag.Items(), src)
	}
	return file, b, fid
}

func format(t *testing.T, src string) string {
	t.Helper()
	file, b, fid := parse(t, src)
	out, err := FormatFile(file, b, fid)
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	return string(out)
}

// kinds returns the non-layout token kinds of src.
func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("k.pn", []byte(src)))
	var out []token.Kind
	for tok, err := range lexer.New(file, lexer.Options{}).All() {
		if err != nil {
			t.Fatalf("lex: %v", err)
		}
		if !tok.IsLayout() {
			out = append(out, tok.Kind)
		}
	}
	return out
}

const canonicalSrc = `type Point { x: i32, y: i32 }
fun add(a: i32, b: i32) -> i32: return a + b
fun main() -> _:
    // comments are dropped
    let p: Point = Point { x: 1, y: -2 }
    if p.x > 0 and !(p.y == 0):
        print_int(add(p.x, p.y))
    else if p.x == 0:
        print_str("zero\n")
    else: _
    loop: break
`

const canonicalWant = `type Point { x: i32, y: i32 }

fun add(a: i32, b: i32) -> i32:
    return a + b

fun main() -> _:
    let p: Point = Point { x: 1, y: -2 }
    if p.x > 0 and !(p.y == 0):
        print_int(add(p.x, p.y))
    else if p.x == 0:
        print_str("zero\n")
    else:
        _
    loop:
        break
`

func TestFormatFile_Canonical(t *testing.T) {
	if got := format(t, canonicalSrc); got != canonicalWant {
		t.Fatalf("got:\n%s\nwant:\n%s", got, canonicalWant)
	}
}

func TestFormatFile_KeepsElseColonIf(t *testing.T) {
	src := `fun f(a: i32) -> i32:
    if a > 0:
        return 1
    else:
        if a < 0:
            return 2
    return 0
`
	if got := format(t, src); got != src {
		t.Fatalf("got:\n%s\nwant:\n%s", got, src)
	}
}

func TestFormatFile_IndentedStruct(t *testing.T) {
	src := "type Pair:\n    first: u8\n    second: Pair\n"
	if got := format(t, src); got != src {
		t.Fatalf("got:\n%q", got)
	}
}

var roundTripSources = []string{
	canonicalSrc,
	"fun main() -> _: return\n",
	"fun f() -> f64: return 1.5\n",
	"fun g(s: str) -> _: print_str(\"tab\\t \\\"q\\\" back\\\\slash\")\n",
	"fun h(x: i64) -> i64:\n    x = x * (2 + 3) - 4 / 5 % 6\n    return x\n",
	"fun k(a: bool, b: bool) -> bool: return a or b and !a\n",
	"type Node:\n    value: i32\n    next: Node\nfun mk() -> Node:\n    let n: Node = Node { value: 1, next: nil }\n    return n\n",
	"fun cmp(a: u32, b: u32) -> bool: return a <= b or a >= b or a != b or a < b\n",
	"fun w() -> _:\n    loop:\n        if true: break\n",
}

func TestFormatFile_RoundTrip(t *testing.T) {
	for _, src := range roundTripSources {
		once := format(t, src)
		twice := format(t, once)
		if once != twice {
			t.Errorf("not idempotent:\n%s\nvs\n%s", once, twice)
		}
		if orig, got := kinds(t, src), kinds(t, once); !slices.Equal(orig, got) {
			t.Errorf("token kinds changed for\n%s\norig: %v\ngot:  %v", src, orig, got)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", `"plain"`},
		{"a\nb", `"a\nb"`},
		{"\t\r", `"\t\r"`},
		{"q\"\\", `"q\"\\"`},
		{"nul\x00", `"nul\0"`},
		{"юникод", `"юникод"`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatFile_Errors(t *testing.T) {
	file, b, fid := parse(t, "fun main() -> _: return\n")
	if _, err := FormatFile(nil, b, fid); err == nil {
		t.Error("nil file accepted")
	}
	if _, err := FormatFile(file, nil, fid); err == nil {
		t.Error("nil builder accepted")
	}
	if _, err := FormatFile(file, b, ast.NoFileID); err == nil {
		t.Error("invalid id accepted")
	}
}
