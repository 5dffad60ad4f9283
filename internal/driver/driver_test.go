package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pine/internal/diag"
	"pine/internal/observ"
	"pine/internal/token"
)

const helloSrc = `type Point:
    x: i32
    y: i32

fun main() -> _:
    let p: Point = Point { x: 1, y: 2 }
    print_int(p.x + p.y)
`

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestUnitName(t *testing.T) {
	tests := map[string]string{
		"app.pn":           "app",
		"src/hello.pn":     "hello",
		"/tmp/x/main.pn":   "main",
		"noext":            "noext",
		"dir/with.dots.pn": "with.dots",
	}
	for in, want := range tests {
		if got := UnitName(in); got != want {
			t.Errorf("UnitName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTokenize_ReportsAndContinues(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.pn", "let $ x\n")
	res, err := Tokenize(context.Background(), NewCache(), path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if !hasCode(res.Bag, diag.LexUnexpectedInput) {
		t.Fatalf("expected LexUnexpectedInput, got %+v", res.Bag.Items())
	}
	if n := len(res.Tokens); n == 0 || res.Tokens[n-1].Kind != token.EOF {
		t.Fatalf("stream must end with EOF: %+v", res.Tokens)
	}
	if res.Tokens[0].Kind != token.KwLet {
		t.Fatalf("first token = %v, want let", res.Tokens[0].Kind)
	}
}

func TestTokenize_MissingFile(t *testing.T) {
	_, err := Tokenize(context.Background(), NewCache(), filepath.Join(t.TempDir(), "nope.pn"), 0)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParse_SyntaxError(t *testing.T) {
	path := writeSource(t, t.TempDir(), "f.pn", "fun f(a: i32) i32: return a\n")
	res, err := Parse(context.Background(), NewCache(), path, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.OK() {
		t.Fatal("expected parse failure")
	}
	if !hasCode(res.Bag, diag.SynUnrecognizedToken) {
		t.Fatalf("expected SynUnrecognizedToken, got %+v", res.Bag.Items())
	}
}

func TestCompile_Hello(t *testing.T) {
	path := writeSource(t, t.TempDir(), "hello.pn", helloSrc)
	timer := observ.NewTimer()
	res, err := Compile(context.Background(), NewCache(), path, Options{RequireMain: true, Timer: timer})
	if err != nil {
		t.Fatalf("Compile: %v (%+v)", err, res.Bag.Items())
	}
	out := res.Output
	if out.Unit != "hello" {
		t.Fatalf("unit = %q", out.Unit)
	}
	if !strings.Contains(out.Header, "#pragma once") || !strings.Contains(out.Header, "typedef struct Point") {
		t.Fatalf("header:\n%s", out.Header)
	}
	if !strings.Contains(out.Source, "void pine_lang_main(void)") || !strings.Contains(out.Source, "#include \"hello.h\"") {
		t.Fatalf("source:\n%s", out.Source)
	}
	if !strings.Contains(out.Main, "pine_lang_main();") {
		t.Fatalf("main:\n%s", out.Main)
	}
	files := out.Files()
	for _, name := range []string{"hello.h", "hello.c", "main.c"} {
		if _, ok := files[name]; !ok {
			t.Errorf("missing %s in %v", name, files)
		}
	}

	var names []string
	for _, p := range timer.Phases() {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "parse,check,lower,emit" {
		t.Fatalf("phases = %s", got)
	}
}

func TestCompile_LibraryHasNoMain(t *testing.T) {
	path := writeSource(t, t.TempDir(), "lib.pn", "fun add(a: i32, b: i32) -> i32: return a + b\n")
	res, err := Compile(context.Background(), NewCache(), path, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Output.Main != "" {
		t.Fatalf("library unit must not produce main.c")
	}
	if _, ok := res.Output.Files()["main.c"]; ok {
		t.Fatal("Files() lists main.c")
	}
}

func TestCompile_CheckFailure(t *testing.T) {
	path := writeSource(t, t.TempDir(), "lib.pn", "fun add(a: i32) -> i32: return a\n")
	res, err := Compile(context.Background(), NewCache(), path, Options{RequireMain: true})
	if !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("err = %v, want ErrDiagnostics", err)
	}
	if res.Output != nil {
		t.Fatal("failed unit must not produce output")
	}
	if !hasCode(res.Bag, diag.SemMissingMain) {
		t.Fatalf("expected SemMissingMain, got %+v", res.Bag.Items())
	}
}

func TestCompile_RejectsNamesGeneratedCCannotCarry(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want diag.Code
	}{
		{"collector field", "type Box { gc: i32 }\nfun main() -> _: return\n", diag.SemReservedName},
		{"main with parameters", "fun main(a: i32) -> _: return\n", diag.SemMainSignature},
		{"C keyword", "fun main() -> _:\n    let long: i64 = 3\n", diag.SemReservedName},
		{"runtime builtin", "fun print_int(i: i64) -> _: return\nfun main() -> _: print_int(1)\n", diag.SemReservedName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, t.TempDir(), "app.pn", tt.src)
			res, err := Compile(context.Background(), NewCache(), path, Options{RequireMain: true})
			if !errors.Is(err, ErrDiagnostics) {
				t.Fatalf("err = %v, want ErrDiagnostics", err)
			}
			if res.Output != nil {
				t.Fatal("rejected unit must not produce C")
			}
			if !hasCode(res.Bag, tt.want) {
				t.Fatalf("expected %s, got %+v", tt.want.ID(), res.Bag.Items())
			}
		})
	}
}

func TestCompile_ParseFailure(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.pn", "fun main() -> _\n")
	res, err := Compile(context.Background(), NewCache(), path, Options{})
	if !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("err = %v, want ErrDiagnostics", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
}

func TestCompile_UsesDiskCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, dir, "hello.pn", helloSrc)
	opts := Options{RequireMain: true, Cache: cache}

	first, err := Compile(context.Background(), NewCache(), path, opts)
	if err != nil {
		t.Fatalf("first compile: %v", err)
	}
	if first.Cached {
		t.Fatal("first compile must miss")
	}

	second, err := Compile(context.Background(), NewCache(), path, opts)
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}
	if !second.Cached || second.Parse != nil {
		t.Fatal("second compile must hit the cache")
	}
	if *second.Output != *first.Output {
		t.Fatalf("cached output differs:\n%+v\n%+v", second.Output, first.Output)
	}

	// другой режим сборки даёт другой ключ
	third, err := Compile(context.Background(), NewCache(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Fatal("RequireMain must be part of the key")
	}
}

func TestDiskCache_RoundTripAndDrop(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor([32]byte{1}, "app", true)
	in := CachedUnit{Unit: "app", Header: "h", Source: "s", Main: "m"}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out CachedUnit
	ok, err := cache.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	ok, err = cache.Get(key, &out)
	if err != nil || ok {
		t.Fatalf("after DropAll Get = %v, %v", ok, err)
	}
}

func TestDiskCache_Nil(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(CacheKey{}, &CachedUnit{}); err != nil {
		t.Fatal(err)
	}
	ok, err := cache.Get(CacheKey{}, &CachedUnit{})
	if ok || err != nil {
		t.Fatalf("nil cache Get = %v, %v", ok, err)
	}
}

func TestKeyFor_Distinct(t *testing.T) {
	base := KeyFor([32]byte{1}, "a", false)
	if base == KeyFor([32]byte{2}, "a", false) {
		t.Error("source hash ignored")
	}
	if base == KeyFor([32]byte{1}, "b", false) {
		t.Error("unit name ignored")
	}
	if base == KeyFor([32]byte{1}, "a", true) {
		t.Error("requireMain ignored")
	}
	if base != KeyFor([32]byte{1}, "a", false) {
		t.Error("key is not deterministic")
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.pn", "fun b() -> i32: return 2\n")
	writeSource(t, dir, "a.pn", "fun a() -> i32: return 1\n")
	writeSource(t, dir, "nested/c.pn", "fun c() -> i32 return 3\n")
	writeSource(t, dir, "notes.txt", "ignored")

	results, err := ParseDir(context.Background(), NewCache(), dir, 0, 2)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	want := []string{"a.pn", "b.pn", filepath.Join("nested", "c.pn")}
	for i, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		if rel != want[i] {
			t.Errorf("results[%d] = %s, want %s", i, rel, want[i])
		}
		if r.Invariant != nil {
			t.Errorf("%s: %v", rel, r.Invariant)
		}
	}
	if !results[0].Parse.OK() || !results[1].Parse.OK() {
		t.Fatal("valid files failed to parse")
	}
	if results[2].Parse.OK() {
		t.Fatal("broken file parsed cleanly")
	}
}

func TestParseDir_Empty(t *testing.T) {
	results, err := ParseDir(context.Background(), NewCache(), t.TempDir(), 0, 0)
	if err != nil || results != nil {
		t.Fatalf("ParseDir on empty dir = %v, %v", results, err)
	}
}

func TestDumpAST(t *testing.T) {
	path := writeSource(t, t.TempDir(), "hello.pn", helloSrc)
	res, err := Parse(context.Background(), NewCache(), path, 0)
	if err != nil || !res.OK() {
		t.Fatalf("Parse: %v %+v", err, res.Bag.Items())
	}

	tree := BuildDump(res.Builder, res.FileID)
	if len(tree.Items) != 2 {
		t.Fatalf("items = %d", len(tree.Items))
	}
	st, ok := tree.Items[0].(DumpStruct)
	if !ok || st.Name != "Point" || len(st.Fields) != 2 || st.Fields[1] != (DumpParam{Name: "y", Type: "i32"}) {
		t.Fatalf("struct dump = %#v", tree.Items[0])
	}
	fn, ok := tree.Items[1].(DumpFn)
	if !ok || fn.Name != "main" || fn.Return != "_" {
		t.Fatalf("fn dump = %#v", tree.Items[1])
	}
	body := fn.Body.(DumpBlock)
	let := body.Stmts[0].(DumpLet)
	if lit, ok := let.Value.(DumpStructLit); !ok || lit.Name != "Point" || len(lit.Fields) != 2 {
		t.Fatalf("let value = %#v", let.Value)
	}

	var buf bytes.Buffer
	if err := DumpAST(&buf, res.Builder, res.FileID); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"driver.DumpFile", `"Point"`, "Op:", `"print_int"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("dump missing %q:\n%s", want, buf.String())
		}
	}
}
