package diagfmt

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"pine/internal/diag"
	"pine/internal/lexer"
	"pine/internal/source"
	"pine/internal/token"
)

func virtualFiles(t *testing.T, name, content string) (*source.Cache, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(content))
	cache, err := source.NewCache(fs, 0)
	if err != nil {
		t.Fatal(err)
	}
	return cache, id
}

func TestPretty_CaretUnderSpan(t *testing.T) {
	files, id := virtualFiles(t, "dir/test.pn", "fun f(a: i32) i32: return a\n")
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnrecognizedToken,
		Message:  "expected `->`",
		Primary:  source.Span{File: id, Start: 14, End: 17},
	}

	var buf bytes.Buffer
	if err := Pretty(&buf, []diag.Diagnostic{d}, files, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "dir/test.pn:1:15: error[SYN::0002]: expected `->`\n" +
		"    fun f(a: i32) i32: return a\n" +
		"    " + strings.Repeat(" ", 14) + "^~~\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPretty_WideRunes(t *testing.T) {
	src := "x = \"世界\" y\n"
	files, id := virtualFiles(t, "w.pn", src)
	off := uint32(strings.Index(src, "y"))
	d := diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LexBadNumber, Message: "m", Primary: source.Span{File: id, Start: off, End: off + 1}}

	var buf bytes.Buffer
	if err := Pretty(&buf, []diag.Diagnostic{d}, files, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "w.pn:1:14: warning[LEX::0005]") {
		t.Fatalf("header = %q", lines[0])
	}
	// 5 ASCII + two wide runes (4 cells) + 2 ASCII
	if lines[2] != "    "+strings.Repeat(" ", 11)+"^" {
		t.Fatalf("caret line = %q", lines[2])
	}
}

func TestPretty_SecondLineAndNotes(t *testing.T) {
	src := "type A:\n    x: i32\n    x: i32\n"
	files, id := virtualFiles(t, "a.pn", src)
	first := uint32(strings.Index(src, "x"))
	second := uint32(strings.LastIndex(src, "x"))
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemDuplicateField,
		Message:  "duplicate field `x`",
		Primary:  source.Span{File: id, Start: second, End: second + 1},
		Notes:    []diag.Note{{Span: source.Span{File: id, Start: first, End: first + 1}, Msg: "first declared here"}},
	}

	var buf bytes.Buffer
	if err := Pretty(&buf, []diag.Diagnostic{d}, files, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"a.pn:3:5: error[SEM::0004]", "        x: i32\n        ^\n", "  note: a.pn:2:5: first declared here\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := Pretty(&buf, []diag.Diagnostic{d}, files, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "note:") {
		t.Fatal("notes printed without ShowNotes")
	}
}

func TestPretty_Color(t *testing.T) {
	files, id := virtualFiles(t, "c.pn", "x\n")
	d := diag.Diagnostic{Severity: diag.SevError, Code: diag.LexUnexpectedInput, Message: "m", Primary: source.Span{File: id, Start: 0, End: 1}}

	var buf bytes.Buffer
	if err := Pretty(&buf, []diag.Diagnostic{d}, files, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes: %q", buf.String())
	}
}

func TestPretty_UnknownFile(t *testing.T) {
	files, _ := virtualFiles(t, "c.pn", "x\n")
	d := diag.Diagnostic{Primary: source.Span{File: 42}}
	if err := Pretty(&bytes.Buffer{}, []diag.Diagnostic{d}, files, PrettyOpts{}); err == nil {
		t.Fatal("expected error for an unknown file")
	}
}

func TestFormatPath(t *testing.T) {
	base := filepath.FromSlash("/home/user/project")
	path := filepath.Join(base, "src", "test.pn")
	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAuto, path},
		{PathModeAbsolute, path},
		{PathModeRelative, filepath.Join("src", "test.pn")},
		{PathModeBasename, "test.pn"},
	}
	for _, tt := range tests {
		if got := formatPath(path, tt.mode, base); got != tt.want {
			t.Errorf("mode %d: got %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	files, id := virtualFiles(t, "j.pn", "ab\ncd\n")
	diags := []diag.Diagnostic{
		{Severity: diag.SevError, Code: diag.SynExpectedType, Message: "expected type", Primary: source.Span{File: id, Start: 4, End: 5},
			Notes: []diag.Note{{Span: source.Span{File: id, Start: 0, End: 1}, Msg: "here"}}},
		{Severity: diag.SevWarning, Code: diag.SemMissingMain, Message: "second", Primary: source.Span{File: id, Start: 0, End: 0}},
	}

	var buf bytes.Buffer
	if err := JSON(&buf, diags, files, JSONOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, items = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN::0003" || d.Severity != "error" || d.Location.Line != 2 || d.Location.Col != 2 {
		t.Fatalf("diagnostic = %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.Line != 1 {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func lex(t *testing.T, src string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.pn", []byte(src)))
	var toks []token.Token
	for tok, err := range lexer.New(file, lexer.Options{}).All() {
		if err != nil {
			t.Fatalf("lex: %v", err)
		}
		toks = append(toks, tok)
	}
	return toks, fs
}

func TestFormatTokens(t *testing.T) {
	toks, fs := lex(t, "let x\n")

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), `identifier      "x" at 1:5-1:6`) {
		t.Fatalf("pretty:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks, fs); err != nil {
		t.Fatal(err)
	}
	var fromJSON []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}

	var ym bytes.Buffer
	if err := FormatTokensYAML(&ym, toks, fs); err != nil {
		t.Fatal(err)
	}
	var fromYAML []TokenOutput
	if err := yaml.Unmarshal(ym.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}

	if len(fromJSON) != len(toks) || len(fromYAML) != len(toks) {
		t.Fatalf("json %d, yaml %d, tokens %d", len(fromJSON), len(fromYAML), len(toks))
	}
	if fromYAML[1] != fromJSON[1] || fromYAML[1].Kind != "identifier" || fromYAML[1].Col != 5 {
		t.Fatalf("yaml %+v, json %+v", fromYAML[1], fromJSON[1])
	}
	if last := fromYAML[len(fromYAML)-1]; last.Kind != "end of file" {
		t.Fatalf("last token = %+v", last)
	}
}
