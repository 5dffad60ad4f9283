package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, data string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNestedSpansJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Format: FormatJSON, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := WithTracer(context.Background(), tr)

	ctx, build := Start(ctx, ScopeDriver, "build")
	_, parse := Start(ctx, ScopePass, "parse")
	parse.WithExtra("items", "3").End("")
	_, node := Start(ctx, ScopeNode, "fn main") // filtered at detail
	node.End("")
	build.End("ok")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := decodeLines(t, buf.String())
	if len(lines) != 4 {
		t.Fatalf("got %d events, want 4:\n%s", len(lines), buf.String())
	}
	wantNames := []string{"build", "parse", "parse", "build"}
	wantKinds := []string{"begin", "begin", "end", "end"}
	for i, l := range lines {
		if l["name"] != wantNames[i] || l["kind"] != wantKinds[i] {
			t.Fatalf("event %d = %v/%v, want %s/%s", i, l["name"], l["kind"], wantNames[i], wantKinds[i])
		}
	}
	if lines[1]["parent"] != lines[0]["span"] {
		t.Fatalf("parse parent = %v, want %v", lines[1]["parent"], lines[0]["span"])
	}
	if lines[2]["items"] != "3" {
		t.Fatalf("extra field missing: %v", lines[2])
	}
	if lines[3]["detail"] != "ok" {
		t.Fatalf("detail missing: %v", lines[3])
	}
}

func TestFailIsRecordedAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelError, Format: FormatJSON, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := WithTracer(context.Background(), tr)
	_, span := Start(ctx, ScopePass, "lower")
	span.End("")
	Fail(ctx, "lower", errors.New("boom"))

	lines := decodeLines(t, buf.String())
	if len(lines) != 1 || lines[0]["kind"] != "error" || lines[0]["detail"] != "boom" {
		t.Fatalf("unexpected events:\n%s", buf.String())
	}
}

func TestOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	ctx, span := Start(context.Background(), ScopeDriver, "x")
	if span.ID() != 0 || CurrentSpan(ctx) != 0 {
		t.Fatalf("span without tracer must be inert")
	}
	if span.End("") != 0 {
		t.Fatalf("inert span has a duration")
	}
}

func TestFileOutputAutoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	tr, err := New(Config{Level: LevelPhase, OutputPath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopePass, "emit", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if got := len(decodeLines(t, string(data))); got != 2 {
		t.Fatalf("got %d events, want 2", got)
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(strings.ToUpper(name))
		if err != nil || l.String() != name {
			t.Fatalf("ParseLevel(%q) = %v, %v", name, l, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error")
	}
}
