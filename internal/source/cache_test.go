package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheLoadsLazily(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.pn")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	cache, err := NewCache(fs, 1)
	if err != nil {
		t.Fatal(err)
	}
	id := fs.Intern(path)

	src, err := cache.Source(id)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if string(src) != "line one\nline two\n" {
		t.Fatalf("unexpected source %q", src)
	}

	// второй файл вытесняет первый, повторное чтение идёт с диска
	virt := fs.AddVirtual("virt.pn", []byte("x"))
	if _, err := cache.Fetch(virt); err != nil {
		t.Fatal(err)
	}
	line, err := cache.LineIndex(id, 10)
	if err != nil || line != 1 {
		t.Fatalf("expected line 1, got %d (%v)", line, err)
	}
	sp, err := cache.LineRange(id, 1)
	if err != nil {
		t.Fatal(err)
	}
	if sp.Start != 9 || sp.End != 17 {
		t.Fatalf("unexpected line range %v", sp)
	}
	name, err := cache.Name(id)
	if err != nil || name != filepath.ToSlash(filepath.Clean(path)) {
		t.Fatalf("unexpected name %q (%v)", name, err)
	}
}

func TestCacheResolveUsesLoadedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.pn")
	if err := os.WriteFile(path, []byte("fun f() -> _:\n    return\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cache, err := NewCache(nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	id, err := cache.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	start, end := cache.Resolve(Span{File: id, Start: 18, End: 24})
	if start != (LineCol{Line: 2, Col: 5}) || end != (LineCol{Line: 2, Col: 11}) {
		t.Fatalf("resolve = %v-%v, want 2:5-2:11", start, end)
	}
	if start, _ := cache.Resolve(Span{File: 99}); start != (LineCol{}) {
		t.Fatalf("unknown file resolved to %v", start)
	}
}

func TestCacheErrors(t *testing.T) {
	cache, err := NewCache(nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Fetch(42); !errors.Is(err, ErrUnknownFile) {
		t.Fatalf("expected ErrUnknownFile, got %v", err)
	}
	if _, err := cache.Open(filepath.Join(t.TempDir(), "missing.pn")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
