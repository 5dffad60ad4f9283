package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullManifest = `[package]
name = "hello"
main = "src/main.pn"

[build]
compiler = "clang"
opt = "release"
dir = "target"
output = "hello"
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), fullManifest)
	writeFile(t, filepath.Join(root, "src", "main.pn"), "fun main() -> _: return\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root = %s, want %s", m.Root, root)
	}
	cfg := m.Config
	if cfg.Package.Name != "hello" || cfg.Build.Compiler != "clang" || cfg.Build.Opt != "release" || cfg.Build.Output != "hello" {
		t.Fatalf("config = %+v", cfg)
	}
	main, err := m.MainPath()
	if err != nil {
		t.Fatal(err)
	}
	if main != filepath.Join(root, "src", "main.pn") {
		t.Fatalf("main = %s", main)
	}
	if got := m.BuildDir(); got != filepath.Join(root, "target") {
		t.Fatalf("build dir = %s", got)
	}
}

func TestLoad_NotFound(t *testing.T) {
	m, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// выше TempDir манифеста быть не должно, но на чужой машине всё бывает
	if ok && m == nil {
		t.Fatal("ok without manifest")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[package\n", "failed to parse TOML"},
		{"no package", "[build]\nopt = \"debug\"\n", "missing [package]"},
		{"no name", "[package]\nmain = \"a.pn\"\n", "missing [package].name"},
		{"no main", "[package]\nname = \"a\"\n", "missing [package].main"},
		{"compiler", "[package]\nname = \"a\"\nmain = \"a.pn\"\n[build]\ncompiler = \"tcc\"\n", "[build].compiler"},
		{"opt", "[package]\nname = \"a\"\nmain = \"a.pn\"\n[build]\nopt = \"fast\"\n", "[build].opt"},
		{"unknown key", "[package]\nname = \"a\"\nmain = \"a.pn\"\nversion = \"1\"\n", "unknown key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestMainPath_Errors(t *testing.T) {
	root := t.TempDir()
	m := &Manifest{Path: filepath.Join(root, ManifestName), Root: root}

	m.Config.Package.Main = "missing.pn"
	if _, err := m.MainPath(); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("err = %v", err)
	}

	writeFile(t, filepath.Join(root, "main.txt"), "")
	m.Config.Package.Main = "main.txt"
	if _, err := m.MainPath(); err == nil || !strings.Contains(err.Error(), "must be a .pn file") {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildDir_Default(t *testing.T) {
	m := &Manifest{Root: "/proj"}
	if got := m.BuildDir(); got != filepath.Join("/proj", ".build") {
		t.Fatalf("build dir = %s", got)
	}
	m.Config.Build.Dir = "/abs/out"
	if got := m.BuildDir(); got != "/abs/out" {
		t.Fatalf("build dir = %s", got)
	}
}
