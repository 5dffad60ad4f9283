// Package project loads the pine.toml manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"pine/internal/ccompiler"
)

// ManifestName is the file FindManifest looks for.
const ManifestName = "pine.toml"

// ErrNoManifest is returned by Resolve when no manifest is found and no
// source file was given.
var ErrNoManifest = errors.New("no pine.toml found\nplease specify the source file explicitly, e.g.:\n  pinec build path/to/main.pn")

type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name"`
	Main string `toml:"main"`
}

type BuildConfig struct {
	Compiler string `toml:"compiler"`
	Opt      string `toml:"opt"`
	Dir      string `toml:"dir"`
	Output   string `toml:"output"`
}

// FindManifest walks up from startDir to locate pine.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest above startDir. ok is false when
// there is none.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig parses and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if strings.TrimSpace(cfg.Package.Main) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].main", path)
	}
	if _, err := ccompiler.ByName(cfg.Build.Compiler); err != nil {
		return Config{}, fmt.Errorf("%s: [build].compiler: %w", path, err)
	}
	if _, err := ccompiler.ParseOptLevel(cfg.Build.Opt); err != nil {
		return Config{}, fmt.Errorf("%s: [build].opt: %w", path, err)
	}
	return cfg, nil
}

// MainPath resolves [package].main against the manifest directory.
func (m *Manifest) MainPath() (string, error) {
	mainPath := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Package.Main)))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [package].main does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [package].main: %w", m.Path, err)
	}
	if info.IsDir() || filepath.Ext(mainPath) != ".pn" {
		return "", fmt.Errorf("%s: [package].main must be a .pn file", m.Path)
	}
	return mainPath, nil
}

// BuildDir resolves [build].dir against the manifest directory.
func (m *Manifest) BuildDir() string {
	dir := strings.TrimSpace(m.Config.Build.Dir)
	if dir == "" {
		dir = ".build"
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}
