package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pine/internal/ccompiler"
)

// Target is what a build command compiles. Manifest is nil when the source
// was named directly.
type Target struct {
	Source     string
	BuildDir   string
	OutputName string
	Compiler   string
	Opt        ccompiler.OptLevel
	Manifest   *Manifest
}

// Resolve picks the build input. A .pn file is used as is and builds into
// ./.build; a directory or an empty path is resolved through pine.toml.
func Resolve(path string) (Target, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Target{}, fmt.Errorf("%s: no such file or directory", path)
		}
		return Target{}, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if !info.IsDir() {
		if filepath.Ext(path) != ".pn" {
			return Target{}, fmt.Errorf("%s: expected a .pn source file", path)
		}
		return Target{Source: path, BuildDir: ".build"}, nil
	}

	m, ok, err := Load(path)
	if err != nil {
		return Target{}, err
	}
	if !ok {
		return Target{}, ErrNoManifest
	}
	return m.Target()
}

// Target converts the manifest into build settings.
func (m *Manifest) Target() (Target, error) {
	mainPath, err := m.MainPath()
	if err != nil {
		return Target{}, err
	}
	opt, err := ccompiler.ParseOptLevel(m.Config.Build.Opt)
	if err != nil {
		return Target{}, fmt.Errorf("%s: [build].opt: %w", m.Path, err)
	}
	output := strings.TrimSpace(m.Config.Build.Output)
	if output == "" {
		output = strings.TrimSpace(m.Config.Package.Name)
	}
	return Target{
		Source:     mainPath,
		BuildDir:   m.BuildDir(),
		OutputName: output,
		Compiler:   strings.TrimSpace(m.Config.Build.Compiler),
		Opt:        opt,
		Manifest:   m,
	}, nil
}
