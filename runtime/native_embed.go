// Package runtimeembed provides the C runtime linked into every pine program.
package runtimeembed

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed native/*.c native/*.h
var nativeRuntimeFS embed.FS

// NativeRuntimeFS exposes the embedded runtime sources.
func NativeRuntimeFS() fs.FS {
	return nativeRuntimeFS
}

// Extracted lists what Extract wrote. Both slices are sorted.
type Extracted struct {
	Files   []string // every file written, headers included
	Sources []string // the .c files to hand to the compiler
}

// Extract copies the runtime into dir.
func Extract(dir string) (Extracted, error) {
	var out Extracted
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return out, fmt.Errorf("failed to create runtime dir: %w", err)
	}
	walkErr := fs.WalkDir(nativeRuntimeFS, "native", func(entryPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(nativeRuntimeFS, entryPath)
		if err != nil {
			return err
		}
		dst := filepath.Join(dir, d.Name())
		if err := os.WriteFile(dst, data, 0o600); err != nil {
			return err
		}
		out.Files = append(out.Files, dst)
		if strings.HasSuffix(entryPath, ".c") {
			out.Sources = append(out.Sources, dst)
		}
		return nil
	})
	if walkErr != nil {
		return Extracted{}, fmt.Errorf("failed to extract embedded runtime sources: %w", walkErr)
	}
	if len(out.Sources) == 0 {
		return Extracted{}, fmt.Errorf("embedded runtime sources missing (build bug)")
	}
	sort.Strings(out.Files)
	sort.Strings(out.Sources)
	return out, nil
}
