package driver

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"pine/internal/source"
)

// SourceExt is the extension of pine sources.
const SourceExt = ".pn"

// UnitName derives the C unit name from a source path: "src/app.pn" -> "app".
func UnitName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// listSources returns every *.pn file under dir, sorted.
func listSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Load opens path through the cache.
func Load(files *source.Cache, path string) (*source.File, error) {
	id, err := files.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return files.Fetch(id)
}

// NewCache returns a source cache over a fresh FileSet.
func NewCache() *source.Cache {
	c, err := source.NewCache(source.NewFileSet(), source.DefaultCacheSize)
	if err != nil {
		// размер положительный, arc.NewARC не может упасть
		panic(err)
	}
	return c
}
