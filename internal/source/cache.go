package source

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	arc "github.com/hashicorp/golang-lru/arc/v2"
)

// ErrUnknownFile is returned for ids the cache's FileSet never interned.
var ErrUnknownFile = errors.New("unknown source file")

// Files is the read-only view diagnostic renderers need.
type Files interface {
	Name(id FileID) (string, error)
	Source(id FileID) ([]byte, error)
	// LineIndex returns the 0-based line containing the byte offset.
	LineIndex(id FileID, off uint32) (uint32, error)
	// LineRange returns the byte range of the 0-based line.
	LineRange(id FileID, line uint32) (Span, error)
}

// Resolver maps spans to line and column positions.
type Resolver interface {
	Resolve(span Span) (start, end LineCol)
}

// DefaultCacheSize is the number of loaded files kept in memory.
const DefaultCacheSize = 64

// Cache loads files lazily on first access and memoizes them. Identity comes
// from the underlying FileSet, content is kept in an ARC cache and re-read
// from disk after eviction.
type Cache struct {
	files *FileSet
	mem   *arc.ARCCache[FileID, *File]
}

var (
	_ Files    = (*Cache)(nil)
	_ Resolver = (*Cache)(nil)
	_ Resolver = (*FileSet)(nil)
)

// NewCache wraps files. size <= 0 selects DefaultCacheSize.
func NewCache(files *FileSet, size int) (*Cache, error) {
	if files == nil {
		files = NewFileSet()
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	mem, err := arc.NewARC[FileID, *File](size)
	if err != nil {
		return nil, fmt.Errorf("source cache: %w", err)
	}
	return &Cache{files: files, mem: mem}, nil
}

// FileSet exposes the identity table.
func (c *Cache) FileSet() *FileSet { return c.files }

// Open interns path and loads it eagerly, so missing files fail early.
func (c *Cache) Open(path string) (FileID, error) {
	id := c.files.Intern(path)
	if _, err := c.Fetch(id); err != nil {
		return id, err
	}
	return id, nil
}

// Fetch returns the loaded file for id.
func (c *Cache) Fetch(id FileID) (*File, error) {
	if f, ok := c.mem.Get(id); ok {
		return f, nil
	}
	rec := c.files.Get(id)
	if rec == nil {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownFile, id)
	}
	if rec.Content != nil || rec.Flags&FileVirtual != 0 {
		c.mem.Add(id, rec)
		return rec, nil
	}

	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(rec.Path)
	if err != nil {
		return nil, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	f := &File{
		ID:      id,
		Path:    rec.Path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
	c.mem.Add(id, f)
	return f, nil
}

func (c *Cache) Name(id FileID) (string, error) {
	rec := c.files.Get(id)
	if rec == nil {
		return "", fmt.Errorf("%w: id %d", ErrUnknownFile, id)
	}
	return rec.Path, nil
}

func (c *Cache) Source(id FileID) ([]byte, error) {
	f, err := c.Fetch(id)
	if err != nil {
		return nil, err
	}
	return f.Content, nil
}

func (c *Cache) LineIndex(id FileID, off uint32) (uint32, error) {
	f, err := c.Fetch(id)
	if err != nil {
		return 0, err
	}
	return f.LineOf(off), nil
}

func (c *Cache) LineRange(id FileID, line uint32) (Span, error) {
	f, err := c.Fetch(id)
	if err != nil {
		return Span{}, err
	}
	start, end, ok := f.LineRange(line)
	if !ok {
		return Span{}, fmt.Errorf("line %d out of range in %s", line, f.Path)
	}
	return Span{File: id, Start: start, End: end}, nil
}

// Resolve converts a span into line and column positions using the loaded
// content, which the FileSet record of a lazily opened file does not carry.
func (c *Cache) Resolve(span Span) (start, end LineCol) {
	f, err := c.Fetch(span.File)
	if err != nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}
