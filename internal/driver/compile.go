package driver

import (
	"context"
	"errors"
	"fmt"

	"pine/internal/cast"
	"pine/internal/check"
	"pine/internal/cwriter"
	"pine/internal/diag"
	"pine/internal/header"
	"pine/internal/lower"
	"pine/internal/observ"
	"pine/internal/source"
	"pine/internal/trace"
)

// ErrDiagnostics marks a unit stopped by error diagnostics; details are in the bag.
var ErrDiagnostics = errors.New("compilation failed")

type Options struct {
	MaxDiagnostics int
	// RequireMain makes a missing `main` an error and produces main.c.
	RequireMain bool
	// Cache, when set, short-circuits parse..emit for unchanged sources.
	Cache *DiskCache
	Timer *observ.Timer
}

// Output is the generated C for one unit.
type Output struct {
	Unit   string
	Header string // <unit>.h
	Source string // <unit>.c
	Main   string // main.c, empty unless RequireMain
}

// Files maps build-directory file names to contents.
func (o *Output) Files() map[string]string {
	files := map[string]string{
		o.Unit + ".h": o.Header,
		o.Unit + ".c": o.Source,
	}
	if o.Main != "" {
		files[header.MainFile+".c"] = o.Main
	}
	return files
}

type CompileResult struct {
	File   *source.File
	Parse  *ParseResult // nil on a cache hit
	Output *Output      // nil on failure
	Bag    *diag.Bag
	Cached bool
}

// Compile runs the whole front and back end for path. Diagnostics are
// returned in the result even when err is ErrDiagnostics.
func Compile(ctx context.Context, files *source.Cache, path string, opts Options) (*CompileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeUnit, "compile")
	defer span.End(path)

	file, err := Load(files, path)
	if err != nil {
		return nil, err
	}
	unit := UnitName(path)
	res := &CompileResult{File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}

	if out, ok := LookupCache(ctx, opts.Cache, file, opts.RequireMain); ok {
		span.WithExtra("cache", "hit")
		res.Output = out
		res.Cached = true
		return res, nil
	}

	_, done := opts.Timer.Track(ctx, "parse")
	res.Parse, err = parseFile(ctx, file, res.Bag)
	done(unit)
	if err != nil {
		return res, err
	}
	if !res.Parse.OK() {
		return res, fmt.Errorf("%s: parse: %w", path, ErrDiagnostics)
	}

	_, done = opts.Timer.Track(ctx, "check")
	err = CheckUnit(res.Parse, opts.RequireMain)
	done(unit)
	if err != nil {
		return res, fmt.Errorf("%s: check: %w", path, err)
	}

	_, done = opts.Timer.Track(ctx, "lower")
	tu, err := Lower(res.Parse, unit)
	done(unit)
	if err != nil {
		return res, fmt.Errorf("%s: lower: %w", path, err)
	}

	_, done = opts.Timer.Track(ctx, "emit")
	res.Output = Emit(tu, opts.RequireMain)
	done(unit)

	StoreCache(ctx, opts.Cache, file, res.Output, opts.RequireMain)
	return res, nil
}

// LookupCache returns the cached output for file, if present.
func LookupCache(ctx context.Context, cache *DiskCache, file *source.File, requireMain bool) (*Output, bool) {
	if cache == nil {
		return nil, false
	}
	var hit CachedUnit
	ok, err := cache.Get(KeyFor(file.Hash, UnitName(file.Path), requireMain), &hit)
	if err != nil {
		// битая запись ведёт себя как промах
		trace.Fail(ctx, "cache", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &Output{Unit: hit.Unit, Header: hit.Header, Source: hit.Source, Main: hit.Main}, true
}

// StoreCache records out for file. Failures are traced, never fatal.
func StoreCache(ctx context.Context, cache *DiskCache, file *source.File, out *Output, requireMain bool) {
	if cache == nil || out == nil {
		return
	}
	payload := CachedUnit{Unit: out.Unit, Header: out.Header, Source: out.Source, Main: out.Main}
	if err := cache.Put(KeyFor(file.Hash, out.Unit, requireMain), &payload); err != nil {
		trace.Fail(ctx, "cache", err)
	}
}

// CheckUnit runs the structural checks. Diagnostics flow through a
// diag.Stream and land in the parse bag.
func CheckUnit(pr *ParseResult, requireMain bool) error {
	stream := diag.NewStream(16)
	result := check.Check(pr.Builder, pr.FileID, check.Options{Reporter: stream, RequireMain: requireMain})
	for _, d := range stream.Close() {
		pr.Bag.Add(d)
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDiagnostics, err)
	}
	return nil
}

// Lower converts the checked AST into a C translation unit named unit.
func Lower(pr *ParseResult, unit string) (*cast.TranslationUnit, error) {
	return lower.Transform(pr.Builder, pr.FileID, unit)
}

// Emit splits tu into header and source and renders them, plus main.c
// when withMain is set.
func Emit(tu *cast.TranslationUnit, withMain bool) *Output {
	hdr, src := header.Extract(tu)
	out := &Output{
		Unit:   tu.Name,
		Header: cwriter.String(hdr),
		Source: cwriter.String(src),
	}
	if withMain {
		out.Main = cwriter.String(header.MainUnit(tu.Name))
	}
	return out
}
