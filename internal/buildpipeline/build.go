// Package buildpipeline orchestrates a build from pine source to a native executable.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/segmentio/ksuid"

	"pine/internal/cast"
	"pine/internal/ccompiler"
	"pine/internal/diag"
	"pine/internal/driver"
	"pine/internal/source"
	"pine/internal/trace"
	runtimeembed "pine/runtime"
)

const (
	// DefaultBuildDir is the only build directory Build wipes before writing.
	DefaultBuildDir = ".build"
	// DefaultOutputName names the executable when the request leaves it empty.
	DefaultOutputName = "out"
	// OutDir holds the executable inside the build directory.
	OutDir = "out"
	// ParsedDump is written next to the C files with EmitIRs.
	ParsedDump = "parsed.txt"
)

// Request configures one build.
type Request struct {
	Path       string // .pn source
	BuildDir   string
	OutputName string

	Compiler ccompiler.Runner // nil selects gcc
	Opt      ccompiler.OptLevel

	// EmitIRs also writes parsed.txt; it bypasses the disk cache since the AST is needed.
	EmitIRs bool
	Run     bool
	RunArgs []string
	Stdout  io.Writer
	Stderr  io.Writer

	Files          *source.Cache
	Cache          *driver.DiskCache
	MaxDiagnostics int
	Progress       ProgressSink
}

// Result captures build artefacts and timings.
type Result struct {
	BuildID    ksuid.KSUID
	BuildDir   string
	OutputPath string
	// Generated lists every file written into the build directory, sorted.
	Generated []string
	Bag       *diag.Bag
	Cached    bool
	Timings   Timings
	ExitCode  int
}

// ErrMissingSource is returned for a request without a source path.
var ErrMissingSource = errors.New("missing source file")

// Build runs parse → check → lower → emit → runtime → compile (→ run).
// Diagnostics are returned in Result.Bag; err wraps driver.ErrDiagnostics
// when they stopped the build.
func Build(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil || req.Path == "" {
		return result, ErrMissingSource
	}
	p := newPipeline(req)
	result.BuildID = ksuid.New()
	result.BuildDir = p.buildDir
	result.OutputPath = filepath.Join(p.buildDir, OutDir, p.outputName)

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "build")
	span.WithExtra("build_id", result.BuildID.String())
	defer span.End(req.Path)

	err := p.run(ctx, &result)
	if err != nil {
		trace.Fail(ctx, "build", err)
	}
	sort.Strings(result.Generated)
	return result, err
}

type pipeline struct {
	req        *Request
	files      *source.Cache
	compiler   ccompiler.Runner
	buildDir   string
	outputName string
	unit       string
}

func newPipeline(req *Request) *pipeline {
	p := &pipeline{
		req:        req,
		files:      req.Files,
		compiler:   req.Compiler,
		buildDir:   req.BuildDir,
		outputName: req.OutputName,
		unit:       driver.UnitName(req.Path),
	}
	if p.files == nil {
		p.files = driver.NewCache()
	}
	if p.compiler == nil {
		p.compiler = ccompiler.Gcc{}
	}
	if p.buildDir == "" {
		p.buildDir = DefaultBuildDir
	}
	if p.outputName == "" {
		p.outputName = DefaultOutputName
	}
	return p
}

// stage times fn and reports it to the sink and the result timings.
func (p *pipeline) stage(ctx context.Context, res *Result, stage Stage, fn func(ctx context.Context) error) error {
	ctx, span := trace.Start(ctx, trace.ScopePass, string(stage))
	emitStage(p.req.Progress, p.req.Path, stage, StatusWorking, nil, 0)
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	span.End(p.unit)
	res.Timings.Set(stage, elapsed)
	if err != nil {
		emitStage(p.req.Progress, p.req.Path, stage, StatusError, err, elapsed)
		return err
	}
	emitStage(p.req.Progress, p.req.Path, stage, StatusDone, nil, elapsed)
	return nil
}

func (p *pipeline) run(ctx context.Context, res *Result) error {
	file, err := driver.Load(p.files, p.req.Path)
	if err != nil {
		emitStage(p.req.Progress, p.req.Path, StageParse, StatusError, err, 0)
		return err
	}
	res.Bag = diag.NewBag(p.req.MaxDiagnostics)

	if err := prepareBuildDir(p.buildDir); err != nil {
		return err
	}

	var out *driver.Output
	cached := false
	if !p.req.EmitIRs {
		out, cached = driver.LookupCache(ctx, p.req.Cache, file, true)
	}
	if cached {
		res.Cached = true
		for _, st := range []Stage{StageParse, StageCheck, StageLower} {
			emitStage(p.req.Progress, p.req.Path, st, StatusCached, nil, 0)
		}
		err = p.stage(ctx, res, StageEmit, func(context.Context) error {
			return p.writeOutput(res, out)
		})
	} else {
		err = p.frontend(ctx, res, file)
	}
	if err != nil {
		return err
	}

	var rt runtimeembed.Extracted
	err = p.stage(ctx, res, StageRuntime, func(context.Context) error {
		var err error
		rt, err = runtimeembed.Extract(p.buildDir)
		for _, path := range rt.Files {
			res.Generated = append(res.Generated, filepath.Base(path))
		}
		return err
	})
	if err != nil {
		return err
	}

	err = p.stage(ctx, res, StageCompile, func(ctx context.Context) error {
		if err := p.compiler.Available(ctx); err != nil {
			return err
		}
		sources := []string{
			filepath.Join(p.buildDir, p.unit+".c"),
			filepath.Join(p.buildDir, "main.c"),
		}
		return p.compiler.Compile(ctx, ccompiler.Options{
			OutputDir:  filepath.Join(p.buildDir, OutDir),
			OutputName: p.outputName,
			Files:      append(sources, rt.Sources...),
			Opt:        p.req.Opt,
		})
	})
	if err != nil || !p.req.Run {
		return err
	}

	return p.stage(ctx, res, StageRun, func(ctx context.Context) error {
		code, err := execute(ctx, res.OutputPath, p.req.RunArgs, p.req.Stdout, p.req.Stderr)
		res.ExitCode = code
		return err
	})
}

// frontend runs parse..emit on a cache miss.
func (p *pipeline) frontend(ctx context.Context, res *Result, file *source.File) error {
	var pr *driver.ParseResult
	err := p.stage(ctx, res, StageParse, func(ctx context.Context) error {
		var err error
		pr, err = driver.ParseFile(ctx, file, p.req.MaxDiagnostics)
		if err != nil {
			return err
		}
		res.Bag = pr.Bag
		if !pr.OK() {
			return fmt.Errorf("%s: parse: %w", p.req.Path, driver.ErrDiagnostics)
		}
		if p.req.EmitIRs {
			return p.writeDump(res, pr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = p.stage(ctx, res, StageCheck, func(context.Context) error {
		if err := driver.CheckUnit(pr, true); err != nil {
			return fmt.Errorf("%s: check: %w", p.req.Path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var tu *cast.TranslationUnit
	err = p.stage(ctx, res, StageLower, func(context.Context) error {
		var err error
		if tu, err = driver.Lower(pr, p.unit); err != nil {
			return fmt.Errorf("%s: lower: %w", p.req.Path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return p.stage(ctx, res, StageEmit, func(ctx context.Context) error {
		out := driver.Emit(tu, true)
		if err := p.writeOutput(res, out); err != nil {
			return err
		}
		driver.StoreCache(ctx, p.req.Cache, file, out, true)
		return nil
	})
}

func (p *pipeline) writeOutput(res *Result, out *driver.Output) error {
	for name, text := range out.Files() {
		if err := os.WriteFile(filepath.Join(p.buildDir, name), []byte(text), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		res.Generated = append(res.Generated, name)
	}
	return nil
}

func (p *pipeline) writeDump(res *Result, pr *driver.ParseResult) error {
	path := filepath.Join(p.buildDir, ParsedDump)
	// #nosec G304 -- path is derived from build output configuration
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write AST dump: %w", err)
	}
	if err := driver.DumpAST(f, pr.Builder, pr.FileID); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write AST dump: %w", err)
	}
	res.Generated = append(res.Generated, ParsedDump)
	return f.Close()
}

// prepareBuildDir recreates a directory named .build and only ensures any
// other exists, so a mistyped --dir never wipes user files.
func prepareBuildDir(dir string) error {
	if filepath.Base(filepath.Clean(dir)) == DefaultBuildDir {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to clean build dir: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, OutDir), 0o750); err != nil {
		return fmt.Errorf("failed to create build dir: %w", err)
	}
	return nil
}

// Clean removes dir when it is a .build directory.
func Clean(dir string) error {
	if dir == "" {
		dir = DefaultBuildDir
	}
	if filepath.Base(filepath.Clean(dir)) != DefaultBuildDir {
		return fmt.Errorf("refusing to remove %q: not a %s directory", dir, DefaultBuildDir)
	}
	return os.RemoveAll(dir)
}

// execute runs the built program and returns its exit code. A non-zero
// exit is not an error.
func execute(ctx context.Context, path string, args []string, stdout, stderr io.Writer) (int, error) {
	// #nosec G204 -- path is the executable this build just produced
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("failed to run %s: %w", path, err)
	}
	return 0, nil
}
