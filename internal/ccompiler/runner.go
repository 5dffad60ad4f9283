// Package ccompiler drives the system C compiler over generated sources.
package ccompiler

//go:generate mockgen -destination=mock/runner.go -package=mock pine/internal/ccompiler Runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrUnknownCompiler is returned by ByName for unsupported compilers.
var ErrUnknownCompiler = errors.New("unknown C compiler")

type OptLevel uint8

const (
	Debug         OptLevel = iota // -g
	Release                       // -O3
	UnsafeRelease                 // -Ofast
)

func (o OptLevel) Flag() string {
	switch o {
	case Release:
		return "-O3"
	case UnsafeRelease:
		return "-Ofast"
	default:
		return "-g"
	}
}

func (o OptLevel) String() string {
	switch o {
	case Release:
		return "release"
	case UnsafeRelease:
		return "unsafe-release"
	default:
		return "debug"
	}
}

// ParseOptLevel accepts the names produced by String.
func ParseOptLevel(s string) (OptLevel, error) {
	switch s {
	case "", "debug":
		return Debug, nil
	case "release":
		return Release, nil
	case "unsafe-release":
		return UnsafeRelease, nil
	}
	return Debug, fmt.Errorf("unknown optimization level %q (expected debug, release or unsafe-release)", s)
}

// Options describe one compiler invocation.
type Options struct {
	OutputDir  string
	OutputName string
	Files      []string
	Opt        OptLevel
}

// OutputPath is where the executable is written.
func (o Options) OutputPath() string {
	return filepath.Join(o.OutputDir, o.OutputName)
}

// Runner is a C compiler.
type Runner interface {
	Name() string
	// Available fails when the compiler cannot be started.
	Available(ctx context.Context) error
	Args(opts Options) []string
	Compile(ctx context.Context, opts Options) error
}

// ByName returns the runner for "gcc" or "clang".
func ByName(name string) (Runner, error) {
	switch name {
	case "", "gcc":
		return Gcc{}, nil
	case "clang":
		return Clang{}, nil
	}
	return nil, fmt.Errorf("%w: %q (supported: gcc, clang)", ErrUnknownCompiler, name)
}

// Gcc compiles in strict C99 with warnings as errors.
type Gcc struct{}

func (Gcc) Name() string { return "gcc" }

func (g Gcc) Available(ctx context.Context) error { return probe(ctx, g.Name()) }

func (Gcc) Args(opts Options) []string {
	args := make([]string, 0, len(opts.Files)+5)
	args = append(args, "-o", opts.OutputPath(), "-std=c99", "-Werror")
	args = append(args, opts.Files...)
	return append(args, opts.Opt.Flag())
}

func (g Gcc) Compile(ctx context.Context, opts Options) error {
	return run(ctx, g.Name(), g.Args(opts))
}

type Clang struct{}

func (Clang) Name() string { return "clang" }

func (c Clang) Available(ctx context.Context) error { return probe(ctx, c.Name()) }

func (Clang) Args(opts Options) []string {
	args := make([]string, 0, len(opts.Files)+3)
	args = append(args, "-o", opts.OutputPath())
	args = append(args, opts.Files...)
	return append(args, opts.Opt.Flag())
}

func (c Clang) Compile(ctx context.Context, opts Options) error {
	return run(ctx, c.Name(), c.Args(opts))
}

func probe(ctx context.Context, name string) error {
	cmd := exec.CommandContext(ctx, name, "-v")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s is not available: %w", name, err)
	}
	return nil
}

func run(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %s", name, msg)
	}
	return nil
}
