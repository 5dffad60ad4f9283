package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pine/internal/buildpipeline"
	"pine/internal/ccompiler"
	"pine/internal/driver"
	"pine/internal/project"
	"pine/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.pn] [-- args...]",
	Short: "Build a pine program",
	Long: `Build translates a pine program to C and compiles it with gcc or clang.
Without a file the program is described by pine.toml.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildExecution(cmd, args, false)
	},
}

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.pn] [-- args...]",
	Short: "Build and run a pine program",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildExecution(cmd, args, true)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{buildCmd, runCmd} {
		cmd.Flags().StringP("path", "p", "", "path to the source file or package")
		cmd.Flags().BoolP("emit-irs", "d", false, "also write the parsed AST to the build directory")
		cmd.Flags().String("compiler", "", "C compiler (gcc|clang)")
		cmd.Flags().Bool("release", false, "optimize with -O3")
		cmd.Flags().Bool("unsafe-release", false, "optimize with -Ofast")
		cmd.Flags().StringP("output", "o", "", "executable name")
		cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
		cmd.Flags().Bool("no-cache", false, "do not read or write the generated C cache")
		cmd.MarkFlagsMutuallyExclusive("release", "unsafe-release")
	}
	buildCmd.Flags().BoolP("run", "r", false, "run the program after compiling")
}

// buildFlags are the flags shared by build and run.
type buildFlags struct {
	path          string
	emitIRs       bool
	run           bool
	compiler      string
	release       bool
	unsafeRelease bool
	output        string
	ui            ui.Mode
	noCache       bool
}

func readBuildFlags(cmd *cobra.Command) (buildFlags, error) {
	var f buildFlags
	var err error
	flags := cmd.Flags()
	if f.path, err = flags.GetString("path"); err != nil {
		return f, err
	}
	if f.emitIRs, err = flags.GetBool("emit-irs"); err != nil {
		return f, err
	}
	if flags.Lookup("run") != nil {
		if f.run, err = flags.GetBool("run"); err != nil {
			return f, err
		}
	}
	if f.compiler, err = flags.GetString("compiler"); err != nil {
		return f, err
	}
	if f.release, err = flags.GetBool("release"); err != nil {
		return f, err
	}
	if f.unsafeRelease, err = flags.GetBool("unsafe-release"); err != nil {
		return f, err
	}
	if f.output, err = flags.GetString("output"); err != nil {
		return f, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = ui.ParseMode(uiValue); err != nil {
		return f, fmt.Errorf("--ui: %w", err)
	}
	if f.noCache, err = flags.GetBool("no-cache"); err != nil {
		return f, err
	}
	return f, nil
}

// splitArgs separates the source argument from the program arguments after "--".
func splitArgs(cmd *cobra.Command, args []string) (before, after []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// sourceArg merges -p with the positional file.
func sourceArg(flagPath string, positional []string) (string, error) {
	if len(positional) > 1 {
		return "", fmt.Errorf("expected at most one source file, got %d", len(positional))
	}
	if len(positional) == 1 {
		if flagPath != "" && flagPath != positional[0] {
			return "", fmt.Errorf("both --path %q and %q given", flagPath, positional[0])
		}
		return positional[0], nil
	}
	return flagPath, nil
}

// applyOverrides lets flags win over pine.toml.
func applyOverrides(target project.Target, f buildFlags) (ccompiler.Runner, ccompiler.OptLevel, string, error) {
	name := target.Compiler
	if f.compiler != "" {
		name = f.compiler
	}
	runner, err := ccompiler.ByName(name)
	if err != nil {
		return nil, 0, "", err
	}
	opt := target.Opt
	switch {
	case f.release:
		opt = ccompiler.Release
	case f.unsafeRelease:
		opt = ccompiler.UnsafeRelease
	}
	output := target.OutputName
	if f.output != "" {
		output = f.output
	}
	return runner, opt, output, nil
}

func buildExecution(cmd *cobra.Command, args []string, run bool) error {
	opts, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	f, err := readBuildFlags(cmd)
	if err != nil {
		return err
	}
	run = run || f.run

	positional, runArgs := splitArgs(cmd, args)
	path, err := sourceArg(f.path, positional)
	if err != nil {
		return err
	}
	target, err := project.Resolve(path)
	if err != nil {
		return err
	}
	runner, opt, output, err := applyOverrides(target, f)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !f.noCache {
		cache, err = driver.OpenDiskCache("pine")
		if err != nil && !opts.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: build cache disabled: %v\n", err)
		}
	}

	files := driver.NewCache()
	req := &buildpipeline.Request{
		Path:           target.Source,
		BuildDir:       target.BuildDir,
		OutputName:     output,
		Compiler:       runner,
		Opt:            opt,
		EmitIRs:        f.emitIRs,
		Run:            run,
		RunArgs:        runArgs,
		Stdout:         cmd.OutOrStdout(),
		Stderr:         cmd.ErrOrStderr(),
		Files:          files,
		Cache:          cache,
		MaxDiagnostics: opts.maxDiagnostics,
	}

	// программа сама пишет в терминал, поэтому с --run прогресс не рисуем
	var res buildpipeline.Result
	if !run && !opts.quiet && f.ui.Enabled(os.Stdout) {
		res, err = runBuildWithUI(cmd.Context(), "pinec build "+target.Source, req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), req)
	}

	if printErr := printDiagnostics(cmd.ErrOrStderr(), res.Bag, files, opts); printErr != nil {
		return fmt.Errorf("failed to print diagnostics: %w", printErr)
	}
	if opts.timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	if err != nil {
		if errors.Is(err, driver.ErrDiagnostics) {
			return errReported
		}
		return err
	}
	if !opts.quiet && !run {
		suffix := ""
		if res.Cached {
			suffix = " (cached C)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "built %s%s\n", res.OutputPath, suffix)
	}
	if run && res.ExitCode != 0 {
		return exitStatus(res.ExitCode)
	}
	return nil
}

type buildOutcome struct {
	result buildpipeline.Result
	err    error
}

func runBuildWithUI(ctx context.Context, title string, req *buildpipeline.Request) (buildpipeline.Result, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Build(ctx, &reqCopy)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	stages := buildpipeline.Stages[:len(buildpipeline.Stages)-1]
	uiErr := ui.Run(ctx, os.Stdout, title, stages, events)
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
