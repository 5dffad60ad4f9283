package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pine/internal/driver"
	"pine/internal/observ"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.pn|directory>",
	Short: "Parse a pine source file or directory",
	Long:  `Parse checks the syntax of a pine file or of every *.pn file in a directory and optionally dumps the AST`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("dump", false, "print the AST")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	var timer *observ.Timer
	if opts.timings {
		timer = observ.NewTimer()
		defer func() { fmt.Fprint(cmd.ErrOrStderr(), timer.Summary()) }()
	}

	st, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	files := driver.NewCache()
	ctx, done := timer.Track(cmd.Context(), "parse")

	if !st.IsDir() {
		result, err := driver.Parse(ctx, files, args[0], opts.maxDiagnostics)
		done(args[0])
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if err := reportBag(cmd, result.Bag, files, opts); err != nil {
			return err
		}
		if dump {
			return driver.DumpAST(cmd.OutOrStdout(), result.Builder, result.FileID)
		}
		if !opts.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
		}
		return nil
	}

	results, err := driver.ParseDir(ctx, files, args[0], opts.maxDiagnostics, jobs)
	done(fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Parse == nil {
			continue
		}
		if err := printDiagnostics(cmd.ErrOrStderr(), r.Parse.Bag, files, opts); err != nil {
			return err
		}
		if !r.Parse.OK() {
			failed++
			continue
		}
		if r.Invariant != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: internal: %v\n", r.Path, r.Invariant)
			continue
		}
		if dump {
			fmt.Fprintf(cmd.OutOrStdout(), "== %s\n", r.Path)
			if err := driver.DumpAST(cmd.OutOrStdout(), r.Parse.Builder, r.Parse.FileID); err != nil {
				return err
			}
		}
	}
	if !opts.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "parsed %d files, %d failed\n", len(results), failed)
	}
	if failed > 0 {
		return errReported
	}
	return nil
}
