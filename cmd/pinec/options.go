package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pine/internal/diag"
	"pine/internal/diagfmt"
	"pine/internal/source"
	"pine/internal/ui"
)

// globalOptions are the persistent flags every command reads.
type globalOptions struct {
	color          ui.Mode
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobals(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts globalOptions

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	if opts.color, err = ui.ParseMode(colorFlag); err != nil {
		return opts, fmt.Errorf("--color: %w", err)
	}
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.maxDiagnostics < 0 {
		return opts, fmt.Errorf("--max-diagnostics must not be negative")
	}
	return opts, nil
}

// printDiagnostics renders bag sorted by position. Color follows --color
// against stderr.
func printDiagnostics(w io.Writer, bag *diag.Bag, files source.Files, opts globalOptions) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	return diagfmt.Pretty(w, bag.Items(), files, diagfmt.PrettyOpts{
		Color:     opts.color.Enabled(os.Stderr),
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	})
}

// reportBag prints diagnostics to stderr and returns errReported when any of
// them is an error.
func reportBag(cmd *cobra.Command, bag *diag.Bag, files source.Files, opts globalOptions) error {
	if err := printDiagnostics(cmd.ErrOrStderr(), bag, files, opts); err != nil {
		return fmt.Errorf("failed to print diagnostics: %w", err)
	}
	if bag != nil && bag.HasErrors() {
		return errReported
	}
	return nil
}
