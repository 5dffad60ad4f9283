package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"pine/internal/driver"
	"pine/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] file.pn",
	Short: "Print a pine source file in canonical layout",
	Long:  `Fmt re-prints a pine source file from its syntax tree. Comments are not preserved.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "write the result back to the file")
	fmtCmd.Flags().Bool("diff", false, "print a unified diff instead of the formatted source")
	fmtCmd.MarkFlagsMutuallyExclusive("write", "diff")
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return fmt.Errorf("failed to get diff flag: %w", err)
	}
	opts, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	files := driver.NewCache()
	result, err := driver.Parse(cmd.Context(), files, path, opts.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := reportBag(cmd, result.Bag, files, opts); err != nil {
		return err
	}

	formatted, err := format.FormatFile(result.File, result.Builder, result.FileID)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	switch {
	case write:
		if bytes.Equal(formatted, result.File.Content) {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %q: %w", path, err)
		}
		if err := os.WriteFile(path, formatted, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %q: %w", path, err)
		}
		if !opts.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "formatted %s\n", path)
		}
		return nil
	case showDiff:
		text, err := unifiedDiff(path, result.File.Content, formatted)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	default:
		_, err = cmd.OutOrStdout().Write(formatted)
		return err
	}
}

// unifiedDiff returns "" when before and after are equal.
func unifiedDiff(path string, before, after []byte) (string, error) {
	if bytes.Equal(before, after) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
}
