package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pine/internal/diagfmt"
	"pine/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.pn",
	Short: "Tokenize a pine source file",
	Long:  `Tokenize breaks a pine source file into tokens, including INDENT and DEDENT`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	opts, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	files := driver.NewCache()
	result, err := driver.Tokenize(cmd.Context(), files, args[0], opts.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// диагностика в stderr, токены всё равно печатаем
	if err := printDiagnostics(cmd.ErrOrStderr(), result.Bag, files, opts); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, files)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, files)
	case "yaml":
		err = diagfmt.FormatTokensYAML(out, result.Tokens, files)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
