// Command pinec compiles pine source to C and native executables.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pine/internal/prof"
	"pine/internal/ui"
	"pine/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pinec",
	Short: "pine language compiler",
	Long:  `pinec translates pine programs to C and builds them with gcc or clang`,

	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupCommand,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace encoding (auto|text|json)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile of pinec to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile of pinec to file")
	rootCmd.PersistentFlags().String("exec-trace", "", "write a Go execution trace of pinec to file")
}

// main runs the root command and maps its error to the process exit status.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	stopTracing(rootCmd)
	if profErr := profiling.Stop(); profErr != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", profErr)
	}
	os.Exit(exitCode(err))
}

// exitCode prints err unless it was already reported and picks the status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return 1
}

// setupCommand applies --color, then starts profiling and tracing.
func setupCommand(cmd *cobra.Command, args []string) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := ui.ParseMode(colorFlag)
	if err != nil {
		return fmt.Errorf("--color: %w", err)
	}
	color.NoColor = !mode.Enabled(os.Stdout)
	if err := startProfiling(cmd); err != nil {
		return err
	}
	return startTracing(cmd, args)
}

var profiling *prof.Session

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return err
	}
	if cfg.Mem, err = flags.GetString("memprofile"); err != nil {
		return err
	}
	if cfg.Trace, err = flags.GetString("exec-trace"); err != nil {
		return err
	}
	if !cfg.Enabled() {
		return nil
	}
	profiling, err = prof.Start(cfg)
	return err
}

// errReported means the failure was already printed as diagnostics.
var errReported = errors.New("compilation failed")

// exitStatus carries the exit code of a program started by build --run.
type exitStatus int

func (s exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(s))
}
