package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pine/internal/buildpipeline"
	"pine/internal/driver"
	"pine/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove the .build directory",
	Long:  "Remove the .build directory of the current directory or of the pine.toml project, optionally with the C cache.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().Bool("cache", false, "also drop the generated C cache")
}

func runClean(cmd *cobra.Command, args []string) error {
	dropCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	opts, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	dir, err := cleanTarget(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, statErr := os.Stat(dir); errors.Is(statErr, os.ErrNotExist) {
		if !opts.quiet {
			fmt.Fprintf(out, "%s not found\n", dir)
		}
	} else {
		if err := buildpipeline.Clean(dir); err != nil {
			return err
		}
		if !opts.quiet {
			fmt.Fprintf(out, "removed %s\n", dir)
		}
	}

	if dropCache {
		cache, err := driver.OpenDiskCache("pine")
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return err
		}
		if !opts.quiet {
			fmt.Fprintf(out, "dropped %s\n", cache.Dir())
		}
	}
	return nil
}

// cleanTarget finds the build directory: the manifest's when there is one,
// ./.build otherwise.
func cleanTarget(path string) (string, error) {
	target, err := project.Resolve(path)
	switch {
	case err == nil:
		return target.BuildDir, nil
	case errors.Is(err, project.ErrNoManifest):
		return buildpipeline.DefaultBuildDir, nil
	}
	return "", err
}
