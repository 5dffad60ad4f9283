package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pine/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pinec build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return err
		}
		if short {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), version.Version)
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), version.Banner())
		return err
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version number")
}
