package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"langcat/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "langcat %s\n", version.Version)
	},
}
