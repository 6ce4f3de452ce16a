package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gsqa/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of gsqa",
	Long:  `Displays the version of gsqa.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gsqa %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
