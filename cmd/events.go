package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gsqa/core/generator"
	"github.com/tristendillon/gsqa/core/logger"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Scaffold a test for every event definition",
	Long:  `Writes a test stub for each event definition that does not have one yet.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("events called")
		dir, cfg, err := project()
		if err != nil {
			return err
		}

		g, err := generator.NewScaffoldGenerator(dir, cfg)
		if err != nil {
			return err
		}

		if _, err := g.ScaffoldEventTests(); err != nil {
			return fmt.Errorf("failed to scaffold event tests: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
