package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gsqa/core/generator"
	"github.com/tristendillon/gsqa/core/logger"
)

var (
	skipInstall bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the test harness and scaffold event tests",
	Long: `Writes the mocha helpers and configs, adds test scripts to package.json,
creates .test.env from .env, installs @types/mocha if missing, and writes a
test stub for every event definition.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")
		dir, cfg, err := project()
		if err != nil {
			return err
		}

		g, err := generator.NewScaffoldGenerator(dir, cfg)
		if err != nil {
			return err
		}
		g.SkipInstall = skipInstall

		if _, err := g.Scaffold(cmd.Context()); err != nil {
			return fmt.Errorf("failed to scaffold tests: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Next Steps:\n")
		fmt.Fprintf(cmd.OutOrStdout(), "  - fill in the generated tests under %s\n", cfg.Tests.Output)
		fmt.Fprintf(cmd.OutOrStdout(), "  - npm test\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Do not check for or install the dev dependency")
}
