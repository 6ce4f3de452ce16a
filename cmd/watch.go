package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gsqa/core/generator"
	"github.com/tristendillon/gsqa/core/logger"
	"github.com/tristendillon/gsqa/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Scaffold event tests as definitions are added",
	Long:  `Watches the events directory and writes test stubs for new event definitions until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("watch called")
		dir, cfg, err := project()
		if err != nil {
			return err
		}

		g, err := generator.NewScaffoldGenerator(dir, cfg)
		if err != nil {
			return err
		}

		root := g.Layout().SourceRoot
		if _, err := os.Stat(root); err != nil {
			return fmt.Errorf("cannot watch %s: %w", cfg.Events.Source, err)
		}

		fw, err := watcher.NewFileWatcher(root, cfg.Events.Extension, cfg.Events.Exclude)
		if err != nil {
			return err
		}
		defer fw.Close()

		scaffold := func() error {
			_, err := g.ScaffoldEventTests()
			return err
		}
		fw.FileWatcher.AddOnStartFunc(scaffold)
		fw.FileWatcher.AddOnChangeFunc(scaffold)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("Watching %s for new event definitions", cfg.Events.Source)
		return fw.Watch(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
