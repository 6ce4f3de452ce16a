package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gsqa/core/config"
	"github.com/tristendillon/gsqa/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gsqa",
	Short: "Scaffolds mocha tests for Godspeed projects.",
	Long: `gsqa sets up a mocha/chai test harness for a Godspeed project and writes
a starter test for every event definition under src/events.
Existing files are never overwritten, so it is safe to re-run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		logger.SetErrorWriter()
		if logfile == "" {
			return nil
		}
		closer, err := logger.AddLogFile(logfile)
		if err != nil {
			return err
		}
		logCloser = closer
		return nil
	},
}

var (
	logfile    string
	verbose    bool
	configPath string
	projectDir string
	logCloser  io.Closer
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// closeLogFile runs after every command, including failed ones.
func closeLogFile() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

// project resolves the project root and loads its config.
func project() (string, *config.Config, error) {
	if projectDir == "" && configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg, err := config.Load()
		if err != nil {
			return "", nil, fmt.Errorf("failed to get config: %w", err)
		}
		return wd, cfg, nil
	}

	dir := projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	path := configPath
	if path == "" {
		path = filepath.Join(dir, config.FileName)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get config: %w", err)
	}
	return dir, cfg, nil
}

func init() {
	cobra.OnFinalize(closeLogFile)
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to gsqa.yaml (default <dir>/gsqa.yaml)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "", "Project root (default current directory)")
}
