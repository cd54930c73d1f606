package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-schedule-editor/pkg/config"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "schedule-editor",
	Short: "Lesson schedule editing and consistency service",
	Long: `schedule-editor serves the weekly lesson schedule editor: drag and drop
transitions with conflict checks, per-scope undo history and reconciliation
of schedules against the teaching plan.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file to load before reading the environment")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
