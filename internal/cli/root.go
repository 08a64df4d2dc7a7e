// Package cli wires the chartline commands.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the chartline command tree.
func NewRootCommand() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:   "chartline",
		Short: "Dense daily series for trailing-window area charts",
		Long: `chartline stores sparse dated records and turns them into gap-filled,
day-aligned tables for stacked area charts.

Examples:
  chartline serve --config chartline.yaml
  chartline render --file sales.jsonl --props sales --split-by region --range 30
  chartline render --file sales.json --props sales,refunds --output csv`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(newServeCommand())
	root.AddCommand(newRenderCommand())

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		return 1
	}
	return 0
}
