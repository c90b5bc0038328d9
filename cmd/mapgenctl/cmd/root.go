package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mcclowes/tilemapgen/pkg/logging"
)

var (
	historyPath string
	presetsPath string
	verbose     bool

	logger = logging.CLILogger()
)

var rootCmd = &cobra.Command{
	Use:   "mapgenctl",
	Short: "Generate, sweep, and benchmark procedural tile maps",
	Long: `mapgenctl drives pkg/mapgen from the command line.

It provides commands for:
  - Generating a single map from a kind and seed, or a named preset
  - Sweeping a range of seeds and archiving the results
  - Benchmarking generation throughput for a kind and size`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
		return nil
	},
}

// Execute runs the root command; it is the sole entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&historyPath, "history", "", "optional SQLite database path to archive generation results")
	rootCmd.PersistentFlags().StringVar(&presetsPath, "presets", "", "optional presets.yaml path for named configurations")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(benchCmd)
}
