package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mcclowes/tilemapgen/pkg/mapgen"
	"github.com/mcclowes/tilemapgen/pkg/metrics"
)

var (
	benchKind string
	benchSize int
	benchRuns int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time repeated generations of one kind and size",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := mapgen.ParseKind(benchKind)
		if err != nil {
			return err
		}

		m := metrics.New()
		opts := mapgen.Options{Logger: logger, Metrics: m}

		start := time.Now()
		for i := 0; i < benchRuns; i++ {
			if _, err := mapgen.Generate(kind, benchSize, opts); err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
		}
		total := time.Since(start)
		avg := total / time.Duration(benchRuns)

		fmt.Printf("%s generations of %s %dx%d in %s (avg %s, %s/s)\n",
			humanize.Comma(int64(benchRuns)), kind, benchSize, benchSize,
			total.Round(time.Millisecond), avg.Round(time.Microsecond),
			humanize.Comma(int64(float64(benchRuns)/total.Seconds())))
		return nil
	},
}

func init() {
	benchCmd.Flags().StringVarP(&benchKind, "kind", "k", "caves", "generator kind")
	benchCmd.Flags().IntVarP(&benchSize, "size", "s", 32, "grid size (NxN)")
	benchCmd.Flags().IntVarP(&benchRuns, "runs", "n", 100, "number of generations to run")
}
