package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcclowes/tilemapgen/pkg/history"
	"github.com/mcclowes/tilemapgen/pkg/mapgen"
	"github.com/mcclowes/tilemapgen/pkg/presets"
)

var (
	genKind   string
	genSize   int
	genSeed   int64
	genPreset string
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "g"},
	Short:   "Generate a single map and print its stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, size, opts, err := resolveRequest()
		if err != nil {
			return err
		}
		opts.Logger = logger

		start := time.Now()
		result, err := mapgen.Generate(kind, size, opts)
		elapsed := time.Since(start)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		fmt.Printf("kind=%s size=%d seed=%d generation_id=%s duration=%s\n",
			kind, size, result.SeedUsed, result.GenerationID, elapsed)
		for k, v := range result.Stats {
			fmt.Printf("  %s: %v\n", k, v)
		}

		if historyPath != "" {
			if err := archive(kind, size, result, elapsed); err != nil {
				return err
			}
		}
		return nil
	},
}

// resolveRequest builds a (Kind, size, Options) triple from either a named
// preset or the --kind/--size/--seed flags, preferring the preset when set.
func resolveRequest() (mapgen.Kind, int, mapgen.Options, error) {
	if genPreset != "" {
		if presetsPath == "" {
			return 0, 0, mapgen.Options{}, fmt.Errorf("--preset requires --presets to point at a presets.yaml file")
		}
		doc, err := presets.Load(presetsPath)
		if err != nil {
			return 0, 0, mapgen.Options{}, err
		}
		return doc.Resolve(genPreset)
	}

	kind, err := mapgen.ParseKind(genKind)
	if err != nil {
		return 0, 0, mapgen.Options{}, err
	}
	opts := mapgen.Options{}
	if genSeed >= 0 {
		s := uint32(genSeed)
		opts.Seed = &s
	}
	return kind, genSize, opts, nil
}

func archive(kind mapgen.Kind, size int, result mapgen.Result, elapsed time.Duration) error {
	store, err := history.Open(historyPath)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()
	if err := store.Record(kind, size, result, elapsed); err != nil {
		return fmt.Errorf("recording generation: %w", err)
	}
	return nil
}

func init() {
	generateCmd.Flags().StringVarP(&genKind, "kind", "k", "caves", "generator kind")
	generateCmd.Flags().IntVarP(&genSize, "size", "s", 32, "grid size (NxN)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", -1, "seed (negative derives one from the current time)")
	generateCmd.Flags().StringVarP(&genPreset, "preset", "p", "", "named preset from --presets (overrides --kind/--size/--seed)")
}
