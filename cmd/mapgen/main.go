// Command mapgen is a single-shot demo driver for pkg/mapgen: it generates
// one grid with the chosen kind and seed and renders it to the console as
// ASCII art, or as a stats-only summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/mcclowes/tilemapgen/pkg/logging"
	"github.com/mcclowes/tilemapgen/pkg/mapgen"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

var (
	kindFlag  = flag.String("kind", "caves", "Generator kind: default, caves, drunkard, bsp, wfc, maze, or perlin")
	size      = flag.Int("size", 32, "Grid size (NxN)")
	seed      = flag.Int64("seed", -1, "Generation seed; negative means derive one from the current time")
	ensure    = flag.Bool("ensure-connected", true, "Require the generated grid to be a single connected region")
	markers   = flag.Bool("markers", false, "Place Start/End markers")
	visualize = flag.String("visualize", "ascii", "Visualization mode: ascii or stats")
	logLevel  = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	logger := logging.NewLogger(logging.Config{
		Level:  logging.LogLevel(*logLevel),
		Format: logging.TextFormat,
	})

	kind, err := mapgen.ParseKind(*kindFlag)
	if err != nil {
		log.Fatalf("invalid kind: %v", err)
	}

	ensureVal, markersVal := *ensure, *markers
	opts := mapgen.Options{
		EnsureConnected: &ensureVal,
		PlaceMarkers:    &markersVal,
		Logger:          logger,
	}
	if *seed >= 0 {
		s := uint32(*seed)
		opts.Seed = &s
	}

	result, err := mapgen.Generate(kind, *size, opts)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	logging.GenerationLogger(logger, kind.String(), *size, result.SeedUsed).Info("generation complete")

	switch *visualize {
	case "stats":
		fmt.Print(renderStats(kind, result))
	default:
		fmt.Print(renderGrid(kind, result))
	}
}

func renderGrid(kind mapgen.Kind, r mapgen.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %dx%d (seed %d)\n\n", kind, r.Grid.Size, r.Grid.Size, r.SeedUsed)

	vocab := tiles.Dungeon
	if kind == mapgen.Perlin {
		vocab = tiles.Terrain
	}
	for y := 0; y < r.Grid.Size; y++ {
		for x := 0; x < r.Grid.Size; x++ {
			b.WriteString(tileChar(r.Grid.At(x, y), vocab))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderStats(kind, r))
	return b.String()
}

// tileChar mirrors terraintest's getTileChar legend, extended for the
// terrain vocabulary's water/biome tiles.
func tileChar(t tiles.Tile, vocab tiles.Vocabulary) string {
	if vocab == tiles.Terrain {
		switch t {
		case tiles.DeepWater:
			return "~"
		case tiles.Water:
			return "W"
		case tiles.Sand:
			return ","
		case tiles.Grass:
			return "\""
		case tiles.Forest:
			return "T"
		case tiles.Mountain:
			return "^"
		default:
			return "?"
		}
	}
	switch t {
	case tiles.Wall:
		return "#"
	case tiles.Floor:
		return "."
	case tiles.Door:
		return "+"
	case tiles.SecretDoor:
		return "?"
	case tiles.Corridor:
		return ":"
	case tiles.Start:
		return "S"
	case tiles.End:
		return "E"
	default:
		return "?"
	}
}

func renderStats(kind mapgen.Kind, r mapgen.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "kind: %s\nseed: %d\ngeneration_id: %s\n", kind, r.SeedUsed, r.GenerationID)
	keys := make([]string, 0, len(r.Stats))
	for k := range r.Stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, r.Stats[k])
	}
	return b.String()
}
