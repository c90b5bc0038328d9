// Package cave implements the cellular-automata cave generator: a random
// seed grid smoothed by several passes of a 4-5 birth/death rule into
// organic cavern shapes.
package cave

import (
	"github.com/sirupsen/logrus"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/connectivity"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

// ConnectivityPolicy chooses how disconnected cave pockets are resolved.
type ConnectivityPolicy int

const (
	KeepLargest ConnectivityPolicy = iota
	StitchPolicy
)

// Options controls cave generation. Zero-value fields are replaced with
// their documented defaults by Generate.
type Options struct {
	// InitialDensity is the probability an interior cell starts as wall.
	// The survival rule needs a floor majority in the seed grid or the
	// caves collapse within a pass or two.
	InitialDensity   float64
	Iterations       int
	EnsureConnected  bool
	ConnectivityMode ConnectivityPolicy
	PlaceMarkers     bool
	Logger           *logrus.Logger
}

// Stats reports quality metadata about the generated cave.
type Stats struct {
	FloorPercentage float64
	RegionCount     int
	Start, End      connectivity.Point
	MarkersPlaced   bool
}

// Generate produces an N×N cave using the 4-5 cellular automata rule.
func Generate(s *prng.Source, size int, opts Options) (*grid.Grid, Stats, error) {
	density := opts.InitialDensity
	if density == 0 {
		density = 0.45
	}
	iterations := opts.Iterations
	if iterations == 0 {
		iterations = 3
	}

	log := opts.Logger
	if log != nil && log.GetLevel() >= logrus.DebugLevel {
		log.WithFields(logrus.Fields{
			"size": size, "density": density, "iterations": iterations,
		}).Debug("starting cave generation")
	}

	g := grid.New(size, tiles.Wall)
	initializeNoise(g, s, density)

	for i := 0; i < iterations; i++ {
		smoothingPass(g)
	}

	if opts.EnsureConnected {
		if opts.ConnectivityMode == StitchPolicy {
			connectivity.Stitch(g, tiles.Corridor)
		} else {
			connectivity.KeepLargestRegion(g)
		}
	}

	var stats Stats
	if opts.PlaceMarkers {
		start, end, ok := connectivity.PlaceMarkers(g, s)
		stats.Start, stats.End, stats.MarkersPlaced = start, end, ok
	}

	stats.RegionCount = len(connectivity.EnumerateRegions(g))
	stats.FloorPercentage = floorPercentage(g)

	return g, stats, nil
}

func initializeNoise(g *grid.Grid, s *prng.Source, density float64) {
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if x == 0 || x == g.Size-1 || y == 0 || y == g.Size-1 {
				g.Set(x, y, tiles.Wall)
				continue
			}
			if s.Chance(density) {
				g.Set(x, y, tiles.Wall)
			} else {
				g.Set(x, y, tiles.Floor)
			}
		}
	}
}

// smoothingPass applies the 4-5 rule from a snapshot of the prior pass, so
// every cell in the new pass is computed from the same starting state.
func smoothingPass(g *grid.Grid) {
	prev := g.Snapshot()

	floorAt := func(x, y int) bool {
		if x < 0 || x >= g.Size || y < 0 || y >= g.Size {
			return false
		}
		return prev[y][x] == tiles.Floor
	}

	for y := 1; y < g.Size-1; y++ {
		for x := 1; x < g.Size-1; x++ {
			n1 := countFloor(floorAt, x, y, 1)
			n2 := countFloor(floorAt, x, y, 2)

			var next tiles.Tile
			switch {
			case n2 == 0:
				next = tiles.Floor
			case n1 >= 5:
				next = tiles.Floor
			default:
				next = tiles.Wall
			}
			g.Set(x, y, next)
		}
	}
}

func countFloor(floorAt func(x, y int) bool, cx, cy, radius int) int {
	count := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if floorAt(cx+dx, cy+dy) {
				count++
			}
		}
	}
	return count
}

func floorPercentage(g *grid.Grid) float64 {
	floor := 0
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if tiles.IsFloorLike(g.At(x, y)) {
				floor++
			}
		}
	}
	return float64(floor) / float64(g.Size*g.Size) * 100
}
