package mapgen

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/bsp"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/cave"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/drunkard"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/maze"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/perlin"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/wfc"
)

// MinSize is the minimum grid size Generate accepts.
const MinSize = 8

// defaultPlaceMarkers reports whether a kind places markers by default when
// the caller doesn't set Options.PlaceMarkers. True only for Maze.
func defaultPlaceMarkers(k Kind) bool {
	return k == Maze
}

// Generate is the facade's single entry point: it validates the arguments,
// builds a PRNG from the supplied or a fresh seed, dispatches to the
// matching generator, and returns the resulting grid, seed, and stats.
// Invalid arguments (bad kind, size below MinSize, an unrecognized
// variant/algorithm) are returned as errors; everything else a generator
// falls short on is reported through Result.Stats, never as an error.
func Generate(k Kind, size int, opts Options) (Result, error) {
	if size < MinSize {
		return Result{}, fmt.Errorf("%w: got %d", ErrSizeTooSmall, size)
	}
	if err := validateVariant(k, opts); err != nil {
		return Result{}, err
	}

	log := opts.Logger

	if k == Default {
		g, stats := generateStatic()
		stats["kind"] = k.String()
		return Result{
			Grid:         g,
			SeedUsed:     0,
			GenerationID: uuid.New(),
			Stats:        stats,
		}, nil
	}

	seed, seedProvided := uint32(0), false
	if opts.Seed != nil {
		seed, seedProvided = *opts.Seed, true
	}
	var source *prng.Source
	if seedProvided {
		source = prng.New(seed)
	} else {
		var derived uint32
		source, derived = prng.NewFromTime()
		seed = derived
	}

	ensureConnected := boolOr(opts.EnsureConnected, true)
	placeMarkers := boolOr(opts.PlaceMarkers, defaultPlaceMarkers(k))

	start := time.Now()
	g, stats, shortfall, backtracks, err := dispatch(k, source, size, opts, ensureConnected, placeMarkers, log)
	duration := time.Since(start)

	if err != nil {
		return Result{}, err
	}

	if m := opts.Metrics; m != nil {
		m.ObserveDuration(k.String(), duration.Seconds())
		if shortfall {
			m.RecordShortfall(k.String())
		}
		m.AddBacktracks(k.String(), backtracks)
	}

	stats["kind"] = k.String()
	stats["seed"] = seed

	return Result{
		Grid:         g,
		SeedUsed:     seed,
		GenerationID: uuid.New(),
		Stats:        stats,
	}, nil
}

func validateVariant(k Kind, opts Options) error {
	switch k {
	case DrunkardWalk:
		switch opts.Drunkard.Variant {
		case drunkard.Weighted, drunkard.Simple, drunkard.Multiple:
			return nil
		default:
			return fmt.Errorf("%w: drunkard variant %d", ErrUnknownVariant, opts.Drunkard.Variant)
		}
	case Maze:
		switch opts.Maze.Algorithm {
		case maze.Backtracking, maze.Prim, maze.RecursiveDivision:
			return nil
		default:
			return fmt.Errorf("%w: maze algorithm %d", ErrUnknownVariant, opts.Maze.Algorithm)
		}
	default:
		return nil
	}
}

// dispatch runs the generator matching k and folds its typed Stats into the
// facade's map[string]interface{} bag. It returns whether the run fell short
// of its quality target and how many WFC backtracks it consumed, both of
// which feed the optional metrics hooks in Generate.
func dispatch(k Kind, s *prng.Source, size int, opts Options, ensureConnected, placeMarkers bool, log *logrus.Logger) (*grid.Grid, map[string]interface{}, bool, int, error) {
	switch k {
	case Caves:
		o := opts.Cave
		o.EnsureConnected, o.PlaceMarkers, o.Logger = ensureConnected, placeMarkers, log
		g, stats, err := cave.Generate(s, size, o)
		return g, statsMap(stats), false, 0, err

	case DrunkardWalk:
		o := opts.Drunkard
		o.EnsureConnected, o.PlaceMarkers, o.Logger = ensureConnected, placeMarkers, log
		g, stats, err := drunkard.Generate(s, size, o)
		return g, statsMap(stats), !stats.ReachedTarget, 0, err

	case BSPDungeon:
		o := opts.BSP
		o.EnsureConnected, o.PlaceMarkers, o.Logger = ensureConnected, placeMarkers, log
		g, stats, err := bsp.Generate(s, size, o)
		return g, statsMap(stats), false, 0, err

	case WFC:
		o := opts.WFC
		o.PlaceMarkers, o.Logger = placeMarkers, log
		g, stats, err := wfc.Generate(s, size, o)
		return g, statsMap(stats), stats.GaveUp, stats.BacktracksUsed, err

	case Maze:
		o := opts.Maze
		o.PlaceMarkers, o.Logger = placeMarkers, log
		carved, stats, err := maze.Generate(s, size, o)
		g := embedOddGrid(carved, size)
		return g, statsMap(stats), false, 0, err

	case Perlin:
		o := opts.Perlin
		o.Logger = log
		g, stats, err := perlin.Generate(s, size, o)
		return g, statsMap(stats), false, 0, err

	default:
		return nil, nil, false, 0, fmt.Errorf("%w: %v", ErrInvalidKind, k)
	}
}

// embedOddGrid copies a (possibly size-1) maze grid into the top-left corner
// of a fresh size×size wall grid, so Generate's "dimensions are exactly as
// requested" guarantee holds even though the maze lattice itself must land
// on odd coordinates. The single extra row/column, when N is even, stays
// Wall, consistent with every generator's solid-border guarantee.
func embedOddGrid(carved *grid.Grid, size int) *grid.Grid {
	if carved.Size == size {
		return carved
	}
	g := grid.New(size, tiles.Wall)
	for y := 0; y < carved.Size; y++ {
		for x := 0; x < carved.Size; x++ {
			g.Set(x, y, carved.At(x, y))
		}
	}
	return g
}

// statsMap converts any generator's typed Stats struct into the facade's
// string-keyed bag via reflection-free field listing per kind, so each
// generator package keeps its own concrete Stats type for its own tests
// while the facade still presents one uniform shape.
func statsMap(v interface{}) map[string]interface{} {
	switch s := v.(type) {
	case cave.Stats:
		return map[string]interface{}{
			"floor_percentage": s.FloorPercentage,
			"region_count":     s.RegionCount,
			"markers_placed":   s.MarkersPlaced,
			"start":            s.Start,
			"end":              s.End,
		}
	case drunkard.Stats:
		return map[string]interface{}{
			"floor_percentage": s.FloorPercentage,
			"region_count":     s.RegionCount,
			"reached_target":   s.ReachedTarget,
			"steps_taken":      s.StepsTaken,
			"markers_placed":   s.MarkersPlaced,
			"start":            s.Start,
			"end":              s.End,
		}
	case bsp.Stats:
		return map[string]interface{}{
			"room_count":       s.RoomCount,
			"floor_percentage": s.FloorPercentage,
			"region_count":     s.RegionCount,
			"markers_placed":   s.MarkersPlaced,
			"start":            s.Start,
			"end":              s.End,
		}
	case wfc.Stats:
		return map[string]interface{}{
			"contradictions":   s.Contradictions,
			"backtracks_used":  s.BacktracksUsed,
			"gave_up":          s.GaveUp,
			"region_count":     s.RegionCount,
			"floor_percentage": s.FloorPercentage,
			"markers_placed":   s.MarkersPlaced,
			"start":            s.Start,
			"end":              s.End,
		}
	case maze.Stats:
		return map[string]interface{}{
			"floor_percentage": s.FloorPercentage,
			"loops_injected":   s.LoopsInjected,
			"markers_placed":   s.MarkersPlaced,
			"start":            s.Start,
			"end":              s.End,
		}
	case perlin.Stats:
		return map[string]interface{}{
			"water_percentage":    s.WaterPercentage,
			"land_percentage":     s.LandPercentage,
			"mountain_percentage": s.MountainPercentage,
		}
	default:
		return map[string]interface{}{}
	}
}
