package mapgen

import (
	"github.com/sirupsen/logrus"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/bsp"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/cave"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/drunkard"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/maze"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/perlin"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/wfc"
	"github.com/mcclowes/tilemapgen/pkg/metrics"
)

// Options is the facade's options bag: a seed, two cross-cutting toggles
// (Perlin honors neither; WFC and Maze ignore EnsureConnected), and one
// sub-options value per generator
// kind. Every field is optional; Generate fills in the documented
// defaults for whichever kind was requested.
type Options struct {
	// Seed is the 32-bit PRNG seed. If nil, Generate derives a
	// nondeterministic one and reports it on Result.SeedUsed.
	Seed *uint32

	// EnsureConnected defaults to true for every generator that accepts it.
	EnsureConnected *bool
	// PlaceMarkers defaults to false, except for Maze where it defaults to
	// true.
	PlaceMarkers *bool

	// Logger receives debug-level generation traces; nil is treated as a
	// no-op logger by every generator package.
	Logger *logrus.Logger

	// Metrics, if set, records generation duration, WFC backtracks, and
	// shortfalls for this call. Nil (the default) skips instrumentation
	// entirely, so a library consumer that never scrapes /metrics pays
	// nothing for it.
	Metrics *metrics.Metrics

	Cave     cave.Options
	Drunkard drunkard.Options
	BSP      bsp.Options
	WFC      wfc.Options
	Maze     maze.Options
	Perlin   perlin.Options
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
