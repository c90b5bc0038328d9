// Package mapgentest holds the invariant assertions shared across the
// dungeon generators' test suites (single-region connectivity, Start/End marker
// presence). It exists as a regular package rather than a _test.go file
// precisely so other packages' tests can import it: a _test.go file is only
// visible within its own package's test binary, so these checks could not
// actually be reused from cave_test.go, bsp_test.go, and so on if they lived
// inside connectivity's own test file.
package mapgentest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/connectivity"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/tiles"
)

// AssertSingleRegion fails the test unless the walkable set of g forms at
// most one connected region under 4-adjacency.
func AssertSingleRegion(t *testing.T, g *grid.Grid) {
	t.Helper()
	regions := connectivity.EnumerateRegions(g)
	assert.LessOrEqualf(t, len(regions), 1, "expected at most one connected region, found %d", len(regions))
}

// AssertMarkersPresent fails the test unless g contains exactly one Start
// tile and exactly one End tile.
func AssertMarkersPresent(t *testing.T, g *grid.Grid) {
	t.Helper()
	starts, ends := 0, 0
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			switch g.At(x, y) {
			case tiles.Start:
				starts++
			case tiles.End:
				ends++
			}
		}
	}
	require.Equal(t, 1, starts, "expected exactly one Start tile")
	require.Equal(t, 1, ends, "expected exactly one End tile")
}
