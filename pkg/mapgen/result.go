package mapgen

import (
	"github.com/google/uuid"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/grid"
)

// Result is what Generate returns: the produced grid, the seed actually
// used (including a time-derived one when the caller omitted it), and a
// generator-specific stats bag.
type Result struct {
	Grid *grid.Grid
	// SeedUsed is always populated, even when the caller omitted Options.Seed,
	// so a caller can reproduce any run.
	SeedUsed uint32
	// GenerationID is a UUIDv4 minted fresh per call, letting a caller
	// correlate a result against logs, metrics, or a pkg/history row without
	// it ever influencing the PRNG stream or grid content.
	GenerationID uuid.UUID
	// Stats carries the generator-specific quantities for whichever kind ran,
	// plus the common "kind" key the facade adds itself and, for every kind
	// except Default, the "seed" key.
	Stats map[string]interface{}
}
