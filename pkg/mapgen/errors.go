package mapgen

import "errors"

// Sentinel errors for invalid arguments to Generate. These are the only
// failures that surface to the caller; a generator stalling short of its
// target, or WFC exhausting its backtrack budget, is a quality shortfall
// reported through Result.Stats, not an error.
var (
	// ErrInvalidKind is returned for an unrecognized generator kind.
	ErrInvalidKind = errors.New("mapgen: invalid generator kind")
	// ErrSizeTooSmall is returned when size is below the minimum of 8.
	ErrSizeTooSmall = errors.New("mapgen: size must be at least 8")
	// ErrUnknownVariant is returned for an unrecognized drunkard's-walk
	// variant or maze algorithm.
	ErrUnknownVariant = errors.New("mapgen: unknown generator variant")
)
