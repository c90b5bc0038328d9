// Package prng provides the seeded deterministic number stream shared by
// every map generator. All generators route every random decision through a
// single Source so that (kind, size, options, seed) maps to a bit-identical
// grid across runs.
package prng

import "time"

// Source is a mulberry32 PRNG: a 32-bit state advanced by a fixed step
// function. Wraparound arithmetic is load-bearing. The output sequence is
// only reproducible if every operation wraps at 2^32, which is why the state
// and working values are kept as uint32 throughout.
type Source struct {
	state uint32
}

// New creates a PRNG seeded with the given 32-bit value.
func New(seed uint32) *Source {
	return &Source{state: seed}
}

// NewFromTime derives a nondeterministic 32-bit seed from the wall clock and
// returns a PRNG built from it along with the seed, so callers that omit a
// seed can still reproduce the run by recording the returned value.
func NewFromTime() (*Source, uint32) {
	seed := uint32(time.Now().UnixNano()) ^ uint32(time.Now().UnixNano()>>32)
	return New(seed), seed
}

// Seed returns the current internal state, which doubles as the seed for a
// fresh Source that would continue this one's output stream.
func (s *Source) Seed() uint32 {
	return s.state
}

// Next advances the state and returns the next output in [0, 1).
func (s *Source) Next() float64 {
	s.state += 0x6D2B79F5
	base := s.state
	t := base ^ (base >> 15)
	t *= base | 1
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// IntIn returns a uniformly distributed integer in [lo, hi], inclusive on
// both ends.
func (s *Source) IntIn(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	span := hi - lo + 1
	return int(s.Next()*float64(span)) + lo
}

// Pick returns a uniformly chosen element of seq.
func Pick[T any](s *Source, seq []T) T {
	return seq[int(s.Next()*float64(len(seq)))]
}

// Shuffle performs an in-place Fisher-Yates shuffle.
func Shuffle[T any](s *Source, seq []T) {
	for i := len(seq) - 1; i >= 1; i-- {
		j := s.IntIn(0, i)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Next() < p
}

// Weighted is satisfied by anything that can report its own selection weight.
type Weighted interface {
	Weight() float64
}

// WeightedPick draws an item proportional to its Weight(). On the degenerate
// case of zero total weight it returns the last item rather than looping
// forever or panicking.
func WeightedPick[T Weighted](s *Source, items []T) T {
	var total float64
	for _, it := range items {
		total += it.Weight()
	}
	if total <= 0 {
		return items[len(items)-1]
	}
	r := s.Next() * total
	for _, it := range items {
		r -= it.Weight()
		if r <= 0 {
			return it
		}
	}
	return items[len(items)-1]
}
