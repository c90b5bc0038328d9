package drunkard

import (
	"testing"

	"github.com/mcclowes/tilemapgen/pkg/mapgen/mapgentest"
	"github.com/mcclowes/tilemapgen/pkg/mapgen/prng"
)

func TestGenerateWeightedFloorPercentageInRange(t *testing.T) {
	_, stats, err := Generate(prng.New(5), 24, Options{
		Variant: Weighted, FillPercentage: 0.45, EnsureConnected: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FloorPercentage < 30 || stats.FloorPercentage > 55 {
		t.Fatalf("floor percentage %.2f outside [30, 55]", stats.FloorPercentage)
	}
}

func TestGenerateWeightedIsSingleRegion(t *testing.T) {
	g, _, _ := Generate(prng.New(5), 24, Options{
		Variant: Weighted, FillPercentage: 0.45, EnsureConnected: true,
	})
	mapgentest.AssertSingleRegion(t, g)
}

func TestGenerateVariantsAllTerminate(t *testing.T) {
	for _, v := range []Variant{Simple, Multiple, Weighted} {
		g, stats, err := Generate(prng.New(3), 20, Options{
			Variant: v, FillPercentage: 0.4, EnsureConnected: true,
		})
		if err != nil {
			t.Fatalf("variant %v: unexpected error: %v", v, err)
		}
		if g.Size != 20 {
			t.Fatalf("variant %v: expected size 20, got %d", v, g.Size)
		}
		if stats.FloorPercentage <= 0 {
			t.Fatalf("variant %v: expected some floor carved", v)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g1, _, _ := Generate(prng.New(9), 24, Options{Variant: Weighted, FillPercentage: 0.4})
	g2, _, _ := Generate(prng.New(9), 24, Options{Variant: Weighted, FillPercentage: 0.4})
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			if g1.At(x, y) != g2.At(x, y) {
				t.Fatalf("grid diverged at (%d, %d)", x, y)
			}
		}
	}
}
