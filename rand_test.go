package skipkv

import (
	"math"
	"testing"
)

const levelP = 0.5

func TestRandomLevelDistribution(t *testing.T) {
	const maxLevel = 32
	numSamples := 1000000
	counts := make(map[int]int)
	rng := newRNG(0x123456789abcdef)
	for range numSamples {
		level := rng.randomLevel(maxLevel)
		if level < 1 || level > maxLevel {
			t.Fatalf("level %d outside [1, %d]", level, maxLevel)
		}
		counts[level]++
	}

	// Check if the distribution is roughly geometric.
	// With P = 1/2, we expect the number of nodes at level i+1 to be
	// roughly half the number of nodes at level i.
	for i := 1; i < maxLevel; i++ {
		count1 := counts[i]
		if count1 == 0 {
			continue
		}

		count2 := counts[i+1]

		ratio := float64(count2) / float64(count1)

		// The number of nodes promoted from level i to i+1 follows a
		// Binomial(count1, P) distribution, so the ratio count2/count1
		// has mean P and variance P(1-P)/count1. We tolerate deviations
		// up to five standard deviations, which keeps the check tight
		// for the densely populated lower levels while avoiding
		// spurious failures once the sample sizes thin out.
		stdDev := math.Sqrt(levelP * (1 - levelP) / float64(count1))
		tolerance := 5 * stdDev

		if math.Abs(ratio-levelP) > tolerance {
			t.Errorf("Expected ratio between level %d and %d to be around %.2f ± %.4f, but got %.2f", i, i+1, levelP, tolerance, ratio)
		}
	}

	if frac := float64(counts[1]) / float64(numSamples); math.Abs(frac-levelP) > 0.01 {
		t.Errorf("expected about half the draws at level 1, got %.4f", frac)
	}
}

func TestRandomLevelIsCapped(t *testing.T) {
	rng := newRNG(1)
	for _, maxLevel := range []int{1, 2, 3} {
		hitCap := false
		for range 10000 {
			level := rng.randomLevel(maxLevel)
			if level < 1 || level > maxLevel {
				t.Fatalf("level %d outside [1, %d]", level, maxLevel)
			}
			hitCap = hitCap || level == maxLevel
		}
		if !hitCap {
			t.Fatalf("expected the cap %d to be reached", maxLevel)
		}
	}
}

func TestRNGSeedIsReproducible(t *testing.T) {
	a, b := newRNG(99), newRNG(99)
	for range 1000 {
		if a.nextRandom64() != b.nextRandom64() {
			t.Fatalf("generators with the same seed diverged")
		}
	}
}

func BenchmarkRandomLevel(b *testing.B) {
	rng := newRNG(0)
	for i := 0; i < b.N; i++ {
		rng.randomLevel(32)
	}
}
