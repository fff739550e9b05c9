package skipkv

import (
	"math/bits"
	"sync/atomic"
	"time"
)

const defaultSeed = uint64(0xdeadbeefcafebabe)

func newRandomSeed() uint64 {
	seed := uint64(time.Now().UnixNano())
	if seed == 0 {
		seed = defaultSeed
	}
	return seed
}

// RNG is a xorshift64* generator. It is safe for concurrent use.
type RNG struct {
	seed atomic.Uint64
}

// newRNG returns a generator seeded with seed, or with the clock when seed
// is zero.
func newRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = newRandomSeed()
	}
	r := &RNG{}
	r.seed.Store(seed)
	return r
}

func (r *RNG) nextRandom64() uint64 {
	for {
		current := r.seed.Load()
		x := current
		x ^= x >> 12
		x ^= x << 25
		x ^= x >> 27
		if x == 0 {
			x = defaultSeed
		}
		if r.seed.CompareAndSwap(current, x) {
			return x * 2685821657736338717
		}
	}
}

// randomLevel draws a tower level in [1, maxLevel]. Starting at 1, each
// leading zero bit of a draw is one fair coin landing heads, so
// P(level = k) = 2^-k until the cap.
func (r *RNG) randomLevel(maxLevel int) int {
	level := bits.LeadingZeros64(r.nextRandom64()) + 1
	if level > maxLevel {
		return maxLevel
	}
	return level
}
