// Package noise holds the seeded random stream and the value-noise field
// used by the weave and the aging overlay.
//
// Both are bit-compatible with the p5-style generators of the original rug
// script: the same seed yields the same sequence, and noise samples match
// to the last bit on every host.
package noise

// LCG parameters (Numerical Recipes).
const (
	lcgA = 1664525
	lcgC = 1013904223
)

// twoPow32 converts a uint32 state to a float in [0, 1).
const twoPow32 = 4294967296.0

// Random is a seeded linear congruential generator.
//
// A Random is not safe for concurrent use. Every render builds its own.
type Random struct {
	seed  uint32
	state uint32
}

// NewRandom returns a generator whose first draw is the first value of
// the LCG started at seed.
func NewRandom(seed uint32) *Random {
	return &Random{seed: seed, state: seed}
}

// Seed reports the seed the generator was created with.
func (r *Random) Seed() uint32 { return r.seed }

// Reset rewinds the stream to its seed.
func (r *Random) Reset() { r.state = r.seed }

func (r *Random) next() uint32 {
	r.state = lcgA*r.state + lcgC
	return r.state
}

// Float returns the next value in [0, 1).
func (r *Random) Float() float64 {
	return float64(r.next()) / twoPow32
}

// Range returns a value in [lo, hi).
func (r *Random) Range(lo, hi float64) float64 {
	return lo + float64(r.Float()*(hi-lo))
}

// Intn returns a value in [0, n). It returns 0 when n <= 0 but still
// consumes a draw so that the stream position never depends on n.
func (r *Random) Intn(n int) int {
	f := r.Float()
	if n <= 0 {
		return 0
	}
	return int(float64(f * float64(n)))
}

// Choice returns an index in [0, n), the p5 random(array) draw.
func (r *Random) Choice(n int) int { return r.Intn(n) }

// Bool reports whether the next draw falls below p.
func (r *Random) Bool(p float64) bool { return r.Float() < p }

// Shuffle permutes n elements with a Fisher-Yates walk from the end.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// Derive returns an independent generator for a named sub-stream. The
// parent stream is not advanced.
func (r *Random) Derive(label string) *Random {
	return NewRandom(HashSeed(r.seed, label))
}

// HashSeed mixes a label into a seed with the string hash used by the rug
// scripts, (h<<5)-h per byte, followed by two xor-shift rounds.
func HashSeed(seed uint32, label string) uint32 {
	h := seed
	for i := 0; i < len(label); i++ {
		h = (h << 5) - h + uint32(label[i])
	}
	h = (h << 5) - h
	h ^= h >> 16
	h = (h << 5) - h
	h ^= h >> 16
	return h
}
