// Package rand provides the explicitly seeded random source that every
// generation and tick call receives. There is no package-level generator:
// callers own a *Rand and pass it down.
package rand

import (
	"time"

	"github.com/MichaelTJones/pcg"
)

const pcgSequence = 0xda3e39cb94b95bdb

// Rand is not safe for concurrent use; the owner serializes access.
type Rand struct {
	r *pcg.PCG32
}

// New returns a generator seeded with s. A zero seed picks one from the clock.
func New(s int64) *Rand {
	r := &Rand{r: pcg.NewPCG32()}
	if s == 0 {
		s = time.Now().UnixNano()
	}
	r.Seed(s)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), pcgSequence)
}

func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

// Intn returns a value in [0,n). n must be positive.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("rand: invalid argument to Intn")
	}
	return int(r.r.Bounded(uint32(n)))
}

// IntRange returns a value in [lo,hi], both ends inclusive.
func (r *Rand) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Float64 returns a value in [0,1) built from 53 random bits.
func (r *Rand) Float64() float64 {
	hi := uint64(r.r.Random())
	lo := uint64(r.r.Random()) >> 11
	return float64(hi<<21|lo) / (1 << 53)
}

// Uniform returns a value in [lo,hi). When lo == hi it returns lo exactly.
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Bernoulli reports true with probability p. p >= 1 is always true and
// p <= 0 is always false.
func (r *Rand) Bernoulli(p float64) bool {
	return r.Float64() < p
}

// SampleSlice uniformly samples an element of a non-empty slice.
func SampleSlice[T any](r *Rand, slice []T) T {
	return slice[r.Intn(len(slice))]
}

// SampleFiltered uniformly samples the elements of slice for which pred
// returns true, returning the index of the sampled item or -1 if there are
// none.
func SampleFiltered[T any](r *Rand, slice []T, pred func(T) bool) int {
	idx := -1
	candidates := 0
	for i, v := range slice {
		if pred(v) {
			candidates++
			if r.Intn(candidates) == 0 {
				idx = i
			}
		}
	}
	return idx
}

// SampleWeighted returns the index of an element chosen with probability
// proportional to weight. Non-positive weights are never chosen; -1 is
// returned when no element has a positive weight.
func SampleWeighted[T any](r *Rand, slice []T, weight func(T) float64) int {
	total := 0.0
	last := -1
	for i, v := range slice {
		if w := weight(v); w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return -1
	}

	x := r.Float64() * total
	acc := 0.0
	for i, v := range slice {
		w := weight(v)
		if w <= 0 {
			continue
		}
		acc += w
		if x < acc {
			return i
		}
	}
	// floating point round-off
	return last
}
