package datagen

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mathext/prng"
	"gonum.org/v1/gonum/stat/distmv"
)

// Sampler is the randomness the generator needs.
type Sampler interface {
	// Perm returns a uniformly random permutation of [0, n).
	Perm(n int) []int
	// Dirichlet draws one vector from a symmetric Dirichlet(1, ..., 1) of
	// dimension dim.
	Dirichlet(dim int) []float64
}

// NewSource returns a Mersenne Twister seeded with seed, or with the wall
// clock when seed is zero.
func NewSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := prng.NewMT19937()
	src.Seed(seed)
	return src
}

type sourceSampler struct {
	src rand.Source
	rng *rand.Rand
}

func NewSampler(src rand.Source) Sampler {
	return &sourceSampler{
		src: src,
		rng: rand.New(src),
	}
}

func (s *sourceSampler) Perm(n int) []int {
	return s.rng.Perm(n)
}

func (s *sourceSampler) Dirichlet(dim int) []float64 {
	alpha := make([]float64, dim)
	for i := range alpha {
		alpha[i] = 1
	}
	return distmv.NewDirichlet(alpha, s.src).Rand(nil)
}
