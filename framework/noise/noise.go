// Package noise generates synthetic random noise for test fixtures, such as
// simulated detector data. All generators are pure transformations: they draw
// one sample per element of the input array and return a new array of the
// same shape, for inputs of any rank.
package noise

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws noise using an explicit random source, so fixtures can be
// reproduced from a seed. The zero value uses the shared global source.
type Sampler struct {
	Src rand.Source
}

// NewSampler returns a Sampler seeded for reproducible output.
func NewSampler(seed uint64) Sampler {
	return Sampler{Src: rand.NewSource(seed)}
}

// AddGaussian returns y plus noise drawn per element from a normal
// distribution with the given mean and standard deviation.
func (s Sampler) AddGaussian(y *Array, stdev, mean float64) *Array {
	dist := distuv.Normal{Mu: mean, Sigma: stdev, Src: s.Src}
	out := make([]float64, y.Size())
	for i, v := range y.data {
		out[i] = v + dist.Rand()
	}
	return y.reshaped(out)
}

// AddPoisson replaces each element of y with a sample from a Poisson
// distribution whose rate is the element's own value, the usual model for
// counting noise. All elements must be non-negative; a zero rate yields a
// zero count deterministically.
func (s Sampler) AddPoisson(y *Array) *Array {
	out := make([]float64, y.Size())
	for i, v := range y.data {
		switch {
		case v < 0:
			panic(fmt.Sprintf("noise: Poisson rate must be non-negative, got %g", v))
		case v == 0:
			out[i] = 0
		default:
			out[i] = distuv.Poisson{Lambda: v, Src: s.Src}.Rand()
		}
	}
	return y.reshaped(out)
}

// AddRelative scales each element of y by (1 + n/100) where n is drawn from
// a continuous uniform distribution over [-maxNoise, +maxNoise], so maxNoise
// is the largest percentage of distortion. A maxNoise of zero returns an
// exact copy of the input.
func (s Sampler) AddRelative(y *Array, maxNoise float64) *Array {
	dist := distuv.Uniform{Min: -maxNoise, Max: maxNoise, Src: s.Src}
	out := make([]float64, y.Size())
	for i, v := range y.data {
		out[i] = v * (1 + dist.Rand()/100)
	}
	return y.reshaped(out)
}

// AddGaussian draws from the shared global source; see Sampler.AddGaussian.
func AddGaussian(y *Array, stdev, mean float64) *Array {
	return Sampler{}.AddGaussian(y, stdev, mean)
}

// AddPoisson draws from the shared global source; see Sampler.AddPoisson.
func AddPoisson(y *Array) *Array {
	return Sampler{}.AddPoisson(y)
}

// AddRelative draws from the shared global source; see Sampler.AddRelative.
func AddRelative(y *Array, maxNoise float64) *Array {
	return Sampler{}.AddRelative(y, maxNoise)
}
