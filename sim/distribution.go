package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// Sampler generates service durations (in simulated time units).
//
// Every draw receives the RNG explicitly; samplers hold parameters only and
// never reach into ambient state. Built-in samplers validate their parameters
// at construction and never fail afterwards; a custom Sampler may return an
// error, which aborts the run with a DistributionSampleError.
type Sampler interface {
	Sample(rng *rand.Rand) (float64, error)
}

// ConstantSampler always returns the same duration.
type ConstantSampler struct {
	value float64
}

// NewConstantSampler creates a sampler with a fixed duration.
func NewConstantSampler(value float64) *ConstantSampler {
	return &ConstantSampler{value: value}
}

func (s *ConstantSampler) Sample(_ *rand.Rand) (float64, error) {
	return s.value, nil
}

// UniformSampler draws uniformly from [min, max).
type UniformSampler struct {
	min, max float64
}

// NewUniformSampler creates a uniform sampler. Requires min <= max.
func NewUniformSampler(min, max float64) (*UniformSampler, error) {
	if min > max {
		return nil, fmt.Errorf("uniform: min %g > max %g", min, max)
	}
	return &UniformSampler{min: min, max: max}, nil
}

func (s *UniformSampler) Sample(rng *rand.Rand) (float64, error) {
	return s.min + rng.Float64()*(s.max-s.min), nil
}

// NormalSampler draws from Normal(mean, stdDev).
//
// By default negative draws are returned as-is: the reference queueing
// scenarios do not clip, and a negative service duration is treated as a
// zero-length hold when the release event is scheduled (the raw sample is
// still recorded in the entity's visit record). Setting clip clamps draws
// at zero before they leave the sampler.
type NormalSampler struct {
	mean, stdDev float64
	clip         bool
}

// NewNormalSampler creates a Gaussian sampler. Requires stdDev >= 0.
func NewNormalSampler(mean, stdDev float64, clip bool) (*NormalSampler, error) {
	if stdDev < 0 {
		return nil, fmt.Errorf("normal: stddev %g < 0", stdDev)
	}
	return &NormalSampler{mean: mean, stdDev: stdDev, clip: clip}, nil
}

func (s *NormalSampler) Sample(rng *rand.Rand) (float64, error) {
	val := rng.NormFloat64()*s.stdDev + s.mean
	if s.clip && val < 0 {
		return 0, nil
	}
	return val, nil
}

// ExponentialSampler draws exponentially-distributed durations.
type ExponentialSampler struct {
	mean float64
}

// NewExponentialSampler creates an exponential sampler. Requires mean > 0.
func NewExponentialSampler(mean float64) (*ExponentialSampler, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("exponential: mean %g <= 0", mean)
	}
	return &ExponentialSampler{mean: mean}, nil
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) (float64, error) {
	return rng.ExpFloat64() * s.mean, nil
}

// LogNormalSampler draws X = exp(mu + sigma*Z).
type LogNormalSampler struct {
	mu, sigma float64
}

// NewLogNormalSampler creates a lognormal sampler. Requires sigma >= 0.
func NewLogNormalSampler(mu, sigma float64) (*LogNormalSampler, error) {
	if sigma < 0 {
		return nil, fmt.Errorf("lognormal: sigma %g < 0", sigma)
	}
	return &LogNormalSampler{mu: mu, sigma: sigma}, nil
}

func (s *LogNormalSampler) Sample(rng *rand.Rand) (float64, error) {
	val := math.Exp(s.mu + s.sigma*rng.NormFloat64())
	// Guard against +Inf from extreme sigma values
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, fmt.Errorf("lognormal: non-finite draw (mu=%g sigma=%g)", s.mu, s.sigma)
	}
	return val, nil
}

// GammaSampler draws Gamma(shape, scale) durations.
// Implemented using Marsaglia-Tsang's method for shape >= 1,
// with transformation for shape < 1.
type GammaSampler struct {
	shape, scale float64
}

// NewGammaSampler creates a gamma sampler. Requires shape > 0 and scale > 0.
func NewGammaSampler(shape, scale float64) (*GammaSampler, error) {
	if shape <= 0 || scale <= 0 {
		return nil, fmt.Errorf("gamma: shape %g and scale %g must be > 0", shape, scale)
	}
	return &GammaSampler{shape: shape, scale: scale}, nil
}

func (s *GammaSampler) Sample(rng *rand.Rand) (float64, error) {
	return gammaRand(rng, s.shape, s.scale), nil
}

// gammaRand samples from Gamma(shape, scale) using Marsaglia-Tsang's method.
// For shape >= 1: direct method.
// For shape < 1: Gamma(shape) = Gamma(shape+1) * U^(1/shape).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		// Ahrens-Dieter: Gamma(a) = Gamma(a+1) * U^(1/a)
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	// Marsaglia-Tsang for shape >= 1
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)

	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		// Squeeze test
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}
