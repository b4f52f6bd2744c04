package sim

import (
	"fmt"
	"math/rand"
)

// ArrivalProcess generates inter-arrival times for the entity source.
type ArrivalProcess interface {
	// SampleIAT returns the next inter-arrival time in simulated time units.
	// Always returns a non-negative value.
	SampleIAT(rng *rand.Rand) (float64, error)
}

// PoissonArrivals generates exponentially-distributed inter-arrival times
// (a Poisson process with the given mean inter-arrival time).
type PoissonArrivals struct {
	meanIAT float64
}

// NewPoissonArrivals creates a Poisson arrival process. Requires meanIAT > 0.
func NewPoissonArrivals(meanIAT float64) (*PoissonArrivals, error) {
	if meanIAT <= 0 {
		return nil, fmt.Errorf("poisson: mean inter-arrival time %g <= 0", meanIAT)
	}
	return &PoissonArrivals{meanIAT: meanIAT}, nil
}

func (p *PoissonArrivals) SampleIAT(rng *rand.Rand) (float64, error) {
	return rng.ExpFloat64() * p.meanIAT, nil
}

// GammaArrivals generates Gamma-distributed inter-arrival times.
// CV > 1 produces bursty arrivals; CV = 1 degenerates to Poisson.
type GammaArrivals struct {
	shape, scale float64
}

// NewGammaArrivals creates a gamma arrival process with the given mean
// inter-arrival time and coefficient of variation.
// shape = 1/CV², scale = meanIAT*CV².
func NewGammaArrivals(meanIAT, cv float64) (*GammaArrivals, error) {
	if meanIAT <= 0 {
		return nil, fmt.Errorf("gamma arrivals: mean inter-arrival time %g <= 0", meanIAT)
	}
	if cv <= 0 {
		return nil, fmt.Errorf("gamma arrivals: cv %g <= 0", cv)
	}
	return &GammaArrivals{
		shape: 1.0 / (cv * cv),
		scale: meanIAT * cv * cv,
	}, nil
}

func (g *GammaArrivals) SampleIAT(rng *rand.Rand) (float64, error) {
	return gammaRand(rng, g.shape, g.scale), nil
}

// ConstantArrivals generates evenly-spaced arrivals.
type ConstantArrivals struct {
	iat float64
}

// NewConstantArrivals creates a deterministic arrival process.
// Requires iat > 0: a zero gap would admit unboundedly many entities at the
// same tick before the horizon cuts arrivals off.
func NewConstantArrivals(iat float64) (*ConstantArrivals, error) {
	if iat <= 0 {
		return nil, fmt.Errorf("constant arrivals: inter-arrival time %g <= 0", iat)
	}
	return &ConstantArrivals{iat: iat}, nil
}

func (c *ConstantArrivals) SampleIAT(_ *rand.Rand) (float64, error) {
	return c.iat, nil
}

// ScheduleArrivals is a fixed arrival timetable: entity k arrives at Times[k].
// Times past the simulator's horizon are never admitted.
type ScheduleArrivals struct {
	Times []float64
	next  int
}

// NewScheduleArrivals creates an arrival process from explicit arrival
// timestamps. Requires a non-decreasing, non-negative sequence.
func NewScheduleArrivals(times []float64) (*ScheduleArrivals, error) {
	prev := 0.0
	for i, t := range times {
		if t < prev {
			return nil, fmt.Errorf("schedule arrivals: times[%d]=%g decreases (prev %g)", i, t, prev)
		}
		prev = t
	}
	return &ScheduleArrivals{Times: times}, nil
}

// SampleIAT returns the gap to the next scheduled arrival. Once the timetable
// is exhausted it returns errScheduleExhausted, which the arrival generator
// treats as end-of-stream rather than a sampler failure.
func (s *ScheduleArrivals) SampleIAT(_ *rand.Rand) (float64, error) {
	if s.next >= len(s.Times) {
		return 0, errScheduleExhausted
	}
	var prev float64
	if s.next > 0 {
		prev = s.Times[s.next-1]
	}
	iat := s.Times[s.next] - prev
	s.next++
	return iat, nil
}

var errScheduleExhausted = fmt.Errorf("arrival schedule exhausted")
