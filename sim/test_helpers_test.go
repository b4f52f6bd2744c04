package sim

import (
	"errors"
	"math/rand"
	"testing"
)

// fixedSampler always returns the same duration. Used to pin service times
// in scenarios with exact expected timelines.
type fixedSampler struct {
	v float64
}

func (s fixedSampler) Sample(_ *rand.Rand) (float64, error) {
	return s.v, nil
}

// failingSampler simulates a broken custom distribution.
type failingSampler struct{}

func (failingSampler) Sample(_ *rand.Rand) (float64, error) {
	return 0, errors.New("boom")
}

func mustNormal(t *testing.T, mean, stdDev float64, clip bool) *NormalSampler {
	t.Helper()
	s, err := NewNormalSampler(mean, stdDev, clip)
	if err != nil {
		t.Fatalf("NewNormalSampler(%g, %g): %v", mean, stdDev, err)
	}
	return s
}

func mustSchedule(t *testing.T, times ...float64) *ScheduleArrivals {
	t.Helper()
	a, err := NewScheduleArrivals(times)
	if err != nil {
		t.Fatalf("NewScheduleArrivals(%v): %v", times, err)
	}
	return a
}

// deskConfig is the reference single-station scenario: one capacity-1 desk,
// deterministic service of 3 time units.
func deskConfig(t *testing.T, arrivals ArrivalProcess, horizon float64) Config {
	t.Helper()
	return Config{
		Stations:   []StationConfig{{Name: "desk", Capacity: 1}},
		Trajectory: []Step{SeizeStep("desk", fixedSampler{v: 3})},
		Arrivals:   arrivals,
		Horizon:    horizon,
		Seed:       42,
	}
}

// hospitalConfig mirrors the built-in hospital scenario in Go form.
func hospitalConfig(t *testing.T, seed int64) Config {
	t.Helper()
	return Config{
		Stations: []StationConfig{
			{Name: "triage", Capacity: 1},
			{Name: "registration", Capacity: 1},
			{Name: "examination", Capacity: 1},
			{Name: "operation", Capacity: 1},
		},
		Trajectory: []Step{
			SeizeStep("triage", mustNormal(t, 5, 0.5, false)),
			BranchPoint(
				BranchArm{Prob: 0.75, Continue: true, Steps: []Step{
					SeizeStep("registration", mustNormal(t, 2, 0.3, false)),
				}},
				BranchArm{Prob: 0.25, Continue: true},
			),
			SeizeStep("examination", mustNormal(t, 20, 4.5, false)),
			BranchPoint(
				BranchArm{Prob: 0.4, Continue: true, Steps: []Step{
					SeizeStep("operation", mustNormal(t, 30, 6, false)),
				}},
				BranchArm{Prob: 0.6, Continue: true},
			),
		},
		Arrivals: mustPoisson(t, 15),
		Horizon:  540,
		Seed:     seed,
	}
}

func mustPoisson(t *testing.T, meanIAT float64) *PoissonArrivals {
	t.Helper()
	a, err := NewPoissonArrivals(meanIAT)
	if err != nil {
		t.Fatalf("NewPoissonArrivals(%g): %v", meanIAT, err)
	}
	return a
}

func mustRun(t *testing.T, cfg Config) *Result {
	t.Helper()
	s, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	result, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

func meanAndVariance(vals []float64) (float64, float64) {
	n := float64(len(vals))
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	mean := sum / n
	ss := 0.0
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return mean, ss / n
}
