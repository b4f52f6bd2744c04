package scenario

import (
	"fmt"

	"github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// Build converts a parsed scenario into a sim.Config. Distribution parameter
// mistakes surface here as *sim.ConfigError; structural invariants (station
// references, branch probability sums, capacities) are re-checked by
// sim.NewSimulator, which owns them.
func (s *Spec) Build() (sim.Config, error) {
	cfg := sim.Config{
		Horizon: s.Horizon,
		Seed:    s.Seed,
		Trace:   trace.TraceConfig{Level: trace.TraceLevel(s.Trace)},
	}

	for _, st := range s.Stations {
		cfg.Stations = append(cfg.Stations, sim.StationConfig{Name: st.Name, Capacity: st.Capacity})
	}

	arrivals, err := buildArrivals(s.Arrivals)
	if err != nil {
		return sim.Config{}, sim.NewConfigError("arrivals", err)
	}
	cfg.Arrivals = arrivals

	steps, err := buildSteps(s.Trajectory, "trajectory")
	if err != nil {
		return sim.Config{}, err
	}
	cfg.Trajectory = steps
	return cfg, nil
}

func buildArrivals(spec ArrivalSpec) (sim.ArrivalProcess, error) {
	switch spec.Process {
	case "poisson", "":
		return sim.NewPoissonArrivals(spec.MeanIAT)
	case "gamma":
		cv := 1.0
		if spec.CV != nil {
			cv = *spec.CV
		}
		return sim.NewGammaArrivals(spec.MeanIAT, cv)
	case "constant":
		return sim.NewConstantArrivals(spec.MeanIAT)
	default:
		return nil, fmt.Errorf("unknown arrival process %q", spec.Process)
	}
}

func buildSteps(specs []StepSpec, field string) ([]sim.Step, error) {
	steps := make([]sim.Step, 0, len(specs))
	for i, spec := range specs {
		stepField := fmt.Sprintf("%s[%d]", field, i)
		switch {
		case spec.Visit != nil:
			sampler, err := buildSampler(spec.Visit.Service)
			if err != nil {
				return nil, sim.NewConfigError(stepField+".service", err)
			}
			steps = append(steps, sim.SeizeStep(spec.Visit.Station, sampler))
		case spec.Branch != nil:
			arms := make([]sim.BranchArm, 0, len(spec.Branch.Arms))
			for j, armSpec := range spec.Branch.Arms {
				armSteps, err := buildSteps(armSpec.Steps, fmt.Sprintf("%s.arms[%d].steps", stepField, j))
				if err != nil {
					return nil, err
				}
				arms = append(arms, sim.BranchArm{
					Prob:     armSpec.Prob,
					Steps:    armSteps,
					Continue: armSpec.Continue,
				})
			}
			steps = append(steps, sim.BranchPoint(arms...))
		default:
			// Leave the step empty; sim.NewSimulator reports it with the
			// canonical ConfigError wording.
			steps = append(steps, sim.Step{})
		}
	}
	return steps, nil
}

func buildSampler(spec DistSpec) (sim.Sampler, error) {
	switch spec.Type {
	case "constant":
		value, err := spec.param("value")
		if err != nil {
			return nil, err
		}
		return sim.NewConstantSampler(value), nil
	case "uniform":
		min, err := spec.param("min")
		if err != nil {
			return nil, err
		}
		max, err := spec.param("max")
		if err != nil {
			return nil, err
		}
		return sim.NewUniformSampler(min, max)
	case "normal":
		mean, err := spec.param("mean")
		if err != nil {
			return nil, err
		}
		stddev, err := spec.param("stddev")
		if err != nil {
			return nil, err
		}
		return sim.NewNormalSampler(mean, stddev, spec.Clip)
	case "exponential":
		mean, err := spec.param("mean")
		if err != nil {
			return nil, err
		}
		return sim.NewExponentialSampler(mean)
	case "lognormal":
		mu, err := spec.param("mu")
		if err != nil {
			return nil, err
		}
		sigma, err := spec.param("sigma")
		if err != nil {
			return nil, err
		}
		return sim.NewLogNormalSampler(mu, sigma)
	case "gamma":
		shape, err := spec.param("shape")
		if err != nil {
			return nil, err
		}
		scale, err := spec.param("scale")
		if err != nil {
			return nil, err
		}
		return sim.NewGammaSampler(shape, scale)
	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
