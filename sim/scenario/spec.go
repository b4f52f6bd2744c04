// Package scenario defines the YAML scenario format and its conversion to a
// sim.Config. A scenario is the file-level mirror of the in-memory
// configuration: stations, trajectory, arrival process, horizon, seed.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the top-level scenario configuration.
// Loaded from YAML via Load(path) or Parse(data).
type Spec struct {
	Name       string        `yaml:"name,omitempty"`
	Seed       int64         `yaml:"seed"`
	Horizon    float64       `yaml:"horizon"`
	Trace      string        `yaml:"trace,omitempty"` // "none" (default) or "events"
	Arrivals   ArrivalSpec   `yaml:"arrivals"`
	Stations   []StationSpec `yaml:"stations"`
	Trajectory []StepSpec    `yaml:"trajectory"`
}

// StationSpec declares one station of the network.
type StationSpec struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
}

// ArrivalSpec configures the inter-arrival time process.
type ArrivalSpec struct {
	Process string   `yaml:"process"` // "poisson", "gamma", "constant"
	MeanIAT float64  `yaml:"mean_iat"`
	CV      *float64 `yaml:"cv,omitempty"` // gamma only
}

// StepSpec is one trajectory step. Exactly one of visit/branch is set.
type StepSpec struct {
	Visit  *VisitSpec  `yaml:"visit,omitempty"`
	Branch *BranchSpec `yaml:"branch,omitempty"`
}

// VisitSpec is a seize → hold → release triple.
type VisitSpec struct {
	Station string   `yaml:"station"`
	Service DistSpec `yaml:"service"`
}

// BranchSpec is a probabilistic branch point.
type BranchSpec struct {
	Arms []ArmSpec `yaml:"arms"`
}

// ArmSpec is one branch outcome. Continue controls whether the entity
// rejoins the enclosing sequence after the arm's steps.
type ArmSpec struct {
	Prob     float64    `yaml:"prob"`
	Continue bool       `yaml:"continue"`
	Steps    []StepSpec `yaml:"steps,omitempty"`
}

// DistSpec parameterizes a duration distribution.
// Recognized types and their params:
//
//	constant:    value
//	uniform:     min, max
//	normal:      mean, stddev (clip clamps negative draws at zero)
//	exponential: mean
//	lognormal:   mu, sigma
//	gamma:       shape, scale
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
	Clip   bool               `yaml:"clip,omitempty"`
}

// Load reads and parses a scenario YAML file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return spec, nil
}

// Parse decodes a scenario from YAML bytes. Unknown fields are rejected so a
// typo in a scenario file fails loudly instead of silently defaulting.
func Parse(data []byte) (*Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// param fetches a named distribution parameter, erroring when absent.
// Distribution parameters have no sensible defaults.
func (d *DistSpec) param(name string) (float64, error) {
	v, ok := d.Params[name]
	if !ok {
		return 0, fmt.Errorf("%s distribution missing param %q", d.Type, name)
	}
	return v, nil
}
