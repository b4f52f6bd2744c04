package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// probTolerance is the floating-point slack allowed when checking that a
// branch probability vector sums to 1.
const probTolerance = 1e-9

// Step is one element of a trajectory: either a station visit or a branch
// point. Exactly one of the fields is set (tagged variant).
type Step struct {
	Visit  *VisitStep
	Branch *BranchStep
}

// VisitStep is the seize → hold → release triple: the entity seizes one unit
// of the station's capacity, holds it for a duration drawn from Service, and
// releases it before proceeding.
type VisitStep struct {
	Station string
	Service Sampler
}

// BranchStep probabilistically selects one of several arms.
type BranchStep struct {
	Arms []BranchArm
}

// BranchArm is one outcome of a branch point. Prob is its selection
// probability; the vector of probabilities across arms must sum to 1.
// If Continue is true the entity rejoins the enclosing step sequence after
// executing Steps; otherwise it departs when Steps are exhausted.
type BranchArm struct {
	Prob     float64
	Steps    []Step
	Continue bool
}

// SeizeStep is a convenience constructor for a visit step.
func SeizeStep(station string, service Sampler) Step {
	return Step{Visit: &VisitStep{Station: station, Service: service}}
}

// BranchPoint is a convenience constructor for a branch step.
func BranchPoint(arms ...BranchArm) Step {
	return Step{Branch: &BranchStep{Arms: arms}}
}

// validateTrajectory walks the step tree and checks every invariant that can
// be decided before the clock starts: station references resolve, samplers
// are present, each step has exactly one variant set, and branch probability
// vectors sum to 1 within tolerance.
func validateTrajectory(steps []Step, stations map[string]*Station, path string) error {
	if len(steps) == 0 {
		return configErrorf(path, "trajectory has no steps")
	}
	for i, step := range steps {
		field := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case step.Visit != nil && step.Branch != nil:
			return configErrorf(field, "step sets both visit and branch")
		case step.Visit != nil:
			if step.Visit.Station == "" {
				return configErrorf(field, "visit has no station name")
			}
			if _, ok := stations[step.Visit.Station]; !ok {
				return configErrorf(field, "visit references undeclared station %q", step.Visit.Station)
			}
			if step.Visit.Service == nil {
				return configErrorf(field, "visit of %q has no service sampler", step.Visit.Station)
			}
		case step.Branch != nil:
			if err := validateBranch(step.Branch, stations, field); err != nil {
				return err
			}
		default:
			return configErrorf(field, "step sets neither visit nor branch")
		}
	}
	return nil
}

func validateBranch(b *BranchStep, stations map[string]*Station, field string) error {
	if len(b.Arms) == 0 {
		return configErrorf(field, "branch has no arms")
	}
	sum := 0.0
	for j, arm := range b.Arms {
		armField := fmt.Sprintf("%s.arms[%d]", field, j)
		if arm.Prob < 0 {
			return configErrorf(armField, "negative probability %g", arm.Prob)
		}
		sum += arm.Prob
		// Empty arms are legal: with Continue they are a no-op, without
		// they make the entity depart immediately.
		if len(arm.Steps) > 0 {
			if err := validateTrajectory(arm.Steps, stations, armField+".steps"); err != nil {
				return err
			}
		}
	}
	if math.Abs(sum-1.0) > probTolerance {
		return configErrorf(field, "branch probabilities sum to %v, want 1", sum)
	}
	return nil
}

// selectArm draws one arm index according to the branch's probability vector.
// The draw consumes exactly one uniform variate so branch layout changes do
// not shift the RNG stream of later branches.
func (b *BranchStep) selectArm(rng *rand.Rand) int {
	u := rng.Float64()
	acc := 0.0
	for i, arm := range b.Arms {
		acc += arm.Prob
		if u < acc {
			return i
		}
	}
	// Rounding can leave u just above the accumulated sum; the last arm
	// with non-zero probability absorbs the remainder.
	for i := len(b.Arms) - 1; i >= 0; i-- {
		if b.Arms[i].Prob > 0 {
			return i
		}
	}
	return len(b.Arms) - 1
}

// === Trajectory cursor ===

// cursor tracks an entity's position inside a (possibly nested) trajectory.
// Each frame is one step sequence; entering a branch arm pushes a frame,
// finishing an arm with Continue pops back to the parent.
type cursor struct {
	frames []cursorFrame
}

type cursorFrame struct {
	steps []Step
	idx   int
	cont  bool // rejoin parent sequence when this frame is exhausted
}

func newCursor(steps []Step) *cursor {
	return &cursor{frames: []cursorFrame{{steps: steps, cont: false}}}
}

// current returns the step the entity is about to execute, or nil if the
// trajectory is complete.
func (c *cursor) current() *Step {
	for len(c.frames) > 0 {
		top := &c.frames[len(c.frames)-1]
		if top.idx < len(top.steps) {
			return &top.steps[top.idx]
		}
		if !top.cont {
			// Terminal arm exhausted: the entity departs here even if the
			// parent sequence has steps left.
			c.frames = nil
			return nil
		}
		c.frames = c.frames[:len(c.frames)-1]
	}
	return nil
}

// advance moves past the current step.
func (c *cursor) advance() {
	if len(c.frames) == 0 {
		return
	}
	c.frames[len(c.frames)-1].idx++
}

// enterArm descends into a branch arm. The branch step itself is consumed
// first so the parent resumes after it.
func (c *cursor) enterArm(arm *BranchArm) {
	c.advance()
	c.frames = append(c.frames, cursorFrame{steps: arm.Steps, cont: arm.Continue})
}
