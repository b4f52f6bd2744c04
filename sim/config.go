package sim

import (
	"fmt"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// Config is the full description of one simulation run. All inputs are
// in-memory values; there is no wire or file format at this level (the
// scenario package layers YAML on top).
type Config struct {
	// Stations declares every service point the trajectory may reference.
	Stations []StationConfig
	// Trajectory is the ordered, possibly branching step sequence every
	// entity executes.
	Trajectory []Step
	// Arrivals generates inter-arrival times for the entity source.
	Arrivals ArrivalProcess
	// Horizon is the admission cutoff in simulated time units. Entities
	// arriving at t <= Horizon are admitted and run to completion; later
	// arrivals are never created.
	Horizon float64
	// Seed keys the partitioned RNG.
	Seed int64
	// Trace controls event-trace recording.
	Trace trace.TraceConfig
}

// validate checks every configure-time invariant. It returns a *ConfigError
// so a bad configuration fails before any simulated time advances.
func (c *Config) validate() (map[string]*Station, error) {
	if len(c.Stations) == 0 {
		return nil, configErrorf("stations", "no stations declared")
	}
	stations := make(map[string]*Station, len(c.Stations))
	for i, sc := range c.Stations {
		field := stationField(i)
		if sc.Name == "" {
			return nil, configErrorf(field, "station has no name")
		}
		if sc.Capacity <= 0 {
			return nil, configErrorf(field, "station %q capacity %d, must be > 0", sc.Name, sc.Capacity)
		}
		if _, dup := stations[sc.Name]; dup {
			return nil, configErrorf(field, "duplicate station name %q", sc.Name)
		}
		stations[sc.Name] = newStation(sc)
	}
	if err := validateTrajectory(c.Trajectory, stations, "trajectory"); err != nil {
		return nil, err
	}
	if c.Arrivals == nil {
		return nil, configErrorf("arrivals", "no arrival process configured")
	}
	if c.Horizon < 0 {
		return nil, configErrorf("horizon", "horizon %g < 0", c.Horizon)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return nil, configErrorf("trace", "unknown trace level %q", c.Trace.Level)
	}
	return stations, nil
}

func stationField(i int) string {
	return fmt.Sprintf("stations[%d]", i)
}
