package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

type failingArrivals struct{}

func (failingArrivals) SampleIAT(_ *rand.Rand) (float64, error) {
	return 0, errors.New("bad rate")
}

func TestRun_SingleDesk_ExactTimeline(t *testing.T) {
	// GIVEN one capacity-1 desk with deterministic service 3 and arrivals at
	// t=0 and t=1
	cfg := deskConfig(t, mustSchedule(t, 0, 1), 10)

	// WHEN the simulation runs
	result := mustRun(t, cfg)

	// THEN entity 0 occupies [0,3) and entity 1 waits until t=3 and
	// occupies [3,6)
	require.Len(t, result.Entities, 2)

	e0, e1 := result.Entities[0], result.Entities[1]
	require.Len(t, e0.Visits, 1)
	require.Len(t, e1.Visits, 1)

	assert.Equal(t, 0.0, e0.Visits[0].EnterTime)
	assert.Equal(t, 0.0, e0.Visits[0].StartTime)
	assert.Equal(t, 3.0, e0.Visits[0].EndTime)
	assert.Equal(t, 3.0, e0.DepartureTime)
	assert.Equal(t, 0.0, e0.WaitingTime())

	assert.Equal(t, 1.0, e1.Visits[0].EnterTime)
	assert.Equal(t, 3.0, e1.Visits[0].StartTime)
	assert.Equal(t, 6.0, e1.Visits[0].EndTime)
	assert.Equal(t, 6.0, e1.DepartureTime)
	assert.Equal(t, 2.0, e1.WaitingTime())

	// desk busy time is 6 over an observation window of 10
	desk := result.FindStation("desk")
	require.NotNil(t, desk)
	assert.InDelta(t, 6.0, desk.BusyTime, 1e-12)
	assert.InDelta(t, 0.6, desk.Utilization, 1e-12)
}

func TestRun_ArrivalPastHorizon_NeverAdmitted(t *testing.T) {
	// GIVEN horizon=10 and a single arrival scheduled at t=15
	cfg := deskConfig(t, mustSchedule(t, 15), 10)

	// THEN the result set is empty
	result := mustRun(t, cfg)
	assert.Empty(t, result.Entities)
	assert.Empty(t, result.ArrivalsTable().Rows)
}

func TestRun_ArrivalAtHorizon_RunsToCompletion(t *testing.T) {
	// An arrival exactly at the horizon is admitted and finishes naturally,
	// past the horizon.
	cfg := deskConfig(t, mustSchedule(t, 10), 10)

	result := mustRun(t, cfg)
	require.Len(t, result.Entities, 1)
	e := result.Entities[0]
	assert.True(t, e.Departed)
	assert.Equal(t, 13.0, e.DepartureTime)
	assert.Equal(t, 13.0, result.ObservationEnd)
}

func TestRun_FIFOServiceOrder(t *testing.T) {
	// Three simultaneous arrivals are served in arrival order.
	cfg := deskConfig(t, mustSchedule(t, 0, 0, 0), 10)
	cfg.Trajectory = []Step{SeizeStep("desk", fixedSampler{v: 2})}

	result := mustRun(t, cfg)
	require.Len(t, result.Entities, 3)
	for i, wantStart := range []float64{0, 2, 4} {
		e := result.Entities[i]
		assert.Equal(t, wantStart, e.Visits[0].StartTime, "entity %d start", i)
		assert.Equal(t, wantStart+2, e.Visits[0].EndTime, "entity %d end", i)
	}
}

func TestRun_OccupancyNeverExceedsCapacity(t *testing.T) {
	result := mustRun(t, hospitalConfig(t, 42))
	require.NotEmpty(t, result.Entities)

	for _, st := range result.Stations {
		for _, s := range st.Occupancy {
			if s.Busy < 0 || s.Busy > st.Capacity {
				t.Fatalf("station %s busy=%d at t=%g, capacity %d", st.Name, s.Busy, s.Time, st.Capacity)
			}
			if s.QueueLen < 0 {
				t.Fatalf("station %s queue=%d at t=%g", st.Name, s.QueueLen, s.Time)
			}
		}
	}
}

func TestRun_IntervalsNonNegative(t *testing.T) {
	result := mustRun(t, hospitalConfig(t, 7))

	for _, e := range result.Entities {
		require.True(t, e.Departed, "entity %d admitted before horizon must finish", e.ID)
		if e.DepartureTime < e.ArrivalTime {
			t.Fatalf("entity %d departs at %g before arriving at %g", e.ID, e.DepartureTime, e.ArrivalTime)
		}
		for _, v := range e.Visits {
			if v.WaitTime() < 0 {
				t.Fatalf("entity %d negative wait %g at %s", e.ID, v.WaitTime(), v.Station)
			}
			if v.ServiceTime() < 0 {
				t.Fatalf("entity %d negative service %g at %s", e.ID, v.ServiceTime(), v.Station)
			}
		}
	}
}

func TestRun_SameSeed_IdenticalTracesAndTables(t *testing.T) {
	// GIVEN two simulators with identical configuration and seed
	cfg1 := hospitalConfig(t, 42)
	cfg1.Trace = trace.TraceConfig{Level: trace.TraceLevelEvents}
	cfg2 := hospitalConfig(t, 42)
	cfg2.Trace = trace.TraceConfig{Level: trace.TraceLevelEvents}

	// WHEN both run
	r1 := mustRun(t, cfg1)
	r2 := mustRun(t, cfg2)

	// THEN event traces and output tables are identical
	require.Equal(t, r1.Trace.Events, r2.Trace.Events)
	assert.Equal(t, r1.ArrivalsTable(), r2.ArrivalsTable())
	assert.Equal(t, r1.ResourcesTable(), r2.ResourcesTable())
}

func TestRun_DifferentSeeds_DifferentTraces(t *testing.T) {
	cfg1 := hospitalConfig(t, 1)
	cfg1.Trace = trace.TraceConfig{Level: trace.TraceLevelEvents}
	cfg2 := hospitalConfig(t, 2)
	cfg2.Trace = trace.TraceConfig{Level: trace.TraceLevelEvents}

	r1 := mustRun(t, cfg1)
	r2 := mustRun(t, cfg2)
	assert.NotEqual(t, r1.Trace.Events, r2.Trace.Events)
}

func TestRun_NegativeServiceDraw_ZeroLengthHold(t *testing.T) {
	// Unclipped samplers may draw negative durations; the hold collapses to
	// zero but the raw draw is preserved in the visit record.
	cfg := deskConfig(t, mustSchedule(t, 0), 10)
	cfg.Trajectory = []Step{SeizeStep("desk", fixedSampler{v: -2})}

	result := mustRun(t, cfg)
	require.Len(t, result.Entities, 1)
	v := result.Entities[0].Visits[0]
	assert.Equal(t, -2.0, v.SampledDuration)
	assert.Equal(t, 0.0, v.StartTime)
	assert.Equal(t, 0.0, v.EndTime)
	assert.Equal(t, 0.0, result.Entities[0].DepartureTime)
}

func TestRun_TerminalBranchArm_SkipsRemainingSteps(t *testing.T) {
	cfg := Config{
		Stations: []StationConfig{
			{Name: "a", Capacity: 1},
			{Name: "b", Capacity: 1},
		},
		Trajectory: []Step{
			BranchPoint(BranchArm{Prob: 1, Continue: false, Steps: []Step{
				SeizeStep("a", fixedSampler{v: 1}),
			}}),
			SeizeStep("b", fixedSampler{v: 1}),
		},
		Arrivals: mustSchedule(t, 0),
		Horizon:  10,
		Seed:     42,
	}

	result := mustRun(t, cfg)
	require.Len(t, result.Entities, 1)
	e := result.Entities[0]
	require.Len(t, e.Visits, 1)
	assert.Equal(t, "a", e.Visits[0].Station)
	assert.Equal(t, 1.0, e.DepartureTime)

	b := result.FindStation("b")
	require.NotNil(t, b)
	assert.Zero(t, b.BusyTime)
}

func TestRun_ServiceSamplerFailure_AbortsRun(t *testing.T) {
	cfg := deskConfig(t, mustSchedule(t, 0), 10)
	cfg.Trajectory = []Step{SeizeStep("desk", failingSampler{})}

	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	result, err := s.Run()
	assert.Nil(t, result, "partial results must be discarded")

	var sampleErr *DistributionSampleError
	require.True(t, errors.As(err, &sampleErr))
	assert.Equal(t, SubsystemService, sampleErr.Subsystem)
}

func TestRun_ArrivalSamplerFailure_AbortsRun(t *testing.T) {
	cfg := deskConfig(t, failingArrivals{}, 10)

	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	result, err := s.Run()
	assert.Nil(t, result)

	var sampleErr *DistributionSampleError
	require.True(t, errors.As(err, &sampleErr))
	assert.Equal(t, SubsystemArrivals, sampleErr.Subsystem)
}

func TestRun_SecondRunRejected(t *testing.T) {
	s, err := NewSimulator(deskConfig(t, mustSchedule(t, 0), 10))
	require.NoError(t, err)
	_, err = s.Run()
	require.NoError(t, err)

	_, err = s.Run()
	assert.Error(t, err)
}
