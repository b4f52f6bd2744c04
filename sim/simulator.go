package sim

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, system state, and
// the event loop. Each Simulator owns its state exclusively; nothing mutates
// it from outside during Run.
type Simulator struct {
	Clock   float64
	Horizon float64
	// EventHeap has all pending events, ordered by timestamp then insertion.
	EventHeap *EventHeap
	// Stations maps station name to runtime state.
	Stations map[string]*Station
	// Entities holds every admitted entity in arrival order.
	Entities []*Entity
	// Trace records executed events when enabled.
	Trace *trace.SimulationTrace

	cfg Config
	rng *PartitionedRNG
	ran bool
}

// NewSimulator validates the configuration and builds a ready-to-run
// simulator. A *ConfigError is returned before any simulated time advances.
func NewSimulator(cfg Config) (*Simulator, error) {
	stations, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	return &Simulator{
		Horizon:   cfg.Horizon,
		EventHeap: NewEventHeap(),
		Stations:  stations,
		Trace:     trace.NewSimulationTrace(cfg.Trace),
		cfg:       cfg,
		rng:       NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
	}, nil
}

// Run executes the simulation: arrivals are generated up to the horizon,
// then events are processed in timestamp order until the heap drains.
// Entities admitted before the horizon run to completion, so the final clock
// may exceed the horizon. On a sampler failure the run aborts and partial
// results are discarded.
func (sim *Simulator) Run() (*Result, error) {
	if sim.ran {
		return nil, errors.New("simulator already ran; build a new one to rerun")
	}
	sim.ran = true

	if err := sim.generateArrivals(); err != nil {
		return nil, err
	}

	for sim.EventHeap.Len() > 0 {
		// get the next event to be simulated
		ev := sim.EventHeap.PopNext()
		// advance the clock
		sim.Clock = ev.Timestamp()
		logrus.Infof("[t=%09.3f] Executing %T", sim.Clock, ev)
		// process the event
		if err := ev.Execute(sim); err != nil {
			return nil, err
		}
	}
	logrus.Infof("[t=%09.3f] Simulation ended", sim.Clock)

	return sim.buildResult(), nil
}

// generateArrivals samples inter-arrival times and schedules one arrival
// event per admitted entity. Admission stops strictly past the horizon: an
// arrival sampled at t > Horizon is never created.
func (sim *Simulator) generateArrivals() error {
	rng := sim.rng.ForSubsystem(SubsystemArrivals)
	currentTime := 0.0

	for {
		iat, err := sim.cfg.Arrivals.SampleIAT(rng)
		if err != nil {
			if errors.Is(err, errScheduleExhausted) {
				return nil
			}
			return &DistributionSampleError{Subsystem: SubsystemArrivals, Clock: currentTime, Err: err}
		}
		currentTime += iat
		if currentTime > sim.Horizon {
			return nil
		}

		e := &Entity{
			ID:          len(sim.Entities),
			ArrivalTime: currentTime,
			cursor:      newCursor(sim.cfg.Trajectory),
		}
		sim.Entities = append(sim.Entities, e)
		sim.EventHeap.Schedule(&ArrivalEvent{time: currentTime, Entity: e})
	}
}

// handleArrival records the arrival and starts the entity's trajectory.
func (sim *Simulator) handleArrival(e *Entity, now float64) error {
	sim.Trace.Record(trace.EventRecord{Clock: now, Kind: trace.KindArrival, EntityID: e.ID})
	return sim.startNextStep(e, now)
}

// startNextStep executes trajectory steps until the entity blocks on a
// station (in service or queued) or departs. Branch points consume no
// simulated time, so they are resolved inline.
func (sim *Simulator) startNextStep(e *Entity, now float64) error {
	for {
		step := e.cursor.current()
		if step == nil {
			sim.depart(e, now)
			return nil
		}

		if step.Branch != nil {
			arm := step.Branch.selectArm(sim.rng.ForSubsystem(SubsystemBranch))
			sim.Trace.Record(trace.EventRecord{Clock: now, Kind: trace.KindBranch, EntityID: e.ID, Arm: arm})
			e.cursor.enterArm(&step.Branch.Arms[arm])
			continue
		}

		st := sim.Stations[step.Visit.Station]
		e.Visits = append(e.Visits, &Visit{Station: st.Name, EnterTime: now})
		if st.hasCapacity() {
			return sim.beginService(st, e, now)
		}
		st.enqueue(e, now)
		sim.Trace.Record(trace.EventRecord{Clock: now, Kind: trace.KindWait, EntityID: e.ID, Station: st.Name})
		logrus.Infof("entity %d waits for %s (queue length %d)", e.ID, st.Name, len(st.waitQ))
		return nil
	}
}

// beginService seizes the station for the entity and schedules its release.
// The entity's cursor must point at the visit step being served.
func (sim *Simulator) beginService(st *Station, e *Entity, now float64) error {
	visit := e.currentVisit()
	step := e.cursor.current()

	d, err := step.Visit.Service.Sample(sim.rng.ForSubsystem(SubsystemService))
	if err != nil {
		return &DistributionSampleError{Subsystem: SubsystemService, Clock: now, Err: err}
	}

	st.seize(now)
	visit.StartTime = now
	visit.SampledDuration = d
	sim.Trace.Record(trace.EventRecord{Clock: now, Kind: trace.KindSeize, EntityID: e.ID, Station: st.Name})

	// Unclipped samplers may return a negative duration; the hold is then
	// zero-length but the raw draw stays in the visit record.
	hold := math.Max(d, 0)
	sim.EventHeap.Schedule(&EndServiceEvent{time: now + hold, Entity: e, Station: st})
	return nil
}

// handleEndService releases the station, admits the head of its wait queue,
// and advances the releasing entity.
func (sim *Simulator) handleEndService(e *Entity, st *Station, now float64) error {
	e.currentVisit().EndTime = now
	sim.Trace.Record(trace.EventRecord{Clock: now, Kind: trace.KindRelease, EntityID: e.ID, Station: st.Name})

	next := st.release(now)
	if next != nil {
		if err := sim.beginService(st, next, now); err != nil {
			return err
		}
	}

	e.cursor.advance()
	return sim.startNextStep(e, now)
}

func (sim *Simulator) depart(e *Entity, now float64) {
	e.Departed = true
	e.DepartureTime = now
	sim.Trace.Record(trace.EventRecord{Clock: now, Kind: trace.KindDeparture, EntityID: e.ID})
	logrus.Infof("entity %d departed at t=%g (flow time %g)", e.ID, now, e.FlowTime())
}

// buildResult closes the busy-time integrals and assembles the result.
// The observation window runs to max(horizon, final clock) because admitted
// entities may finish after the horizon.
func (sim *Simulator) buildResult() *Result {
	end := math.Max(sim.Horizon, sim.Clock)
	for _, st := range sim.Stations {
		st.finalize(end)
	}
	return newResult(sim.Entities, sim.Stations, end, sim.Trace)
}
