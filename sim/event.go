package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in simulated time units) and an Execute method
// that advances simulation state when invoked. Execute returns an error only
// for sampler failures, which abort the run.
type Event interface {
	Timestamp() float64
	Execute(*Simulator) error
}

// ArrivalEvent represents a new entity entering the network.
type ArrivalEvent struct {
	time   float64
	Entity *Entity
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute starts the entity down its trajectory: the first visit either
// begins service or joins the station's wait queue.
func (e *ArrivalEvent) Execute(sim *Simulator) error {
	logrus.Infof("<< Arrival: entity %d at t=%g", e.Entity.ID, e.time)
	return sim.handleArrival(e.Entity, e.time)
}

// EndServiceEvent represents an entity finishing service at a station:
// the station is released, the head of its wait queue (if any) is admitted,
// and the releasing entity advances to its next trajectory step.
type EndServiceEvent struct {
	time    float64
	Entity  *Entity
	Station *Station
}

// Timestamp returns the scheduled time of the EndServiceEvent.
func (e *EndServiceEvent) Timestamp() float64 {
	return e.time
}

// Execute the EndServiceEvent.
func (e *EndServiceEvent) Execute(sim *Simulator) error {
	logrus.Infof("<< EndService: entity %d releases %s at t=%g", e.Entity.ID, e.Station.Name, e.time)
	return sim.handleEndService(e.Entity, e.Station, e.time)
}
