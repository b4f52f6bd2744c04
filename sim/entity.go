package sim

// Entity is one simulated unit (a patient, a job) flowing through the
// station network. An entity is created when its arrival event fires and is
// finalized when its trajectory completes.
type Entity struct {
	ID          int
	ArrivalTime float64

	// Departure is set when the trajectory completes. Entities still in
	// flight when the event queue drains (which cannot happen under the
	// run-to-completion horizon policy) would have Departed == false.
	DepartureTime float64
	Departed      bool

	// Visits records every station the entity passed through, in order.
	Visits []*Visit

	cursor *cursor
}

// Visit is one seize → hold → release interval at a station.
type Visit struct {
	Station string

	// EnterTime is when the entity requested the station (joined the wait
	// queue or seized immediately).
	EnterTime float64
	// StartTime is when service began. StartTime - EnterTime is the wait.
	StartTime float64
	// EndTime is when the station was released.
	EndTime float64

	// SampledDuration is the raw service draw, recorded before the
	// non-negative hold is derived from it. Unclipped normal draws can make
	// this negative; the hold is then zero.
	SampledDuration float64
}

// WaitTime returns the queueing delay of this visit.
func (v *Visit) WaitTime() float64 {
	return v.StartTime - v.EnterTime
}

// ServiceTime returns the in-service duration of this visit.
func (v *Visit) ServiceTime() float64 {
	return v.EndTime - v.StartTime
}

// ActivityTime returns the total in-service time across all visits.
func (e *Entity) ActivityTime() float64 {
	total := 0.0
	for _, v := range e.Visits {
		total += v.ServiceTime()
	}
	return total
}

// WaitingTime returns the total queueing time across all visits.
func (e *Entity) WaitingTime() float64 {
	total := 0.0
	for _, v := range e.Visits {
		total += v.WaitTime()
	}
	return total
}

// FlowTime returns departure - arrival, or 0 for an entity still in flight.
func (e *Entity) FlowTime() float64 {
	if !e.Departed {
		return 0
	}
	return e.DepartureTime - e.ArrivalTime
}

// currentVisit returns the visit record opened by the most recent seize.
func (e *Entity) currentVisit() *Visit {
	if len(e.Visits) == 0 {
		return nil
	}
	return e.Visits[len(e.Visits)-1]
}
