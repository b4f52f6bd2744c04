package sim

// StationConfig declares one service point of the network.
type StationConfig struct {
	Name     string
	Capacity int // concurrent entities the station can serve, must be > 0
}

// Station is the runtime state of a capacity-constrained service point.
// Entities that find the station full wait in a FIFO queue; a release admits
// the head of the queue immediately.
type Station struct {
	Name     string
	Capacity int

	// busy is the number of capacity units currently seized.
	busy int
	// waitQ holds entities waiting to seize, in arrival order.
	waitQ []*Entity

	// occupancy is the (time, busy, queue length) series, appended on every
	// change. The resources table is rendered straight from it.
	occupancy []OccupancySample

	// busyTime accumulates busy × elapsed, the server-time integral that
	// utilization is derived from.
	busyTime   float64
	lastChange float64
}

// OccupancySample is one point of a station's state series.
type OccupancySample struct {
	Time     float64
	Busy     int
	QueueLen int
}

func newStation(cfg StationConfig) *Station {
	s := &Station{Name: cfg.Name, Capacity: cfg.Capacity}
	s.occupancy = append(s.occupancy, OccupancySample{Time: 0})
	return s
}

// hasCapacity reports whether a seize can begin service immediately.
func (s *Station) hasCapacity() bool {
	return s.busy < s.Capacity
}

// seize occupies one unit of capacity at time now.
// Callers must check hasCapacity first.
func (s *Station) seize(now float64) {
	s.accumulate(now)
	s.busy++
	s.record(now)
}

// release frees one unit of capacity at time now and returns the next waiting
// entity, if any. The caller begins that entity's service at the same tick.
func (s *Station) release(now float64) *Entity {
	s.accumulate(now)
	s.busy--
	var next *Entity
	if len(s.waitQ) > 0 {
		next = s.waitQ[0]
		s.waitQ = s.waitQ[1:]
	}
	s.record(now)
	return next
}

// enqueue appends an entity to the wait queue at time now.
func (s *Station) enqueue(e *Entity, now float64) {
	s.accumulate(now)
	s.waitQ = append(s.waitQ, e)
	s.record(now)
}

// accumulate folds the elapsed interval into the busy-time integral.
func (s *Station) accumulate(now float64) {
	s.busyTime += float64(s.busy) * (now - s.lastChange)
	s.lastChange = now
}

// record appends the current state to the occupancy series. Consecutive
// samples at the same tick are collapsed so a release+admit pair produces a
// single row.
func (s *Station) record(now float64) {
	sample := OccupancySample{Time: now, Busy: s.busy, QueueLen: len(s.waitQ)}
	if n := len(s.occupancy); n > 0 && s.occupancy[n-1].Time == now {
		s.occupancy[n-1] = sample
		return
	}
	s.occupancy = append(s.occupancy, sample)
}

// finalize closes the busy-time integral at the observation end.
func (s *Station) finalize(end float64) {
	s.accumulate(end)
}

// Utilization returns busy server-time divided by capacity × observation
// window. finalize must have been called.
func (s *Station) Utilization(end float64) float64 {
	if end <= 0 {
		return 0
	}
	return s.busyTime / (float64(s.Capacity) * end)
}
