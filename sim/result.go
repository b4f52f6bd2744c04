package sim

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// Result is the immutable outcome of one simulation run: per-entity timing
// records, per-station occupancy series, and the event trace when enabled.
type Result struct {
	// Entities in arrival order, including any still in flight (possible
	// only if the event heap drained abnormally; under the run-to-completion
	// policy every admitted entity departs).
	Entities []*Entity
	// Stations in declaration-independent sorted name order.
	Stations []*StationStats
	// ObservationEnd is max(horizon, final clock); utilization denominators
	// use it.
	ObservationEnd float64
	// Trace is nil-safe; empty unless tracing was enabled.
	Trace *trace.SimulationTrace
}

// StationStats is the per-station slice of a Result.
type StationStats struct {
	Name        string
	Capacity    int
	Occupancy   []OccupancySample
	BusyTime    float64
	Utilization float64
}

func newResult(entities []*Entity, stations map[string]*Station, end float64, tr *trace.SimulationTrace) *Result {
	names := make([]string, 0, len(stations))
	for name := range stations {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]*StationStats, 0, len(names))
	for _, name := range names {
		st := stations[name]
		stats = append(stats, &StationStats{
			Name:        st.Name,
			Capacity:    st.Capacity,
			Occupancy:   st.occupancy,
			BusyTime:    st.busyTime,
			Utilization: st.Utilization(end),
		})
	}
	return &Result{
		Entities:       entities,
		Stations:       stats,
		ObservationEnd: end,
		Trace:          tr,
	}
}

// Table is a tabular artifact ready for CSV rendering or downstream plotting.
type Table struct {
	Header []string
	Rows   [][]string
}

// ArrivalsTable renders one row per entity with its timing columns.
func (r *Result) ArrivalsTable() *Table {
	t := &Table{
		Header: []string{"entity", "arrival_time", "departure_time", "flow_time", "activity_time", "waiting_time", "finished"},
	}
	for _, e := range r.Entities {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(e.ID),
			formatTime(e.ArrivalTime),
			formatTime(e.DepartureTime),
			formatTime(e.FlowTime()),
			formatTime(e.ActivityTime()),
			formatTime(e.WaitingTime()),
			strconv.FormatBool(e.Departed),
		})
	}
	return t
}

// ResourcesTable renders one row per station per state-change event.
func (r *Result) ResourcesTable() *Table {
	t := &Table{
		Header: []string{"resource", "time", "server", "queue", "capacity", "utilization"},
	}
	for _, st := range r.Stations {
		util := strconv.FormatFloat(st.Utilization, 'f', 6, 64)
		for _, s := range st.Occupancy {
			t.Rows = append(t.Rows, []string{
				st.Name,
				formatTime(s.Time),
				strconv.Itoa(s.Busy),
				strconv.Itoa(s.QueueLen),
				strconv.Itoa(st.Capacity),
				util,
			})
		}
	}
	return t
}

func formatTime(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FindStation returns the stats for the named station, or nil.
func (r *Result) FindStation(name string) *StationStats {
	for _, st := range r.Stations {
		if st.Name == name {
			return st
		}
	}
	return nil
}

func (r *Result) String() string {
	return fmt.Sprintf("Result{%d entities, %d stations, end=%g}", len(r.Entities), len(r.Stations), r.ObservationEnd)
}
