package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents     int
	Arrivals        int
	Departures      int
	Waits           int
	BranchDraws     int
	SeizesByStation map[string]int // station name → count of seizes
	ArmCounts       map[int]int    // branch arm index → selection count
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		SeizesByStation: make(map[string]int),
		ArmCounts:       make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for _, ev := range st.Events {
		switch ev.Kind {
		case KindArrival:
			summary.Arrivals++
		case KindDeparture:
			summary.Departures++
		case KindWait:
			summary.Waits++
		case KindSeize:
			summary.SeizesByStation[ev.Station]++
		case KindBranch:
			summary.BranchDraws++
			summary.ArmCounts[ev.Arm]++
		}
	}

	return summary
}
