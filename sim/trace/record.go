// Package trace provides event-trace recording for simulation runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// EventKind names one kind of recorded simulation event.
type EventKind string

const (
	KindArrival   EventKind = "arrival"
	KindSeize     EventKind = "seize"
	KindWait      EventKind = "wait"
	KindStart     EventKind = "start_service"
	KindRelease   EventKind = "release"
	KindBranch    EventKind = "branch"
	KindDeparture EventKind = "departure"
)

// EventRecord captures a single executed simulation event. Two runs with the
// same seed and configuration produce identical record sequences, which is
// the property the determinism tests assert on.
type EventRecord struct {
	Clock    float64
	Kind     EventKind
	EntityID int
	Station  string // empty for arrival/branch/departure records
	Arm      int    // selected arm index, branch records only
}
