package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTraceLevel(t *testing.T) {
	assert.True(t, IsValidTraceLevel(""))
	assert.True(t, IsValidTraceLevel("none"))
	assert.True(t, IsValidTraceLevel("events"))
	assert.False(t, IsValidTraceLevel("verbose"))
}

func TestRecord_DisabledTraceStaysEmpty(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})
	st.Record(EventRecord{Clock: 1, Kind: KindArrival, EntityID: 0})
	assert.Empty(t, st.Events)
}

func TestRecord_NilTraceIsSafe(t *testing.T) {
	var st *SimulationTrace
	st.Record(EventRecord{Clock: 1, Kind: KindArrival})
}

func TestRecord_EnabledTraceAppendsInOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.Record(EventRecord{Clock: 1, Kind: KindArrival, EntityID: 0})
	st.Record(EventRecord{Clock: 1, Kind: KindSeize, EntityID: 0, Station: "desk"})
	st.Record(EventRecord{Clock: 4, Kind: KindRelease, EntityID: 0, Station: "desk"})

	assert.Len(t, st.Events, 3)
	assert.Equal(t, KindSeize, st.Events[1].Kind)
	assert.Equal(t, "desk", st.Events[1].Station)
}
