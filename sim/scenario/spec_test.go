package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DefaultScenario(t *testing.T) {
	spec, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "hospital", spec.Name)
	assert.Equal(t, int64(42), spec.Seed)
	assert.Equal(t, 540.0, spec.Horizon)
	assert.Equal(t, "poisson", spec.Arrivals.Process)
	assert.Equal(t, 15.0, spec.Arrivals.MeanIAT)
	assert.Len(t, spec.Stations, 4)
	assert.Len(t, spec.Trajectory, 4)

	branch := spec.Trajectory[1].Branch
	require.NotNil(t, branch)
	require.Len(t, branch.Arms, 2)
	assert.Equal(t, 0.75, branch.Arms[0].Prob)
	assert.True(t, branch.Arms[0].Continue)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`
seed: 1
horizn: 100
`))
	require.Error(t, err, "typoed field must not be silently dropped")
}

func TestParse_MinimalScenario(t *testing.T) {
	spec, err := Parse([]byte(`
seed: 7
horizon: 100
arrivals:
  process: constant
  mean_iat: 10
stations:
  - name: desk
    capacity: 1
trajectory:
  - visit:
      station: desk
      service:
        type: constant
        params: {value: 3}
`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), spec.Seed)
	require.Len(t, spec.Trajectory, 1)
	require.NotNil(t, spec.Trajectory[0].Visit)
	assert.Equal(t, "desk", spec.Trajectory[0].Visit.Station)
}
