package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionedRNG_SameSubsystemReturnsCachedInstance(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(42))
	r1 := p.ForSubsystem(SubsystemService)
	r2 := p.ForSubsystem(SubsystemService)
	assert.Same(t, r1, r2)
}

func TestPartitionedRNG_ArrivalsUsesMasterSeedDirectly(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(42))
	got := p.ForSubsystem(SubsystemArrivals)
	want := rand.New(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		assert.Equal(t, want.Float64(), got.Float64())
	}
}

func TestPartitionedRNG_SubsystemsAreIsolated(t *testing.T) {
	// Draining one subsystem's stream must not perturb another's.
	p1 := NewPartitionedRNG(NewSimulationKey(42))
	p2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 100; i++ {
		p1.ForSubsystem(SubsystemBranch).Float64()
	}

	s1 := p1.ForSubsystem(SubsystemService)
	s2 := p2.ForSubsystem(SubsystemService)
	for i := 0; i < 10; i++ {
		assert.Equal(t, s2.Float64(), s1.Float64())
	}
}

func TestPartitionedRNG_DifferentSeedsDiverge(t *testing.T) {
	a := NewPartitionedRNG(NewSimulationKey(1)).ForSubsystem(SubsystemService)
	b := NewPartitionedRNG(NewSimulationKey(2)).ForSubsystem(SubsystemService)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestPartitionedRNG_Key(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(7))
	assert.Equal(t, NewSimulationKey(7), p.Key())
}
