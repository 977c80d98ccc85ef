package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 1.0 / 60.0

func newStamina() *BlockStamina {
	return &BlockStamina{Current: 100, Max: 100, DrainRate: 30, RegenRate: 20, MinToStart: 20}
}

func TestBlockStaminaDrainsToZeroThenForcesRelease(t *testing.T) {
	s := newStamina()
	s.Current = 25

	require.True(t, s.Update(true, step))
	ticks := 1
	for s.Blocking {
		s.Update(true, step)
		ticks++
		require.GreaterOrEqual(t, s.Current, 0.0)
		require.Less(t, ticks, 1000)
	}
	assert.Equal(t, 0.0, s.Current)
	assert.False(t, s.Blocking)
	// 25 stamina at 30/s lasts 50 ticks, give or take float rounding
	assert.InDelta(t, 50, ticks, 1)
}

func TestBlockStaminaStartNeedsMinimum(t *testing.T) {
	s := newStamina()
	s.Current = 19
	assert.False(t, s.Update(true, step))
	assert.Greater(t, s.Current, 19.0, "failed start regenerates")

	s.Current = 20
	assert.True(t, s.Update(true, step))
}

func TestBlockStaminaContinuesBelowMinimum(t *testing.T) {
	s := newStamina()
	s.Current = 21
	require.True(t, s.Update(true, 0.1))
	require.Less(t, s.Current, s.MinToStart)
	assert.True(t, s.Update(true, 0.1))

	// releasing and pressing again below the minimum does not re-engage
	assert.False(t, s.Update(false, step))
	assert.False(t, s.Update(true, step))
}

func TestBlockStaminaRegenCapsAtMax(t *testing.T) {
	s := newStamina()
	s.Current = 99
	s.Update(false, 1)
	assert.Equal(t, 100.0, s.Current)
}

func TestBossPhaseFor(t *testing.T) {
	b := &Boss{Phase2Threshold: 0.7, Phase3Threshold: 0.3}
	tests := []struct {
		health int
		want   int
	}{
		{100, 1},
		{71, 1},
		{70, 2},
		{65, 2},
		{30, 3},
		{25, 3},
		{0, 3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, b.PhaseFor(float64(tc.health)/100), "health %d", tc.health)
	}
}

func TestTimer(t *testing.T) {
	var tm Timer
	assert.True(t, tm.Elapsed())
	tm.Start(0.2)
	assert.False(t, tm.Tick(0.1))
	assert.True(t, tm.Tick(0.1))
	assert.False(t, tm.Tick(0.1), "expiry is reported once")
	tm.Reset(1)
	tm.Reset(0.5)
	assert.InDelta(t, 0.5, tm.Remaining, 1e-9)
}
