package component

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthTakeDamage(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		amount  int
		want    DamageOutcome
		wantHP  int
		wantDie bool
	}{
		{"damaged", 5, 2, DamageDamaged, 3, false},
		{"overkill_clamps_to_zero", 3, 10, DamageKilled, 0, true},
		{"exact_kill", 1, 1, DamageKilled, 0, true},
		{"non_positive_ignored", 5, 0, DamageIgnored, 5, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealth(5, 1)
			h.Current = tc.start
			assert.Equal(t, tc.want, h.TakeDamage(tc.amount))
			assert.Equal(t, tc.wantHP, h.Current)
			assert.Equal(t, tc.wantDie, h.Dead)
		})
	}
}

func TestHealthInvincibilityAbsorbsDamage(t *testing.T) {
	h := NewHealth(5, 1)
	require.Equal(t, DamageDamaged, h.TakeDamage(1))
	require.True(t, h.Invincible())

	assert.Equal(t, DamageAbsorbed, h.TakeDamage(3))
	assert.Equal(t, 4, h.Current)

	h.Tick(0.5)
	assert.Equal(t, DamageAbsorbed, h.TakeDamage(3))
	h.Tick(0.5)
	assert.False(t, h.Invincible())
	assert.Equal(t, DamageDamaged, h.TakeDamage(3))
	assert.Equal(t, 1, h.Current)
}

func TestHealthSetInvincibleKeepsLongerWindow(t *testing.T) {
	h := NewHealth(3, 0)
	h.SetInvincible(1)
	h.SetInvincible(0.3)
	assert.InDelta(t, 1, h.Invincibility.Remaining, 1e-9)

	h.CancelInvincibility()
	assert.False(t, h.Invincible())
}

func TestHealthDeathIsTerminalUntilRespawn(t *testing.T) {
	h := NewHealth(2, 0)
	require.Equal(t, DamageKilled, h.TakeDamage(2))
	assert.False(t, h.Kill(), "second death is a no-op")

	h.Heal(2)
	assert.Equal(t, 0, h.Current)
	assert.Equal(t, DamageIgnored, h.TakeDamage(1))

	h.Respawn()
	assert.False(t, h.Dead)
	assert.Equal(t, 2, h.Current)
}

func TestHealthKillIgnoresInvincibility(t *testing.T) {
	h := NewHealth(5, 0)
	h.SetInvincible(2)
	assert.True(t, h.Kill())
	assert.True(t, h.Dead)
	assert.Equal(t, 0, h.Current)
}

func TestHealthStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	h := NewHealth(10, 0.1)
	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0:
			h.TakeDamage(rng.Intn(4))
		case 1:
			h.Heal(rng.Intn(4))
		case 2:
			h.Tick(rng.Float64() * 0.2)
		case 3:
			if h.Dead && rng.Intn(10) == 0 {
				h.Respawn()
			}
		}
		require.GreaterOrEqual(t, h.Current, 0)
		require.LessOrEqual(t, h.Current, h.Max)
		if h.Dead {
			require.Equal(t, 0, h.Current)
		}
	}
}
