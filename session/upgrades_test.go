package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/prefabs"
)

func TestPurchaseRaisesStatsAndCost(t *testing.T) {
	cfg := testConfig(t)
	cfg.StartingBalance = 1000
	s := newSession(t, cfg)
	w := s.World()
	h, _ := ecs.Get(w, s.Player(), component.HealthComponent.Kind())
	p, _ := ecs.Get(w, s.Player(), component.PlayerComponent.Kind())
	h.Current = 3

	assert.Equal(t, 1, s.UpgradeLevel(UpgradeHealth))
	assert.Equal(t, 100, s.UpgradeCost(UpgradeHealth))
	assert.Equal(t, 150, s.UpgradeCost(UpgradeAttack))

	require.True(t, s.Purchase(UpgradeHealth))
	assert.Equal(t, 6, h.Max)
	assert.Equal(t, 4, h.Current, "a health level also heals")
	assert.Equal(t, 2, s.UpgradeLevel(UpgradeHealth))
	assert.Equal(t, 150, s.UpgradeCost(UpgradeHealth))
	assert.Equal(t, 900, s.Economy().Balance())

	require.True(t, s.Purchase(UpgradeAttack))
	assert.Equal(t, 2, p.AttackDamage)
	assert.Equal(t, 270, s.UpgradeCost(UpgradeAttack))
	assert.Equal(t, 750, s.Economy().Balance())

	require.True(t, s.Purchase(UpgradeHealth))
	assert.Equal(t, 225, s.UpgradeCost(UpgradeHealth))
	assert.Equal(t, 600, s.Economy().Balance())
}

func TestPurchaseNeedsBalance(t *testing.T) {
	cfg := testConfig(t)
	cfg.StartingBalance = 120
	s := newSession(t, cfg)
	p, _ := ecs.Get(s.World(), s.Player(), component.PlayerComponent.Kind())

	assert.False(t, s.CanUpgrade(UpgradeAttack))
	assert.False(t, s.Purchase(UpgradeAttack))
	assert.Equal(t, 120, s.Economy().Balance())
	assert.Equal(t, 1, p.AttackDamage)
	assert.Equal(t, 1, s.UpgradeLevel(UpgradeAttack))

	assert.True(t, s.CanUpgrade(UpgradeHealth))
	require.True(t, s.Purchase(UpgradeHealth))
	assert.Equal(t, 20, s.Economy().Balance())
	assert.False(t, s.Purchase(UpgradeHealth))

	assert.False(t, s.Purchase(Upgrade(9)))
	assert.Zero(t, s.UpgradeCost(Upgrade(9)))
}

func TestUpgradesSurvivePlayerReload(t *testing.T) {
	cfg := testConfig(t)
	cfg.StartingBalance = 500
	s := newSession(t, cfg)
	require.True(t, s.Purchase(UpgradeAttack))

	data, err := prefabs.Load("player.yaml")
	require.NoError(t, err)
	require.Contains(t, string(data), "  damage: 1\n")
	edited := strings.Replace(string(data), "  damage: 1\n", "  damage: 3\n", 1)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PrefabDir, "player.yaml"), []byte(edited), 0o644))

	s.Reload(prefabs.Change{Name: "player.yaml"})
	p, _ := ecs.Get(s.World(), s.Player(), component.PlayerComponent.Kind())
	assert.Equal(t, 4, p.AttackDamage)
}
