package session

import (
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/ecs/entity"
)

// Upgrade is a player stat the balance can buy levels of.
type Upgrade int

const (
	UpgradeHealth Upgrade = iota
	UpgradeAttack
)

func (u Upgrade) String() string {
	switch u {
	case UpgradeHealth:
		return "health"
	case UpgradeAttack:
		return "attack"
	default:
		return "unknown"
	}
}

func (u Upgrade) valid() bool {
	return u == UpgradeHealth || u == UpgradeAttack
}

// UpgradeLevel returns u's current level. Levels start at 1.
func (s *Session) UpgradeLevel(u Upgrade) int {
	if !u.valid() {
		return 0
	}
	return s.levels[u] + 1
}

// UpgradeCost returns the price of u's next level.
func (s *Session) UpgradeCost(u Upgrade) int {
	if !u.valid() {
		return 0
	}
	base, mult := s.upgradePrice(u)
	return int(math.Round(float64(base) * math.Pow(mult, float64(s.levels[u]))))
}

// CanUpgrade reports whether the balance covers u's next level.
func (s *Session) CanUpgrade(u Upgrade) bool {
	return u.valid() && s.economy.CanAfford(s.UpgradeCost(u))
}

// Purchase spends the cost of u's next level and applies it to the player.
// A health level raises the maximum and heals by the same amount. It reports
// false, leaving the balance untouched, when the player is gone or the
// balance falls short.
func (s *Session) Purchase(u Upgrade) bool {
	if !u.valid() || !s.player.Valid() || !ecs.IsAlive(s.world, s.player) {
		return false
	}
	cost := s.UpgradeCost(u)
	if !s.economy.Spend(cost) {
		return false
	}

	up := s.cfg.Upgrades
	switch u {
	case UpgradeHealth:
		if h, ok := ecs.Get(s.world, s.player, component.HealthComponent.Kind()); ok {
			h.Max += up.HealthAmount
			if !h.Dead {
				h.Current += up.HealthAmount
			}
		}
	case UpgradeAttack:
		if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok {
			p.AttackDamage += up.AttackAmount
		}
	}
	s.levels[u]++

	s.log.Info("upgrade purchased",
		zap.Stringer("upgrade", u),
		zap.Int("level", s.UpgradeLevel(u)),
		zap.Int("cost", cost),
		zap.Int("balance", s.economy.Balance()),
	)
	return true
}

func (s *Session) upgradePrice(u Upgrade) (int, float64) {
	up := s.cfg.Upgrades
	if u == UpgradeAttack {
		return up.AttackBaseCost, up.AttackCostMultiplier
	}
	return up.HealthBaseCost, up.HealthCostMultiplier
}

// restoreUpgrades puts purchased attack levels back after the player's
// prefab was retuned from disk.
func (s *Session) restoreUpgrades(prefab string) {
	ref, ok := ecs.Get(s.world, s.player, component.PrefabRefComponent.Kind())
	if !ok || ref.Name != entity.PrefabName(prefab) {
		return
	}
	if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok {
		p.AttackDamage += s.levels[UpgradeAttack] * s.cfg.Upgrades.AttackAmount
	}
}
