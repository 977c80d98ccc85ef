package session

import (
	"github.com/milk9111/bladebound/economy"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/ecs/system"
)

// Stats summarizes what happened in a session so far.
type Stats struct {
	Ticks          uint64
	EnemiesKilled  int
	BossDefeated   bool
	BossPhase      int
	PlayerDeaths   int
	CoinsCollected int
	HitsLanded     int
	HitsBlocked    int
	Economy        economy.Stats
}

func (s *Session) Stats() Stats {
	out := s.stats
	out.Economy = s.economy.Stats()
	return out
}

// record folds this tick's events into the running stats. Events stay
// readable until the next tick begins.
func (s *Session) record() {
	s.stats.Ticks++
	events := s.world.Events()

	events.Each(system.EventDeath, func(evt ecs.Event) {
		d, ok := evt.Data.(system.DeathEvent)
		if !ok {
			return
		}
		switch {
		case d.Category.Has(component.CategoryPlayer):
			s.stats.PlayerDeaths++
		case d.Category.Has(component.CategoryBoss):
			s.stats.BossDefeated = true
		case d.Category.Has(component.CategoryEnemy):
			s.stats.EnemiesKilled++
		}
	})
	events.Each(system.EventCoinPickup, func(ecs.Event) { s.stats.CoinsCollected++ })
	events.Each(system.EventDamaged, func(ecs.Event) { s.stats.HitsLanded++ })
	events.Each(system.EventBlocked, func(ecs.Event) { s.stats.HitsBlocked++ })
	events.Each(system.EventPhaseChanged, func(evt ecs.Event) {
		if p, ok := evt.Data.(system.PhaseEvent); ok {
			s.stats.BossPhase = p.To
		}
	})
}

// Done reports whether the encounter is over: the boss is defeated, or
// there was no boss and every enemy is gone.
func (s *Session) Done() bool {
	if s.cfg.Encounter.Boss != nil {
		return s.stats.BossDefeated
	}
	return len(s.world.Query(component.EnemyTagComponent.Kind())) == 0
}
