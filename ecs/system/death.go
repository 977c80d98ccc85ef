package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

const (
	playerAnimDeath = "Death"
	enemyAnimDead   = "isDead"
)

// DeathConfig holds the delays applied after a death.
type DeathConfig struct {
	// RespawnDelay is how long a dead player waits before respawning.
	RespawnDelay float64
	// RemovalDelay is how long a dead enemy stays before it is destroyed.
	RemovalDelay float64
}

// DeathSystem reacts to death events: the player pays the death penalty and
// is queued for respawn, enemies pay out and are removed, the boss stops.
type DeathSystem struct {
	log     *zap.Logger
	cfg     DeathConfig
	economy Economy
	spawner Spawner
	scripts *RewardScripts
	rng     *rand.Rand
}

func NewDeathSystem(log *zap.Logger, cfg DeathConfig, economy Economy, spawner Spawner, scripts *RewardScripts, rng *rand.Rand) *DeathSystem {
	if log == nil {
		log = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &DeathSystem{log: log, cfg: cfg, economy: economy, spawner: spawner, scripts: scripts, rng: rng}
}

func (s *DeathSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Events().Each(EventDeath, func(evt ecs.Event) {
		death, ok := evt.Data.(DeathEvent)
		if !ok || !ecs.IsAlive(w, death.Entity) {
			return
		}
		switch {
		case death.Category.Has(component.CategoryPlayer):
			s.playerDied(w, death)
		case death.Category.Has(component.CategoryBoss):
			s.bossDied(w, death)
		case death.Category.Has(component.CategoryEnemy):
			s.enemyDied(w, death)
		}
	})
}

func (s *DeathSystem) playerDied(w *ecs.World, d DeathEvent) {
	e := d.Entity
	animatorOf(w, e).SetTrigger(playerAnimDeath)
	if s.economy != nil {
		s.economy.ApplyDeathPenalty(d.Position)
	}
	if stamina, ok := ecs.Get(w, e, component.BlockStaminaComponent.Kind()); ok {
		stamina.Break()
	}
	if combat, ok := ecs.Get(w, e, component.PlayerCombatComponent.Kind()); ok {
		combat.Intent = component.IntentNone
	}
	setVelocity(w, e, common.Vec2{})
	_ = ecs.Add(w, e, component.DisabledComponent.Kind(), &component.Disabled{})

	req := &component.RespawnRequest{}
	req.Timer.Reset(s.cfg.RespawnDelay)
	_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), req)
	s.log.Info("player died", zap.Float64("x", d.Position.X), zap.Float64("y", d.Position.Y))
}

func (s *DeathSystem) enemyDied(w *ecs.World, d DeathEvent) {
	e := d.Entity
	reward := s.reward(w, e, d.Position)
	if s.economy != nil && reward.Points > 0 {
		s.economy.AwardPoints(reward.Points)
	}
	if s.spawner != nil && reward.Coins > 0 {
		if err := s.spawner.SpawnCoins(w, d.Position, reward.Coins); err != nil {
			s.log.Warn("enemy coin drop failed", zap.Error(err))
		}
	}

	animatorOf(w, e).SetBool(enemyAnimDead, true)
	s.disable(w, e)
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Remaining: s.cfg.RemovalDelay})
	s.log.Info("enemy died",
		zap.Uint64("entity", uint64(e)),
		zap.Int("points", reward.Points),
		zap.Int("coins", reward.Coins),
	)
}

func (s *DeathSystem) bossDied(w *ecs.World, d DeathEvent) {
	e := d.Entity
	if rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind()); ok {
		if rt.Combo.Active {
			rt.Combo.Active = false
			rt.Combo.Aborted = true
		}
		rt.Behavior = component.BossDead
		s.hideUI(w, e)
	}
	reward := s.reward(w, e, d.Position)
	if s.economy != nil && reward.Points > 0 {
		s.economy.AwardPoints(reward.Points)
	}
	animatorOf(w, e).SetTrigger(bossAnimDead)
	s.disable(w, e)
	s.log.Info("boss defeated", zap.Uint64("entity", uint64(e)), zap.Int("points", reward.Points))
}

func (s *DeathSystem) disable(w *ecs.World, e ecs.Entity) {
	setVelocity(w, e, common.Vec2{})
	if phys := w.Physics(); phys != nil {
		phys.SetEnabled(e, false)
	}
	_ = ecs.Add(w, e, component.DisabledComponent.Kind(), &component.Disabled{})
}

func (s *DeathSystem) hideUI(w *ecs.World, e ecs.Entity) {
	if hb, ok := ecs.Get(w, e, component.HealthBarComponent.Kind()); ok {
		hb.Visible = false
		if hb.Bar != nil {
			hb.Bar.SetVisible(false)
		}
	}
	if pt, ok := ecs.Get(w, e, component.PhaseTextComponent.Kind()); ok && pt.Display != nil {
		pt.Display.SetVisible(false)
	}
}

// reward returns the entity's death reward, run through its script when
// one is configured. Script failures fall back to the base values.
func (s *DeathSystem) reward(w *ecs.World, e ecs.Entity, at common.Vec2) Reward {
	dr, ok := ecs.Get(w, e, component.DeathRewardComponent.Kind())
	if !ok {
		return Reward{}
	}
	base := Reward{Points: dr.Points, Coins: dr.Coins}
	if dr.Script == "" || s.scripts == nil {
		return base
	}
	out, err := s.scripts.Evaluate(dr.Script, base, s.rng.Float64(), at)
	if err != nil {
		s.log.Warn("reward script failed", zap.String("script", dr.Script), zap.Error(err))
		return base
	}
	return out
}
