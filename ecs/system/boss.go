package system

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

const (
	bossAnimPhase    = "Phase"
	bossAnimWalking  = "IsWalking"
	bossAnimRunning  = "IsRunning"
	bossAnimShooting = "IsShooting"
	bossAnimDead     = "IsDead"
)

var bossComboTriggers = [...]string{"IsAttacking1", "IsAttacking2", "IsAttacking3"}

// BossSystem runs the three-phase boss. The phase is derived from the health
// ratio and never decreases; each phase has its own movement and attack
// policy, with phase 3 melee replaced by an uninterruptible three-hit combo.
type BossSystem struct {
	log     *zap.Logger
	hits    HitQueue
	spawner Spawner
	rng     *rand.Rand
}

func NewBossSystem(log *zap.Logger, hits HitQueue, spawner Spawner, rng *rand.Rand) *BossSystem {
	if log == nil {
		log = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &BossSystem{log: log, hits: hits, spawner: spawner, rng: rng}
}

func (s *BossSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	_, targetPos, hasTarget := livePlayer(w)

	ecs.ForEach3(w, component.BossComponent.Kind(), component.BossRuntimeComponent.Kind(), component.HealthComponent.Kind(),
		func(e ecs.Entity, cfg *component.Boss, rt *component.BossRuntime, h *component.Health) {
			hitEvents := takeAnimationEvents(w, e, component.AnimationEventHit)
			fireEvents := takeAnimationEvents(w, e, component.AnimationEventFire)
			stepEvents := takeAnimationEvents(w, e, component.AnimationEventComboStep)
			if rt.Behavior == component.BossDead {
				return
			}
			if h.Dead || h.Current <= 0 {
				s.abortCombo(e, rt)
				rt.Behavior = component.BossDead
				setVelocityX(w, e, 0)
				return
			}
			tf, ok := ecs.Get(w, e, component.TransformComponent.Kind())
			if !ok {
				return
			}

			if rt.Phase < 1 {
				rt.Phase = 1
			}
			s.updatePhase(w, e, cfg, rt, h)

			for range fireEvents {
				s.fire(w, e, cfg, tf, targetPos, hasTarget)
			}
			for range hitEvents {
				s.melee(w, e, cfg, tf)
			}

			if rt.Combo.Active {
				setVelocityX(w, e, 0)
				s.advanceCombo(w, e, cfg, rt, h, dt, len(stepEvents) > 0)
				return
			}
			// attack timers pause during the combo
			rt.MeleeTimer += dt
			rt.ShootTimer += dt

			anim := animatorOf(w, e)
			dist := math.Inf(1)
			if hasTarget {
				dist = tf.Pos().Dist(targetPos)
			}
			if dist > cfg.DetectionRadius {
				rt.Behavior = component.BossIdle
				setVelocityX(w, e, 0)
				anim.SetBool(bossAnimWalking, false)
				anim.SetBool(bossAnimRunning, false)
				return
			}

			if !rt.Engaged {
				rt.Engaged = true
				s.showUI(w, e, rt, true)
				s.log.Info("boss engaged", zap.Uint64("entity", uint64(e)), zap.Int("phase", rt.Phase))
			}
			tf.FacingLeft = targetPos.X < tf.X
			toward := common.Sign(targetPos.X - tf.X)

			if rt.Phase == 1 {
				s.kite(w, e, cfg, rt, anim, dist, toward)
				return
			}
			s.press(w, e, cfg, rt, anim, dist, toward)
		})
}

// updatePhase raises the phase to the one the health ratio calls for.
func (s *BossSystem) updatePhase(w *ecs.World, e ecs.Entity, cfg *component.Boss, rt *component.BossRuntime, h *component.Health) {
	next := cfg.PhaseFor(h.Ratio())
	if next <= rt.Phase {
		return
	}
	prev := rt.Phase
	rt.Phase = next

	animatorOf(w, e).SetInteger(bossAnimPhase, next)
	if pt, ok := ecs.Get(w, e, component.PhaseTextComponent.Kind()); ok && pt.Display != nil {
		pt.Display.SetPhase(next)
	}
	if cfg.PhaseFlash > 0 {
		_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
			Remaining: cfg.PhaseFlash,
			Color:     component.PhaseFlashColor,
		})
	}
	w.Events().Push(ecs.Event{Type: EventPhaseChanged, Data: PhaseEvent{Entity: e, From: prev, To: next}})
	s.log.Info("boss phase changed", zap.Uint64("entity", uint64(e)), zap.Int("from", prev), zap.Int("to", next))
}

// kite keeps the boss between KiteBackDistance and IdealShootingDistance
// while shooting on cooldown.
func (s *BossSystem) kite(w *ecs.World, e ecs.Entity, cfg *component.Boss, rt *component.BossRuntime, anim *component.Animator, dist, toward float64) {
	anim.SetBool(bossAnimRunning, false)
	switch {
	case dist > cfg.IdealShootingDistance:
		rt.Behavior = component.BossApproaching
		setVelocityX(w, e, toward*cfg.MoveSpeed)
		anim.SetBool(bossAnimWalking, true)
	case dist < cfg.KiteBackDistance:
		rt.Behavior = component.BossKiting
		setVelocityX(w, e, -toward*cfg.MoveSpeed)
		anim.SetBool(bossAnimWalking, true)
	default:
		rt.Behavior = component.BossShooting
		setVelocityX(w, e, 0)
		anim.SetBool(bossAnimWalking, false)
	}
	s.tryShoot(rt, cfg, anim)
}

// press closes to melee range in phases 2 and 3, shooting on the way.
func (s *BossSystem) press(w *ecs.World, e ecs.Entity, cfg *component.Boss, rt *component.BossRuntime, anim *component.Animator, dist, toward float64) {
	if dist <= cfg.MeleeRange {
		setVelocityX(w, e, 0)
		anim.SetBool(bossAnimWalking, false)
		anim.SetBool(bossAnimRunning, false)
		if rt.MeleeTimer < cfg.MeleeCooldown {
			return
		}
		rt.MeleeTimer = 0
		if rt.Phase >= 3 {
			s.startCombo(e, cfg, rt, anim)
			return
		}
		rt.Behavior = component.BossMeleeAttacking
		anim.SetTrigger(bossComboTriggers[s.rng.Intn(2)])
		return
	}

	rt.Behavior = component.BossApproaching
	setVelocityX(w, e, toward*cfg.MoveSpeed)
	anim.SetBool(bossAnimWalking, true)
	anim.SetBool(bossAnimRunning, true)
	s.tryShoot(rt, cfg, anim)
}

func (s *BossSystem) tryShoot(rt *component.BossRuntime, cfg *component.Boss, anim *component.Animator) {
	if rt.ShootTimer < cfg.ShootCooldown {
		return
	}
	rt.ShootTimer = 0
	anim.SetTrigger(bossAnimShooting)
}

func (s *BossSystem) startCombo(e ecs.Entity, cfg *component.Boss, rt *component.BossRuntime, anim *component.Animator) {
	rt.Behavior = component.BossComboAttacking
	rt.Combo = component.BossCombo{Active: true}
	s.comboStep(cfg, rt, anim)
	s.log.Debug("boss combo started", zap.Uint64("entity", uint64(e)))
}

// comboStep plays the next combo attack and starts its wait.
func (s *BossSystem) comboStep(cfg *component.Boss, rt *component.BossRuntime, anim *component.Animator) {
	anim.SetTrigger(bossComboTriggers[rt.Combo.Step])
	rt.Combo.Wait.Reset(comboDelay(cfg, rt.Combo.Step))
	rt.Combo.Step++
}

// advanceCombo moves to the next combo attack once the wait runs out or the
// current clip reports its end, whichever comes first.
func (s *BossSystem) advanceCombo(w *ecs.World, e ecs.Entity, cfg *component.Boss, rt *component.BossRuntime, h *component.Health, dt float64, clipDone bool) {
	if clipDone {
		rt.Combo.Wait.Cancel()
	} else {
		rt.Combo.Wait.Tick(dt)
	}
	if rt.Combo.Wait.Active() {
		return
	}
	if rt.Combo.Step >= len(bossComboTriggers) {
		rt.Combo.Active = false
		rt.Behavior = component.BossIdle
		return
	}
	if h.Current <= 0 {
		s.abortCombo(e, rt)
		return
	}
	s.comboStep(cfg, rt, animatorOf(w, e))
}

func (s *BossSystem) abortCombo(e ecs.Entity, rt *component.BossRuntime) {
	if !rt.Combo.Active {
		return
	}
	rt.Combo.Active = false
	rt.Combo.Aborted = true
	s.log.Debug("boss combo aborted", zap.Uint64("entity", uint64(e)), zap.Int("step", rt.Combo.Step))
}

var defaultComboDelays = [...]float64{1.2, 1.0, 1.5}

func comboDelay(cfg *component.Boss, step int) float64 {
	if step < len(cfg.ComboDelays) {
		return cfg.ComboDelays[step]
	}
	return defaultComboDelays[step]
}

func (s *BossSystem) melee(w *ecs.World, e ecs.Entity, cfg *component.Boss, tf *component.Transform) {
	if s.hits == nil {
		return
	}
	pos := tf.Pos()
	s.hits.QueueHit(HitRequest{
		Attacker: e,
		Center:   pos.Add(common.V(tf.Facing()*cfg.MeleeOffset, 0)),
		Radius:   cfg.MeleeRange,
		Mask:     component.CategoryPlayer,
		Damage:   cfg.MeleeDamage,
		Source:   pos,
	})
}

func (s *BossSystem) fire(w *ecs.World, e ecs.Entity, cfg *component.Boss, tf *component.Transform, targetPos common.Vec2, hasTarget bool) {
	if s.spawner == nil || cfg.Projectile == "" {
		return
	}
	dir := common.V(tf.Facing(), 0)
	if hasTarget {
		dir = common.V(common.Sign(targetPos.X-tf.X), 0)
		if dir.X == 0 {
			dir.X = tf.Facing()
		}
	}
	at := tf.Pos().Add(common.V(dir.X*cfg.ProjectileOffset, 0))
	if err := s.spawner.SpawnProjectile(w, cfg.Projectile, e, at, dir, component.CategoryPlayer); err != nil {
		s.log.Warn("boss projectile spawn failed", zap.String("prefab", cfg.Projectile), zap.Error(err))
	}
}

func (s *BossSystem) showUI(w *ecs.World, e ecs.Entity, rt *component.BossRuntime, visible bool) {
	if hb, ok := ecs.Get(w, e, component.HealthBarComponent.Kind()); ok {
		hb.Visible = visible
		if hb.Bar != nil {
			hb.Bar.SetVisible(visible)
		}
	}
	if pt, ok := ecs.Get(w, e, component.PhaseTextComponent.Kind()); ok && pt.Display != nil {
		pt.Display.SetVisible(visible)
		if visible {
			pt.Display.SetPhase(rt.Phase)
		}
	}
}
