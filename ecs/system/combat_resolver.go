package system

import (
	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// blockRecoilForce pushes an attacker back when its hit is blocked.
const blockRecoilForce = 2.0

// Hit is one damage application against a single target.
type Hit struct {
	Target   ecs.Entity
	Attacker ecs.Entity
	Amount   int
	Source   common.Vec2
}

// ApplyDamage runs the shared damage pipeline for every damageable entity:
// dead targets ignore hits, a blocking target intercepts them, and landed
// hits trigger knockback, hurt feedback, stun and at most one death event.
func ApplyDamage(w *ecs.World, hit Hit) component.DamageOutcome {
	if w == nil {
		return component.DamageIgnored
	}
	h, ok := ecs.Get(w, hit.Target, component.HealthComponent.Kind())
	if !ok || h.Dead || hit.Amount <= 0 {
		return component.DamageIgnored
	}

	if isBlocking(w, hit.Target) {
		recoil(w, hit.Attacker, positionOf(w, hit.Target))
		w.Events().Push(ecs.Event{Type: EventBlocked, Data: DamageEvent{
			Target:   hit.Target,
			Attacker: hit.Attacker,
			Amount:   hit.Amount,
			Outcome:  component.DamageBlocked,
		}})
		return component.DamageBlocked
	}

	outcome := h.TakeDamage(hit.Amount)
	if !outcome.Landed() {
		return outcome
	}

	if kb, ok := ecs.Get(w, hit.Target, component.KnockbackableComponent.Kind()); ok && kb.Force > 0 {
		_ = ecs.Add(w, hit.Target, component.DamageKnockbackRequestComponent.Kind(), &component.DamageKnockback{
			SourceX: hit.Source.X,
			SourceY: hit.Source.Y,
			Force:   kb.Force,
		})
	}
	playHurt(w, hit.Target)
	if outcome == component.DamageDamaged {
		if stun, ok := ecs.Get(w, hit.Target, component.StunComponent.Kind()); ok {
			stun.Timer.Start(stun.Duration)
		}
	}

	w.Events().Push(ecs.Event{Type: EventDamaged, Data: DamageEvent{
		Target:   hit.Target,
		Attacker: hit.Attacker,
		Amount:   hit.Amount,
		Outcome:  outcome,
	}})
	if outcome == component.DamageKilled {
		publishDeath(w, hit.Target)
	}
	return outcome
}

// Kill bypasses invincibility and blocking. It reports whether e died now.
func Kill(w *ecs.World, e ecs.Entity) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || !h.Kill() {
		return false
	}
	publishDeath(w, e)
	return true
}

func publishDeath(w *ecs.World, e ecs.Entity) {
	w.Events().Push(ecs.Event{Type: EventDeath, Data: DeathEvent{
		Entity:   e,
		Category: categoryOf(w, e),
		Position: positionOf(w, e),
	}})
}

func isBlocking(w *ecs.World, e ecs.Entity) bool {
	s, ok := ecs.Get(w, e, component.BlockStaminaComponent.Kind())
	return ok && s.Blocking
}

func recoil(w *ecs.World, attacker ecs.Entity, from common.Vec2) {
	if attacker == 0 || !ecs.IsAlive(w, attacker) || isDead(w, attacker) {
		return
	}
	if !ecs.Has(w, attacker, component.KnockbackableComponent.Kind()) {
		return
	}
	_ = ecs.Add(w, attacker, component.DamageKnockbackRequestComponent.Kind(), &component.DamageKnockback{
		SourceX: from.X,
		SourceY: from.Y,
		Force:   blockRecoilForce,
		Recoil:  true,
	})
}

func playHurt(w *ecs.World, e ecs.Entity) {
	hurt, ok := ecs.Get(w, e, component.HurtComponent.Kind())
	if !ok {
		return
	}
	if hurt.FlashDuration > 0 {
		c := hurt.FlashColor
		if c.A == 0 {
			c = component.HurtFlashColor
		}
		_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
			Remaining: hurt.FlashDuration,
			Color:     c,
		})
	}
	anim := animatorOf(w, e)
	anim.SetTrigger(hurt.AnimTrigger)
	if hurt.AnimBool != "" {
		anim.SetBool(hurt.AnimBool, true)
		hurt.StartBool()
	}
}
