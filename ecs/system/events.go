package system

import (
	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// Event types published on the world queue.
const (
	EventDamaged      = "damaged"
	EventBlocked      = "blocked"
	EventDeath        = "death"
	EventPhaseChanged = "phase_changed"
	EventCoinPickup   = "coin_pickup"
	EventRespawned    = "respawned"
)

type DamageEvent struct {
	Target   ecs.Entity
	Attacker ecs.Entity
	Amount   int
	Outcome  component.DamageOutcome
}

// DeathEvent is published exactly once per death.
type DeathEvent struct {
	Entity   ecs.Entity
	Category component.Category
	Position common.Vec2
}

type PhaseEvent struct {
	Entity ecs.Entity
	From   int
	To     int
}

type CoinEvent struct {
	Player ecs.Entity
	Value  int
}

func categoryOf(w *ecs.World, e ecs.Entity) component.Category {
	if tag, ok := ecs.Get(w, e, component.CategoryComponent.Kind()); ok {
		return tag.Category
	}
	return component.CategoryNone
}

func positionOf(w *ecs.World, e ecs.Entity) common.Vec2 {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return t.Pos()
	}
	return common.Vec2{}
}

func velocityOf(w *ecs.World, e ecs.Entity) common.Vec2 {
	if p := w.Physics(); p != nil {
		return p.Velocity(e)
	}
	return common.Vec2{}
}

func setVelocity(w *ecs.World, e ecs.Entity, v common.Vec2) {
	if p := w.Physics(); p != nil {
		p.SetVelocity(e, v)
	}
}

func setVelocityX(w *ecs.World, e ecs.Entity, x float64) {
	v := velocityOf(w, e)
	v.X = x
	setVelocity(w, e, v)
}

func isDead(w *ecs.World, e ecs.Entity) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	return ok && h.Dead
}

func isDisabled(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.DisabledComponent.Kind())
}

func modalOpen(w *ecs.World) bool {
	e, ok := ecs.First(w, component.ModalComponent.Kind())
	if !ok {
		return false
	}
	m, ok := ecs.Get(w, e, component.ModalComponent.Kind())
	return ok && m.Open
}

// livePlayer returns the first player that can still be targeted.
func livePlayer(w *ecs.World) (ecs.Entity, common.Vec2, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok || isDead(w, e) || isDisabled(w, e) {
		return 0, common.Vec2{}, false
	}
	return e, positionOf(w, e), true
}

func animatorOf(w *ecs.World, e ecs.Entity) *component.Animator {
	a, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	return a
}

func takeAnimationEvents(w *ecs.World, e ecs.Entity, kind component.AnimationEventKind) []component.AnimationEvent {
	q, ok := ecs.Get(w, e, component.AnimationEventsComponent.Kind())
	if !ok {
		return nil
	}
	return q.Take(kind)
}

// DispatchAnimationEvent delivers an animation callback to e. Systems
// consume it on their next update.
func DispatchAnimationEvent(w *ecs.World, e ecs.Entity, evt component.AnimationEvent) {
	if !ecs.IsAlive(w, e) {
		return
	}
	q, ok := ecs.Get(w, e, component.AnimationEventsComponent.Kind())
	if !ok {
		q = &component.AnimationEvents{}
		if err := ecs.Add(w, e, component.AnimationEventsComponent.Kind(), q); err != nil {
			return
		}
	}
	q.Push(evt)
}
