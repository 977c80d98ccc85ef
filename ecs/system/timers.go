package system

import (
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// TimerSystem advances the countdowns that belong to no single controller:
// invincibility windows, stuns and the hurt animation flag.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.HealthComponent.Kind(), func(_ ecs.Entity, h *component.Health) {
		h.Tick(dt)
	})
	ecs.ForEach(w, component.StunComponent.Kind(), func(_ ecs.Entity, st *component.Stun) {
		st.Timer.Tick(dt)
	})
	ecs.ForEach(w, component.HurtComponent.Kind(), func(e ecs.Entity, hurt *component.Hurt) {
		if hurt.TickBool(dt) {
			animatorOf(w, e).SetBool(hurt.AnimBool, false)
		}
	})
}
