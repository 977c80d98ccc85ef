package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// RespawnSystem brings a dead player back at its spawn point once the
// respawn delay has passed.
type RespawnSystem struct {
	log *zap.Logger
}

func NewRespawnSystem(log *zap.Logger) *RespawnSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &RespawnSystem{log: log}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, req *component.RespawnRequest) {
		req.Timer.Tick(dt)
		if req.Timer.Active() {
			return
		}
		ecs.Remove(w, e, component.RespawnRequestComponent.Kind())
		Respawn(w, e)
		s.log.Info("player respawned", zap.Uint64("entity", uint64(e)))
	})
}

// Respawn restores e to full health at its spawn point.
func Respawn(w *ecs.World, e ecs.Entity) {
	if !ecs.IsAlive(w, e) {
		return
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.Respawn()
	}
	if st, ok := ecs.Get(w, e, component.BlockStaminaComponent.Kind()); ok {
		st.Current = st.Max
		st.Blocking = false
	}
	if combat, ok := ecs.Get(w, e, component.PlayerCombatComponent.Kind()); ok {
		*combat = component.PlayerCombat{}
	}
	if sm, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind()); ok {
		sm.State = nil
		sm.Pending = nil
	}

	if spawn, ok := ecs.Get(w, e, component.SpawnComponent.Kind()); ok {
		pos := spawn.Pos()
		if tf, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			tf.SetPos(pos)
		}
		if phys := w.Physics(); phys != nil {
			phys.SetEnabled(e, true)
			phys.SetPosition(e, pos)
			phys.SetVelocity(e, common.Vec2{})
		}
	}
	ecs.Remove(w, e, component.DisabledComponent.Kind())
	w.Events().Push(ecs.Event{Type: EventRespawned, Data: e})
}
