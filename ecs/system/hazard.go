package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// HazardSystem kills the player on contact with a trap, ignoring
// invincibility and blocking.
type HazardSystem struct {
	log *zap.Logger
}

func NewHazardSystem(log *zap.Logger) *HazardSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &HazardSystem{log: log}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	phys := w.Physics()
	if phys == nil {
		return
	}

	ecs.ForEach2(w, component.TrapComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, trap *component.Trap, tf *component.Transform) {
		for _, victim := range phys.OverlapCircle(tf.Pos(), trap.Radius, component.CategoryPlayer) {
			if Kill(w, victim) {
				s.log.Info("player killed by trap", zap.Uint64("trap", uint64(e)))
			}
		}
	})
}
