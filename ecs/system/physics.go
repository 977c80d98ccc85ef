package system

import (
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// PhysicsSystem steps the physics collaborator and copies body positions
// back into transforms.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (p *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	phys := w.Physics()
	if phys == nil {
		return
	}
	phys.Step(w.Delta())

	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		if pos, ok := phys.Position(e); ok {
			t.SetPos(pos)
		}
	})
}
