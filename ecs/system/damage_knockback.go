package system

import (
	"math"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// DamageKnockbackSystem consumes knockback requests. A landed hit sets the
// horizontal velocity away from the source and adds half the force upward;
// a recoil adds an impulse along the same direction.
type DamageKnockbackSystem struct{}

func NewDamageKnockbackSystem() *DamageKnockbackSystem {
	return &DamageKnockbackSystem{}
}

func (s *DamageKnockbackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.DamageKnockbackRequestComponent.Kind(), func(e ecs.Entity, req *component.DamageKnockback) {
		applyDamageKnockback(w, e, *req)
		ecs.Remove(w, e, component.DamageKnockbackRequestComponent.Kind())
	})
}

func applyDamageKnockback(w *ecs.World, target ecs.Entity, req component.DamageKnockback) {
	pos := positionOf(w, target)
	dir := pos.Sub(common.V(req.SourceX, req.SourceY)).Normalize()
	if dir.Len() < common.Epsilon {
		// stacked on the source: push straight up
		dir = common.V(0, 1)
	}

	v := velocityOf(w, target)
	if req.Recoil {
		v = v.Add(dir.Scale(req.Force))
	} else {
		v.X = dir.X * req.Force
		v.Y += req.Force * 0.5
	}
	if math.IsNaN(v.X) || math.IsNaN(v.Y) {
		return
	}
	setVelocity(w, target, v)
}
