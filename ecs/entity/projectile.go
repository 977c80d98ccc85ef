package entity

import (
	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/prefabs"
)

// BuildProjectile spawns spec at `at` flying along dir. Projectiles ignore
// gravity and damage only entities in targets.
func BuildProjectile(w *ecs.World, spec prefabs.ProjectileSpec, prefab string, owner ecs.Entity, at, dir common.Vec2, targets component.Category) (ecs.Entity, error) {
	dir = dir.Normalize()
	if dir == (common.Vec2{}) {
		dir = common.V(1, 0)
	}
	body := spec.Body
	body.Gravity = false

	ctx := &buildContext{PrefabPath: prefab, At: at, Category: component.CategoryProjectile, Body: body}
	return buildEntity(w, ctx, baseSteps(
		buildStep{"facing", func(w *ecs.World, e ecs.Entity, _ *buildContext) error {
			if tf, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				tf.FacingLeft = dir.X < 0
			}
			return nil
		}},
		valueStep("projectile", component.ProjectileComponent, func() *component.Projectile {
			p := &component.Projectile{
				Damage:  spec.Damage,
				Speed:   spec.Speed,
				DirX:    dir.X,
				DirY:    dir.Y,
				Radius:  spec.Radius,
				Targets: targets,
				Owner:   uint64(owner),
			}
			p.Lifetime.Reset(spec.Lifetime)
			return p
		}),
	))
}
