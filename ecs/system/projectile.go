package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// ProjectileSystem moves projectiles in a straight line and destroys them
// on their first contact with ground or a target, or when their lifetime
// runs out.
type ProjectileSystem struct {
	log  *zap.Logger
	hits HitQueue
}

func NewProjectileSystem(log *zap.Logger, hits HitQueue) *ProjectileSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectileSystem{log: log, hits: hits}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	phys := w.Physics()

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, tf *component.Transform) {
		p.Lifetime.Tick(dt)
		if p.Lifetime.Elapsed() {
			ecs.DestroyEntity(w, e)
			return
		}
		pos := tf.Pos()
		// where the last physics step moved it from
		from := pos.Sub(velocityOf(w, e).Scale(dt))
		setVelocity(w, e, common.V(p.DirX, p.DirY).Normalize().Scale(p.Speed))
		if phys == nil {
			return
		}

		owner := ecs.Entity(p.Owner)
		for _, hit := range phys.OverlapCircle(pos, p.Radius, p.Targets) {
			if hit == owner || hit == e {
				continue
			}
			if !p.Targets.Has(categoryOf(w, hit)) || isDead(w, hit) {
				continue
			}
			if s.hits != nil {
				s.hits.QueueHit(HitRequest{
					Attacker: owner,
					Target:   hit,
					Mask:     p.Targets,
					Damage:   p.Damage,
					Source:   pos,
				})
			}
			s.log.Debug("projectile hit", zap.Uint64("target", uint64(hit)))
			ecs.DestroyEntity(w, e)
			return
		}
		// ground has no entity, so sweep for it separately
		if phys.SweepCircle(from, pos, p.Radius, component.CategoryGround) {
			ecs.DestroyEntity(w, e)
		}
	})
}
