package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// HitRequest is a damage attempt queued by an attacker and resolved by the
// CombatSystem after physics has moved everything for the tick.
type HitRequest struct {
	Attacker ecs.Entity
	// Target restricts the hit to one entity. When zero, every entity of
	// Mask within Radius of Center is hit.
	Target ecs.Entity
	Center common.Vec2
	// Radius is the reach of an area hit. For targeted hits a positive
	// Radius requires the target to still be within reach of Center.
	Radius float64
	Mask   component.Category
	Damage int
	// Source is where knockback pushes away from.
	Source common.Vec2
}

// HitQueue accepts hit requests for resolution later in the tick.
type HitQueue interface {
	QueueHit(req HitRequest)
}

// Spawner builds the entities that combat and deaths drop into the world.
type Spawner interface {
	SpawnCoins(w *ecs.World, at common.Vec2, count int) error
	SpawnProjectile(w *ecs.World, prefab string, owner ecs.Entity, at, dir common.Vec2, targets component.Category) error
}

type hitHandler func(w *ecs.World, req HitRequest, target ecs.Entity)

// CombatSystem resolves queued hits, dispatching on the category of each
// entity struck.
type CombatSystem struct {
	log      *zap.Logger
	spawner  Spawner
	queue    []HitRequest
	handlers map[component.Category]hitHandler
}

func NewCombatSystem(log *zap.Logger, spawner Spawner) *CombatSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CombatSystem{log: log, spawner: spawner}
	s.handlers = map[component.Category]hitHandler{
		component.CategoryPlayer:    s.damageTarget,
		component.CategoryEnemy:     s.damageTarget,
		component.CategoryBoss:      s.damageTarget,
		component.CategoryJumpBoost: s.launchAttacker,
		component.CategoryBreakable: s.breakTarget,
	}
	return s
}

func (s *CombatSystem) QueueHit(req HitRequest) {
	s.queue = append(s.queue, req)
}

// Pending returns the number of queued hits.
func (s *CombatSystem) Pending() int {
	return len(s.queue)
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil || len(s.queue) == 0 {
		return
	}
	reqs := s.queue
	s.queue = nil

	for _, req := range reqs {
		for _, target := range s.targets(w, req) {
			cat := categoryOf(w, target)
			if !req.Mask.Has(cat) {
				continue
			}
			handler, ok := s.handlers[cat]
			if !ok {
				continue
			}
			handler(w, req, target)
		}
	}
}

func (s *CombatSystem) targets(w *ecs.World, req HitRequest) []ecs.Entity {
	if req.Target != 0 {
		if !ecs.IsAlive(w, req.Target) {
			return nil
		}
		if req.Radius > 0 && positionOf(w, req.Target).Dist(req.Center) > req.Radius {
			return nil
		}
		return []ecs.Entity{req.Target}
	}
	p := w.Physics()
	if p == nil || req.Radius <= 0 {
		return nil
	}
	hits := p.OverlapCircle(req.Center, req.Radius, req.Mask)
	out := hits[:0]
	for _, e := range hits {
		if e != req.Attacker {
			out = append(out, e)
		}
	}
	return out
}

func (s *CombatSystem) damageTarget(w *ecs.World, req HitRequest, target ecs.Entity) {
	outcome := ApplyDamage(w, Hit{
		Target:   target,
		Attacker: req.Attacker,
		Amount:   req.Damage,
		Source:   req.Source,
	})
	if outcome.Landed() || outcome == component.DamageBlocked {
		s.log.Debug("hit resolved",
			zap.Uint64("attacker", uint64(req.Attacker)),
			zap.Uint64("target", uint64(target)),
			zap.Int("damage", req.Damage),
			zap.Stringer("outcome", outcome),
		)
	}
}

func (s *CombatSystem) launchAttacker(w *ecs.World, req HitRequest, target ecs.Entity) {
	boost, ok := ecs.Get(w, target, component.JumpBoostComponent.Kind())
	if !ok {
		return
	}
	v := velocityOf(w, req.Attacker)
	v.Y = boost.Force
	setVelocity(w, req.Attacker, v)
	if g, ok := ecs.Get(w, req.Attacker, component.GroundStateComponent.Kind()); ok {
		g.Grounded = false
		g.Checking = false
	}
	ecs.DestroyEntity(w, target)
	s.log.Debug("jump boost used", zap.Float64("force", boost.Force))
}

func (s *CombatSystem) breakTarget(w *ecs.World, req HitRequest, target ecs.Entity) {
	b, ok := ecs.Get(w, target, component.BreakableComponent.Kind())
	if !ok {
		return
	}
	pos := positionOf(w, target)
	drop := b.CoinDrop
	ecs.DestroyEntity(w, target)
	if s.spawner == nil || drop <= 0 {
		return
	}
	if err := s.spawner.SpawnCoins(w, pos, drop); err != nil {
		s.log.Warn("breakable coin drop failed", zap.Error(err))
	}
}
