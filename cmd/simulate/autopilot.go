package main

import (
	"math"
	"math/rand"

	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/ecs/system"
)

const (
	pilotAttackRange = 1.3
	pilotAttackEvery = 12
	pilotJumpHeight  = 1.5
	pilotTrapAhead   = 1.8
	pilotBlockChance = 0.02
	pilotBlockTicks  = 20
)

// autopilot drives the player toward the nearest living enemy and swings
// when in range. It reads the world the session built, so it is attached
// after the session exists.
type autopilot struct {
	world  *ecs.World
	player ecs.Entity
	rng    *rand.Rand

	tick     int
	blocking int
}

var _ system.InputSource = (*autopilot)(nil)

func newAutopilot(seed int64) *autopilot {
	return &autopilot{rng: rand.New(rand.NewSource(seed))}
}

func (a *autopilot) attach(w *ecs.World, player ecs.Entity) {
	a.world = w
	a.player = player
}

func (a *autopilot) Poll() component.Input {
	a.tick++
	var in component.Input
	if a.world == nil || ecs.Has(a.world, a.player, component.DisabledComponent.Kind()) {
		return in
	}
	me, ok := ecs.Get(a.world, a.player, component.TransformComponent.Kind())
	if !ok {
		return in
	}
	target, ok := a.nearestTarget(me)
	if !ok {
		return in
	}

	if a.blocking > 0 {
		a.blocking--
		in.BlockHeld = true
		return in
	}

	dx := target.X - me.X
	if math.Abs(dx) > pilotAttackRange {
		in.MoveX = math.Copysign(1, dx)
		in.JumpPressed = target.Y-me.Y > pilotJumpHeight || a.trapAhead(me, in.MoveX)
		return in
	}

	// face the target before swinging
	if (dx < 0) != me.FacingLeft {
		in.MoveX = math.Copysign(1, dx)
	}
	in.AttackPressed = a.tick%pilotAttackEvery == 0
	if !in.AttackPressed && a.rng.Float64() < pilotBlockChance {
		a.blocking = pilotBlockTicks
	}
	return in
}

func (a *autopilot) nearestTarget(me *component.Transform) (*component.Transform, bool) {
	var best *component.Transform
	bestDist := math.Inf(1)
	consider := func(e ecs.Entity) {
		if ecs.Has(a.world, e, component.DisabledComponent.Kind()) {
			return
		}
		if h, ok := ecs.Get(a.world, e, component.HealthComponent.Kind()); ok && h.Dead {
			return
		}
		tf, ok := ecs.Get(a.world, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		if d := math.Abs(tf.X - me.X); d < bestDist {
			best, bestDist = tf, d
		}
	}
	for _, e := range a.world.Query(component.EnemyTagComponent.Kind()) {
		consider(e)
	}
	for _, e := range a.world.Query(component.BossTagComponent.Kind()) {
		consider(e)
	}
	return best, best != nil
}

func (a *autopilot) trapAhead(me *component.Transform, dir float64) bool {
	ahead := false
	ecs.ForEach2(a.world, component.TrapComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Trap, tf *component.Transform) {
		d := (tf.X - me.X) * dir
		if d > 0 && d < pilotTrapAhead {
			ahead = true
		}
	})
	return ahead
}
