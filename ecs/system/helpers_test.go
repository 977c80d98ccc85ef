package system

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

const testDT = 1.0 / 60.0

type fakeBody struct {
	pos     common.Vec2
	vel     common.Vec2
	def     ecs.BodyDef
	enabled bool
}

// fakePhysics is a flat-floor integrator: ground spans [minX, maxX] at y=0.
// Optional walls are vertical lines of ground at the listed x.
type fakePhysics struct {
	bodies  map[ecs.Entity]*fakeBody
	gravity float64
	minX    float64
	maxX    float64
	walls   []float64
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{
		bodies:  map[ecs.Entity]*fakeBody{},
		gravity: -30,
		minX:    -100,
		maxX:    100,
	}
}

func (f *fakePhysics) groundAt(x float64) bool { return x >= f.minX && x <= f.maxX }

func (f *fakePhysics) AddBody(e ecs.Entity, def ecs.BodyDef) {
	f.bodies[e] = &fakeBody{pos: def.Position, def: def, enabled: true}
}

func (f *fakePhysics) RemoveBody(e ecs.Entity) { delete(f.bodies, e) }

func (f *fakePhysics) Position(e ecs.Entity) (common.Vec2, bool) {
	b, ok := f.bodies[e]
	if !ok {
		return common.Vec2{}, false
	}
	return b.pos, true
}

func (f *fakePhysics) SetPosition(e ecs.Entity, p common.Vec2) {
	if b, ok := f.bodies[e]; ok {
		b.pos = p
	}
}

func (f *fakePhysics) Velocity(e ecs.Entity) common.Vec2 {
	if b, ok := f.bodies[e]; ok {
		return b.vel
	}
	return common.Vec2{}
}

func (f *fakePhysics) SetVelocity(e ecs.Entity, v common.Vec2) {
	if b, ok := f.bodies[e]; ok && b.enabled {
		b.vel = v
	}
}

func (f *fakePhysics) Grounded(e ecs.Entity) bool {
	b, ok := f.bodies[e]
	if !ok || !b.enabled {
		return false
	}
	bottom := b.pos.Y - b.def.Height/2
	return bottom <= 0.01 && bottom >= -0.1 && f.groundAt(b.pos.X)
}

func (f *fakePhysics) SetEnabled(e ecs.Entity, enabled bool) {
	if b, ok := f.bodies[e]; ok {
		b.enabled = enabled
		if !enabled {
			b.vel = common.Vec2{}
		}
	}
}

func (f *fakePhysics) OverlapCircle(center common.Vec2, radius float64, mask component.Category) []ecs.Entity {
	var out []ecs.Entity
	for e, b := range f.bodies {
		if !b.enabled || !mask.Has(b.def.Category) {
			continue
		}
		// distance from the circle center to the box
		dx := math.Max(math.Abs(center.X-b.pos.X)-b.def.Width/2, 0)
		dy := math.Max(math.Abs(center.Y-b.pos.Y)-b.def.Height/2, 0)
		if math.Hypot(dx, dy) <= radius {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (f *fakePhysics) RaycastDown(origin common.Vec2, length float64, mask component.Category) bool {
	if !mask.Has(component.CategoryGround) {
		return false
	}
	return f.groundAt(origin.X) && origin.Y >= 0 && origin.Y-length <= 0
}

func (f *fakePhysics) SweepCircle(from, to common.Vec2, radius float64, mask component.Category) bool {
	if !mask.Has(component.CategoryGround) {
		return false
	}
	lo, hi := math.Min(from.X, to.X)-radius, math.Max(from.X, to.X)+radius
	for _, x := range f.walls {
		if x >= lo && x <= hi {
			return true
		}
	}
	low := math.Min(from.Y, to.Y) - radius
	high := math.Max(from.Y, to.Y) + radius
	return low <= 0 && high >= 0 && (f.groundAt(from.X) || f.groundAt(to.X))
}

func (f *fakePhysics) Step(dt float64) {
	for _, b := range f.bodies {
		if !b.enabled {
			continue
		}
		if b.def.Gravity {
			b.vel.Y += f.gravity * dt
		}
		b.pos = b.pos.Add(b.vel.Scale(dt))
		half := b.def.Height / 2
		if b.def.Gravity && f.groundAt(b.pos.X) && b.pos.Y-half < 0 && b.pos.Y-half > -0.5 {
			b.pos.Y = half
			if b.vel.Y < 0 {
				b.vel.Y = 0
			}
		}
	}
}

type fakeEconomy struct {
	points    int
	penalties []common.Vec2
}

func (f *fakeEconomy) AwardPoints(n int) { f.points += n }

func (f *fakeEconomy) ApplyDeathPenalty(at common.Vec2) { f.penalties = append(f.penalties, at) }

type spawnedProjectile struct {
	prefab  string
	owner   ecs.Entity
	at, dir common.Vec2
}

type fakeSpawner struct {
	coins       int
	coinSites   []common.Vec2
	projectiles []spawnedProjectile
}

func (f *fakeSpawner) SpawnCoins(w *ecs.World, at common.Vec2, count int) error {
	f.coins += count
	f.coinSites = append(f.coinSites, at)
	return nil
}

func (f *fakeSpawner) SpawnProjectile(w *ecs.World, prefab string, owner ecs.Entity, at, dir common.Vec2, targets component.Category) error {
	f.projectiles = append(f.projectiles, spawnedProjectile{prefab: prefab, owner: owner, at: at, dir: dir})
	return nil
}

func newTestWorld(t *testing.T) (*ecs.World, *fakePhysics) {
	t.Helper()
	w := ecs.NewWorld()
	w.SetDelta(testDT)
	phys := newFakePhysics()
	w.SetPhysics(phys)
	return w, phys
}

func add[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, h.Kind(), v))
}

func addBody(t *testing.T, w *ecs.World, e ecs.Entity, pos common.Vec2, width, height float64, cat component.Category, gravity bool) {
	t.Helper()
	add(t, w, e, component.TransformComponent, &component.Transform{X: pos.X, Y: pos.Y})
	add(t, w, e, component.CategoryComponent, &component.CategoryTag{Category: cat})
	add(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Width: width, Height: height, Gravity: gravity})
	w.Physics().AddBody(e, ecs.BodyDef{Position: pos, Width: width, Height: height, Category: cat, Gravity: gravity})
}

func newTestPlayer(t *testing.T, w *ecs.World, pos common.Vec2) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	addBody(t, w, e, pos, 0.8, 1.2, component.CategoryPlayer, true)
	add(t, w, e, component.PlayerTagComponent, &component.PlayerTag{})
	add(t, w, e, component.PlayerComponent, &component.Player{
		MoveSpeed:      4,
		JumpForce:      12,
		RollSpeed:      6,
		RollDuration:   0.5,
		GroundBuffer:   0.1,
		AttackDamage:   1,
		AttackOffset:   0.5,
		AttackRadius:   1.5,
		AttackTriggers: []string{"Attack1", "Attack2", "Attack3"},
	})
	add(t, w, e, component.InputComponent, &component.Input{})
	add(t, w, e, component.PlayerCombatComponent, &component.PlayerCombat{})
	add(t, w, e, component.PlayerStateMachineComponent, &component.PlayerStateMachine{})
	add(t, w, e, component.GroundStateComponent, &component.GroundState{})
	add(t, w, e, component.HealthComponent, component.NewHealth(3, 0.5))
	add(t, w, e, component.BlockStaminaComponent, &component.BlockStamina{
		Current: 100, Max: 100, DrainRate: 120, RegenRate: 15, MinToStart: 10,
	})
	add(t, w, e, component.KnockbackableComponent, &component.Knockbackable{Force: 5})
	add(t, w, e, component.HurtComponent, &component.Hurt{FlashDuration: 0.1, AnimTrigger: "Hurt"})
	add(t, w, e, component.AnimatorComponent, component.NewAnimator())
	add(t, w, e, component.SpawnComponent, &component.Spawn{X: pos.X, Y: pos.Y})
	return e
}

func testEnemyAI() *component.EnemyAI {
	return &component.EnemyAI{
		PatrolDistance:    5,
		PatrolSpeed:       2,
		WaitTime:          1,
		DetectionRange:    5,
		ChaseHysteresis:   1.5,
		AttackRange:       1.5,
		AttackSpeed:       3,
		AttackCooldown:    2,
		AttackDamage:      1,
		AttackRecovery:    0.5,
		AttackResolveTime: 0.6,
		GroundProbeOffset: 0.2,
		GroundProbeLength: 0.5,
		TurnMode:          component.EnemyTurnInstant,
	}
}

func newTestEnemy(t *testing.T, w *ecs.World, pos common.Vec2, ai *component.EnemyAI) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	addBody(t, w, e, pos, 1, 1, component.CategoryEnemy, true)
	add(t, w, e, component.EnemyTagComponent, &component.EnemyTag{})
	add(t, w, e, component.EnemyAIComponent, ai)
	add(t, w, e, component.EnemyAIStateComponent, &component.EnemyAIState{SpawnX: pos.X, MovingRight: true})
	add(t, w, e, component.HealthComponent, component.NewHealth(3, 0.15))
	add(t, w, e, component.StunComponent, &component.Stun{Duration: 0.3})
	add(t, w, e, component.KnockbackableComponent, &component.Knockbackable{Force: 4})
	add(t, w, e, component.HurtComponent, &component.Hurt{FlashDuration: 0.1, AnimBool: "isHurt", BoolDuration: 0.3})
	add(t, w, e, component.AnimatorComponent, component.NewAnimator())
	add(t, w, e, component.DeathRewardComponent, &component.DeathReward{Points: 10, Coins: 2})
	return e
}

func testBoss() *component.Boss {
	return &component.Boss{
		MoveSpeed:             2,
		DetectionRadius:       15,
		IdealShootingDistance: 10,
		KiteBackDistance:      7,
		MeleeDamage:           1,
		MeleeRange:            2.5,
		MeleeOffset:           1.2,
		MeleeCooldown:         2,
		ShootCooldown:         2,
		ComboDelays:           []float64{1.2, 1.0, 1.5},
		Phase2Threshold:       0.7,
		Phase3Threshold:       0.3,
		PhaseFlash:            0.2,
		Projectile:            "arrow",
		ProjectileOffset:      1,
	}
}

func newTestBoss(t *testing.T, w *ecs.World, pos common.Vec2) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	addBody(t, w, e, pos, 1.5, 2, component.CategoryBoss, true)
	add(t, w, e, component.BossTagComponent, &component.BossTag{})
	add(t, w, e, component.BossComponent, testBoss())
	add(t, w, e, component.BossRuntimeComponent, &component.BossRuntime{Phase: 1})
	add(t, w, e, component.HealthComponent, component.NewHealth(100, 0.1))
	add(t, w, e, component.AnimatorComponent, component.NewAnimator())
	add(t, w, e, component.DeathRewardComponent, &component.DeathReward{Points: 100})
	return e
}

// settle lets bodies drop onto the floor.
func settle(w *ecs.World) {
	sys := NewPhysicsSystem()
	for i := 0; i < 30; i++ {
		sys.Update(w)
	}
}

func run(w *ecs.World, sched *ecs.Scheduler, ticks int) {
	for i := 0; i < ticks; i++ {
		sched.Update(w)
	}
}

func velocity(w *ecs.World, e ecs.Entity) common.Vec2 {
	return w.Physics().Velocity(e)
}
