package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

func TestApplyDamageOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		setup   func(h *component.Health)
		amount  int
		want    component.DamageOutcome
		current int
	}{
		{"lands", func(*component.Health) {}, 1, component.DamageDamaged, 2},
		{"kills", func(*component.Health) {}, 5, component.DamageKilled, 0},
		{"zero_ignored", func(*component.Health) {}, 0, component.DamageIgnored, 3},
		{"dead_ignored", func(h *component.Health) { h.Kill() }, 1, component.DamageIgnored, 0},
		{"invincible_absorbs", func(h *component.Health) { h.SetInvincible(1) }, 1, component.DamageAbsorbed, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newTestWorld(t)
			enemy := newTestEnemy(t, w, common.V(0, 0.5), testEnemyAI())
			h, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
			tc.setup(h)

			got := ApplyDamage(w, Hit{Target: enemy, Amount: tc.amount, Source: common.V(-1, 0.5)})
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.current, h.Current)
			assert.GreaterOrEqual(t, h.Current, 0)
			assert.LessOrEqual(t, h.Current, h.Max)
		})
	}
}

func TestDeathEventPublishedOnce(t *testing.T) {
	w, _ := newTestWorld(t)
	enemy := newTestEnemy(t, w, common.V(0, 0.5), testEnemyAI())

	for i := 0; i < 3; i++ {
		ApplyDamage(w, Hit{Target: enemy, Amount: 10})
	}
	Kill(w, enemy)

	deaths := 0
	w.Events().Each(EventDeath, func(evt ecs.Event) {
		deaths++
		d := evt.Data.(DeathEvent)
		assert.Equal(t, enemy, d.Entity)
		assert.Equal(t, component.CategoryEnemy, d.Category)
	})
	assert.Equal(t, 1, deaths)
}

func TestKnockbackPushesAwayFromSource(t *testing.T) {
	w, _ := newTestWorld(t)
	enemy := newTestEnemy(t, w, common.V(0, 0.5), testEnemyAI())

	ApplyDamage(w, Hit{Target: enemy, Amount: 1, Source: common.V(-1, 0.5)})
	NewDamageKnockbackSystem().Update(w)

	v := velocity(w, enemy)
	assert.InDelta(t, 4, v.X, 1e-9)
	assert.InDelta(t, 2, v.Y, 1e-9)
	assert.False(t, ecs.Has(w, enemy, component.DamageKnockbackRequestComponent.Kind()))
}

func TestCombatDispatchByCategory(t *testing.T) {
	w, _ := newTestWorld(t)
	player := newTestPlayer(t, w, common.V(0, 0.6))

	pad := ecs.CreateEntity(w)
	addBody(t, w, pad, common.V(0.8, 0.3), 0.6, 0.6, component.CategoryJumpBoost, false)
	add(t, w, pad, component.JumpBoostComponent, &component.JumpBoost{Force: 10})

	crate := ecs.CreateEntity(w)
	addBody(t, w, crate, common.V(1.2, 0.5), 1, 1, component.CategoryBreakable, false)
	add(t, w, crate, component.BreakableComponent, &component.Breakable{CoinDrop: 3})

	coin := ecs.CreateEntity(w)
	addBody(t, w, coin, common.V(1, 0.5), 0.2, 0.2, component.CategoryCoin, false)

	spawner := &fakeSpawner{}
	combat := NewCombatSystem(zap.NewNop(), spawner)
	combat.QueueHit(HitRequest{
		Attacker: player,
		Center:   common.V(0.5, 0.6),
		Radius:   1.5,
		Mask:     playerAttackMask,
		Damage:   1,
		Source:   common.V(0, 0.6),
	})
	require.Equal(t, 1, combat.Pending())
	combat.Update(w)

	assert.Equal(t, 0, combat.Pending())
	assert.InDelta(t, 10, velocity(w, player).Y, 1e-9)
	assert.False(t, ecs.IsAlive(w, pad))
	assert.False(t, ecs.IsAlive(w, crate))
	assert.Equal(t, 3, spawner.coins)
	require.Len(t, spawner.coinSites, 1)
	assert.Equal(t, common.V(1.2, 0.5), spawner.coinSites[0])
	assert.True(t, ecs.IsAlive(w, coin), "coins are not attack targets")

	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	assert.Equal(t, 3, h.Current, "attackers never hit themselves")
}

func TestTargetedHitOutOfRangeMisses(t *testing.T) {
	w, _ := newTestWorld(t)
	player := newTestPlayer(t, w, common.V(3, 0.6))
	combat := NewCombatSystem(zap.NewNop(), nil)

	combat.QueueHit(HitRequest{
		Target: player,
		Center: common.V(0, 0.5),
		Radius: 1.5,
		Mask:   component.CategoryPlayer,
		Damage: 1,
	})
	combat.Update(w)

	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	assert.Equal(t, 3, h.Current)
}

func TestProjectileHitsFirstTarget(t *testing.T) {
	w, _ := newTestWorld(t)
	player := newTestPlayer(t, w, common.V(2, 0.6))
	boss := newTestBoss(t, w, common.V(-5, 1))

	arrow := ecs.CreateEntity(w)
	addBody(t, w, arrow, common.V(0, 0.8), 0.4, 0.1, component.CategoryProjectile, false)
	p := &component.Projectile{Damage: 1, Speed: 12, DirX: 1, Radius: 0.2, Targets: component.CategoryPlayer, Owner: uint64(boss)}
	p.Lifetime.Reset(3)
	add(t, w, arrow, component.ProjectileComponent, p)

	combat := NewCombatSystem(zap.NewNop(), nil)
	sched := ecs.NewScheduler(NewPhysicsSystem(), NewProjectileSystem(zap.NewNop(), combat), combat)
	run(w, sched, 30)

	assert.False(t, ecs.IsAlive(w, arrow))
	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	assert.Equal(t, 2, h.Current)
}

func TestProjectileExpires(t *testing.T) {
	w, _ := newTestWorld(t)
	arrow := ecs.CreateEntity(w)
	addBody(t, w, arrow, common.V(0, 5), 0.4, 0.1, component.CategoryProjectile, false)
	p := &component.Projectile{Speed: 12, DirX: -1, Radius: 0.2, Targets: component.CategoryPlayer}
	p.Lifetime.Reset(0.5)
	add(t, w, arrow, component.ProjectileComponent, p)

	sched := ecs.NewScheduler(NewPhysicsSystem(), NewProjectileSystem(zap.NewNop(), nil))
	run(w, sched, 20)
	assert.True(t, ecs.IsAlive(w, arrow))
	assert.Less(t, positionOf(w, arrow).X, -3.0)
	run(w, sched, 20)
	assert.False(t, ecs.IsAlive(w, arrow))
}

func TestProjectileDestroyedOnGround(t *testing.T) {
	w, _ := newTestWorld(t)
	arrow := ecs.CreateEntity(w)
	addBody(t, w, arrow, common.V(0, 1), 0.4, 0.1, component.CategoryProjectile, false)
	p := &component.Projectile{Speed: 6, DirY: -1, Radius: 0.2, Targets: component.CategoryPlayer}
	p.Lifetime.Reset(3)
	add(t, w, arrow, component.ProjectileComponent, p)

	sched := ecs.NewScheduler(NewPhysicsSystem(), NewProjectileSystem(zap.NewNop(), nil))
	run(w, sched, 20)
	assert.False(t, ecs.IsAlive(w, arrow))
}

func TestProjectileStopsAtWall(t *testing.T) {
	w, phys := newTestWorld(t)
	phys.walls = []float64{3}
	arrow := ecs.CreateEntity(w)
	addBody(t, w, arrow, common.V(0, 0.8), 0.4, 0.1, component.CategoryProjectile, false)
	p := &component.Projectile{Speed: 12, DirX: 1, Radius: 0.2, Targets: component.CategoryPlayer}
	p.Lifetime.Reset(3)
	add(t, w, arrow, component.ProjectileComponent, p)

	sched := ecs.NewScheduler(NewPhysicsSystem(), NewProjectileSystem(zap.NewNop(), nil))
	run(w, sched, 10)
	require.True(t, ecs.IsAlive(w, arrow), "flies level above the floor")

	maxX := positionOf(w, arrow).X
	for i := 0; i < 20 && ecs.IsAlive(w, arrow); i++ {
		sched.Update(w)
		if ecs.IsAlive(w, arrow) {
			maxX = positionOf(w, arrow).X
		}
	}
	assert.False(t, ecs.IsAlive(w, arrow))
	assert.Less(t, maxX, 3.0)
}

func TestTrapKillsThroughInvincibility(t *testing.T) {
	w, _ := newTestWorld(t)
	player := newTestPlayer(t, w, common.V(0, 0.6))
	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	h.SetInvincible(5)

	trap := ecs.CreateEntity(w)
	addBody(t, w, trap, common.V(0.5, 0.2), 1, 0.4, component.CategoryTrap, false)
	add(t, w, trap, component.TrapComponent, &component.Trap{Radius: 0.3})

	sched := ecs.NewScheduler(NewHazardSystem(zap.NewNop()))
	sched.Update(w)
	assert.True(t, h.Dead)
	assert.Equal(t, 0, h.Current)

	deaths := 0
	w.Events().Each(EventDeath, func(ecs.Event) { deaths++ })
	assert.Equal(t, 1, deaths)

	sched.Update(w)
	deaths = 0
	w.Events().Each(EventDeath, func(ecs.Event) { deaths++ })
	assert.Zero(t, deaths, "a dead player is not killed twice")
}

func TestCoinPickupAwardsValue(t *testing.T) {
	w, _ := newTestWorld(t)
	newTestPlayer(t, w, common.V(0, 0.6))
	near := ecs.CreateEntity(w)
	addBody(t, w, near, common.V(0.5, 0.5), 0.3, 0.3, component.CategoryCoin, false)
	add(t, w, near, component.CoinComponent, &component.Coin{Value: 5})
	far := ecs.CreateEntity(w)
	addBody(t, w, far, common.V(4, 0.5), 0.3, 0.3, component.CategoryCoin, false)
	add(t, w, far, component.CoinComponent, &component.Coin{Value: 5})

	economy := &fakeEconomy{}
	ecs.NewScheduler(NewPickupCollectSystem(zap.NewNop(), economy)).Update(w)

	assert.Equal(t, 5, economy.points)
	assert.False(t, ecs.IsAlive(w, near))
	assert.True(t, ecs.IsAlive(w, far))
}

func TestSameTickHitsShareOneInvincibilityWindow(t *testing.T) {
	w, _ := newTestWorld(t)
	player := newTestPlayer(t, w, common.V(0, 0.6))
	left := newTestEnemy(t, w, common.V(-1, 0.5), testEnemyAI())
	right := newTestEnemy(t, w, common.V(1, 0.5), testEnemyAI())
	combat := NewCombatSystem(zap.NewNop(), nil)

	for _, attacker := range []ecs.Entity{left, right, right} {
		pos := positionOf(w, attacker)
		combat.QueueHit(HitRequest{
			Attacker: attacker,
			Center:   pos,
			Radius:   1.5,
			Mask:     component.CategoryPlayer,
			Damage:   1,
			Source:   pos,
		})
	}
	require.Equal(t, 3, combat.Pending())
	combat.Update(w)

	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	assert.Equal(t, 2, h.Current)
	assert.True(t, h.Invincible())
	landed := 0
	w.Events().Each(EventDamaged, func(evt ecs.Event) {
		if evt.Data.(DamageEvent).Target == player {
			landed++
		}
	})
	assert.Equal(t, 1, landed)

	// a hit after the window lands again
	run(w, ecs.NewScheduler(NewTimerSystem()), 31)
	combat.QueueHit(HitRequest{Attacker: left, Target: player, Mask: component.CategoryPlayer, Damage: 1})
	combat.Update(w)
	assert.Equal(t, 1, h.Current)
}
