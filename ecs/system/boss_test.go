package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

type fakeDisplay struct {
	phases  []int
	visible bool
}

func (d *fakeDisplay) SetPhase(p int)    { d.phases = append(d.phases, p) }
func (d *fakeDisplay) SetVisible(v bool) { d.visible = v }

type fakeBar struct {
	current, max float64
	updates      int
	visible      bool
}

func (b *fakeBar) SetValue(cur, max float64) {
	b.current, b.max = cur, max
	b.updates++
}
func (b *fakeBar) SetVisible(v bool) { b.visible = v }

func newBossSystem(hits HitQueue, spawner Spawner) *BossSystem {
	return NewBossSystem(zap.NewNop(), hits, spawner, rand.New(rand.NewSource(7)))
}

func TestBossPhaseNeverDecreases(t *testing.T) {
	w, _ := newTestWorld(t)
	boss := newTestBoss(t, w, common.V(0, 1))
	display := &fakeDisplay{}
	add(t, w, boss, component.PhaseTextComponent, &component.PhaseText{Display: display})

	sys := newBossSystem(nil, nil)
	sched := ecs.NewScheduler(sys)
	h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
	rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())

	steps := []struct {
		health int
		want   int
	}{
		{100, 1},
		{70, 2},
		{90, 2},
		{31, 2},
		{30, 3},
		{100, 3},
		{5, 3},
	}
	prev := rt.Phase
	for _, s := range steps {
		h.Current = s.health
		sched.Update(w)
		assert.Equal(t, s.want, rt.Phase, "health %d", s.health)
		assert.GreaterOrEqual(t, rt.Phase, prev)
		prev = rt.Phase
	}
	assert.Equal(t, []int{2, 3}, display.phases)
	assert.Equal(t, 3, animatorOf(w, boss).Ints["Phase"])

	flash, ok := ecs.Get(w, boss, component.WhiteFlashComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.PhaseFlashColor, flash.Color)
}

func TestBossPhaseEventPublishedOnChange(t *testing.T) {
	w, _ := newTestWorld(t)
	boss := newTestBoss(t, w, common.V(0, 1))
	h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
	h.Current = 60

	sched := ecs.NewScheduler(newBossSystem(nil, nil))
	sched.Update(w)

	var events []PhaseEvent
	w.Events().Each(EventPhaseChanged, func(evt ecs.Event) {
		events = append(events, evt.Data.(PhaseEvent))
	})
	assert.Equal(t, []PhaseEvent{{Entity: boss, From: 1, To: 2}}, events)
}

func TestBossIdleOutsideDetection(t *testing.T) {
	w, _ := newTestWorld(t)
	newTestPlayer(t, w, common.V(20, 0.6))
	boss := newTestBoss(t, w, common.V(0, 1))
	display := &fakeDisplay{}
	add(t, w, boss, component.PhaseTextComponent, &component.PhaseText{Display: display})

	sys := newBossSystem(nil, nil)
	sys.Update(w)

	rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
	assert.Equal(t, component.BossIdle, rt.Behavior)
	assert.False(t, rt.Engaged)
	assert.False(t, display.visible)
	assert.InDelta(t, testDT, rt.ShootTimer, 1e-9, "timers accrue while idle")
}

func TestBossPhaseOneKites(t *testing.T) {
	cases := []struct {
		name     string
		playerX  float64
		behavior component.BossBehavior
		wantVX   float64
	}{
		{"too_close_backs_off", 5, component.BossKiting, -2},
		{"too_far_approaches", 12, component.BossApproaching, 2},
		{"in_band_holds", 8, component.BossShooting, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newTestWorld(t)
			newTestPlayer(t, w, common.V(tc.playerX, 0.6))
			boss := newTestBoss(t, w, common.V(0, 1))

			newBossSystem(nil, nil).Update(w)

			rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
			assert.Equal(t, tc.behavior, rt.Behavior)
			assert.True(t, rt.Engaged)
			assert.InDelta(t, tc.wantVX, velocity(w, boss).X, 1e-9)
		})
	}
}

func TestBossShootsOnCooldownAndFiresOnCue(t *testing.T) {
	w, _ := newTestWorld(t)
	newTestPlayer(t, w, common.V(8, 0.6))
	boss := newTestBoss(t, w, common.V(0, 1))
	spawner := &fakeSpawner{}
	sched := ecs.NewScheduler(newBossSystem(nil, spawner))

	run(w, sched, 119)
	assert.Equal(t, 0, animatorOf(w, boss).Count("IsShooting"))
	run(w, sched, 2)
	assert.Equal(t, 1, animatorOf(w, boss).Count("IsShooting"))

	DispatchAnimationEvent(w, boss, component.AnimationEvent{Kind: component.AnimationEventFire, Clip: "IsShooting"})
	sched.Update(w)
	require.Len(t, spawner.projectiles, 1)
	shot := spawner.projectiles[0]
	assert.Equal(t, "arrow", shot.prefab)
	assert.Equal(t, boss, shot.owner)
	assert.Equal(t, common.V(1, 0), shot.dir)
	assert.InDelta(t, 1, shot.at.X, 1e-9)
}

func TestBossPhaseThreeComboRunsToCompletion(t *testing.T) {
	w, _ := newTestWorld(t)
	newTestPlayer(t, w, common.V(1, 0.6))
	boss := newTestBoss(t, w, common.V(0, 1))
	h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
	h.Current = 20
	rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
	rt.MeleeTimer = 5

	sched := ecs.NewScheduler(newBossSystem(nil, nil))
	sched.Update(w)
	require.True(t, rt.Combo.Active)
	anim := animatorOf(w, boss)
	assert.Equal(t, 1, anim.Count("IsAttacking1"))

	// 1.2s + 1.0s + 1.5s
	run(w, sched, 60*4)
	assert.Equal(t, 1, anim.Count("IsAttacking2"))
	assert.Equal(t, 1, anim.Count("IsAttacking3"))
	assert.False(t, rt.Combo.Aborted)
}

func TestBossComboAbortedOnDeath(t *testing.T) {
	w, _ := newTestWorld(t)
	newTestPlayer(t, w, common.V(1, 0.6))
	boss := newTestBoss(t, w, common.V(0, 1))
	bar := &fakeBar{visible: true}
	add(t, w, boss, component.HealthBarComponent, &component.HealthBar{Bar: bar, Visible: true})
	h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
	h.Current = 20
	rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
	rt.MeleeTimer = 5

	economy := &fakeEconomy{}
	combat := NewCombatSystem(zap.NewNop(), nil)
	sched := ecs.NewScheduler(
		newBossSystem(combat, nil),
		combat,
		NewDeathSystem(zap.NewNop(), DeathConfig{}, economy, nil, nil, nil),
	)
	sched.Update(w)
	require.True(t, rt.Combo.Active)

	combat.QueueHit(HitRequest{Target: boss, Mask: component.CategoryBoss, Damage: 50})
	run(w, sched, 60*4)

	anim := animatorOf(w, boss)
	assert.True(t, rt.Combo.Aborted)
	assert.False(t, rt.Combo.Active)
	assert.Equal(t, component.BossDead, rt.Behavior)
	assert.Equal(t, 0, anim.Count("IsAttacking2"))
	assert.Equal(t, 1, anim.Count("IsDead"))
	assert.False(t, bar.visible)
	assert.Equal(t, 100, economy.points)
	assert.True(t, isDisabled(w, boss))
	h, _ = ecs.Get(w, boss, component.HealthComponent.Kind())
	assert.True(t, h.Dead)
}

func TestBossMeleeHitsPlayerInFront(t *testing.T) {
	w, _ := newTestWorld(t)
	player := newTestPlayer(t, w, common.V(1.5, 0.6))
	boss := newTestBoss(t, w, common.V(0, 1))
	h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
	h.Current = 60

	combat := NewCombatSystem(zap.NewNop(), nil)
	sched := ecs.NewScheduler(newBossSystem(combat, nil), combat)
	sched.Update(w)

	DispatchAnimationEvent(w, boss, component.AnimationEvent{Kind: component.AnimationEventHit})
	sched.Update(w)

	ph, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	assert.Equal(t, 2, ph.Current)
}

func TestBossComboFollowsClipEnds(t *testing.T) {
	w, _ := newTestWorld(t)
	newTestPlayer(t, w, common.V(1, 0.6))
	boss := newTestBoss(t, w, common.V(0, 1))
	h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
	h.Current = 20
	rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
	rt.MeleeTimer = 5
	sched := ecs.NewScheduler(newBossSystem(nil, nil))
	anim := animatorOf(w, boss)
	step := component.AnimationEvent{Kind: component.AnimationEventComboStep}

	// a clip end outside a combo is dropped
	DispatchAnimationEvent(w, boss, step)
	sched.Update(w)
	require.True(t, rt.Combo.Active)
	sched.Update(w)
	assert.Equal(t, 1, anim.Count("IsAttacking1"))
	assert.Equal(t, 0, anim.Count("IsAttacking2"))

	run(w, sched, 10)
	DispatchAnimationEvent(w, boss, step)
	sched.Update(w)
	assert.Equal(t, 1, anim.Count("IsAttacking2"), "next attack starts on the clip end")

	DispatchAnimationEvent(w, boss, step)
	sched.Update(w)
	assert.Equal(t, 1, anim.Count("IsAttacking3"))
	assert.True(t, rt.Combo.Active)

	DispatchAnimationEvent(w, boss, step)
	sched.Update(w)
	assert.False(t, rt.Combo.Active)
	assert.False(t, rt.Combo.Aborted)
	assert.Equal(t, component.BossIdle, rt.Behavior)
}

func TestBossPhaseTwoMeleeUsesBothSwings(t *testing.T) {
	w, _ := newTestWorld(t)
	newTestPlayer(t, w, common.V(1, 0.6))
	boss := newTestBoss(t, w, common.V(0, 1))
	h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
	h.Current = 60
	rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
	rt.MeleeTimer = 5
	sched := ecs.NewScheduler(newBossSystem(nil, nil))

	// one swing per two second cooldown
	run(w, sched, 1+120*20)
	require.Equal(t, 2, rt.Phase)

	anim := animatorOf(w, boss)
	first, second := anim.Count("IsAttacking1"), anim.Count("IsAttacking2")
	assert.GreaterOrEqual(t, first+second, 20)
	assert.Positive(t, first)
	assert.Positive(t, second)
	assert.Equal(t, 0, anim.Count("IsAttacking3"), "the third swing belongs to the combo")
	assert.False(t, rt.Combo.Active)
}
