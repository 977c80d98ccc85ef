package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// Animator parameters driven by the player controller.
const (
	animGrounded  = "Grounded"
	animAirSpeedY = "AirSpeedY"
	animJump      = "Jump"
	animState     = "AnimState"
	animBlock     = "Block"
	animRoll      = "Roll"
)

const playerAttackMask = component.CategoryEnemy | component.CategoryBoss | component.CategoryJumpBoost | component.CategoryBreakable

// PlayerControllerSystem runs the player's composite state: ground
// debounce, locomotion, block, roll and the three-stage attack combo.
type PlayerControllerSystem struct {
	log  *zap.Logger
	hits HitQueue
}

func NewPlayerControllerSystem(log *zap.Logger, hits HitQueue) *PlayerControllerSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlayerControllerSystem{log: log, hits: hits}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PlayerCombatComponent.Kind(),
	)
	for _, e := range entities {
		p.updatePlayer(w, e)
	}
}

func (p *PlayerControllerSystem) updatePlayer(w *ecs.World, e ecs.Entity) {
	player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	combat, _ := ecs.Get(w, e, component.PlayerCombatComponent.Kind())
	if player == nil || input == nil || combat == nil {
		return
	}
	if isDisabled(w, e) || isDead(w, e) {
		return
	}
	anim := animatorOf(w, e)
	tf, _ := ecs.Get(w, e, component.TransformComponent.Kind())

	if modalOpen(w) {
		setVelocityX(w, e, 0)
		anim.SetInteger(animState, 0)
		return
	}

	dt := w.Delta()

	// swings started earlier connect now
	for range takeAnimationEvents(w, e, component.AnimationEventHit) {
		p.resolveSwing(w, e, player, tf)
		if combat.Intent == component.IntentAttacking {
			combat.Intent = component.IntentNone
		}
	}

	ground := p.updateGround(w, e, dt)
	v := velocityOf(w, e)
	anim.SetBool(animGrounded, ground.Grounded)
	anim.SetFloat(animAirSpeedY, v.Y)

	stamina, _ := ecs.Get(w, e, component.BlockStaminaComponent.Kind())

	if combat.Intent == component.IntentRolling {
		// stamina keeps regenerating through the roll
		stamina.Update(false, dt)
		anim.SetBool(animBlock, false)
		setVelocity(w, e, common.V(combat.RollDir*player.RollSpeed, v.Y))
		combat.Roll.Tick(dt)
		if combat.Roll.Elapsed() {
			combat.Intent = component.IntentNone
		}
		return
	}

	blocking := stamina.Update(input.BlockHeld, dt)
	anim.SetBool(animBlock, blocking)

	move := *input
	if blocking {
		combat.Intent = component.IntentBlocking
		move = component.Input{}
	} else if combat.Intent == component.IntentBlocking {
		combat.Intent = component.IntentNone
	}

	p.runLocomotion(w, e, player, &move, ground, tf, anim)

	if blocking {
		setVelocityX(w, e, 0)
		return
	}

	if input.AttackPressed {
		p.startAttack(player, combat, anim)
	}
	if input.RollPressed {
		p.startRoll(w, e, player, combat, tf, anim)
	}
}

// updateGround applies the debounce: contact grounds immediately, losing it
// only counts after GroundBuffer seconds without contact.
func (p *PlayerControllerSystem) updateGround(w *ecs.World, e ecs.Entity, dt float64) *component.GroundState {
	g, ok := ecs.Get(w, e, component.GroundStateComponent.Kind())
	if !ok {
		g = &component.GroundState{}
		_ = ecs.Add(w, e, component.GroundStateComponent.Kind(), g)
	}
	player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())

	contact := false
	if phys := w.Physics(); phys != nil {
		contact = phys.Grounded(e)
	}

	switch {
	case contact:
		g.Grounded = true
		g.Checking = false
		g.Buffer.Cancel()
	case g.Grounded && !g.Checking:
		g.Checking = true
		g.Buffer.Reset(player.GroundBuffer)
	}
	if g.Checking {
		g.Buffer.Tick(dt)
		if g.Buffer.Elapsed() {
			g.Checking = false
			g.Grounded = false
		}
	}
	return g
}

func (p *PlayerControllerSystem) runLocomotion(w *ecs.World, e ecs.Entity, player *component.Player, input *component.Input, ground *component.GroundState, tf *component.Transform, anim *component.Animator) {
	sm, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind())
	if !ok {
		return
	}

	ctx := &component.PlayerStateContext{
		Input:  input,
		Player: player,
		GetVelocity: func() (float64, float64) {
			v := velocityOf(w, e)
			return v.X, v.Y
		},
		SetVelocity: func(x, y float64) {
			setVelocity(w, e, common.V(x, y))
		},
		IsGrounded: func() bool {
			return ground.Grounded
		},
		ChangeState: func(state component.PlayerState) {
			sm.Pending = state
		},
		ChangeAnimation: func(name string) {
			switch name {
			case "run":
				anim.SetInteger(animState, 1)
			case "jump":
				anim.SetTrigger(animJump)
				anim.SetInteger(animState, 0)
			case "fall":
				anim.SetInteger(animState, 2)
			default:
				anim.SetInteger(animState, 0)
			}
		},
		FacingLeft: func(left bool) {
			if tf != nil {
				tf.FacingLeft = left
			}
		},
	}

	applyPending := func() {
		if sm.Pending == nil || sm.Pending == sm.State {
			sm.Pending = nil
			return
		}
		next := sm.Pending
		sm.Pending = nil
		if sm.State != nil {
			sm.State.Exit(ctx)
		}
		if next == playerStateJump {
			// a jump leaves the ground immediately, without the debounce
			ground.Grounded = false
			ground.Checking = false
		}
		p.log.Debug("player state", zap.String("from", stateName(sm.State)), zap.String("to", next.Name()))
		sm.State = next
		sm.State.Enter(ctx)
	}

	if sm.State == nil {
		sm.State = playerStateIdle
		sm.State.Enter(ctx)
	}
	sm.State.HandleInput(ctx)
	applyPending()
	sm.State.Update(ctx)
	applyPending()
}

func (p *PlayerControllerSystem) startAttack(player *component.Player, combat *component.PlayerCombat, anim *component.Animator) {
	triggers := player.AttackTriggers
	if len(triggers) == 0 {
		triggers = []string{"Attack1", "Attack2", "Attack3"}
	}
	stage := combat.AttackStage % len(triggers)
	anim.SetTrigger(triggers[stage])
	combat.AttackStage = (stage + 1) % len(triggers)
	combat.Intent = component.IntentAttacking
}

func (p *PlayerControllerSystem) startRoll(w *ecs.World, e ecs.Entity, player *component.Player, combat *component.PlayerCombat, tf *component.Transform, anim *component.Animator) {
	combat.Intent = component.IntentRolling
	combat.RollDir = tf.Facing()
	combat.Roll.Reset(player.RollDuration)
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.SetInvincible(player.RollDuration)
	}
	anim.SetTrigger(animRoll)
	v := velocityOf(w, e)
	setVelocity(w, e, common.V(combat.RollDir*player.RollSpeed, v.Y))
}

// resolveSwing queues the area hit for the swing that just connected.
func (p *PlayerControllerSystem) resolveSwing(w *ecs.World, e ecs.Entity, player *component.Player, tf *component.Transform) {
	if p.hits == nil || tf == nil {
		return
	}
	pos := tf.Pos()
	p.hits.QueueHit(HitRequest{
		Attacker: e,
		Center:   pos.Add(common.V(tf.Facing()*player.AttackOffset, 0)),
		Radius:   player.AttackRadius,
		Mask:     playerAttackMask,
		Damage:   player.AttackDamage,
		Source:   pos,
	})
}

func stateName(s component.PlayerState) string {
	if s == nil {
		return "none"
	}
	return s.Name()
}
