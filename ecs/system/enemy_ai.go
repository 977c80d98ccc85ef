package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

const (
	enemyAnimWalking   = "isWalking"
	enemyAnimAttacking = "IsAttacking"
	enemyAnimAttack    = "Attack"
)

// EnemyAISystem drives the patrol -> chase -> attack -> wait cycle of every
// melee enemy. A stunned enemy keeps its state but takes no decisions.
type EnemyAISystem struct {
	log  *zap.Logger
	hits HitQueue
}

func NewEnemyAISystem(log *zap.Logger, hits HitQueue) *EnemyAISystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &EnemyAISystem{log: log, hits: hits}
}

func (s *EnemyAISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	target, targetPos, hasTarget := livePlayer(w)

	ecs.ForEach3(w, component.EnemyAIComponent.Kind(), component.EnemyAIStateComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, cfg *component.EnemyAI, st *component.EnemyAIState, tf *component.Transform) {
			hitEvents := takeAnimationEvents(w, e, component.AnimationEventHit)
			if isDisabled(w, e) || isDead(w, e) {
				return
			}
			st.Cooldown.Tick(dt)
			if stun, ok := ecs.Get(w, e, component.StunComponent.Kind()); ok && stun.Active() {
				return
			}

			ctx := enemyContext{
				w: w, e: e, cfg: cfg, st: st, tf: tf,
				target: target, targetPos: targetPos, hasTarget: hasTarget,
				dist: math.Inf(1),
			}
			if hasTarget {
				ctx.dist = tf.Pos().Dist(targetPos)
			}

			prev := st.State
			switch st.State {
			case component.EnemyPatrolling:
				s.patrol(&ctx, dt)
			case component.EnemyChasing:
				s.chase(&ctx)
			case component.EnemyAttacking:
				s.attack(&ctx, dt, len(hitEvents) > 0)
			case component.EnemyWaiting:
				s.wait(&ctx, dt)
			}
			if st.State != prev {
				s.log.Debug("enemy state",
					zap.Uint64("entity", uint64(e)),
					zap.Stringer("from", prev),
					zap.Stringer("to", st.State),
				)
			}

			anim := animatorOf(w, e)
			anim.SetBool(enemyAnimWalking, math.Abs(velocityOf(w, e).X) > common.Epsilon &&
				(st.State == component.EnemyPatrolling || st.State == component.EnemyChasing))
			anim.SetBool(enemyAnimAttacking, st.State == component.EnemyAttacking)
		})
}

type enemyContext struct {
	w   *ecs.World
	e   ecs.Entity
	cfg *component.EnemyAI
	st  *component.EnemyAIState
	tf  *component.Transform

	target    ecs.Entity
	targetPos common.Vec2
	hasTarget bool
	dist      float64
}

func (c *enemyContext) faceTarget() {
	if c.hasTarget {
		c.tf.FacingLeft = c.targetPos.X < c.tf.X
	}
}

func (s *EnemyAISystem) patrol(c *enemyContext, dt float64) {
	if c.hasTarget && c.dist <= c.cfg.DetectionRange {
		c.st.State = component.EnemyChasing
		s.chase(c)
		return
	}

	if s.shouldTurn(c) {
		if c.cfg.TurnMode == component.EnemyTurnPause {
			c.st.State = component.EnemyWaiting
			c.st.TurnAfterWait = true
			c.st.Wait.Reset(c.cfg.WaitTime)
			setVelocityX(c.w, c.e, 0)
			return
		}
		c.st.MovingRight = !c.st.MovingRight
	}

	dir := patrolDir(c.st)
	speed := c.cfg.PatrolSpeed
	// never step past the patrol bound
	if dt > 0 {
		remaining := (c.st.SpawnX + dir*c.cfg.PatrolDistance - c.tf.X) * dir
		if remaining < speed*dt {
			speed = math.Max(remaining, 0) / dt
		}
	}
	setVelocityX(c.w, c.e, dir*speed)
	c.tf.FacingLeft = !c.st.MovingRight
}

// shouldTurn reports a patrol bound reached in the walking direction or a
// missing floor ahead.
func (s *EnemyAISystem) shouldTurn(c *enemyContext) bool {
	dir := patrolDir(c.st)
	bound := c.st.SpawnX + dir*c.cfg.PatrolDistance
	if (dir > 0 && c.tf.X >= bound-common.Epsilon) || (dir < 0 && c.tf.X <= bound+common.Epsilon) {
		return true
	}

	phys := c.w.Physics()
	if phys == nil || c.cfg.GroundProbeLength <= 0 || !phys.Grounded(c.e) {
		return false
	}
	body, _ := ecs.Get(c.w, c.e, component.PhysicsBodyComponent.Kind())
	origin := common.V(c.tf.X+dir*c.cfg.GroundProbeOffset, body.Bottom(c.tf.Y))
	return !phys.RaycastDown(origin, c.cfg.GroundProbeLength, component.CategoryGround)
}

func patrolDir(st *component.EnemyAIState) float64 {
	if st.MovingRight {
		return 1
	}
	return -1
}

func (s *EnemyAISystem) chase(c *enemyContext) {
	if !c.hasTarget || c.dist > c.cfg.DetectionRange*c.cfg.ChaseHysteresis {
		c.st.State = component.EnemyPatrolling
		c.st.MovingRight = c.tf.X < c.st.SpawnX
		setVelocityX(c.w, c.e, 0)
		return
	}

	c.faceTarget()
	if c.dist <= c.cfg.AttackRange {
		setVelocityX(c.w, c.e, 0)
		if c.st.Cooldown.Elapsed() {
			s.startAttack(c)
		}
		return
	}
	setVelocityX(c.w, c.e, common.Sign(c.targetPos.X-c.tf.X)*c.cfg.AttackSpeed)
}

func (s *EnemyAISystem) startAttack(c *enemyContext) {
	c.st.State = component.EnemyAttacking
	c.st.Resolved = false
	c.st.Resolve.Reset(c.cfg.AttackResolveTime)
	setVelocityX(c.w, c.e, 0)
	animatorOf(c.w, c.e).SetTrigger(enemyAnimAttack)
}

// attack holds still until the swing's hit callback arrives, or the resolve
// timer stands in for it, then deals damage if the target is still in reach.
func (s *EnemyAISystem) attack(c *enemyContext, dt float64, hitEvent bool) {
	setVelocityX(c.w, c.e, 0)
	c.st.Resolve.Tick(dt)
	if c.st.Resolved || (!hitEvent && c.st.Resolve.Active()) {
		return
	}
	c.st.Resolved = true

	if c.hasTarget && s.hits != nil {
		pos := c.tf.Pos()
		s.hits.QueueHit(HitRequest{
			Attacker: c.e,
			Target:   c.target,
			Center:   pos,
			Radius:   c.cfg.AttackRange,
			Mask:     component.CategoryPlayer,
			Damage:   c.cfg.AttackDamage,
			Source:   pos,
		})
	}
	c.st.Cooldown.Reset(c.cfg.AttackCooldown)
	c.st.State = component.EnemyWaiting
	c.st.TurnAfterWait = false
	c.st.Wait.Reset(c.cfg.AttackRecovery)
}

func (s *EnemyAISystem) wait(c *enemyContext, dt float64) {
	setVelocityX(c.w, c.e, 0)
	if c.st.TurnAfterWait && c.hasTarget && c.dist <= c.cfg.DetectionRange {
		c.st.TurnAfterWait = false
		c.st.State = component.EnemyChasing
		return
	}
	c.st.Wait.Tick(dt)
	if c.st.Wait.Active() {
		return
	}
	if c.st.TurnAfterWait {
		c.st.TurnAfterWait = false
		c.st.MovingRight = !c.st.MovingRight
		c.st.State = component.EnemyPatrolling
		return
	}
	c.st.State = component.EnemyChasing
}
