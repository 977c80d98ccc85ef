package entity

import (
	"fmt"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/prefabs"
)

const (
	defaultEnemyPrefab     = "enemy.yaml"
	defaultChaseHysteresis = 1.5
)

func NewEnemy(w *ecs.World, prefab string, at common.Vec2) (ecs.Entity, error) {
	if prefab == "" {
		prefab = defaultEnemyPrefab
	}
	spec, err := prefabs.LoadEnemySpec(PrefabName(prefab))
	if err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	return BuildEnemy(w, spec, prefab, at)
}

func BuildEnemy(w *ecs.World, spec prefabs.EnemySpec, prefab string, at common.Vec2) (ecs.Entity, error) {
	ai, err := enemyAIFromSpec(spec)
	if err != nil {
		return 0, fmt.Errorf("enemy: %q: %w", prefab, err)
	}

	ctx := &buildContext{PrefabPath: prefab, At: at, Category: component.CategoryEnemy, Body: spec.Body}
	return buildEntity(w, ctx, baseSteps(
		zeroStep("enemy_tag", component.EnemyTagComponent),
		valueStep("enemy_ai", component.EnemyAIComponent, func() *component.EnemyAI { return ai }),
		valueStep("enemy_ai_state", component.EnemyAIStateComponent, func() *component.EnemyAIState {
			return &component.EnemyAIState{SpawnX: at.X, MovingRight: true}
		}),
		healthStep(spec.Health),
		valueStep("stun", component.StunComponent, func() *component.Stun {
			return &component.Stun{Duration: spec.Stun}
		}),
		valueStep("knockbackable", component.KnockbackableComponent, func() *component.Knockbackable {
			return &component.Knockbackable{Force: spec.Knockback}
		}),
		hurtStep(spec.Hurt),
		rewardStep(spec.Reward),
		buildStep{"animator", addAnimator},
		cuesStep(spec.Cues),
	))
}

func enemyAIFromSpec(spec prefabs.EnemySpec) (*component.EnemyAI, error) {
	mode := component.EnemyTurnMode(spec.AI.TurnMode)
	switch mode {
	case "":
		mode = component.EnemyTurnInstant
	case component.EnemyTurnInstant, component.EnemyTurnPause:
	default:
		return nil, fmt.Errorf("unknown turn_mode %q", spec.AI.TurnMode)
	}

	hysteresis := spec.AI.ChaseHysteresis
	if hysteresis <= 0 {
		hysteresis = defaultChaseHysteresis
	}

	return &component.EnemyAI{
		PatrolDistance:    spec.AI.PatrolDistance,
		PatrolSpeed:       spec.AI.PatrolSpeed,
		WaitTime:          spec.AI.WaitTime,
		DetectionRange:    spec.AI.DetectionRange,
		ChaseHysteresis:   hysteresis,
		AttackRange:       spec.AI.AttackRange,
		AttackSpeed:       spec.AI.AttackSpeed,
		AttackCooldown:    spec.AI.AttackCooldown,
		AttackDamage:      spec.AI.AttackDamage,
		AttackRecovery:    spec.AI.AttackRecovery,
		AttackResolveTime: spec.AI.AttackResolveTime,
		GroundProbeOffset: spec.AI.GroundProbeOffset,
		GroundProbeLength: spec.AI.GroundProbeLength,
		TurnMode:          mode,
	}, nil
}
