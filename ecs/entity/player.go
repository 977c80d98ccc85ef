package entity

import (
	"fmt"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/prefabs"
)

const defaultPlayerPrefab = "player.yaml"

func NewPlayer(w *ecs.World, at common.Vec2) (ecs.Entity, error) {
	return NewPlayerFrom(w, defaultPlayerPrefab, at)
}

func NewPlayerFrom(w *ecs.World, prefab string, at common.Vec2) (ecs.Entity, error) {
	if prefab == "" {
		prefab = defaultPlayerPrefab
	}
	spec, err := prefabs.LoadSpec[prefabs.PlayerSpec](PrefabName(prefab))
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return BuildPlayer(w, spec, prefab, at)
}

func BuildPlayer(w *ecs.World, spec prefabs.PlayerSpec, prefab string, at common.Vec2) (ecs.Entity, error) {
	ctx := &buildContext{PrefabPath: prefab, At: at, Category: component.CategoryPlayer, Body: spec.Body}
	return buildEntity(w, ctx, baseSteps(
		zeroStep("player_tag", component.PlayerTagComponent),
		valueStep("player", component.PlayerComponent, func() *component.Player { return playerFromSpec(spec) }),
		zeroStep("input", component.InputComponent),
		zeroStep("player_combat", component.PlayerCombatComponent),
		zeroStep("player_state_machine", component.PlayerStateMachineComponent),
		zeroStep("ground_state", component.GroundStateComponent),
		healthStep(spec.Health),
		valueStep("block_stamina", component.BlockStaminaComponent, func() *component.BlockStamina {
			return &component.BlockStamina{
				Current:    spec.Stamina.Max,
				Max:        spec.Stamina.Max,
				DrainRate:  spec.Stamina.DrainRate,
				RegenRate:  spec.Stamina.RegenRate,
				MinToStart: spec.Stamina.MinToStart,
			}
		}),
		valueStep("knockbackable", component.KnockbackableComponent, func() *component.Knockbackable {
			return &component.Knockbackable{Force: spec.Knockback}
		}),
		hurtStep(spec.Hurt),
		buildStep{"animator", addAnimator},
		cuesStep(spec.Cues),
	))
}

func playerFromSpec(spec prefabs.PlayerSpec) *component.Player {
	triggers := append([]string(nil), spec.Attack.Triggers...)
	return &component.Player{
		MoveSpeed:      spec.Movement.MoveSpeed,
		JumpForce:      spec.Movement.JumpForce,
		RollSpeed:      spec.Movement.RollSpeed,
		RollDuration:   spec.Movement.RollDuration,
		GroundBuffer:   spec.Movement.GroundBuffer,
		AttackDamage:   spec.Attack.Damage,
		AttackOffset:   spec.Attack.Offset,
		AttackRadius:   spec.Attack.Radius,
		AttackTriggers: triggers,
	}
}
