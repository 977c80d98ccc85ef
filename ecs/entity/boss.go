package entity

import (
	"fmt"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/prefabs"
)

const defaultBossPrefab = "boss.yaml"

func NewBoss(w *ecs.World, prefab string, at common.Vec2) (ecs.Entity, error) {
	if prefab == "" {
		prefab = defaultBossPrefab
	}
	spec, err := prefabs.LoadBossSpec(PrefabName(prefab))
	if err != nil {
		return 0, fmt.Errorf("boss: %w", err)
	}
	return BuildBoss(w, spec, prefab, at)
}

func BuildBoss(w *ecs.World, spec prefabs.BossSpec, prefab string, at common.Vec2) (ecs.Entity, error) {
	boss, err := bossFromSpec(spec)
	if err != nil {
		return 0, fmt.Errorf("boss: %q: %w", prefab, err)
	}

	ctx := &buildContext{PrefabPath: prefab, At: at, Category: component.CategoryBoss, Body: spec.Body}
	return buildEntity(w, ctx, baseSteps(
		zeroStep("boss_tag", component.BossTagComponent),
		valueStep("boss", component.BossComponent, func() *component.Boss { return boss }),
		valueStep("boss_runtime", component.BossRuntimeComponent, func() *component.BossRuntime {
			return &component.BossRuntime{Phase: 1}
		}),
		healthStep(spec.Health),
		hurtStep(spec.Hurt),
		rewardStep(spec.Reward),
		buildStep{"animator", addAnimator},
		cuesStep(spec.Cues),
	))
}

func bossFromSpec(spec prefabs.BossSpec) (*component.Boss, error) {
	b := spec.Boss
	if b.Phase3Threshold > b.Phase2Threshold {
		return nil, fmt.Errorf("phase3_threshold %v above phase2_threshold %v", b.Phase3Threshold, b.Phase2Threshold)
	}
	return &component.Boss{
		MoveSpeed:             b.MoveSpeed,
		DetectionRadius:       b.DetectionRadius,
		IdealShootingDistance: b.IdealShootingDistance,
		KiteBackDistance:      b.KiteBackDistance,
		MeleeDamage:           b.MeleeDamage,
		MeleeRange:            b.MeleeRange,
		MeleeOffset:           b.MeleeOffset,
		MeleeCooldown:         b.MeleeCooldown,
		ShootCooldown:         b.ShootCooldown,
		ComboDelays:           append([]float64(nil), b.ComboDelays...),
		Phase2Threshold:       b.Phase2Threshold,
		Phase3Threshold:       b.Phase3Threshold,
		PhaseFlash:            b.PhaseFlash,
		Projectile:            b.Projectile,
		ProjectileOffset:      b.ProjectileOffset,
	}, nil
}
