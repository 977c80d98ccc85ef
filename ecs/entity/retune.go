package entity

import (
	"fmt"

	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/prefabs"
)

// Retune reloads prefab and copies its tuning onto every living entity built
// from it. Runtime state (health, AI state, timers) is left alone. It returns
// the number of entities updated.
func Retune(w *ecs.World, prefab string) (int, error) {
	name := PrefabName(prefab)
	var targets []ecs.Entity
	ecs.ForEach(w, component.PrefabRefComponent.Kind(), func(e ecs.Entity, ref *component.PrefabRef) {
		if ref.Name == name {
			targets = append(targets, e)
		}
	})
	if len(targets) == 0 {
		return 0, nil
	}

	category := component.CategoryNone
	if tag, ok := ecs.Get(w, targets[0], component.CategoryComponent.Kind()); ok {
		category = tag.Category
	}

	var apply func(ecs.Entity)
	switch {
	case category.Has(component.CategoryPlayer):
		spec, err := prefabs.LoadSpec[prefabs.PlayerSpec](name)
		if err != nil {
			return 0, fmt.Errorf("retune: %w", err)
		}
		cues, err := cuesFromSpec(spec.Cues)
		if err != nil {
			return 0, fmt.Errorf("retune: %q: %w", name, err)
		}
		apply = func(e ecs.Entity) {
			if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
				*p = *playerFromSpec(spec)
			}
			if kb, ok := ecs.Get(w, e, component.KnockbackableComponent.Kind()); ok {
				kb.Force = spec.Knockback
			}
			retuneHurt(w, e, spec.Hurt)
			retuneCues(w, e, cues)
		}
	case category.Has(component.CategoryEnemy):
		spec, err := prefabs.LoadEnemySpec(name)
		if err != nil {
			return 0, fmt.Errorf("retune: %w", err)
		}
		ai, err := enemyAIFromSpec(spec)
		if err != nil {
			return 0, fmt.Errorf("retune: %q: %w", name, err)
		}
		cues, err := cuesFromSpec(spec.Cues)
		if err != nil {
			return 0, fmt.Errorf("retune: %q: %w", name, err)
		}
		apply = func(e ecs.Entity) {
			if cur, ok := ecs.Get(w, e, component.EnemyAIComponent.Kind()); ok {
				*cur = *ai
			}
			if stun, ok := ecs.Get(w, e, component.StunComponent.Kind()); ok {
				stun.Duration = spec.Stun
			}
			if kb, ok := ecs.Get(w, e, component.KnockbackableComponent.Kind()); ok {
				kb.Force = spec.Knockback
			}
			retuneHurt(w, e, spec.Hurt)
			retuneReward(w, e, spec.Reward)
			retuneCues(w, e, cues)
		}
	case category.Has(component.CategoryBoss):
		spec, err := prefabs.LoadBossSpec(name)
		if err != nil {
			return 0, fmt.Errorf("retune: %w", err)
		}
		boss, err := bossFromSpec(spec)
		if err != nil {
			return 0, fmt.Errorf("retune: %q: %w", name, err)
		}
		cues, err := cuesFromSpec(spec.Cues)
		if err != nil {
			return 0, fmt.Errorf("retune: %q: %w", name, err)
		}
		apply = func(e ecs.Entity) {
			if cur, ok := ecs.Get(w, e, component.BossComponent.Kind()); ok {
				*cur = *boss
			}
			retuneHurt(w, e, spec.Hurt)
			retuneReward(w, e, spec.Reward)
			retuneCues(w, e, cues)
		}
	default:
		// props and projectiles pick up changes on their next spawn
		return 0, nil
	}

	for _, e := range targets {
		apply(e)
	}
	return len(targets), nil
}

func retuneHurt(w *ecs.World, e ecs.Entity, spec prefabs.HurtSpec) {
	hurt, ok := ecs.Get(w, e, component.HurtComponent.Kind())
	if !ok {
		return
	}
	// field-wise so a running hurt flag keeps its timer
	next := hurtFromSpec(spec)
	hurt.FlashDuration = next.FlashDuration
	hurt.FlashColor = next.FlashColor
	hurt.AnimTrigger = next.AnimTrigger
	hurt.AnimBool = next.AnimBool
	hurt.BoolDuration = next.BoolDuration
}

func retuneReward(w *ecs.World, e ecs.Entity, spec prefabs.RewardSpec) {
	if dr, ok := ecs.Get(w, e, component.DeathRewardComponent.Kind()); ok {
		*dr = *rewardFromSpec(spec)
	}
}

func retuneCues(w *ecs.World, e ecs.Entity, cues *component.AnimationCues) {
	if cur, ok := ecs.Get(w, e, component.AnimationCuesComponent.Kind()); ok {
		cur.ByClip = cues.ByClip
	}
}
