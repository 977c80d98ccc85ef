package entity

import (
	"fmt"
	"path"
	"strings"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/prefabs"
)

type buildContext struct {
	PrefabPath string
	At         common.Vec2
	Category   component.Category
	Body       prefabs.BodySpec
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, ctx *buildContext) error

type buildStep struct {
	name string
	fn   componentBuildFn
}

// buildEntity runs steps in order on a fresh entity. The entity is destroyed
// if any step fails.
func buildEntity(w *ecs.World, ctx *buildContext, steps []buildStep) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	e := ecs.CreateEntity(w)
	for _, step := range steps {
		if err := step.fn(w, e, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", ctx.PrefabPath, step.name, err)
		}
	}
	return e, nil
}

// baseSteps are shared by every prefab: placement, collision role and the
// physics body, which is registered last.
func baseSteps(extra ...buildStep) []buildStep {
	steps := []buildStep{
		{"transform", addTransform},
		{"spawn", addSpawn},
		{"category", addCategory},
		{"prefab_ref", addPrefabRef},
	}
	steps = append(steps, extra...)
	return append(steps, buildStep{"physics_body", addPhysicsBody})
}

// PrefabName normalizes a prefab reference ("arrow", "prefabs/arrow.yaml")
// to its file name.
func PrefabName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if path.Ext(name) == "" {
		name += ".yaml"
	}
	return name
}

func addTransform(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: ctx.At.X, Y: ctx.At.Y})
}

func addSpawn(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	return ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{X: ctx.At.X, Y: ctx.At.Y})
}

func addCategory(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	return ecs.Add(w, e, component.CategoryComponent.Kind(), &component.CategoryTag{Category: ctx.Category})
}

func addPrefabRef(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	return ecs.Add(w, e, component.PrefabRefComponent.Kind(), &component.PrefabRef{Name: PrefabName(ctx.PrefabPath)})
}

func addAnimator(w *ecs.World, e ecs.Entity, _ *buildContext) error {
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), component.NewAnimator())
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	if ctx.Body.Width <= 0 || ctx.Body.Height <= 0 {
		return fmt.Errorf("body size must be positive, got %vx%v", ctx.Body.Width, ctx.Body.Height)
	}
	body := &component.PhysicsBody{Width: ctx.Body.Width, Height: ctx.Body.Height, Gravity: ctx.Body.Gravity}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return err
	}
	if phys := w.Physics(); phys != nil {
		phys.AddBody(e, ecs.BodyDef{
			Position: ctx.At,
			Width:    body.Width,
			Height:   body.Height,
			Category: ctx.Category,
			Gravity:  body.Gravity,
		})
	}
	return nil
}

func healthStep(spec prefabs.HealthSpec) buildStep {
	return buildStep{"health", func(w *ecs.World, e ecs.Entity, _ *buildContext) error {
		return ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(spec.Max, spec.Invincibility))
	}}
}

func hurtStep(spec prefabs.HurtSpec) buildStep {
	return buildStep{"hurt", func(w *ecs.World, e ecs.Entity, _ *buildContext) error {
		return ecs.Add(w, e, component.HurtComponent.Kind(), hurtFromSpec(spec))
	}}
}

func hurtFromSpec(spec prefabs.HurtSpec) *component.Hurt {
	hurt := &component.Hurt{
		FlashDuration: spec.Flash,
		AnimTrigger:   spec.Trigger,
		AnimBool:      spec.Bool,
		BoolDuration:  spec.BoolDuration,
	}
	if spec.FlashColor.Set {
		hurt.FlashColor = spec.FlashColor.RGBA
	}
	return hurt
}

func rewardStep(spec prefabs.RewardSpec) buildStep {
	return buildStep{"death_reward", func(w *ecs.World, e ecs.Entity, _ *buildContext) error {
		return ecs.Add(w, e, component.DeathRewardComponent.Kind(), rewardFromSpec(spec))
	}}
}

func rewardFromSpec(spec prefabs.RewardSpec) *component.DeathReward {
	return &component.DeathReward{Points: spec.Points, Coins: spec.Coins, Script: spec.Script}
}

func cuesStep(specs []prefabs.CueSpec) buildStep {
	return buildStep{"animation_cues", func(w *ecs.World, e ecs.Entity, _ *buildContext) error {
		if len(specs) == 0 {
			return nil
		}
		cues, err := cuesFromSpec(specs)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.AnimationCuesComponent.Kind(), cues)
	}}
}

func cuesFromSpec(specs []prefabs.CueSpec) (*component.AnimationCues, error) {
	cues := &component.AnimationCues{ByClip: make(map[string][]component.AnimationCue, len(specs))}
	for _, spec := range specs {
		kind := component.AnimationEventKind(strings.ToLower(spec.Event))
		switch kind {
		case component.AnimationEventHit, component.AnimationEventFire, component.AnimationEventComboStep:
		default:
			return nil, fmt.Errorf("clip %q: unknown animation event %q", spec.Clip, spec.Event)
		}
		if spec.Clip == "" {
			return nil, fmt.Errorf("animation cue without clip")
		}
		cues.ByClip[spec.Clip] = append(cues.ByClip[spec.Clip], component.AnimationCue{
			Clip:  spec.Clip,
			At:    spec.At,
			Event: kind,
		})
	}
	return cues, nil
}

func zeroStep[T any](name string, h component.ComponentHandle[T]) buildStep {
	return buildStep{name, func(w *ecs.World, e ecs.Entity, _ *buildContext) error {
		var zero T
		return ecs.Add(w, e, h.Kind(), &zero)
	}}
}

func valueStep[T any](name string, h component.ComponentHandle[T], build func() *T) buildStep {
	return buildStep{name, func(w *ecs.World, e ecs.Entity, _ *buildContext) error {
		return ecs.Add(w, e, h.Kind(), build())
	}}
}
