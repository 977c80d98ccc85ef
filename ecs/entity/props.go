package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/prefabs"
)

type propStepFn func(spec prefabs.PropSpec) buildStep

var propRegistry = map[component.Category]propStepFn{
	component.CategoryCoin: func(spec prefabs.PropSpec) buildStep {
		return valueStep("coin", component.CoinComponent, func() *component.Coin {
			value := spec.Value
			if value <= 0 {
				value = 1
			}
			return &component.Coin{Value: value}
		})
	},
	component.CategoryBreakable: func(spec prefabs.PropSpec) buildStep {
		return valueStep("breakable", component.BreakableComponent, func() *component.Breakable {
			return &component.Breakable{CoinDrop: spec.CoinDrop}
		})
	},
	component.CategoryJumpBoost: func(spec prefabs.PropSpec) buildStep {
		return valueStep("jump_boost", component.JumpBoostComponent, func() *component.JumpBoost {
			return &component.JumpBoost{Force: spec.Force}
		})
	},
	component.CategoryTrap: func(spec prefabs.PropSpec) buildStep {
		return valueStep("trap", component.TrapComponent, func() *component.Trap {
			radius := spec.Radius
			if radius <= 0 {
				radius = math.Max(spec.Body.Width, spec.Body.Height) / 2
			}
			return &component.Trap{Radius: radius}
		})
	},
}

// NewProp builds a coin, breakable, jump boost or trap from its prefab.
func NewProp(w *ecs.World, prefab string, at common.Vec2) (ecs.Entity, error) {
	spec, err := prefabs.LoadPropSpec(PrefabName(prefab))
	if err != nil {
		return 0, fmt.Errorf("prop: %w", err)
	}
	return BuildProp(w, spec, prefab, at)
}

func BuildProp(w *ecs.World, spec prefabs.PropSpec, prefab string, at common.Vec2) (ecs.Entity, error) {
	category, ok := component.ParseCategory(spec.Category)
	if !ok {
		return 0, fmt.Errorf("prop: %q: unknown category %q", prefab, spec.Category)
	}
	stepFn, ok := propRegistry[category]
	if !ok {
		return 0, fmt.Errorf("prop: %q: category %s is not a prop", prefab, category)
	}

	body := spec.Body
	body.Gravity = false
	ctx := &buildContext{PrefabPath: prefab, At: at, Category: category, Body: body}
	return buildEntity(w, ctx, baseSteps(stepFn(spec)))
}
