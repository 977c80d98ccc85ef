package system

import (
	"fmt"
	"path"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/prefabs"
)

// RewardScripts evaluates tengo scripts that adjust death rewards. Scripts
// read base_points, base_coins, roll, x and y and may assign points and
// coins.
type RewardScripts struct {
	mu    sync.Mutex
	cache map[string]*tengo.Compiled
}

func NewRewardScripts() *RewardScripts {
	return &RewardScripts{cache: map[string]*tengo.Compiled{}}
}

// Reward is the outcome of a reward script.
type Reward struct {
	Points int
	Coins  int
}

func (r *RewardScripts) Evaluate(name string, base Reward, roll float64, at common.Vec2) (Reward, error) {
	compiled, err := r.compiled(name)
	if err != nil {
		return base, err
	}

	// compiled programs share globals; run a private copy
	run := compiled.Clone()
	for k, v := range map[string]any{
		"base_points": base.Points,
		"base_coins":  base.Coins,
		"roll":        roll,
		"x":           at.X,
		"y":           at.Y,
	} {
		if err := run.Set(k, v); err != nil {
			return base, fmt.Errorf("reward script %s: set %s: %w", name, k, err)
		}
	}
	if err := run.Run(); err != nil {
		return base, fmt.Errorf("reward script %s: %w", name, err)
	}

	out := base
	if run.IsDefined("points") {
		out.Points = run.Get("points").Int()
	}
	if run.IsDefined("coins") {
		out.Coins = run.Get("coins").Int()
	}
	if out.Points < 0 {
		out.Points = 0
	}
	if out.Coins < 0 {
		out.Coins = 0
	}
	return out, nil
}

// Invalidate drops the cached program for name so the next evaluation
// reloads it.
func (r *RewardScripts) Invalidate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, path.Base(name))
}

func (r *RewardScripts) compiled(name string) (*tengo.Compiled, error) {
	key := path.Base(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cache[key]; ok {
		return c, nil
	}

	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("reward script %s: %w", name, err)
	}
	script := tengo.NewScript(src)
	for _, k := range []string{"base_points", "base_coins"} {
		_ = script.Add(k, 0)
	}
	for _, k := range []string{"roll", "x", "y"} {
		_ = script.Add(k, 0.0)
	}
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("reward script %s: compile: %w", name, err)
	}
	r.cache[key] = compiled
	return compiled, nil
}
