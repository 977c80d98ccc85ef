package entity

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
	"github.com/milk9111/bladebound/prefabs"
)

const (
	coinPrefab = "coin.yaml"

	// dropped coins scatter horizontally and start slightly above the source
	coinScatterX = 0.5
	coinLiftY    = 0.3
)

// Spawner creates runtime entities (coin drops and projectiles) for the
// combat, boss and death systems. Prefab specs are cached until
// invalidated.
type Spawner struct {
	rng         *rand.Rand
	coin        *prefabs.PropSpec
	projectiles map[string]prefabs.ProjectileSpec
}

func NewSpawner(rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Spawner{rng: rng, projectiles: map[string]prefabs.ProjectileSpec{}}
}

func (s *Spawner) SpawnCoins(w *ecs.World, at common.Vec2, count int) error {
	if count <= 0 {
		return nil
	}
	spec, err := s.coinSpec()
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		jitter := (s.rng.Float64()*2 - 1) * coinScatterX
		pos := common.V(at.X+jitter, at.Y+coinLiftY)
		if _, err := BuildProp(w, spec, coinPrefab, pos); err != nil {
			return fmt.Errorf("spawn coins: %w", err)
		}
	}
	return nil
}

func (s *Spawner) SpawnProjectile(w *ecs.World, prefab string, owner ecs.Entity, at, dir common.Vec2, targets component.Category) error {
	name := PrefabName(prefab)
	spec, ok := s.projectiles[name]
	if !ok {
		loaded, err := prefabs.LoadProjectileSpec(name)
		if err != nil {
			return fmt.Errorf("spawn projectile: %w", err)
		}
		spec = loaded
		s.projectiles[name] = spec
	}
	if _, err := BuildProjectile(w, spec, name, owner, at, dir, targets); err != nil {
		return fmt.Errorf("spawn projectile: %w", err)
	}
	return nil
}

// Invalidate drops the cached spec for prefab so the next spawn reloads it.
func (s *Spawner) Invalidate(prefab string) {
	name := PrefabName(prefab)
	if name == coinPrefab {
		s.coin = nil
	}
	delete(s.projectiles, name)
}

func (s *Spawner) coinSpec() (prefabs.PropSpec, error) {
	if s.coin != nil {
		return *s.coin, nil
	}
	spec, err := prefabs.LoadPropSpec(coinPrefab)
	if err != nil {
		return prefabs.PropSpec{}, fmt.Errorf("spawn coins: %w", err)
	}
	s.coin = &spec
	return spec, nil
}
