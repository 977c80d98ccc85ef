package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// Economy receives the point and penalty changes produced by gameplay.
type Economy interface {
	AwardPoints(amount int)
	ApplyDeathPenalty(at common.Vec2)
}

// pickupRadius is how close the player's center must come to a coin.
const pickupRadius = 0.6

// PickupCollectSystem awards and removes coins the living player touches.
type PickupCollectSystem struct {
	log     *zap.Logger
	economy Economy
}

func NewPickupCollectSystem(log *zap.Logger, economy Economy) *PickupCollectSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &PickupCollectSystem{log: log, economy: economy}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	phys := w.Physics()
	player, pos, ok := livePlayer(w)
	if phys == nil || !ok {
		return
	}

	for _, e := range phys.OverlapCircle(pos, pickupRadius, component.CategoryCoin) {
		coin, ok := ecs.Get(w, e, component.CoinComponent.Kind())
		if !ok {
			continue
		}
		value := coin.Value
		if !ecs.DestroyEntity(w, e) {
			continue
		}
		if s.economy != nil {
			s.economy.AwardPoints(value)
		}
		w.Events().Push(ecs.Event{Type: EventCoinPickup, Data: CoinEvent{Player: player, Value: value}})
		s.log.Debug("coin collected", zap.Int("value", value))
	}
}
