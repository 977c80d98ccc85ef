package ecs

import "github.com/milk9111/bladebound/ecs/component"

// World owns entities, their components, the per-tick event queue and the
// physics collaborator.
type World struct {
	entities entityStore
	storage  storage
	events   EventQueue

	physics Physics
	dt      float64
	tick    uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{}
}

// Events returns the world event queue. Events published during a tick stay
// readable until the next tick begins.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysics attaches the physics collaborator.
func (w *World) SetPhysics(p Physics) {
	if w == nil {
		return
	}
	w.physics = p
}

// Physics returns the attached physics collaborator, if any.
func (w *World) Physics() Physics {
	if w == nil {
		return nil
	}
	return w.physics
}

// SetDelta sets the fixed step used by every system.
func (w *World) SetDelta(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.dt = dt
}

// Delta returns the fixed step in seconds.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

func (w *World) beginTick() {
	w.events.flush()
	w.tick++
}

// Query returns the entities that have every listed component kind.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set := w.storage.set(k.ID(), false)
		if set == nil {
			return nil
		}
		sets = append(sets, set)
	}
	return intersect(sets)
}

// Kind is satisfied by every component.ComponentKind.
type Kind interface {
	ID() component.ComponentID
}
