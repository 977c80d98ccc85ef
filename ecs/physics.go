package ecs

import (
	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs/component"
)

// BodyDef describes the collision body registered for an entity. Position is
// the body's center.
type BodyDef struct {
	Position common.Vec2
	Width    float64
	Height   float64
	Category component.Category
	Gravity  bool
}

// Physics is the collision and movement collaborator queried by systems.
// The core never resolves collisions itself.
type Physics interface {
	AddBody(e Entity, def BodyDef)
	RemoveBody(e Entity)
	Position(e Entity) (common.Vec2, bool)
	SetPosition(e Entity, p common.Vec2)
	Velocity(e Entity) common.Vec2
	SetVelocity(e Entity, v common.Vec2)
	Grounded(e Entity) bool
	// SetEnabled removes a body from (or returns it to) collision and queries.
	SetEnabled(e Entity, enabled bool)
	OverlapCircle(center common.Vec2, radius float64, mask component.Category) []Entity
	RaycastDown(origin common.Vec2, length float64, mask component.Category) bool
	// SweepCircle reports whether a circle moving from one point to another
	// touches a shape in mask anywhere along the way.
	SweepCircle(from, to common.Vec2, radius float64, mask component.Category) bool
	Step(dt float64)
}
