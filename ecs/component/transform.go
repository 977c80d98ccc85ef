package component

import "github.com/milk9111/bladebound/common"

// Transform is the entity's center position, synced from physics each tick.
type Transform struct {
	X          float64
	Y          float64
	FacingLeft bool
}

func (t *Transform) Pos() common.Vec2 {
	if t == nil {
		return common.Vec2{}
	}
	return common.Vec2{X: t.X, Y: t.Y}
}

func (t *Transform) SetPos(p common.Vec2) {
	t.X = p.X
	t.Y = p.Y
}

// Facing returns -1 when facing left and 1 otherwise.
func (t *Transform) Facing() float64 {
	if t != nil && t.FacingLeft {
		return -1
	}
	return 1
}

var TransformComponent = NewComponent[Transform]()

// Spawn records where an entity was created.
type Spawn struct {
	X float64
	Y float64
}

func (s *Spawn) Pos() common.Vec2 {
	return common.Vec2{X: s.X, Y: s.Y}
}

var SpawnComponent = NewComponent[Spawn]()
