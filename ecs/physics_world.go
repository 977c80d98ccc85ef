package ecs

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bladebound/common"
	"github.com/milk9111/bladebound/ecs/component"
)

const (
	footBoxBottom = 0.08
	// cp lets resting shapes sink up to this far into each other.
	collisionSlop = 0.1
	// minimum upward contact normal that counts as standing on something
	groundNormalY = 0.5
)

type physicsBody struct {
	body    *cp.Body
	shape   *cp.Shape
	def     BodyDef
	enabled bool
}

// PhysicsWorld implements Physics on top of a Chipmunk space.
type PhysicsWorld struct {
	space *cp.Space

	bodies        map[Entity]*physicsBody
	shapeToEntity map[*cp.Shape]Entity
}

// NewPhysicsWorld creates a space with the given vertical gravity.
func NewPhysicsWorld(gravity float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetCollisionSlop(collisionSlop)
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	return &PhysicsWorld{
		space:         space,
		bodies:        make(map[Entity]*physicsBody),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddGround adds a static ground segment.
func (pw *PhysicsWorld) AddGround(a, b common.Vec2, radius float64) {
	if pw == nil {
		return
	}
	shape := cp.NewSegment(pw.space.StaticBody, toVector(a), toVector(b), radius)
	shape.SetFriction(0.8)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(component.CategoryGround), cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
}

func (pw *PhysicsWorld) AddBody(e Entity, def BodyDef) {
	if pw == nil || def.Width <= 0 || def.Height <= 0 {
		return
	}
	pw.RemoveBody(e)

	var body *cp.Body
	if def.Gravity {
		body = cp.NewBody(1, math.Inf(1))
	} else {
		body = cp.NewKinematicBody()
	}
	body.SetPosition(toVector(def.Position))

	shape := cp.NewBox(body, def.Width, def.Height, 0)
	// controllers write velocities directly, so contacts must not add drag
	shape.SetFriction(0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(def.Category), uint(component.CategoryGround)))

	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	pw.bodies[e] = &physicsBody{body: body, shape: shape, def: def, enabled: true}
	pw.shapeToEntity[shape] = e
}

func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok {
		return
	}
	if pb.enabled {
		pw.space.RemoveShape(pb.shape)
		pw.space.RemoveBody(pb.body)
	}
	delete(pw.shapeToEntity, pb.shape)
	delete(pw.bodies, e)
}

func (pw *PhysicsWorld) SetEnabled(e Entity, enabled bool) {
	pb := pw.lookup(e)
	if pb == nil || pb.enabled == enabled {
		return
	}
	if enabled {
		pw.space.AddBody(pb.body)
		pw.space.AddShape(pb.shape)
	} else {
		pb.body.SetVelocityVector(cp.Vector{})
		pw.space.RemoveShape(pb.shape)
		pw.space.RemoveBody(pb.body)
	}
	pb.enabled = enabled
}

func (pw *PhysicsWorld) Position(e Entity) (common.Vec2, bool) {
	pb := pw.lookup(e)
	if pb == nil {
		return common.Vec2{}, false
	}
	return fromVector(pb.body.Position()), true
}

func (pw *PhysicsWorld) SetPosition(e Entity, p common.Vec2) {
	pb := pw.lookup(e)
	if pb == nil {
		return
	}
	pb.body.SetPosition(toVector(p))
}

func (pw *PhysicsWorld) Velocity(e Entity) common.Vec2 {
	pb := pw.lookup(e)
	if pb == nil {
		return common.Vec2{}
	}
	return fromVector(pb.body.Velocity())
}

func (pw *PhysicsWorld) SetVelocity(e Entity, v common.Vec2) {
	pb := pw.lookup(e)
	if pb == nil || !pb.enabled {
		return
	}
	pb.body.SetVelocityVector(toVector(v))
}

// Grounded reports ground beneath the body's feet. Dynamic bodies use their
// contact normals from the last step; kinematic bodies never collide with
// static ground, so they fall back to a box query under the feet.
func (pw *PhysicsWorld) Grounded(e Entity) bool {
	pb := pw.lookup(e)
	if pb == nil || !pb.enabled {
		return false
	}

	grounded := false
	pb.body.EachArbiter(func(arb *cp.Arbiter) {
		if grounded || arb.Count() == 0 {
			return
		}
		_, other := arb.Shapes()
		if other == nil || other.Filter.Categories&uint(component.CategoryGround) == 0 {
			return
		}
		// the normal points from this body toward the other shape
		if arb.Normal().Y <= -groundNormalY {
			grounded = true
		}
	})
	if grounded {
		return true
	}

	pos := pb.body.Position()
	halfW := pb.def.Width * 0.45
	bottom := pos.Y - pb.def.Height/2
	bb := cp.BB{L: pos.X - halfW, B: bottom - footBoxBottom, R: pos.X + halfW, T: bottom + collisionSlop}

	pw.space.BBQuery(bb, queryFilter(component.CategoryGround), func(shape *cp.Shape, data interface{}) {
		grounded = true
	}, nil)
	return grounded
}

// OverlapCircle returns the entities whose shapes lie within radius of center
// and match mask, ordered by entity.
func (pw *PhysicsWorld) OverlapCircle(center common.Vec2, radius float64, mask component.Category) []Entity {
	if pw == nil || radius < 0 {
		return nil
	}
	c := toVector(center)
	seen := make(map[Entity]struct{})
	var out []Entity
	pw.space.BBQuery(cp.NewBBForCircle(c, radius), queryFilter(mask), func(shape *cp.Shape, data interface{}) {
		e, ok := pw.shapeToEntity[shape]
		if !ok {
			return
		}
		if _, dup := seen[e]; dup {
			return
		}
		if shape.PointQuery(c).Distance > radius {
			return
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (pw *PhysicsWorld) RaycastDown(origin common.Vec2, length float64, mask component.Category) bool {
	if pw == nil || length <= 0 {
		return false
	}
	end := origin.Sub(common.V(0, length))
	info := pw.space.SegmentQueryFirst(toVector(origin), toVector(end), 0, queryFilter(mask))
	return info.Shape != nil
}

func (pw *PhysicsWorld) SweepCircle(from, to common.Vec2, radius float64, mask component.Category) bool {
	if pw == nil || radius < 0 {
		return false
	}
	filter := queryFilter(mask)
	if from != to {
		if info := pw.space.SegmentQueryFirst(toVector(from), toVector(to), radius, filter); info.Shape != nil {
			return true
		}
	}
	return pw.touches(from, radius, filter) || pw.touches(to, radius, filter)
}

// touches reports any shape passing filter within radius of center.
func (pw *PhysicsWorld) touches(center common.Vec2, radius float64, filter cp.ShapeFilter) bool {
	c := toVector(center)
	hit := false
	pw.space.BBQuery(cp.NewBBForCircle(c, radius), filter, func(shape *cp.Shape, data interface{}) {
		if !hit && shape.PointQuery(c).Distance <= radius {
			hit = true
		}
	}, nil)
	return hit
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) lookup(e Entity) *physicsBody {
	if pw == nil {
		return nil
	}
	return pw.bodies[e]
}

func queryFilter(mask component.Category) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

func toVector(v common.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVector(v cp.Vector) common.Vec2 {
	return common.Vec2{X: v.X, Y: v.Y}
}
