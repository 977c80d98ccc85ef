package component

// PhysicsBody is the collider configuration registered with the physics
// collaborator. Position comes from Transform.
type PhysicsBody struct {
	Width   float64
	Height  float64
	Gravity bool
}

// Bottom returns the y of the body's feet for a center at y.
func (b *PhysicsBody) Bottom(y float64) float64 {
	if b == nil {
		return y
	}
	return y - b.Height/2
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
