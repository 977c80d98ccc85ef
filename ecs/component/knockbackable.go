package component

// Knockbackable marks entities that are pushed away from the source of a
// landed hit. The horizontal velocity becomes dir.X*Force and 0.5*Force is
// added to the vertical velocity.
type Knockbackable struct {
	Force float64
}

var KnockbackableComponent = NewComponent[Knockbackable]()
