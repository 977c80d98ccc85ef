package component

// Projectile flies in a straight line and damages the first entity of a
// target category it touches.
type Projectile struct {
	Damage   int
	Speed    float64
	DirX     float64
	DirY     float64
	Radius   float64
	Targets  Category
	Owner    uint64
	Lifetime Timer
}

var ProjectileComponent = NewComponent[Projectile]()
