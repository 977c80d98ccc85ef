package component

// DamageKnockback is a transient request consumed by the knockback system.
// Recoil requests add an impulse along the direction instead of overwriting
// the horizontal velocity.
type DamageKnockback struct {
	SourceX float64
	SourceY float64
	Force   float64
	Recoil  bool
}

var DamageKnockbackRequestComponent = NewComponent[DamageKnockback]()
