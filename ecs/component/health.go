package component

// DamageOutcome reports what a single damage application did.
type DamageOutcome int

const (
	// DamageIgnored means the target was dead or could not be damaged.
	DamageIgnored DamageOutcome = iota
	// DamageAbsorbed means an invincibility window swallowed the hit.
	DamageAbsorbed
	// DamageBlocked means a blocking player intercepted the hit.
	DamageBlocked
	DamageDamaged
	DamageKilled
)

func (o DamageOutcome) String() string {
	switch o {
	case DamageAbsorbed:
		return "absorbed"
	case DamageBlocked:
		return "blocked"
	case DamageDamaged:
		return "damaged"
	case DamageKilled:
		return "killed"
	default:
		return "ignored"
	}
}

// Landed reports whether health was reduced.
func (o DamageOutcome) Landed() bool {
	return o == DamageDamaged || o == DamageKilled
}

// Health is the damageable resource shared by the player, enemies and the
// boss. Current stays within [0, Max] and Dead is terminal until Respawn.
type Health struct {
	Current int
	Max     int
	Dead    bool

	// InvincibilityDuration is the window started after a survived hit.
	InvincibilityDuration float64
	Invincibility         Timer
}

func NewHealth(max int, invincibility float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Current: max, Max: max, InvincibilityDuration: invincibility}
}

func (h *Health) Invincible() bool {
	return h != nil && h.Invincibility.Active()
}

// TakeDamage subtracts amount unless the entity is dead or invincible.
func (h *Health) TakeDamage(amount int) DamageOutcome {
	if h == nil || h.Dead || amount <= 0 {
		return DamageIgnored
	}
	if h.Invincible() {
		return DamageAbsorbed
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
		h.Invincibility.Cancel()
		return DamageKilled
	}
	h.Invincibility.Start(h.InvincibilityDuration)
	return DamageDamaged
}

// Kill drops health to zero regardless of invincibility. It reports whether
// this call caused the death.
func (h *Health) Kill() bool {
	if h == nil || h.Dead {
		return false
	}
	h.Current = 0
	h.Dead = true
	h.Invincibility.Cancel()
	return true
}

// Heal restores health up to Max. Dead entities cannot be healed.
func (h *Health) Heal(amount int) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// SetInvincible opens an invincibility window of at least d seconds.
func (h *Health) SetInvincible(d float64) {
	if h == nil || h.Dead {
		return
	}
	h.Invincibility.Start(d)
}

func (h *Health) CancelInvincibility() {
	if h == nil {
		return
	}
	h.Invincibility.Cancel()
}

// Tick advances the invincibility window.
func (h *Health) Tick(dt float64) {
	if h == nil {
		return
	}
	h.Invincibility.Tick(dt)
}

// Respawn restores full health and clears the dead flag.
func (h *Health) Respawn() {
	if h == nil {
		return
	}
	h.Current = h.Max
	h.Dead = false
	h.Invincibility.Cancel()
}

// Ratio returns Current/Max.
func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

var HealthComponent = NewComponent[Health]()
