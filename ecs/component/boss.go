package component

// Boss is the tuning for the three-phase boss.
type Boss struct {
	MoveSpeed             float64
	DetectionRadius       float64
	IdealShootingDistance float64
	KiteBackDistance      float64

	MeleeDamage   int
	MeleeRange    float64
	MeleeOffset   float64
	MeleeCooldown float64
	ShootCooldown float64
	ComboDelays   []float64

	Phase2Threshold float64
	Phase3Threshold float64
	PhaseFlash      float64

	Projectile       string
	ProjectileOffset float64
}

// PhaseFor maps a health ratio onto phases 1..3.
func (b *Boss) PhaseFor(ratio float64) int {
	switch {
	case ratio <= b.Phase3Threshold:
		return 3
	case ratio <= b.Phase2Threshold:
		return 2
	default:
		return 1
	}
}

var BossComponent = NewComponent[Boss]()

type BossBehavior int

const (
	BossIdle BossBehavior = iota
	BossKiting
	BossApproaching
	BossMeleeAttacking
	BossShooting
	BossComboAttacking
	BossDead
)

func (b BossBehavior) String() string {
	switch b {
	case BossKiting:
		return "kiting"
	case BossApproaching:
		return "approaching"
	case BossMeleeAttacking:
		return "melee"
	case BossShooting:
		return "shooting"
	case BossComboAttacking:
		return "combo"
	case BossDead:
		return "dead"
	default:
		return "idle"
	}
}

// BossCombo is the phase 3 sequence Attack1 -> wait -> Attack2 -> wait ->
// Attack3 -> wait. Step counts the hits already started.
type BossCombo struct {
	Active bool
	Step   int
	Wait   Timer
	// Aborted is set when the sequence ended early.
	Aborted bool
}

// BossRuntime stores runtime-only state for phase progression and attacks.
type BossRuntime struct {
	Phase    int
	Behavior BossBehavior
	Engaged  bool

	// Seconds accumulated since the last melee or shot.
	MeleeTimer float64
	ShootTimer float64

	Combo BossCombo
}

var BossRuntimeComponent = NewComponent[BossRuntime]()
