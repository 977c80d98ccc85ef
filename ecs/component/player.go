package component

type Player struct {
	MoveSpeed    float64
	JumpForce    float64
	RollSpeed    float64
	RollDuration float64
	GroundBuffer float64

	AttackDamage   int
	AttackOffset   float64
	AttackRadius   float64
	AttackTriggers []string
}

var PlayerComponent = NewComponent[Player]()

type CombatIntent int

const (
	IntentNone CombatIntent = iota
	IntentBlocking
	IntentAttacking
	IntentRolling
)

func (c CombatIntent) String() string {
	switch c {
	case IntentBlocking:
		return "blocking"
	case IntentAttacking:
		return "attacking"
	case IntentRolling:
		return "rolling"
	default:
		return "none"
	}
}

// PlayerCombat is the combat half of the player's composite state.
type PlayerCombat struct {
	Intent CombatIntent
	// AttackStage is the combo stage the next attack press plays.
	AttackStage int
	Roll        Timer
	RollDir     float64
}

var PlayerCombatComponent = NewComponent[PlayerCombat]()

// GroundState debounces ground contact: losing contact only counts once
// Buffer elapses without touching ground again.
type GroundState struct {
	Grounded bool
	Checking bool
	Buffer   Timer
}

var GroundStateComponent = NewComponent[GroundState]()
