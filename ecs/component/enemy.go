package component

// EnemyTurnMode selects how a patrolling enemy reverses direction.
type EnemyTurnMode string

const (
	EnemyTurnInstant EnemyTurnMode = "instant"
	EnemyTurnPause   EnemyTurnMode = "pause"
)

// EnemyAI is the tuning for the patrol/chase/attack cycle.
type EnemyAI struct {
	PatrolDistance  float64
	PatrolSpeed     float64
	WaitTime        float64
	DetectionRange  float64
	ChaseHysteresis float64
	AttackRange     float64
	AttackSpeed     float64
	AttackCooldown  float64
	AttackDamage    int
	// AttackRecovery is the pause after an attack resolves.
	AttackRecovery float64
	// AttackResolveTime resolves the swing when no hit callback arrives.
	AttackResolveTime float64
	GroundProbeOffset float64
	GroundProbeLength float64
	TurnMode          EnemyTurnMode
}

var EnemyAIComponent = NewComponent[EnemyAI]()

type EnemyState int

const (
	EnemyPatrolling EnemyState = iota
	EnemyChasing
	EnemyAttacking
	EnemyWaiting
)

func (s EnemyState) String() string {
	switch s {
	case EnemyChasing:
		return "chasing"
	case EnemyAttacking:
		return "attacking"
	case EnemyWaiting:
		return "waiting"
	default:
		return "patrolling"
	}
}

// EnemyAIState is the runtime half of EnemyAI.
type EnemyAIState struct {
	State       EnemyState
	SpawnX      float64
	MovingRight bool

	Cooldown Timer
	Wait     Timer
	Resolve  Timer
	Resolved bool
	// TurnAfterWait makes Waiting flip and return to Patrolling instead of
	// Chasing.
	TurnAfterWait bool
}

var EnemyAIStateComponent = NewComponent[EnemyAIState]()
