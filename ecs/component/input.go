package component

// Input stores the abstract per-frame intent for an entity.
type Input struct {
	MoveX         float64
	JumpPressed   bool
	AttackPressed bool
	BlockHeld     bool
	RollPressed   bool
}

var InputComponent = NewComponent[Input]()
