package component

// PlayerState defines the interface for player locomotion states.
// Each state owns its own enter/exit, input handling, and update logic.
type PlayerState interface {
	Name() string
	Enter(ctx *PlayerStateContext)
	Exit(ctx *PlayerStateContext)
	HandleInput(ctx *PlayerStateContext)
	Update(ctx *PlayerStateContext)
}

// PlayerStateContext provides controlled access to input and physics for a state.
// It uses callbacks to avoid coupling states to the ECS package.
type PlayerStateContext struct {
	Input           *Input
	Player          *Player
	GetVelocity     func() (x, y float64)
	SetVelocity     func(x, y float64)
	IsGrounded      func() bool
	ChangeState     func(state PlayerState)
	ChangeAnimation func(animation string)
	FacingLeft      func(facingLeft bool)
}

// PlayerStateMachine stores the active and pending states for the player.
type PlayerStateMachine struct {
	State   PlayerState
	Pending PlayerState
}

var PlayerStateMachineComponent = NewComponent[PlayerStateMachine]()
