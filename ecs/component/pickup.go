package component

// Coin awards Value to the economy when the player touches it.
type Coin struct {
	Value int
}

var CoinComponent = NewComponent[Coin]()

// JumpBoost launches the player upward when struck.
type JumpBoost struct {
	Force float64
}

var JumpBoostComponent = NewComponent[JumpBoost]()

// Breakable is destroyed by a player attack and drops coins.
type Breakable struct {
	CoinDrop int
}

var BreakableComponent = NewComponent[Breakable]()

// Trap kills the player on contact.
type Trap struct {
	Radius float64
}

var TrapComponent = NewComponent[Trap]()

// DeathReward is granted to the economy when the entity dies. Script, when
// set, names a tengo script that may override both values.
type DeathReward struct {
	Points int
	Coins  int
	Script string
}

var DeathRewardComponent = NewComponent[DeathReward]()
