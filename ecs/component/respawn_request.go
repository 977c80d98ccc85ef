package component

// RespawnRequest schedules a dead player's return to its spawn point.
type RespawnRequest struct {
	Timer Timer
}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
