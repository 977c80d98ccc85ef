package component

// Stun suspends an enemy's AI for Duration after every landed hit.
type Stun struct {
	Duration float64
	Timer    Timer
}

func (s *Stun) Active() bool {
	return s != nil && s.Timer.Active()
}

var StunComponent = NewComponent[Stun]()
