package component

// BlockStamina gates the player's block. Starting a block needs MinToStart;
// an active block continues until stamina reaches zero.
type BlockStamina struct {
	Current    float64
	Max        float64
	DrainRate  float64
	RegenRate  float64
	MinToStart float64
	Blocking   bool
}

// Update applies one step of drain or regeneration for the wanted block
// state and returns whether the player is blocking after the step.
func (s *BlockStamina) Update(wantsBlock bool, dt float64) bool {
	if s == nil {
		return false
	}
	canStart := s.Current >= s.MinToStart
	canContinue := s.Current > 0
	s.Blocking = wantsBlock && ((!s.Blocking && canStart) || (s.Blocking && canContinue))

	if s.Blocking {
		s.Current -= s.DrainRate * dt
		if s.Current <= 0 {
			s.Current = 0
			s.Blocking = false
		}
		return s.Blocking
	}

	s.Current += s.RegenRate * dt
	if s.Current > s.Max {
		s.Current = s.Max
	}
	return false
}

// Break forces the block off without touching stamina.
func (s *BlockStamina) Break() {
	if s == nil {
		return
	}
	s.Blocking = false
}

var BlockStaminaComponent = NewComponent[BlockStamina]()
