package component

// ValueBar receives health or stamina updates.
type ValueBar interface {
	SetValue(current, max float64)
	SetVisible(visible bool)
}

// PhaseDisplay receives boss phase notifications.
type PhaseDisplay interface {
	SetPhase(phase int)
	SetVisible(visible bool)
}

// HealthBar links an entity's Health to a UI bar.
type HealthBar struct {
	Bar     ValueBar
	Visible bool
	// last pushed values, to avoid redundant updates
	lastCurrent, lastMax int
	pushed               bool
}

// Changed reports whether cur/max differ from the last pushed pair and
// records them.
func (h *HealthBar) Changed(cur, max int) bool {
	if h.pushed && h.lastCurrent == cur && h.lastMax == max {
		return false
	}
	h.lastCurrent, h.lastMax, h.pushed = cur, max, true
	return true
}

var HealthBarComponent = NewComponent[HealthBar]()

// StaminaBar links BlockStamina to a UI bar.
type StaminaBar struct {
	Bar ValueBar
}

var StaminaBarComponent = NewComponent[StaminaBar]()

// PhaseText links a boss to its phase display.
type PhaseText struct {
	Display PhaseDisplay
}

var PhaseTextComponent = NewComponent[PhaseText]()
