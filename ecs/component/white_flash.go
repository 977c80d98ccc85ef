package component

import (
	"image/color"

	"golang.org/x/image/colornames"
)

var (
	HurtFlashColor  = colornames.Red
	PhaseFlashColor = colornames.White
)

// WhiteFlash tints the entity while Remaining is positive. Renderers read
// Color; the white flash system counts it down.
type WhiteFlash struct {
	Remaining float64
	Color     color.RGBA
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()

// Hurt configures the feedback played when a hit lands.
type Hurt struct {
	FlashDuration float64
	FlashColor    color.RGBA
	// AnimTrigger fires once per landed hit ("Hit").
	AnimTrigger string
	// AnimBool is raised on a landed hit and lowered after BoolDuration ("isHurt").
	AnimBool     string
	BoolDuration float64
	boolTimer    Timer
}

// StartBool raises the hurt flag timer.
func (h *Hurt) StartBool() {
	h.boolTimer.Reset(h.BoolDuration)
}

// TickBool advances the hurt flag and reports when it should be lowered.
func (h *Hurt) TickBool(dt float64) bool {
	return h.boolTimer.Tick(dt)
}

var HurtComponent = NewComponent[Hurt]()
