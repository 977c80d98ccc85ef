package component

// Timer is a countdown in seconds. A zero Timer is elapsed.
type Timer struct {
	Remaining float64
}

// Start begins a countdown of d seconds, keeping the longer of the current
// and requested remaining time.
func (t *Timer) Start(d float64) {
	if d > t.Remaining {
		t.Remaining = d
	}
}

// Reset sets the remaining time to exactly d.
func (t *Timer) Reset(d float64) {
	if d < 0 {
		d = 0
	}
	t.Remaining = d
}

func (t *Timer) Cancel() {
	t.Remaining = 0
}

// Tick advances the timer by dt and reports whether it expired during this
// call.
func (t *Timer) Tick(dt float64) bool {
	if t.Remaining <= 0 {
		return false
	}
	t.Remaining -= dt
	if t.Remaining <= 0 {
		t.Remaining = 0
		return true
	}
	return false
}

func (t Timer) Active() bool {
	return t.Remaining > 0
}

func (t Timer) Elapsed() bool {
	return t.Remaining <= 0
}
