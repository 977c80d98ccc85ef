package component

// Modal is a world singleton raised while a dialogue or other modal overlay
// is open. It freezes player locomotion without touching the state machines.
type Modal struct {
	Open bool
}

var ModalComponent = NewComponent[Modal]()
