package component

// Animator records the parameters and triggers sent to the animation
// collaborator. The core only writes it; playback lives outside.
type Animator struct {
	Bools  map[string]bool
	Ints   map[string]int
	Floats map[string]float64

	// Counts tracks how many times each trigger fired.
	Counts      map[string]int
	LastTrigger string
	pending     []string
}

func NewAnimator() *Animator {
	return &Animator{
		Bools:  map[string]bool{},
		Ints:   map[string]int{},
		Floats: map[string]float64{},
		Counts: map[string]int{},
	}
}

func (a *Animator) SetTrigger(name string) {
	if a == nil || name == "" {
		return
	}
	if a.Counts == nil {
		a.Counts = map[string]int{}
	}
	a.Counts[name]++
	a.LastTrigger = name
	a.pending = append(a.pending, name)
}

func (a *Animator) SetBool(name string, v bool) {
	if a == nil || name == "" {
		return
	}
	if a.Bools == nil {
		a.Bools = map[string]bool{}
	}
	a.Bools[name] = v
}

func (a *Animator) SetInteger(name string, v int) {
	if a == nil || name == "" {
		return
	}
	if a.Ints == nil {
		a.Ints = map[string]int{}
	}
	a.Ints[name] = v
}

func (a *Animator) SetFloat(name string, v float64) {
	if a == nil || name == "" {
		return
	}
	if a.Floats == nil {
		a.Floats = map[string]float64{}
	}
	a.Floats[name] = v
}

func (a *Animator) Count(trigger string) int {
	if a == nil {
		return 0
	}
	return a.Counts[trigger]
}

// DrainTriggers returns the triggers fired since the last drain.
func (a *Animator) DrainTriggers() []string {
	if a == nil || len(a.pending) == 0 {
		return nil
	}
	out := a.pending
	a.pending = nil
	return out
}

var AnimatorComponent = NewComponent[Animator]()

type AnimationEventKind string

const (
	// AnimationEventHit marks the frame where a melee swing connects.
	AnimationEventHit AnimationEventKind = "hit"
	// AnimationEventFire marks the frame where a projectile leaves.
	AnimationEventFire AnimationEventKind = "fire"
	// AnimationEventComboStep marks the end of a combo attack's clip.
	AnimationEventComboStep AnimationEventKind = "combo_step"
)

// AnimationEvent is a callback from an animation timeline.
type AnimationEvent struct {
	Kind AnimationEventKind
	Clip string
}

// AnimationEvents queues callbacks until the owning system consumes them.
type AnimationEvents struct {
	Queue []AnimationEvent
}

func (q *AnimationEvents) Push(evt AnimationEvent) {
	q.Queue = append(q.Queue, evt)
}

// Take removes and returns the queued events of kind.
func (q *AnimationEvents) Take(kind AnimationEventKind) []AnimationEvent {
	if q == nil || len(q.Queue) == 0 {
		return nil
	}
	var out []AnimationEvent
	kept := q.Queue[:0]
	for _, evt := range q.Queue {
		if evt.Kind == kind {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.Queue = kept
	return out
}

var AnimationEventsComponent = NewComponent[AnimationEvents]()

// AnimationCue fires Event At seconds after Clip's trigger.
type AnimationCue struct {
	Clip  string
	At    float64
	Event AnimationEventKind
}

type PendingCue struct {
	Cue       AnimationCue
	Remaining float64
}

// AnimationCues drives animation callbacks for entities without an external
// animation timeline.
type AnimationCues struct {
	ByClip  map[string][]AnimationCue
	Pending []PendingCue
}

var AnimationCuesComponent = NewComponent[AnimationCues]()
