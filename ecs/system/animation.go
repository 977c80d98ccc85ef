package system

import (
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// AnimationSystem turns animator triggers into timed animation callbacks.
// Cues configured on the prefab fire At seconds after their clip's trigger,
// standing in for keyframe events when no renderer drives the timeline.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(e ecs.Entity, anim *component.Animator) {
		triggers := anim.DrainTriggers()
		cues, ok := ecs.Get(w, e, component.AnimationCuesComponent.Kind())
		if !ok {
			return
		}
		if isDead(w, e) {
			cues.Pending = nil
			return
		}

		kept := cues.Pending[:0]
		var due []component.AnimationCue
		for _, p := range cues.Pending {
			p.Remaining -= dt
			if p.Remaining <= 0 {
				due = append(due, p.Cue)
				continue
			}
			kept = append(kept, p)
		}
		cues.Pending = kept

		for _, trig := range triggers {
			for _, cue := range cues.ByClip[trig] {
				cues.Pending = append(cues.Pending, component.PendingCue{Cue: cue, Remaining: cue.At})
			}
		}

		for _, cue := range due {
			DispatchAnimationEvent(w, e, component.AnimationEvent{Kind: cue.Event, Clip: cue.Clip})
		}
	})
}
