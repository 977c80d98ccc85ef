package ecs

import "github.com/milk9111/bladebound/ecs/component"

// storage maps component kinds to their sparse sets.
type storage struct {
	sets map[component.ComponentID]*SparseSet
}

func (s *storage) set(id component.ComponentID, create bool) *SparseSet {
	if set, ok := s.sets[id]; ok {
		return set
	}
	if !create {
		return nil
	}
	if s.sets == nil {
		s.sets = make(map[component.ComponentID]*SparseSet)
	}
	set := &SparseSet{}
	s.sets[id] = set
	return set
}

func (s *storage) removeAll(e Entity) {
	for _, set := range s.sets {
		set.Remove(e)
	}
}
