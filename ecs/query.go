package ecs

// intersect returns the entities present in every set, in the dense order of
// the smallest one.
func intersect(sets []*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	candidates := smallest.Entities()
	out := make([]Entity, 0, len(candidates))
outer:
	for _, e := range candidates {
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}
