package ecs

import (
	"testing"

	"github.com/milk9111/bladebound/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
		wantAlive    int
	}{
		{"single", 1, 0, 0},
		{"three_destroy_middle", 3, 1, 2},
		{"none_destroyed", 2, -1, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if c.destroyIndex >= 0 {
				require.True(t, DestroyEntity(w, ents[c.destroyIndex]))
				assert.False(t, IsAlive(w, ents[c.destroyIndex]))
				assert.False(t, DestroyEntity(w, ents[c.destroyIndex]), "second destroy is a no-op")
			}
			assert.Len(t, Entities(w), c.wantAlive)
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	old := CreateEntity(w)
	require.NoError(t, Add(w, old, kind, intPtr(1)))
	require.True(t, DestroyEntity(w, old))

	fresh := CreateEntity(w)
	assert.Equal(t, old.id(), fresh.id())
	assert.NotEqual(t, old, fresh)

	_, ok := Get(w, fresh, kind)
	assert.False(t, ok, "components of the destroyed entity must not leak into the recycled slot")
	assert.ErrorIs(t, Add(w, old, kind, intPtr(2)), component.ErrEntityNotAlive)
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int",
			setup: func() error { return Add(w, e1, ints.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints.Kind())
				require.True(t, ok)
				assert.Equal(t, 10, *v)
			},
			teardown: func() bool { return Remove(w, e1, ints.Kind()) },
		},
		{
			name: "add_string_to_both",
			setup: func() error {
				if err := Add(w, e1, strs.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, strs.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				assert.True(t, Has(w, e1, strs.Kind()))
				assert.True(t, Has(w, e2, strs.Kind()))
				assert.Len(t, w.Query(strs.Kind()), 2)
			},
			teardown: func() bool { return Remove(w, e1, strs.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.setup())
			tc.check(t)
			assert.True(t, tc.teardown())
		})
	}

	assert.ErrorIs(t, Add[int](w, e1, ints.Kind(), nil), component.ErrNilComponent)
}

func TestForEachSkipsEntitiesDestroyedDuringIteration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	a := CreateEntity(w)
	b := CreateEntity(w)
	require.NoError(t, Add(w, a, kind, intPtr(1)))
	require.NoError(t, Add(w, b, kind, intPtr(2)))

	var visited []Entity
	ForEach(w, kind, func(e Entity, _ *int) {
		visited = append(visited, e)
		if e == a {
			DestroyEntity(w, b)
		}
		if e == b {
			DestroyEntity(w, a)
		}
	})
	assert.Len(t, visited, 1)
}

func TestForEach3Intersection(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	require.NoError(t, Add(w, e1, ka, intPtr(1)))
	require.NoError(t, Add(w, e2, ka, intPtr(2)))
	require.NoError(t, Add(w, e2, kb, intPtr(3)))
	require.NoError(t, Add(w, e2, kc, intPtr(4)))
	require.NoError(t, Add(w, e3, kb, intPtr(5)))

	var res []Entity
	ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
	assert.Equal(t, []Entity{e2}, res)

	require.True(t, DestroyEntity(w, e2))
	res = nil
	ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
	assert.Empty(t, res)

	missing := component.NewComponentKind[int]()
	assert.Nil(t, w.Query(ka, missing))
}

type countingSystem struct {
	ticks  int
	events int
}

func (s *countingSystem) Update(w *World) {
	s.ticks++
	s.events += w.Events().Len()
	w.Events().Push(Event{Type: "tick"})
}

func TestSchedulerClearsEventsBetweenTicks(t *testing.T) {
	w := NewWorld()
	sys := &countingSystem{}
	sched := NewScheduler(sys, nil)

	sched.Update(w)
	sched.Update(w)

	assert.Equal(t, 2, sys.ticks)
	assert.Equal(t, 0, sys.events, "events from the previous tick are cleared before systems run")
	assert.Equal(t, uint64(2), w.Tick())
	assert.Equal(t, 1, w.Events().Len())

	var seen int
	w.Events().Each("tick", func(Event) { seen++ })
	assert.Equal(t, 1, seen)
}
