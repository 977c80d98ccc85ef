package system

import (
	"github.com/milk9111/bladebound/ecs"
	"github.com/milk9111/bladebound/ecs/component"
)

// HealthBarSystem pushes health and stamina values to their UI bars. Bars
// are only updated when the value changed.
type HealthBarSystem struct{}

func NewHealthBarSystem() *HealthBarSystem {
	return &HealthBarSystem{}
}

func (s *HealthBarSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.HealthComponent.Kind(), component.HealthBarComponent.Kind(), func(_ ecs.Entity, h *component.Health, hb *component.HealthBar) {
		if hb.Bar == nil || !hb.Changed(h.Current, h.Max) {
			return
		}
		hb.Bar.SetValue(float64(h.Current), float64(h.Max))
	})

	ecs.ForEach2(w, component.BlockStaminaComponent.Kind(), component.StaminaBarComponent.Kind(), func(_ ecs.Entity, st *component.BlockStamina, sb *component.StaminaBar) {
		if sb.Bar == nil {
			return
		}
		sb.Bar.SetValue(st.Current, st.Max)
	})
}
