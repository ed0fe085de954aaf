package system

import (
	"math"
	"time"

	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/world"
)

// RegenSystem moves displayed health towards target health at a bounded
// rate, then applies passive health and mana regeneration. Runs after all
// combat and after the incapacitation check of the tick, so a zeroed target
// is never regenerated. Phase 3 (PostUpdate).
type RegenSystem struct {
	state     *world.State
	lerpRate  float64 // health per game second
	threshold float64 // below this current health no regeneration happens
}

func NewRegenSystem(state *world.State, lerpRate, threshold float64) *RegenSystem {
	return &RegenSystem{state: state, lerpRate: lerpRate, threshold: threshold}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *RegenSystem) Update(_ time.Duration) {
	dt := s.state.Clock.Delta
	if dt <= 0 {
		return
	}

	s.state.Healths.Each(func(e ecs.EntityID, h *component.Health) {
		s.tickHealth(e, h, dt)
	})
	s.state.Manas.Each(func(_ ecs.EntityID, m *component.Mana) {
		m.Current = clamp(m.Current+m.Regeneration*dt, 0, m.Max.Value())
	})
}

func (s *RegenSystem) tickHealth(e ecs.EntityID, h *component.Health, dt float64) {
	top := h.Max.Value()
	if h.Current != h.Target {
		d := h.Target - h.Current
		h.Current += math.Copysign(math.Min(math.Abs(d), s.lerpRate*dt), d)
	}
	if h.Current < s.threshold || h.Target <= 0 || s.state.Incapacitated(e) {
		h.Current = clamp(h.Current, 0, top)
		return
	}
	h.Target = clamp(h.Target+h.Regeneration.Value()*dt, 0, top)
	h.Current = clamp(h.Current, 0, top)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(v, hi))
}
