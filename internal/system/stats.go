package system

import (
	"time"

	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/world"
)

// derivedStatMultiplier converts one attribute point into the derived stat.
const derivedStatMultiplier = 10

// StatRefreshSystem sweeps expired buffs from every statistic and
// re-derives movement speed, max health and max mana from dirty attributes.
// Runs before anything reads a statistic value. Phase 1 (PreUpdate).
type StatRefreshSystem struct {
	state *world.State
}

func NewStatRefreshSystem(state *world.State) *StatRefreshSystem {
	return &StatRefreshSystem{state: state}
}

func (s *StatRefreshSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *StatRefreshSystem) Update(_ time.Duration) {
	now := s.state.Clock.Elapsed

	s.state.Healths.Each(func(_ ecs.EntityID, h *component.Health) {
		h.Max.Update(now)
		h.Regeneration.Update(now)
	})
	s.state.Manas.Each(func(_ ecs.EntityID, m *component.Mana) {
		m.Max.Update(now)
	})
	s.state.Movements.Each(func(_ ecs.EntityID, m *component.Movement) {
		m.Speed.Update(now)
	})
	s.state.Attacks.Each(func(_ ecs.EntityID, a *component.BaseAttack) {
		a.Speed.Update(now)
	})
	s.state.Defences.Each(func(_ ecs.EntityID, d *component.Defence) {
		d.Armour.Update(now)
	})

	s.state.Stats.Each(func(e ecs.EntityID, st *component.Stats) {
		changed := st.Strength.Update(now)
		changed = st.Agility.Update(now) || changed
		changed = st.Intelligence.Update(now) || changed
		if !changed && !st.Dirty {
			return
		}
		if m, ok := s.state.Movements.Get(e); ok {
			m.Speed.SetBase(st.Agility.Base() * derivedStatMultiplier)
		}
		if h, ok := s.state.Healths.Get(e); ok {
			h.Max.SetBase(st.Strength.Base() * derivedStatMultiplier)
			top := h.Max.Value()
			h.Current = min(h.Current, top)
			h.Target = min(h.Target, top)
		}
		if m, ok := s.state.Manas.Get(e); ok {
			m.Max.SetBase(st.Intelligence.Base() * derivedStatMultiplier)
			m.Current = min(m.Current, m.Max.Value())
		}
		st.Dirty = false
	})
}
