package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/core/event"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/presenter"
	"github.com/obelisk/lanedefense/internal/world"
)

// IncapacitationSystem knocks out players whose target health reached zero
// and brings back revived ones at a fraction of their max health.
// Phase 3 (PostUpdate).
type IncapacitationSystem struct {
	state          *world.State
	reviveFraction float64
	bus            *event.Bus
	view           presenter.Presenter
	log            *zap.Logger
}

func NewIncapacitationSystem(state *world.State, reviveFraction float64, bus *event.Bus, view presenter.Presenter, log *zap.Logger) *IncapacitationSystem {
	return &IncapacitationSystem{state: state, reviveFraction: reviveFraction, bus: bus, view: view, log: log}
}

func (s *IncapacitationSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *IncapacitationSystem) Update(_ time.Duration) {
	now := s.state.Clock.Elapsed

	ecs.Each2(s.state.Players, s.state.Healths, func(e ecs.EntityID, p *component.Player, h *component.Health) {
		inc, down := s.state.Incaps.Get(e)
		if !down {
			if h.Target > 0 {
				return
			}
			s.state.Incaps.Set(e, &component.Incapacitated{})
			s.setAnimation(e, component.AnimIncapacitated)
			s.log.Info("player incapacitated", zap.Uint8("player", uint8(p.ID)))
			event.Emit(s.bus, event.PlayerIncapacitated{EntityID: e, PlayerID: p.ID})
			return
		}

		if inc.EndTime > 0 && now >= inc.EndTime {
			inc.Revived = true
		}
		if !inc.Revived {
			return
		}
		h.Target = s.reviveFraction * h.Max.Value()
		h.Current = h.Target
		s.state.Incaps.Remove(e)
		s.setAnimation(e, component.AnimDefault)
		s.log.Info("player revived", zap.Uint8("player", uint8(p.ID)), zap.Float64("health", h.Current))
		event.Emit(s.bus, event.PlayerRevived{EntityID: e, PlayerID: p.ID, Health: h.Current})
	})
}

func (s *IncapacitationSystem) setAnimation(e ecs.EntityID, state int) {
	if a, ok := s.state.Animations.Get(e); ok {
		a.State = state
	}
	s.view.SetAnimation(e, state)
}

// DeathSystem removes enemies whose displayed health ran out and credits
// their xp to the shared score. Phase 3 (PostUpdate).
type DeathSystem struct {
	state *world.State
	bus   *event.Bus
	log   *zap.Logger
}

func NewDeathSystem(state *world.State, bus *event.Bus, log *zap.Logger) *DeathSystem {
	return &DeathSystem{state: state, bus: bus, log: log}
}

func (s *DeathSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DeathSystem) Update(_ time.Duration) {
	ecs.Each2(s.state.Enemies, s.state.Healths, func(e ecs.EntityID, en *component.Enemy, h *component.Health) {
		if h.Current > 0 || s.state.ECS.PendingDestruction(e) {
			return
		}
		s.state.Score.XP += en.XPReward
		s.state.Despawn(e)
		s.log.Debug("enemy killed",
			zap.Stringer("enemy", e),
			zap.Stringer("kind", en.Kind),
			zap.Int("lane", en.Lane),
			zap.Int("xp", s.state.Score.XP),
		)
		event.Emit(s.bus, event.EnemyKilled{EntityID: e, Lane: en.Lane, XP: en.XPReward})
	})
}
