package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/ability"
	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/presenter"
	"github.com/obelisk/lanedefense/internal/world"
)

// CleanupSystem retires applied abilities, tells the presenter to drop the
// visuals of destroyed actors and flushes the deferred destruction queue.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	state *world.State
	view  presenter.Presenter
	log   *zap.Logger
}

func NewCleanupSystem(state *world.State, view presenter.Presenter, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{state: state, view: view, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.state.Spawned.Each(func(e ecs.EntityID, sa *component.SpawnedAbility) {
		if !sa.Applied {
			return
		}
		if sa.Request.State() == ability.StateApplied {
			if err := sa.Request.Despawn(context.Background()); err != nil {
				s.log.Error("despawn ability request", zap.Error(err))
			}
		}
		s.state.Despawn(e)
	})

	s.state.ECS.EachPending(func(e ecs.EntityID) {
		if s.state.Positions.Has(e) {
			s.view.Despawn(e)
		}
	})
	if n := s.state.ECS.FlushDestroyQueue(); n > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", n))
	}
}
