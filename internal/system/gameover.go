package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/core/event"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/presenter"
	"github.com/obelisk/lanedefense/internal/world"
)

// GameOverSystem ends the run when the obelisk falls or the last wave is
// cleared. The run ends once; Reset starts a new one. Phase 3 (PostUpdate).
type GameOverSystem struct {
	state *world.State
	bus   *event.Bus
	view  presenter.Presenter
	log   *zap.Logger
}

func NewGameOverSystem(state *world.State, bus *event.Bus, view presenter.Presenter, log *zap.Logger) *GameOverSystem {
	s := &GameOverSystem{state: state, bus: bus, view: view, log: log}
	event.Subscribe(bus, func(ev event.Victory) {
		s.end(true)
	})
	return s
}

func (s *GameOverSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *GameOverSystem) Update(_ time.Duration) {
	if s.state.Score.ObeliskHealth <= 0 {
		s.end(false)
	}
}

func (s *GameOverSystem) end(victory bool) {
	if s.state.Score.GameOver {
		return
	}
	s.state.Score.GameOver = true
	s.state.Clock.SetSpeed(0)
	if victory {
		s.view.PlayCue(presenter.CueVictory)
	} else {
		s.view.PlayCue(presenter.CueObeliskFallen)
	}
	s.log.Info("game over",
		zap.Bool("victory", victory),
		zap.Int("wave", s.state.Wave.Index),
		zap.Int("xp", s.state.Score.XP),
		zap.Float64("elapsed", s.state.Clock.Elapsed),
	)
	event.Emit(s.bus, event.GameOver{Victory: victory})
}
