package system

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/core/event"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/world"
)

// wavesPerDay is the number of waves between two day boundaries.
const wavesPerDay = 4

// Jitter is the random source used for spawn offsets. *rand.Rand from
// math/rand/v2 satisfies it.
type Jitter interface {
	Float64() float64
}

// WaveSystem spawns the next wave of enemies when it is due.
// Phase 2 (Update).
type WaveSystem struct {
	state           *world.State
	waves           *data.WaveTable
	bus             *event.Bus
	rng             Jitter
	pauseOnEndOfDay bool
	log             *zap.Logger
}

func NewWaveSystem(state *world.State, waves *data.WaveTable, bus *event.Bus, rng Jitter, pauseOnEndOfDay bool, log *zap.Logger) *WaveSystem {
	return &WaveSystem{
		state:           state,
		waves:           waves,
		bus:             bus,
		rng:             rng,
		pauseOnEndOfDay: pauseOnEndOfDay,
		log:             log,
	}
}

func (s *WaveSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *WaveSystem) Update(_ time.Duration) {
	clock := &s.state.Clock
	cw := &s.state.Wave
	if clock.Paused() || s.state.Score.GameOver || clock.Elapsed < cw.NextWaveTime {
		return
	}

	if cw.Index >= s.waves.Len() {
		cw.NextWaveTime = math.Inf(1)
		s.log.Info("all waves cleared", zap.Int("waves", cw.Index))
		event.Emit(s.bus, event.Victory{WaveIdx: cw.Index})
		return
	}

	endOfDay := cw.Index > 0 && cw.Index%wavesPerDay == 0
	if endOfDay {
		s.log.Info("end of day", zap.Int("wave", cw.Index))
		event.Emit(s.bus, event.EndOfDay{WaveIdx: cw.Index})
	}

	wave := s.waves.At(cw.Index)
	spawned := 0
	for _, kind := range data.EnemyKinds {
		for lane, count := range wave.Counts(kind) {
			for i := 0; i < count; i++ {
				s.state.SpawnEnemy(kind, lane, s.jitter(), s.jitter())
				spawned++
			}
		}
	}

	idx := cw.Index
	cw.NextWaveTime = clock.Elapsed + wave.PostWaveDelay
	cw.Index++

	s.log.Info("wave spawned",
		zap.Int("wave", idx),
		zap.Int("enemies", spawned),
		zap.Float64("at", clock.Elapsed),
		zap.Float64("next_wave_time", cw.NextWaveTime),
	)
	event.Emit(s.bus, event.WaveSpawned{WaveIdx: idx})

	if endOfDay && s.pauseOnEndOfDay {
		clock.SetSpeed(0)
	}
}

// jitter returns an offset in [-SpawnJitter, SpawnJitter).
func (s *WaveSystem) jitter() float64 {
	j := s.state.Lanes.SpawnJitter()
	if j <= 0 {
		return 0
	}
	return (s.rng.Float64()*2 - 1) * j
}
