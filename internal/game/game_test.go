package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/config"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/core/event"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/presenter"
)

const tick = 50 * time.Millisecond

func newGame(t *testing.T, cfg *config.Config) (*Game, *presenter.Recorder) {
	t.Helper()
	if cfg == nil {
		cfg = config.Defaults()
	}
	rec := &presenter.Recorder{}
	g, err := New(cfg, zaptest.NewLogger(t), WithPresenter(rec), WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g, rec
}

func run(g *Game, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		g.Tick(tick)
	}
}

func TestNewSpawnsPlayers(t *testing.T) {
	g, rec := newGame(t, nil)

	assert.Equal(t, 3, g.State().PlayerCount())
	for id := 0; id < 3; id++ {
		_, p, ok := g.State().PlayerByID(data.PlayerID(id))
		require.True(t, ok)
		assert.Equal(t, id, p.CurrentLane)
	}
	assert.Equal(t, []string{presenter.CueProtectObelisk}, rec.Cues())
	assert.Equal(t, 1000, g.State().Score.ObeliskHealth)
	assert.Equal(t, 12, g.Waves().Len())
}

func TestFirstWaveSpawns(t *testing.T) {
	g, rec := newGame(t, nil)

	run(g, 900*time.Millisecond)
	assert.Zero(t, g.State().Enemies.Len())

	run(g, 200*time.Millisecond)
	assert.Equal(t, 3, g.State().Enemies.Len())
	assert.Equal(t, 1, g.State().Wave.Index)

	g.Tick(tick)
	assert.Contains(t, rec.Cues(), presenter.CueWaveSpawned)
	txt, ok := rec.LastText(presenter.KeyWave)
	require.True(t, ok)
	assert.Equal(t, "Wave 1 / 12", txt)
}

func TestPurchaseThroughQueue(t *testing.T) {
	g, rec := newGame(t, nil)
	g.Tick(tick)
	g.State().Score.XP = 60

	require.True(t, g.RequestPurchase(0, 0))
	g.Tick(tick)

	e, p, ok := g.State().PlayerByID(0)
	require.True(t, ok)
	assert.Contains(t, p.Abilities, data.AbilityID(0))
	assert.Equal(t, 10, g.State().Score.XP)
	h, _ := g.State().Healths.Get(e)
	assert.Equal(t, 150.0, h.Max.Value())

	g.Tick(tick)
	txt, ok := rec.LastText(presenter.AbilitiesKey(0))
	require.True(t, ok)
	assert.Equal(t, "Level 2", txt)
}

func TestQueueOverflowDrops(t *testing.T) {
	cfg := config.Defaults()
	cfg.Simulation.InputQueueSize = 1
	g, _ := newGame(t, cfg)

	assert.True(t, g.RequestLaneChange(0, 1))
	assert.False(t, g.RequestLaneChange(0, 1))
}

func TestObeliskFallEndsRun(t *testing.T) {
	g, rec := newGame(t, nil)
	g.State().Score.ObeliskHealth = 0

	g.Tick(tick)

	assert.True(t, g.Over())
	assert.True(t, g.State().Clock.Paused())
	assert.Contains(t, rec.Cues(), presenter.CueObeliskFallen)

	var ended []event.GameOver
	event.Subscribe(g.Bus(), func(ev event.GameOver) { ended = append(ended, ev) })
	g.Tick(tick)
	require.Len(t, ended, 1)
	assert.False(t, ended[0].Victory)
}

func TestResumeDayHoldsNextWave(t *testing.T) {
	g, _ := newGame(t, nil)
	g.SetSpeed(0)
	g.State().Clock.Elapsed = 40
	g.State().Wave.NextWaveTime = 41

	g.ResumeDay()

	assert.Equal(t, 1.0, g.State().Clock.Speed)
	assert.Equal(t, 43.0, g.State().Wave.NextWaveTime)

	g.State().Wave.NextWaveTime = 60
	g.ResumeDay()
	assert.Equal(t, 60.0, g.State().Wave.NextWaveTime)
}

func TestResetStartsFreshRun(t *testing.T) {
	g, rec := newGame(t, nil)
	run(g, 2*time.Second)
	require.NotZero(t, g.State().Enemies.Len())
	old, _, _ := g.State().PlayerByID(0)
	g.State().Score.XP = 70
	g.State().Score.ObeliskHealth = 10
	g.State().Incaps.Set(old, &component.Incapacitated{})
	rec.Reset()

	g.Reset()

	s := g.State()
	assert.Zero(t, s.Enemies.Len())
	assert.Equal(t, 3, s.PlayerCount())
	assert.Zero(t, s.Score.XP)
	assert.Equal(t, 1000, s.Score.ObeliskHealth)
	assert.Zero(t, s.Wave.Index)
	assert.InDelta(t, s.Clock.Elapsed+1, s.Wave.NextWaveTime, 1e-9)
	assert.False(t, s.ECS.Alive(old))
	assert.Zero(t, s.Incaps.Len())
	assert.Len(t, rec.Of(presenter.CallDespawn), 6)
	assert.Equal(t, []string{presenter.CueProtectObelisk}, rec.Cues())

	fresh, _, ok := s.PlayerByID(0)
	require.True(t, ok)
	assert.NotEqual(t, ecs.Nil, fresh)
}

func TestSeededRunsReplay(t *testing.T) {
	play := func() (int, int, []float64) {
		cfg := config.Defaults()
		cfg.Simulation.Seed = 42
		g, err := New(cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		defer g.Close()
		run(g, 30*time.Second)
		var ys []float64
		g.State().Enemies.Each(func(e ecs.EntityID, _ *component.Enemy) {
			pos, _ := g.State().Positions.Get(e)
			ys = append(ys, pos.X, pos.Y)
		})
		return g.State().Score.XP, g.State().Score.ObeliskHealth, ys
	}

	xp1, ob1, pos1 := play()
	xp2, ob2, pos2 := play()
	assert.Equal(t, xp1, xp2)
	assert.Equal(t, ob1, ob2)
	assert.Equal(t, pos1, pos2)
}

func TestZeroedPlayerKnockedOutNextTick(t *testing.T) {
	g, _ := newGame(t, nil)
	g.Tick(tick)
	e, _, ok := g.State().PlayerByID(0)
	require.True(t, ok)
	h, _ := g.State().Healths.Get(e)
	h.Target = 0

	g.Tick(tick)

	assert.True(t, g.State().Incapacitated(e))
	run(g, 500*time.Millisecond)
	assert.LessOrEqual(t, h.Target, 0.0)
	assert.True(t, g.State().Incapacitated(e))
}

func TestCastLandsTickAfterAcceptance(t *testing.T) {
	g, _ := newGame(t, nil)
	g.State().Score.XP = 200
	require.True(t, g.RequestPurchase(0, 2000))
	g.Tick(tick)
	e, _, ok := g.State().PlayerByID(0)
	require.True(t, ok)
	h, _ := g.State().Healths.Get(e)
	require.GreaterOrEqual(t, h.Max.Value(), 90.0)
	h.Target = 40

	require.True(t, g.RequestCast(0, 1))
	g.Tick(tick)
	assert.InDelta(t, 40.0, h.Target, 0.5)

	g.Tick(tick)
	assert.InDelta(t, 90.0, h.Target, 0.5)
}
