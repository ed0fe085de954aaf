// Package game assembles the simulation: state, systems, scripted formulas
// and the presenter boundary, driven one tick at a time.
package game

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/combat"
	"github.com/obelisk/lanedefense/internal/config"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/core/event"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/input"
	"github.com/obelisk/lanedefense/internal/presenter"
	"github.com/obelisk/lanedefense/internal/scripting"
	"github.com/obelisk/lanedefense/internal/system"
	"github.com/obelisk/lanedefense/internal/world"
)

type options struct {
	view    presenter.Presenter
	rng     *rand.Rand
	catalog *data.AbilityCatalog
	waves   *data.WaveTable
}

type Option func(*options)

// WithPresenter routes presentation calls to p. The default discards them.
func WithPresenter(p presenter.Presenter) Option {
	return func(o *options) { o.view = p }
}

// WithRand replaces the random source built from the configured seed.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithCatalog replaces the configured ability catalog.
func WithCatalog(c *data.AbilityCatalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithWaves replaces the configured wave table.
func WithWaves(w *data.WaveTable) Option {
	return func(o *options) { o.waves = w }
}

// Game owns one simulation. Tick, SetSpeed, ResumeDay and Reset must be
// called from the same goroutine; the Request methods may be called from
// any goroutine.
type Game struct {
	cfg     *config.Config
	state   *world.State
	bus     *event.Bus
	runner  *coresys.Runner
	queue   *input.Queue
	catalog *data.AbilityCatalog
	waves   *data.WaveTable
	scripts *scripting.Engine
	view    presenter.Presenter
	log     *zap.Logger
}

// New builds a game from cfg and spawns the players.
func New(cfg *config.Config, log *zap.Logger, opts ...Option) (*Game, error) {
	o := options{view: presenter.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	if o.catalog == nil {
		if o.catalog, err = loadCatalog(cfg.Data.Abilities); err != nil {
			return nil, err
		}
	}
	if o.waves == nil {
		if o.waves, err = loadWaves(cfg.Data.Waves, cfg.Lanes.Count); err != nil {
			return nil, err
		}
	}
	if o.rng == nil {
		o.rng = NewRand(cfg.Simulation.Seed)
	}
	hud, err := presenter.NewHUD(cfg.HUD.Language)
	if err != nil {
		return nil, err
	}
	scripts, err := scripting.NewEngine(cfg.Scripting.Dir, log.Named("lua"))
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}

	g := &Game{
		cfg:     cfg,
		state:   world.NewState(cfg),
		bus:     event.NewBus(),
		runner:  coresys.NewRunner(),
		queue:   input.NewQueue(cfg.Simulation.InputQueueSize),
		catalog: o.catalog,
		waves:   o.waves,
		scripts: scripts,
		view:    o.view,
		log:     log,
	}

	resolver := combat.NewResolver(o.rng, scripts, log.Named("combat"))
	gate := system.AnnounceGate{Cooldown: cfg.Obelisk.AnnounceCooldown, Inverted: cfg.Obelisk.AnnounceInverted}

	r := g.runner
	r.Register(system.NewEventDispatchSystem(g.bus))
	r.Register(system.NewInputSystem(g.state, g.queue, g.catalog, g.bus, cfg.Simulation.MaxInputsPerTick, cfg.Abilities.EnforceManaCost, log.Named("input")))
	r.Register(system.NewStatRefreshSystem(g.state))
	r.Register(system.NewWaveSystem(g.state, g.waves, g.bus, o.rng, cfg.Simulation.PauseOnEndOfDay, log.Named("wave")))
	r.Register(system.NewMovementSystem(g.state))
	r.Register(system.NewAbilityApplySystem(g.state, resolver, g.bus, g.view, log.Named("ability")))
	r.Register(system.NewPlayerAttackSystem(g.state, resolver, log.Named("combat")))
	r.Register(system.NewEnemyTargetSystem(g.state))
	r.Register(system.NewEnemyAttackSystem(g.state, resolver, scripts, gate, g.bus, g.view, log.Named("combat")))
	// knockouts are decided before regeneration can lift a zeroed target
	r.Register(system.NewIncapacitationSystem(g.state, cfg.Vitals.ReviveFraction, g.bus, g.view, log.Named("vitals")))
	r.Register(system.NewRegenSystem(g.state, cfg.Vitals.HealthLerpRate, cfg.Vitals.IncapacitationThreshold))
	r.Register(system.NewDeathSystem(g.state, g.bus, log.Named("death")))
	r.Register(system.NewGameOverSystem(g.state, g.bus, g.view, log.Named("game")))
	r.Register(system.NewHUDSystem(g.state, g.catalog, hud, g.view, g.waves.Len()))
	r.Register(system.NewCleanupSystem(g.state, g.view, log.Named("cleanup")))

	system.SubscribePresentation(g.bus, g.state, g.catalog, g.view, log.Named("presenter"))

	g.spawnPlayers()
	g.view.PlayCue(presenter.CueProtectObelisk)
	return g, nil
}

// NewRand builds a PCG source from seed. Seed 0 uses the wall clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x5DEECE66D))
}

func loadCatalog(path string) (*data.AbilityCatalog, error) {
	if path == "" {
		c, err := data.DefaultAbilityCatalog()
		if err != nil {
			return nil, fmt.Errorf("builtin abilities: %w", err)
		}
		return c, nil
	}
	return data.LoadAbilityCatalog(path)
}

func loadWaves(path string, lanes int) (*data.WaveTable, error) {
	if path == "" {
		w, err := data.DefaultWaveTable(lanes)
		if err != nil {
			return nil, fmt.Errorf("builtin waves: %w", err)
		}
		return w, nil
	}
	return data.LoadWaveTable(path, lanes)
}

func (g *Game) spawnPlayers() {
	for lane := 0; lane < g.state.Lanes.Count(); lane++ {
		g.state.SpawnPlayer(data.PlayerID(lane), lane)
	}
}

// Tick advances game time by dt of wall time (scaled by the game speed) and
// runs every system once.
func (g *Game) Tick(dt time.Duration) {
	g.state.Clock.Advance(dt)
	g.runner.Tick(dt)
}

// RequestPurchase queues an ability purchase. It returns false when the
// input queue is full and the request was dropped.
func (g *Game) RequestPurchase(player data.PlayerID, id data.AbilityID) bool {
	return g.push(input.Purchase{Player: player, Ability: id})
}

// RequestCast queues a cast of the ability bound to slot.
func (g *Game) RequestCast(player data.PlayerID, slot int) bool {
	return g.push(input.Cast{Player: player, Slot: slot})
}

// RequestLaneChange queues a move of delta lanes.
func (g *Game) RequestLaneChange(player data.PlayerID, delta int) bool {
	return g.push(input.LaneChange{Player: player, Delta: delta})
}

func (g *Game) push(c input.Command) bool {
	if g.queue.Push(c) {
		return true
	}
	g.log.Warn("input queue full, command dropped", zap.String("command", fmt.Sprintf("%T", c)))
	return false
}

// SetSpeed changes the game speed. Speeds below 0.01 pause.
func (g *Game) SetSpeed(speed float64) {
	g.state.Clock.SetSpeed(speed)
	g.log.Info("game speed", zap.Float64("speed", g.state.Clock.Speed))
}

// ResumeDay closes the end-of-day pause: the default speed is restored and
// the next wave is held back for at least the resume delay.
func (g *Game) ResumeDay() {
	if g.state.Score.GameOver {
		return
	}
	g.state.Clock.SetSpeed(g.cfg.Simulation.DefaultGameSpeed)
	cw := &g.state.Wave
	if !math.IsInf(cw.NextWaveTime, 1) {
		cw.NextWaveTime = math.Max(cw.NextWaveTime, g.state.Clock.Elapsed+g.cfg.Simulation.ResumeDelay)
	}
	g.log.Info("day resumed", zap.Int("wave", cw.Index), zap.Float64("next_wave_time", cw.NextWaveTime))
}

// Reset starts a fresh run: xp 0, obelisk at full health, wave 0, every
// actor removed and the players respawned.
func (g *Game) Reset() {
	g.state.Reset()
	g.state.ECS.EachPending(func(e ecs.EntityID) {
		if g.state.Positions.Has(e) {
			g.view.Despawn(e)
		}
	})
	g.state.ECS.FlushDestroyQueue()
	g.bus.Reset()
	g.queue.Drain(0, func(input.Command) {})

	g.state.Clock.SetSpeed(g.cfg.Simulation.DefaultGameSpeed)
	g.spawnPlayers()
	g.view.PlayCue(presenter.CueProtectObelisk)
	g.log.Info("game reset")
}

func (g *Game) State() *world.State           { return g.state }
func (g *Game) Bus() *event.Bus               { return g.bus }
func (g *Game) Catalog() *data.AbilityCatalog { return g.catalog }
func (g *Game) Waves() *data.WaveTable        { return g.waves }

// Over reports whether the current run has ended.
func (g *Game) Over() bool { return g.state.Score.GameOver }

// Close releases the Lua VM.
func (g *Game) Close() {
	g.scripts.Close()
}
