package system

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/obelisk/lanedefense/internal/ability"
	"github.com/obelisk/lanedefense/internal/combat"
	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/config"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/core/event"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/input"
	"github.com/obelisk/lanedefense/internal/presenter"
	"github.com/obelisk/lanedefense/internal/world"
)

// harness wires a state with three players and the builtin tables. Systems
// are built per test and driven by calling Update directly.
type harness struct {
	t        *testing.T
	cfg      *config.Config
	state    *world.State
	bus      *event.Bus
	queue    *input.Queue
	catalog  *data.AbilityCatalog
	view     *presenter.Recorder
	resolver *combat.Resolver
	log      *zap.Logger
	players  []ecs.EntityID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Defaults()
	cfg.Lanes.SpawnJitter = 0
	catalog, err := data.DefaultAbilityCatalog()
	require.NoError(t, err)
	log := zaptest.NewLogger(t)

	h := &harness{
		t:        t,
		cfg:      cfg,
		state:    world.NewState(cfg),
		bus:      event.NewBus(),
		queue:    input.NewQueue(cfg.Simulation.InputQueueSize),
		catalog:  catalog,
		view:     &presenter.Recorder{},
		resolver: combat.NewResolver(rand.New(rand.NewPCG(7, 11)), nil, log),
		log:      log,
	}
	h.state.Clock.SetSpeed(1)
	for id := 0; id < cfg.Lanes.Count; id++ {
		h.players = append(h.players, h.state.SpawnPlayer(data.PlayerID(id), id))
	}
	return h
}

func (h *harness) inputSystem() *InputSystem {
	return NewInputSystem(h.state, h.queue, h.catalog, h.bus, 0, true, h.log)
}

func (h *harness) applySystem() *AbilityApplySystem {
	return NewAbilityApplySystem(h.state, h.resolver, h.bus, h.view, h.log)
}

func (h *harness) health(e ecs.EntityID) *component.Health {
	h.t.Helper()
	hp, ok := h.state.Healths.Get(e)
	require.True(h.t, ok)
	return hp
}

func (h *harness) mana(e ecs.EntityID) *component.Mana {
	h.t.Helper()
	m, ok := h.state.Manas.Get(e)
	require.True(h.t, ok)
	return m
}

// enemyAt spawns an enemy in lane and places it at y.
func (h *harness) enemyAt(kind data.EnemyKind, lane int, y float64) ecs.EntityID {
	e := h.state.SpawnEnemy(kind, lane, 0, 0)
	pos, _ := h.state.Positions.Get(e)
	pos.Y = y
	return e
}

// spawnCast queues a validated cast of ability id in lane for the apply step.
func (h *harness) spawnCast(id data.AbilityID, lane int) *component.SpawnedAbility {
	h.t.Helper()
	r := ability.NewCast(0, 1, h.log)
	r.Ability = id
	require.NoError(h.t, r.Validate(context.Background()))
	sa := &component.SpawnedAbility{
		Request: r,
		Lane:    lane,
		Effects: h.catalog.MustGet(id).Effects,
	}
	h.state.SpawnAbility(sa)
	return sa
}

func (h *harness) rejections() []event.Reason {
	var out []event.Reason
	for _, ev := range event.Pending[event.RequestRejected](h.bus) {
		out = append(out, ev.Reason)
	}
	return out
}
