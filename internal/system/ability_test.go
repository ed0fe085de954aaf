package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelisk/lanedefense/internal/ability"
	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/event"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/input"
	"github.com/obelisk/lanedefense/internal/presenter"
)

func TestAreaAttackHitsWithinRadius(t *testing.T) {
	h := newHarness(t)
	_, ty := h.state.Lanes.Target(0)
	near := h.enemyAt(data.EnemyWolf, 0, ty)
	edge := h.enemyAt(data.EnemyWolf, 0, ty+50)
	far := h.enemyAt(data.EnemyWolf, 0, ty+300)
	other := h.enemyAt(data.EnemyWolf, 1, ty)
	sa := h.spawnCast(1000, 0)

	h.applySystem().Update(0)

	assert.LessOrEqual(t, h.health(near).Target, 20.0)
	assert.LessOrEqual(t, h.health(edge).Target, 20.0)
	assert.Equal(t, 30.0, h.health(far).Target)
	assert.Equal(t, 30.0, h.health(other).Target)
	assert.True(t, sa.Applied)
	assert.Equal(t, ability.StateApplied, sa.Request.State())

	applied := event.Pending[event.AbilityApplied](h.bus)
	require.Len(t, applied, 1)
	assert.Equal(t, 2, applied[0].Hits)
	assert.Equal(t, data.AbilityID(1000), applied[0].AbilityID)

	fx := h.view.Of(presenter.CallSpawnEffect)
	require.Len(t, fx, 1)
	assert.Equal(t, "flame_wall", fx[0].Name)
	tx, _ := h.state.Lanes.Target(0)
	assert.Equal(t, tx, fx[0].X)
	assert.Equal(t, ty, fx[0].Y)
	assert.Equal(t, 9, fx[0].To)
}

func TestSingleAttackHitsFirstEnemy(t *testing.T) {
	h := newHarness(t)
	_, ty := h.state.Lanes.Target(0)
	first := h.enemyAt(data.EnemyWolf, 0, ty)
	second := h.enemyAt(data.EnemyWolf, 0, ty+10)
	h.spawnCast(3000, 0)

	sys := h.applySystem()
	sys.Update(0)
	sys.Update(0)

	assert.LessOrEqual(t, h.health(first).Target, 15.0)
	assert.Equal(t, 30.0, h.health(second).Target)
	assert.Len(t, event.Pending[event.AbilityApplied](h.bus), 1)
}

func TestHealClampsToMax(t *testing.T) {
	h := newHarness(t)
	h.health(h.players[0]).Target = 80
	h.health(h.players[1]).Target = 40
	h.spawnCast(2000, 0)

	h.applySystem().Update(0)

	assert.Equal(t, 100.0, h.health(h.players[0]).Target)
	assert.Equal(t, 40.0, h.health(h.players[1]).Target)
	applied := event.Pending[event.AbilityApplied](h.bus)
	require.Len(t, applied, 1)
	assert.Equal(t, 1, applied[0].Hits)
}

func TestBuffEffectOnCastIsSkipped(t *testing.T) {
	h := newHarness(t)
	r := ability.NewCast(0, 1, h.log)
	require.NoError(t, r.Validate(context.Background()))
	h.state.SpawnAbility(&component.SpawnedAbility{
		Request: r,
		Lane:    0,
		Effects: []data.Effect{h.catalog.MustGet(0).Effects[0]},
	})
	before := h.health(h.players[0]).Max.Value()

	h.applySystem().Update(0)

	assert.Equal(t, before, h.health(h.players[0]).Max.Value())
}

func TestCleanupRetiresAppliedAbilities(t *testing.T) {
	h := newHarness(t)
	sa := h.spawnCast(2000, 0)
	h.applySystem().Update(0)

	NewCleanupSystem(h.state, h.view, h.log).Update(0)

	assert.Equal(t, ability.StateDespawned, sa.Request.State())
	assert.Zero(t, h.state.Spawned.Len())
	// spawned abilities have no visual actor of their own
	assert.Empty(t, h.view.Of(presenter.CallDespawn))
}

func TestCastResolvesOnFollowingTick(t *testing.T) {
	h := newHarness(t)
	in := h.inputSystem()
	apply := h.applySystem()
	h.state.Score.XP = 200
	h.queue.Push(input.Purchase{Player: 0, Ability: 2000})
	in.Update(0)
	hp := h.health(h.players[0])
	hp.Target = 40

	h.queue.Push(input.Cast{Player: 0, Slot: 1})
	in.Update(0)
	apply.Update(0)

	assert.Equal(t, 40.0, hp.Target)
	assert.Empty(t, event.Pending[event.AbilityApplied](h.bus))

	apply.Update(0)

	assert.Equal(t, 90.0, hp.Target)
	assert.Len(t, event.Pending[event.AbilityApplied](h.bus), 1)
}
