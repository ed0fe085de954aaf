package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/core/event"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/presenter"
)

type doubleObelisk struct{}

func (doubleObelisk) ObeliskDamage(damage, _ int) int { return damage * 2 }

func (h *harness) enemyAttack(m ObeliskModifier) *EnemyAttackSystem {
	gate := AnnounceGate{Cooldown: h.cfg.Obelisk.AnnounceCooldown}
	return NewEnemyAttackSystem(h.state, h.resolver, m, gate, h.bus, h.view, h.log)
}

func TestPlayerAutoAttack(t *testing.T) {
	h := newHarness(t)
	sys := NewPlayerAttackSystem(h.state, h.resolver, h.log)
	wolf := h.enemyAt(data.EnemyWolf, 0, h.state.Lanes.PlayerY()-20)
	out := h.enemyAt(data.EnemyWolf, 1, 200)

	sys.Update(0)
	hit := h.health(wolf).Target
	assert.LessOrEqual(t, hit, 20.0)
	assert.Equal(t, 30.0, h.health(out).Target)

	// attack speed 1.0 gates the next swing
	sys.Update(0)
	assert.Equal(t, hit, h.health(wolf).Target)
	atk, _ := h.state.Attacks.Get(h.players[0])
	assert.Equal(t, 1.0, atk.NextAttack)
}

func TestEnemyTargetsPlayerThenObelisk(t *testing.T) {
	h := newHarness(t)
	targeting := NewEnemyTargetSystem(h.state)
	wolf := h.enemyAt(data.EnemyWolf, 0, h.state.Lanes.PlayerY()-20)
	target, _ := h.state.Targets.Get(wolf)

	targeting.Update(0)
	assert.Equal(t, h.players[0], target.Entity)
	assert.False(t, target.Obelisk)

	h.enemyAttack(nil).Update(0)
	assert.Less(t, h.health(h.players[0]).Target, 100.0)

	h.state.Incaps.Set(h.players[0], &component.Incapacitated{})
	targeting.Update(0)
	assert.Equal(t, ecs.Nil, target.Entity)
	assert.False(t, target.Obelisk)

	pos, _ := h.state.Positions.Get(wolf)
	_, pos.Y = h.state.Lanes.Target(0)
	targeting.Update(0)
	assert.True(t, target.Obelisk)
}

func TestObeliskDamageAndAnnouncement(t *testing.T) {
	h := newHarness(t)
	h.state.Incaps.Set(h.players[0], &component.Incapacitated{})
	_, ty := h.state.Lanes.Target(0)
	wolf := h.enemyAt(data.EnemyWolf, 0, ty)
	NewEnemyTargetSystem(h.state).Update(0)
	sys := h.enemyAttack(doubleObelisk{})

	h.state.Clock.Elapsed = 20
	sys.Update(0)
	h.state.Clock.Elapsed = 21
	sys.Update(0)

	hits := event.Pending[event.ObeliskDamaged](h.bus)
	require.Len(t, hits, 2)
	total := 0
	for _, ev := range hits {
		assert.Zero(t, ev.Amount%2)
		assert.GreaterOrEqual(t, ev.Amount, 6)
		assert.LessOrEqual(t, ev.Amount, 20)
		total += ev.Amount
	}
	assert.Equal(t, 1000-total, h.state.Score.ObeliskHealth)
	assert.Equal(t, hits[1].Remaining, h.state.Score.ObeliskHealth)
	assert.Equal(t, []string{presenter.CueAttackingObelisk}, h.view.Cues())
	assert.Equal(t, 20.0, h.state.Score.LastObeliskDamage)

	atk, _ := h.state.Attacks.Get(wolf)
	assert.Equal(t, 22.0, atk.NextAttack)
}

func TestObeliskSaturatesAndEndsGame(t *testing.T) {
	h := newHarness(t)
	h.state.Incaps.Set(h.players[0], &component.Incapacitated{})
	_, ty := h.state.Lanes.Target(0)
	h.enemyAt(data.EnemyBear, 0, ty)
	NewEnemyTargetSystem(h.state).Update(0)
	h.state.Score.ObeliskHealth = 2

	h.enemyAttack(nil).Update(0)
	assert.Zero(t, h.state.Score.ObeliskHealth)
	hits := event.Pending[event.ObeliskDamaged](h.bus)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Amount)

	over := NewGameOverSystem(h.state, h.bus, h.view, h.log)
	over.Update(0)
	over.Update(0)

	assert.True(t, h.state.Score.GameOver)
	assert.True(t, h.state.Clock.Paused())
	ends := event.Pending[event.GameOver](h.bus)
	require.Len(t, ends, 1)
	assert.False(t, ends[0].Victory)
	assert.Contains(t, h.view.Cues(), presenter.CueObeliskFallen)
}

func TestVictoryEndsGame(t *testing.T) {
	h := newHarness(t)
	NewGameOverSystem(h.state, h.bus, h.view, h.log)

	event.Emit(h.bus, event.Victory{WaveIdx: 12})
	h.bus.SwapBuffers()
	h.bus.DispatchAll()

	assert.True(t, h.state.Score.GameOver)
	ends := event.Pending[event.GameOver](h.bus)
	require.Len(t, ends, 1)
	assert.True(t, ends[0].Victory)
	assert.Equal(t, []string{presenter.CueVictory}, h.view.Cues())
}

func TestAnnounceGate(t *testing.T) {
	g := AnnounceGate{Cooldown: 10}
	assert.False(t, g.Open(0, 10))
	assert.True(t, g.Open(0, 10.5))

	inv := AnnounceGate{Cooldown: 10, Inverted: true}
	assert.False(t, inv.Open(0, 20))
	assert.True(t, inv.Open(20, 5))
}
