package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelisk/lanedefense/internal/core/event"
	"github.com/obelisk/lanedefense/internal/data"
)

func flatWaves(t *testing.T, n int) *data.WaveTable {
	t.Helper()
	waves := make([]data.WaveData, n)
	for i := range waves {
		waves[i] = data.WaveData{Wolves: []int{1, 0, 0}, Bears: []int{0, 0, 1}, PostWaveDelay: 2}
	}
	tbl, err := data.NewWaveTable(waves, 3)
	require.NoError(t, err)
	return tbl
}

func TestWaveSystemRunsTableOnce(t *testing.T) {
	h := newHarness(t)
	waves := flatWaves(t, 5)
	sys := NewWaveSystem(h.state, waves, h.bus, nil, true, h.log)
	cw := &h.state.Wave

	for i := 0; i < 10; i++ {
		if !math.IsInf(cw.NextWaveTime, 1) {
			h.state.Clock.Elapsed = cw.NextWaveTime
		}
		sys.Update(0)
		if h.state.Clock.Paused() {
			h.state.Clock.SetSpeed(1)
		}
	}

	assert.Equal(t, 5, cw.Index)
	assert.True(t, math.IsInf(cw.NextWaveTime, 1))
	assert.Equal(t, 10, h.state.Enemies.Len())

	spawned := event.Pending[event.WaveSpawned](h.bus)
	require.Len(t, spawned, 5)
	for i, ev := range spawned {
		assert.Equal(t, i, ev.WaveIdx)
	}
	days := event.Pending[event.EndOfDay](h.bus)
	require.Len(t, days, 1)
	assert.Equal(t, 4, days[0].WaveIdx)
	assert.Len(t, event.Pending[event.Victory](h.bus), 1)
}

func TestWaveSystemWaitsForSchedule(t *testing.T) {
	h := newHarness(t)
	sys := NewWaveSystem(h.state, flatWaves(t, 3), h.bus, nil, true, h.log)

	h.state.Clock.Elapsed = h.state.Wave.NextWaveTime - 0.5
	sys.Update(0)
	assert.Equal(t, 0, h.state.Wave.Index)

	h.state.Clock.Elapsed += 0.5
	sys.Update(0)
	assert.Equal(t, 1, h.state.Wave.Index)
	assert.InDelta(t, h.state.Clock.Elapsed+2, h.state.Wave.NextWaveTime, 1e-9)

	// paused clock never spawns
	h.state.Clock.SetSpeed(0)
	h.state.Clock.Elapsed = 100
	sys.Update(0)
	assert.Equal(t, 1, h.state.Wave.Index)
}

func TestWaveSystemPausesAtEndOfDay(t *testing.T) {
	h := newHarness(t)
	sys := NewWaveSystem(h.state, flatWaves(t, 6), h.bus, nil, true, h.log)
	h.state.Wave.Index = 4
	h.state.Clock.Elapsed = h.state.Wave.NextWaveTime

	sys.Update(0)

	assert.True(t, h.state.Clock.Paused())
	assert.Equal(t, 5, h.state.Wave.Index)
	assert.Len(t, event.Pending[event.EndOfDay](h.bus), 1)
}

func TestWaveSystemSpawnsPerLane(t *testing.T) {
	h := newHarness(t)
	waves, err := data.DefaultWaveTable(3)
	require.NoError(t, err)
	sys := NewWaveSystem(h.state, waves, h.bus, nil, false, h.log)
	h.state.Clock.Elapsed = h.state.Wave.NextWaveTime

	sys.Update(0)

	lanes := map[int]int{}
	for _, e := range h.state.Enemies.IDs() {
		en, _ := h.state.Enemies.Get(e)
		lanes[en.Lane]++
		pos, _ := h.state.Positions.Get(e)
		x, y := h.state.Lanes.Spawn(en.Lane)
		assert.Equal(t, x, pos.X)
		assert.Equal(t, y, pos.Y)
	}
	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1}, lanes)
}
