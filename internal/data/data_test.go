package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAbilityCatalog(t *testing.T) {
	c, err := DefaultAbilityCatalog()
	require.NoError(t, err)
	assert.Equal(t, 9, c.Count())

	lvl3 := c.MustGet(1)
	assert.True(t, lvl3.Passive)
	assert.Equal(t, []AbilityID{0}, lvl3.Prerequisites)
	require.Len(t, lvl3.BuffEffects(), 2)
	assert.Equal(t, BuffMovementSpeed, lvl3.BuffEffects()[1].Stat)
	assert.Equal(t, 25.0, lvl3.BuffEffects()[1].Buff.Amount)

	wall := c.MustGet(1000)
	assert.False(t, wall.Passive)
	assert.Equal(t, 1, wall.Slot)
	require.Len(t, wall.Effects, 2)
	area, ok := wall.Effects[0].(AttackAreaEffect)
	require.True(t, ok)
	assert.Equal(t, 96.0, area.Radius)
	assert.Equal(t, DamageFire, area.Detail.DamageType)
	assert.Equal(t, VisualEffect{EffectID: "flame_wall", FrameStart: 0, FrameEnd: 9}, wall.Effects[1])

	ids := make([]AbilityID, 0, c.Count())
	for _, d := range c.All() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []AbilityID{0, 1, 2, 1000, 1001, 2000, 2001, 3000, 3001}, ids)
	assert.Len(t, c.ByRole(RoleRogue), 2)
}

func TestMustGetPanicsOnUnknownID(t *testing.T) {
	c, err := DefaultAbilityCatalog()
	require.NoError(t, err)
	_, ok := c.Get(999)
	assert.False(t, ok)
	assert.Panics(t, func() { c.MustGet(999) })
}

func TestAbilityIDRole(t *testing.T) {
	assert.Equal(t, RoleGeneral, AbilityID(2).Role())
	assert.Equal(t, RoleHealer, AbilityID(1000).Role())
	assert.Equal(t, RoleRogue, AbilityID(2999).Role())
	assert.Equal(t, RoleWarrior, AbilityID(3001).Role())
	assert.Equal(t, RoleInvalid, AbilityID(4000).Role())
	assert.Equal(t, "warrior", RoleWarrior.String())
}

func TestParseAbilityCatalogRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"duplicate id", `
abilities:
  - {id: 0, name: a, passive: true}
  - {id: 0, name: b, passive: true}`},
		{"unknown prerequisite", `
abilities:
  - {id: 1, name: a, passive: true, prerequisites: [7]}`},
		{"active without slot", `
abilities:
  - {id: 3000, name: a}`},
		{"id outside namespaces", `
abilities:
  - {id: 4100, name: a, passive: true}`},
		{"two kinds in one effect", `
abilities:
  - id: 0
    name: a
    passive: true
    effects:
      - {heal: {burst_heal: 1}, revive: {revive_time: 0}}`},
		{"empty effect", `
abilities:
  - id: 0
    name: a
    passive: true
    effects:
      - {}`},
		{"bad damage range", `
abilities:
  - id: 3000
    name: a
    slot: 1
    effects:
      - attack: {damage_type: pure, min_damage: 5, max_damage: 1}`},
		{"unknown damage type", `
abilities:
  - id: 3000
    name: a
    slot: 1
    effects:
      - attack: {damage_type: acid, min_damage: 1, max_damage: 2}`},
		{"unknown buff stat", `
abilities:
  - id: 0
    name: a
    passive: true
    effects:
      - buff: {stat: luck, amount: 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAbilityCatalog([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestDefaultWaveTable(t *testing.T) {
	w, err := DefaultWaveTable(3)
	require.NoError(t, err)
	require.Equal(t, 12, w.Len())

	first := w.At(0)
	assert.Equal(t, []int{1, 1, 1}, first.Counts(EnemyWolf))
	assert.Equal(t, []int{0, 0, 0}, first.Counts(EnemyBear))
	assert.Equal(t, 15.0, first.PostWaveDelay)
	assert.Equal(t, 3, first.Total())
	assert.Equal(t, 4, w.At(1).Total())
}

func TestWaveTableLaneMismatch(t *testing.T) {
	_, err := DefaultWaveTable(2)
	assert.Error(t, err)

	_, err = NewWaveTable([]WaveData{{Wolves: []int{-1}, Bears: []int{0}}}, 1)
	assert.Error(t, err)
}
