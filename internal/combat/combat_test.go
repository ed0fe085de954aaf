package combat

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestResolver(t *testing.T, seed uint64) *Resolver {
	return NewResolver(rand.New(rand.NewPCG(seed, seed^0x9e3779b9)), nil, zaptest.NewLogger(t))
}

func TestCalcDamage(t *testing.T) {
	tests := []struct {
		a, d, want int
	}{
		{10, 0, 10},
		{10, 5, 6},
		{15, 5, 11},
		{1, 100, 0},
		{0, 0, 0},
		{0, 5, 0},
		{-3, 5, 0},
		{7, -2, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalcDamage(tt.a, tt.d), "calc(%d,%d)", tt.a, tt.d)
	}
}

func TestCalcDamageMonotonic(t *testing.T) {
	for a := 1; a <= 200; a++ {
		assert.Equal(t, a, CalcDamage(a, 0))
		for d := 0; d <= 200; d++ {
			got := CalcDamage(a, d)
			assert.LessOrEqual(t, got, a)
			assert.GreaterOrEqual(t, got, 0)
			assert.GreaterOrEqual(t, CalcDamage(a+1, d), got)
			assert.LessOrEqual(t, CalcDamage(a, d+1), got)
		}
	}
}

func TestResolveArmouredScenario(t *testing.T) {
	r := newTestResolver(t, 42)
	atk := Attack{MinDamage: 10, MaxDamage: 15}
	def := Defence{Armour: 5}
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		res := r.Resolve(atk, def)
		assert.False(t, res.Crit)
		require.GreaterOrEqual(t, res.Damage, 6)
		require.LessOrEqual(t, res.Damage, 11)
		seen[res.Damage] = true
	}
	assert.True(t, seen[6])
	assert.True(t, seen[11])
}

func TestResolveCritDoubles(t *testing.T) {
	r := newTestResolver(t, 1)
	res := r.Resolve(Attack{MinDamage: 8, MaxDamage: 8, CritChance: 1}, Defence{})
	assert.True(t, res.Crit)
	assert.Equal(t, 16, res.Damage)
}

func TestResolveElementalChannels(t *testing.T) {
	r := newTestResolver(t, 3)
	atk := Attack{MinDamage: 4, MaxDamage: 4}
	atk.Elemental[Fire] = 6
	atk.Elemental[Frost] = 1
	def := Defence{}
	def.Elemental[Frost] = 50

	res := r.Resolve(atk, def)
	// 4 physical + 6 fire + 1*1/51 frost
	assert.Equal(t, 10, res.Damage)
	assert.True(t, res.Burning)
	assert.True(t, res.Status(Fire))
	assert.False(t, res.Frozen, "frost channel mitigated to zero")
	assert.False(t, res.Shocked)
	assert.False(t, res.Poisoned)
}

func TestResolveZeroDamageNeverDivides(t *testing.T) {
	r := newTestResolver(t, 5)
	res := r.Resolve(Attack{}, Defence{})
	assert.Equal(t, 0, res.Damage)
}

func TestResolveUsesMitigator(t *testing.T) {
	calls := 0
	m := MitigatorFunc(func(a, d int) int {
		calls++
		return a + d
	})
	r := NewResolver(rand.New(rand.NewPCG(1, 2)), m, zaptest.NewLogger(t))
	res := r.Resolve(Attack{MinDamage: 3, MaxDamage: 3}, Defence{Armour: 2})
	assert.Equal(t, 5, res.Damage)
	assert.Equal(t, 1, calls)
}

func TestBetweenSwappedBounds(t *testing.T) {
	r := newTestResolver(t, 9)
	for i := 0; i < 100; i++ {
		v := r.Between(5, 2)
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 5)
	}
	assert.False(t, r.Roll(0))
}
