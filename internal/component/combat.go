package component

import (
	"github.com/obelisk/lanedefense/internal/combat"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/stat"
)

// BaseAttack is an actor's auto-attack. Speed is seconds between swings,
// NextAttack is absolute game time.
type BaseAttack struct {
	Range      float64
	Speed      stat.Statistic
	NextAttack float64
	MinDamage  int
	MaxDamage  int
	CritChance float64
	Elemental  [combat.ElementCount]int
}

type Defence struct {
	Armour    stat.Statistic
	Elemental [combat.ElementCount]int
}

// AttackTarget is a weak reference: Entity is looked up every tick and a
// missing entity means no target.
type AttackTarget struct {
	Entity  ecs.EntityID
	Obelisk bool
}
