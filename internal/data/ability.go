package data

import (
	"fmt"

	"github.com/obelisk/lanedefense/internal/stat"
)

// AbilityID identifies an ability. IDs are namespaced by role:
//
//	   0 –  999  general
//	1000 – 1999  healer
//	2000 – 2999  rogue
//	3000 – 3999  warrior
type AbilityID uint16

// PlayerID identifies one of the heroes defending the lanes.
type PlayerID uint8

type Role int

const (
	RoleGeneral Role = iota
	RoleHealer
	RoleRogue
	RoleWarrior
	RoleInvalid
)

func (r Role) String() string {
	switch r {
	case RoleGeneral:
		return "general"
	case RoleHealer:
		return "healer"
	case RoleRogue:
		return "rogue"
	case RoleWarrior:
		return "warrior"
	}
	return "invalid"
}

// Role returns the namespace an ability id belongs to.
func (id AbilityID) Role() Role {
	if id >= 4000 {
		return RoleInvalid
	}
	return Role(id / 1000)
}

// BuffStat names the statistic a Buff effect modifies.
type BuffStat int

const (
	BuffArmour BuffStat = iota
	BuffHealth
	BuffMana
	BuffRegeneration
	BuffMovementSpeed
)

var buffStatNames = map[string]BuffStat{
	"armour":         BuffArmour,
	"health":         BuffHealth,
	"mana":           BuffMana,
	"regeneration":   BuffRegeneration,
	"movement_speed": BuffMovementSpeed,
}

func (s BuffStat) String() string {
	for name, v := range buffStatNames {
		if v == s {
			return name
		}
	}
	return fmt.Sprintf("BuffStat(%d)", int(s))
}

type DamageType int

const (
	DamagePure DamageType = iota
	DamagePoison
	DamageShock
	DamageIce
	DamageFire
)

var damageTypeNames = map[string]DamageType{
	"pure":   DamagePure,
	"poison": DamagePoison,
	"shock":  DamageShock,
	"ice":    DamageIce,
	"fire":   DamageFire,
}

// AttackDetail is the damage roll of an Attack or AttackArea effect.
type AttackDetail struct {
	DamageType DamageType
	MinDamage  int
	MaxDamage  int
}

// Effect is the closed set of things an ability does when applied.
// The apply step switches over every implementation; adding a variant
// means extending that switch.
type Effect interface {
	effect()
}

type BuffEffect struct {
	Stat BuffStat
	Buff stat.Buff
}

type AttackEffect struct {
	Detail AttackDetail
}

type AttackAreaEffect struct {
	Detail AttackDetail
	Radius float64
}

type HealEffect struct {
	BurstHeal float64
}

// ReviveEffect revives incapacitated heroes; ReviveTime > 0 delays it.
type ReviveEffect struct {
	ReviveTime float64
}

// VisualEffect asks the presentation layer for a one-shot animation.
type VisualEffect struct {
	EffectID   string
	FrameStart int
	FrameEnd   int
}

func (BuffEffect) effect()       {}
func (AttackEffect) effect()     {}
func (AttackAreaEffect) effect() {}
func (HealEffect) effect()       {}
func (ReviveEffect) effect()     {}
func (VisualEffect) effect()     {}

// AbilityDefinition is a single entry of the ability catalog.
type AbilityDefinition struct {
	ID            AbilityID
	Name          string
	Description   string
	XPCost        int
	Prerequisites []AbilityID
	Passive       bool
	Slot          int // action slot for active abilities (1-based)
	Cooldown      float64
	ManaCost      float64
	Effects       []Effect
}

// BuffEffects returns the Buff effects in declaration order.
func (d *AbilityDefinition) BuffEffects() []BuffEffect {
	var out []BuffEffect
	for _, e := range d.Effects {
		if b, ok := e.(BuffEffect); ok {
			out = append(out, b)
		}
	}
	return out
}
