package component

import "github.com/obelisk/lanedefense/internal/data"

// Animation states understood by the presentation layer.
const (
	AnimDefault       = 0
	AnimIncapacitated = 1
)

type Position struct {
	X float64
	Y float64
}

type Player struct {
	ID          data.PlayerID
	CurrentLane int
	TargetLane  int
	Moving      bool
	Abilities   []data.AbilityID // unlocked, append-only
}

type Enemy struct {
	Kind     data.EnemyKind
	Lane     int
	TargetY  float64
	XPReward int
}

// Incapacitated marks a player at zero health. EndTime 0 means it lasts
// until Revived is set.
type Incapacitated struct {
	EndTime float64
	Revived bool
}

// Animation mirrors the presenter's animation index for an actor.
type Animation struct {
	State int
}
