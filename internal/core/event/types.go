package event

import (
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/data"
)

// Reason explains why a player request was discarded.
type Reason string

const (
	ReasonInsufficientXP   Reason = "insufficient_xp"
	ReasonUnmetPrereq      Reason = "unmet_prerequisite"
	ReasonAlreadyOwned     Reason = "already_owned"
	ReasonOnCooldown       Reason = "on_cooldown"
	ReasonSlotEmpty        Reason = "slot_empty"
	ReasonInsufficientMana Reason = "insufficient_mana"
	ReasonUnknownPlayer    Reason = "unknown_player"
	ReasonIncapacitated    Reason = "incapacitated"
	ReasonLaneOutOfBounds  Reason = "lane_out_of_bounds"
)

// WaveSpawned carries the index of the wave that was just spawned.
type WaveSpawned struct {
	WaveIdx int
}

// EndOfDay fires before the first wave of a new day spawns.
type EndOfDay struct {
	WaveIdx int
}

// Victory fires once when the wave table is exhausted.
type Victory struct {
	WaveIdx int
}

type GameOver struct {
	Victory bool
}

type AbilityPurchased struct {
	PlayerID  data.PlayerID
	AbilityID data.AbilityID
	XPLeft    int
}

type RedrawAbilityUI struct {
	PlayerID data.PlayerID
}

// RequestRejected is the diagnostic notification for a discarded purchase,
// cast or lane change. Slot is set for casts, Delta for lane changes.
type RequestRejected struct {
	PlayerID  data.PlayerID
	AbilityID data.AbilityID
	Slot      int
	Delta     int
	Reason    Reason
}

type AbilityCast struct {
	PlayerID  data.PlayerID
	AbilityID data.AbilityID
	Lane      int
	RequestID string
}

type AbilityApplied struct {
	AbilityID data.AbilityID
	Lane      int
	RequestID string
	Hits      int
}

type EnemyKilled struct {
	EntityID ecs.EntityID
	Lane     int
	XP       int
}

type PlayerIncapacitated struct {
	EntityID ecs.EntityID
	PlayerID data.PlayerID
}

type PlayerRevived struct {
	EntityID ecs.EntityID
	PlayerID data.PlayerID
	Health   float64
}

type ObeliskDamaged struct {
	Amount    int
	Remaining int
}
