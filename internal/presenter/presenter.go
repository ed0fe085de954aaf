// Package presenter is the boundary to the host engine's rendering, audio
// and UI. The simulation only pushes notifications through it and never
// reads anything back.
package presenter

import "github.com/obelisk/lanedefense/internal/core/ecs"

// Audio cues played by the simulation.
const (
	CueAttackingObelisk = "attacking_obelisk"
	CueObeliskFallen    = "obelisk_fallen"
	CueProtectObelisk   = "protect_obelisk"
	CueWaveSpawned      = "wave_spawned"
	CueEndOfDay         = "end_of_day"
	CueVictory          = "victory"
)

// Presenter receives state changes the host engine may want to show.
type Presenter interface {
	// SpawnEffect plays an animation at a world position over the given
	// frame range, once or looping.
	SpawnEffect(effect string, x, y float64, frameStart, frameEnd int, loop bool)
	PlayCue(name string)
	// UpdateText replaces the HUD line identified by key.
	UpdateText(key, text string)
	// Despawn removes the visual actor linked to id.
	Despawn(id ecs.EntityID)
	SetAnimation(id ecs.EntityID, state int)
	// SetHealthBar sets the fill of id's health bar, always in [0, 1].
	SetHealthBar(id ecs.EntityID, fraction float64)
}

// Nop discards every call.
type Nop struct{}

func (Nop) SpawnEffect(string, float64, float64, int, int, bool) {}
func (Nop) PlayCue(string)                                       {}
func (Nop) UpdateText(string, string)                            {}
func (Nop) Despawn(ecs.EntityID)                                 {}
func (Nop) SetAnimation(ecs.EntityID, int)                       {}
func (Nop) SetHealthBar(ecs.EntityID, float64)                   {}
