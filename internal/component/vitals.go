package component

import "github.com/obelisk/lanedefense/internal/stat"

// Health tracks an actor's hit points. Target is the true value set
// instantly by damage and heals; Current trails it for display.
type Health struct {
	Max          stat.Statistic
	Current      float64
	Target       float64
	Regeneration stat.Statistic
}

func NewHealth(max, regeneration float64) *Health {
	return &Health{
		Max:          stat.New(max),
		Current:      max,
		Target:       max,
		Regeneration: stat.New(regeneration),
	}
}

// Mana regenerates at a flat rate, no lerp.
type Mana struct {
	Max          stat.Statistic
	Current      float64
	Regeneration float64
}

func NewMana(max, regeneration float64) *Mana {
	return &Mana{
		Max:          stat.New(max),
		Current:      max,
		Regeneration: regeneration,
	}
}

// Stats are the primary attributes. Dirty asks the stat refresh system to
// re-derive movement speed, max health and max mana (×10 each).
type Stats struct {
	Strength     stat.Statistic
	Agility      stat.Statistic
	Intelligence stat.Statistic
	Dirty        bool
}

type Movement struct {
	Speed stat.Statistic
}
