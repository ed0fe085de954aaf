package presenter

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HUD text keys.
const (
	KeyObelisk = "obelisk"
	KeyXP      = "xp"
	KeyWave    = "wave"
)

func HealthKey(player int) string { return fmt.Sprintf("player.%d.health", player) }
func ManaKey(player int) string   { return fmt.Sprintf("player.%d.mana", player) }
func AbilitiesKey(player int) string {
	return fmt.Sprintf("player.%d.abilities", player)
}
func SlotKey(player, slot int) string {
	return fmt.Sprintf("player.%d.slot.%d", player, slot)
}

// HUD formats display lines with locale-aware number grouping.
type HUD struct {
	p *message.Printer
}

// NewHUD builds a formatter for a BCP 47 language tag.
func NewHUD(lang string) (*HUD, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("hud language %q: %w", lang, err)
	}
	return &HUD{p: message.NewPrinter(tag)}, nil
}

func (h *HUD) Health(current, max float64) string {
	return h.p.Sprintf("Health: %d / %d", round(current), round(max))
}

func (h *HUD) Mana(current, max float64) string {
	return h.p.Sprintf("Mana: %d / %d", round(current), round(max))
}

func (h *HUD) Obelisk(current, max int) string {
	return h.p.Sprintf("Obelisk health %d / %d", current, max)
}

func (h *HUD) XP(xp int) string {
	return h.p.Sprintf("XP: %d", xp)
}

// Wave renders the 1-based wave counter.
func (h *HUD) Wave(spawned, total int) string {
	return h.p.Sprintf("Wave %d / %d", spawned, total)
}

// Cooldown renders an action slot; remaining <= 0 means ready.
func (h *HUD) Cooldown(name string, remaining float64) string {
	if remaining <= 0 {
		return h.p.Sprintf("%s: ready", name)
	}
	return h.p.Sprintf("%s: %ds", name, int(math.Ceil(remaining)))
}

// BarFraction is current/max clamped to [0, 1]. A non-positive max yields 0.
func BarFraction(current, max float64) float64 {
	if max <= 0 || math.IsNaN(current) {
		return 0
	}
	f := current / max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func round(v float64) int { return int(math.Round(v)) }
