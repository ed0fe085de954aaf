package component

import (
	"github.com/obelisk/lanedefense/internal/ability"
	"github.com/obelisk/lanedefense/internal/data"
)

// ActionSlot binds an active ability to a hotkey slot.
type ActionSlot struct {
	Ability       data.AbilityID
	NextAvailable float64
}

// ActionSlots maps a 1-based slot number to its binding.
type ActionSlots struct {
	Slots map[int]*ActionSlot
}

func NewActionSlots() *ActionSlots {
	return &ActionSlots{Slots: make(map[int]*ActionSlot, 2)}
}

// SpawnedAbility is an accepted cast waiting for the apply step. Fresh marks
// a cast accepted this tick; it resolves on the following one.
type SpawnedAbility struct {
	Request *ability.Request
	Lane    int
	Effects []data.Effect
	Fresh   bool
	Applied bool
}
