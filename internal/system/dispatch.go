package system

import (
	"time"

	"github.com/obelisk/lanedefense/internal/core/event"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
)

// EventDispatchSystem rotates the event bus and delivers last tick's events.
// Phase 0 (Input), registered first.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
