package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: dispatch last tick's events, drain player requests
	PhasePreUpdate               // 1: buff expiry sweep, derived stat refresh
	PhaseUpdate                  // 2: movement, waves, abilities, combat
	PhasePostUpdate              // 3: vitals lerp/regen, incapacitation, deaths
	PhaseOutput                  // 4: push HUD state to the presenter
	PhaseCleanup                 // 5: destroy queued entities
)

var phaseNames = [...]string{"input", "pre_update", "update", "post_update", "output", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
// dt is the scaled game delta: zero while the game clock is paused.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
