package system

import (
	"math"
	"time"

	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/world"
)

// MovementSystem walks players across to their target lane and enemies down
// their lane. Phase 2 (Update).
type MovementSystem struct {
	state *world.State
}

func NewMovementSystem(state *world.State) *MovementSystem {
	return &MovementSystem{state: state}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(_ time.Duration) {
	dt := s.state.Clock.Delta
	if dt <= 0 {
		return
	}
	lanes := s.state.Lanes

	ecs.Each3(s.state.Players, s.state.Positions, s.state.Movements, func(e ecs.EntityID, p *component.Player, pos *component.Position, mv *component.Movement) {
		if !p.Moving || s.state.Incapacitated(e) {
			return
		}
		target := lanes.X(p.TargetLane)
		pos.X += step(target-pos.X, mv.Speed.Value()*dt)
		if math.Abs(target-pos.X) < lanes.ArriveEpsilon() {
			p.CurrentLane = p.TargetLane
			p.Moving = false
		}
	})

	speed := lanes.EnemySpeed() * dt
	ecs.Each2(s.state.Enemies, s.state.Positions, func(_ ecs.EntityID, en *component.Enemy, pos *component.Position) {
		pos.Y += step(en.TargetY-pos.Y, speed)
	})
}

// step returns delta limited to a magnitude of at most maxStep.
func step(delta, maxStep float64) float64 {
	maxStep = math.Abs(maxStep)
	if math.Abs(delta) <= maxStep {
		return delta
	}
	return math.Copysign(maxStep, delta)
}
