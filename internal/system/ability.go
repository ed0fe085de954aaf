package system

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/ability"
	"github.com/obelisk/lanedefense/internal/combat"
	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/core/event"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/presenter"
	"github.com/obelisk/lanedefense/internal/world"
)

// AbilityApplySystem resolves the effect list of every spawned ability once,
// in declaration order, starting the tick after the cast was accepted.
// Phase 2 (Update).
type AbilityApplySystem struct {
	state    *world.State
	resolver *combat.Resolver
	bus      *event.Bus
	view     presenter.Presenter
	log      *zap.Logger
}

func NewAbilityApplySystem(state *world.State, resolver *combat.Resolver, bus *event.Bus, view presenter.Presenter, log *zap.Logger) *AbilityApplySystem {
	return &AbilityApplySystem{state: state, resolver: resolver, bus: bus, view: view, log: log}
}

func (s *AbilityApplySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AbilityApplySystem) Update(_ time.Duration) {
	s.state.Spawned.Each(func(_ ecs.EntityID, sa *component.SpawnedAbility) {
		if sa.Applied || sa.Request.State() != ability.StateValidated {
			return
		}
		if sa.Fresh {
			sa.Fresh = false
			return
		}
		hits := 0
		for _, eff := range sa.Effects {
			hits += s.apply(sa, eff)
		}
		sa.Applied = true
		if err := sa.Request.Apply(context.Background()); err != nil {
			s.log.Error("apply ability request", zap.Error(err))
		}

		s.log.Debug("ability applied",
			zap.String("request", sa.Request.ID.String()),
			zap.Uint16("ability", uint16(sa.Request.Ability)),
			zap.Int("lane", sa.Lane),
			zap.Int("hits", hits),
		)
		event.Emit(s.bus, event.AbilityApplied{
			AbilityID: sa.Request.Ability,
			Lane:      sa.Lane,
			RequestID: sa.Request.ID.String(),
			Hits:      hits,
		})
	})
}

// apply resolves one effect and returns the number of actors it touched.
func (s *AbilityApplySystem) apply(sa *component.SpawnedAbility, eff data.Effect) int {
	switch e := eff.(type) {
	case data.AttackEffect:
		return s.attack(sa.Lane, e.Detail, s.state.Lanes.MeleeRange(), true)
	case data.AttackAreaEffect:
		return s.attack(sa.Lane, e.Detail, e.Radius, false)
	case data.HealEffect:
		return s.heal(sa.Lane, e.BurstHeal)
	case data.ReviveEffect:
		return s.revive(sa.Lane, e.ReviveTime)
	case data.BuffEffect:
		// active buffs have no targeting rule
		s.log.Warn("buff effect on an active ability skipped",
			zap.Uint16("ability", uint16(sa.Request.Ability)),
			zap.Stringer("stat", e.Stat),
		)
		return 0
	case data.VisualEffect:
		x, y := s.state.Lanes.Target(sa.Lane)
		s.view.SpawnEffect(e.EffectID, x, y, e.FrameStart, e.FrameEnd, false)
		return 0
	default:
		panic(fmt.Sprintf("system: unhandled ability effect %T", eff))
	}
}

// attack hits living enemies of lane within reach of the lane's target
// point. single stops after the first hit.
func (s *AbilityApplySystem) attack(lane int, d data.AttackDetail, reach float64, single bool) int {
	atk := combat.Attack{MinDamage: d.MinDamage, MaxDamage: d.MaxDamage}
	hits := 0
	s.state.EnemiesInLane(lane, func(e ecs.EntityID, _ *component.Enemy, pos *component.Position, h *component.Health) bool {
		if s.state.Lanes.DistanceToTarget(lane, pos.X, pos.Y) > reach {
			return true
		}
		def, ok := s.state.Defences.Get(e)
		if !ok {
			return true
		}
		res := s.resolver.Resolve(atk, toDefence(def))
		h.Target -= float64(res.Damage)
		hits++
		return !single
	})
	return hits
}

func (s *AbilityApplySystem) heal(lane int, amount float64) int {
	n := 0
	s.state.AllPlayers(func(e ecs.EntityID, p *component.Player) {
		if p.CurrentLane != lane || s.state.Incapacitated(e) {
			return
		}
		h, ok := s.state.Healths.Get(e)
		if !ok {
			return
		}
		h.Target = min(h.Target+amount, h.Max.Value())
		n++
	})
	return n
}

func (s *AbilityApplySystem) revive(lane int, reviveTime float64) int {
	now := s.state.Clock.Elapsed
	n := 0
	s.state.AllPlayers(func(e ecs.EntityID, p *component.Player) {
		if p.CurrentLane != lane {
			return
		}
		inc, ok := s.state.Incaps.Get(e)
		if !ok {
			return
		}
		if reviveTime <= 0 {
			inc.Revived = true
		} else if inc.EndTime == 0 || now+reviveTime < inc.EndTime {
			inc.EndTime = now + reviveTime
		}
		n++
	})
	return n
}
