package system

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/combat"
	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/core/event"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/presenter"
	"github.com/obelisk/lanedefense/internal/world"
)

func toAttack(a *component.BaseAttack) combat.Attack {
	return combat.Attack{
		MinDamage:  a.MinDamage,
		MaxDamage:  a.MaxDamage,
		CritChance: a.CritChance,
		Elemental:  a.Elemental,
	}
}

func toDefence(d *component.Defence) combat.Defence {
	return combat.Defence{
		Armour:    int(d.Armour.Value()),
		Elemental: d.Elemental,
	}
}

// PlayerAttackSystem makes every able player auto-attack the first living
// enemy of its lane in range. Phase 2 (Update).
type PlayerAttackSystem struct {
	state    *world.State
	resolver *combat.Resolver
	log      *zap.Logger
}

func NewPlayerAttackSystem(state *world.State, resolver *combat.Resolver, log *zap.Logger) *PlayerAttackSystem {
	return &PlayerAttackSystem{state: state, resolver: resolver, log: log}
}

func (s *PlayerAttackSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *PlayerAttackSystem) Update(_ time.Duration) {
	now := s.state.Clock.Elapsed
	playerY := s.state.Lanes.PlayerY()

	ecs.Each2(s.state.Players, s.state.Attacks, func(e ecs.EntityID, p *component.Player, atk *component.BaseAttack) {
		if atk.NextAttack > now || s.state.Incapacitated(e) {
			return
		}

		var (
			target ecs.EntityID
			health *component.Health
			def    *component.Defence
		)
		s.state.EnemiesInLane(p.CurrentLane, func(en ecs.EntityID, _ *component.Enemy, pos *component.Position, h *component.Health) bool {
			if math.Abs(playerY-pos.Y) > atk.Range {
				return true
			}
			d, ok := s.state.Defences.Get(en)
			if !ok {
				return true
			}
			target, health, def = en, h, d
			return false
		})
		if health == nil {
			return
		}

		res := s.resolver.Resolve(toAttack(atk), toDefence(def))
		health.Target -= float64(res.Damage)
		atk.NextAttack = now + atk.Speed.Value()

		s.log.Debug("player hit",
			zap.Uint8("player", uint8(p.ID)),
			zap.Stringer("enemy", target),
			zap.Int("damage", res.Damage),
			zap.Bool("crit", res.Crit),
			zap.Float64("enemy_health", health.Target),
		)
	})
}

// EnemyTargetSystem keeps each enemy's weak target reference valid: an
// existing player target is kept while it stays attackable, otherwise the
// first attackable player in the lane is picked, otherwise an enemy that
// reached the end of its lane goes for the obelisk. Phase 2 (Update).
type EnemyTargetSystem struct {
	state *world.State
}

func NewEnemyTargetSystem(state *world.State) *EnemyTargetSystem {
	return &EnemyTargetSystem{state: state}
}

func (s *EnemyTargetSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EnemyTargetSystem) Update(_ time.Duration) {
	eps := s.state.Lanes.ArriveEpsilon()

	ecs.Each3(s.state.Enemies, s.state.Targets, s.state.Positions, func(e ecs.EntityID, en *component.Enemy, t *component.AttackTarget, pos *component.Position) {
		if !s.state.LivingEnemy(e) {
			return
		}
		atk, ok := s.state.Attacks.Get(e)
		if !ok {
			return
		}
		if !t.Entity.IsZero() && s.attackable(t.Entity, en.Lane, pos.Y, atk.Range) {
			return
		}

		t.Entity = ecs.Nil
		t.Obelisk = false
		s.state.AllPlayers(func(pe ecs.EntityID, _ *component.Player) {
			if t.Entity.IsZero() && s.attackable(pe, en.Lane, pos.Y, atk.Range) {
				t.Entity = pe
			}
		})
		if t.Entity.IsZero() && math.Abs(pos.Y-en.TargetY) < eps {
			t.Obelisk = true
		}
	})
}

// attackable reports whether player e can be hit by an enemy at y in lane.
func (s *EnemyTargetSystem) attackable(e ecs.EntityID, lane int, y, reach float64) bool {
	if !s.state.Active(e) || s.state.Incapacitated(e) {
		return false
	}
	p, ok := s.state.Players.Get(e)
	if !ok || p.CurrentLane != lane {
		return false
	}
	pos, ok := s.state.Positions.Get(e)
	return ok && math.Abs(pos.Y-y) <= reach
}

// ObeliskModifier adjusts damage dealt to the obelisk.
type ObeliskModifier interface {
	ObeliskDamage(damage, waveIdx int) int
}

// AnnounceGate decides when the "attacking obelisk" cue may play again.
// Inverted reproduces the legacy last-now comparison.
type AnnounceGate struct {
	Cooldown float64
	Inverted bool
}

// Open reports whether the cue may play at now given the last announcement.
func (g AnnounceGate) Open(last, now float64) bool {
	if g.Inverted {
		return last-now > g.Cooldown
	}
	return now-last > g.Cooldown
}

// EnemyAttackSystem resolves enemy swings against their target player or
// the obelisk. Obelisk hits are unmitigated. Phase 2 (Update).
type EnemyAttackSystem struct {
	state    *world.State
	resolver *combat.Resolver
	modifier ObeliskModifier
	gate     AnnounceGate
	bus      *event.Bus
	view     presenter.Presenter
	log      *zap.Logger
}

func NewEnemyAttackSystem(
	state *world.State,
	resolver *combat.Resolver,
	modifier ObeliskModifier,
	gate AnnounceGate,
	bus *event.Bus,
	view presenter.Presenter,
	log *zap.Logger,
) *EnemyAttackSystem {
	return &EnemyAttackSystem{
		state:    state,
		resolver: resolver,
		modifier: modifier,
		gate:     gate,
		bus:      bus,
		view:     view,
		log:      log,
	}
}

func (s *EnemyAttackSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EnemyAttackSystem) Update(_ time.Duration) {
	now := s.state.Clock.Elapsed

	ecs.Each3(s.state.Enemies, s.state.Targets, s.state.Attacks, func(e ecs.EntityID, en *component.Enemy, t *component.AttackTarget, atk *component.BaseAttack) {
		if atk.NextAttack > now || !s.state.LivingEnemy(e) {
			return
		}
		switch {
		case t.Obelisk:
			s.hitObelisk(atk)
		case !t.Entity.IsZero():
			if !s.hitPlayer(e, t.Entity, atk) {
				return
			}
		default:
			return
		}
		atk.NextAttack = now + atk.Speed.Value()
	})
}

func (s *EnemyAttackSystem) hitPlayer(e, target ecs.EntityID, atk *component.BaseAttack) bool {
	// target may have gone away since selection; retry next tick
	if !s.state.Active(target) || s.state.Incapacitated(target) {
		return false
	}
	h, ok := s.state.Healths.Get(target)
	if !ok {
		return false
	}
	d, ok := s.state.Defences.Get(target)
	if !ok {
		return false
	}
	res := s.resolver.Resolve(toAttack(atk), toDefence(d))
	h.Target -= float64(res.Damage)
	s.log.Debug("enemy hit player",
		zap.Stringer("enemy", e),
		zap.Stringer("player", target),
		zap.Int("damage", res.Damage),
		zap.Float64("player_health", h.Target),
	)
	return true
}

func (s *EnemyAttackSystem) hitObelisk(atk *component.BaseAttack) {
	score := &s.state.Score
	res := s.resolver.Resolve(toAttack(atk), combat.Defence{})
	dmg := res.Damage
	if s.modifier != nil {
		dmg = s.modifier.ObeliskDamage(dmg, s.state.Wave.Index)
	}
	if dmg > score.ObeliskHealth {
		dmg = score.ObeliskHealth
	}
	score.ObeliskHealth -= dmg

	now := s.state.Clock.Elapsed
	if s.gate.Open(score.LastObeliskDamage, now) {
		score.LastObeliskDamage = now
		s.view.PlayCue(presenter.CueAttackingObelisk)
	}
	s.log.Debug("enemy hit obelisk", zap.Int("damage", dmg), zap.Int("remaining", score.ObeliskHealth))
	event.Emit(s.bus, event.ObeliskDamaged{Amount: dmg, Remaining: score.ObeliskHealth})
}
