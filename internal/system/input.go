package system

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/ability"
	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/core/event"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/input"
	"github.com/obelisk/lanedefense/internal/stat"
	"github.com/obelisk/lanedefense/internal/world"
)

// InputSystem drains queued player commands and validates them: ability
// purchases are applied on the spot, casts become spawned abilities and
// lane changes set the player's target lane. Rejected commands mutate
// nothing and are reported through RequestRejected. Phase 0 (Input).
type InputSystem struct {
	state           *world.State
	queue           *input.Queue
	catalog         *data.AbilityCatalog
	bus             *event.Bus
	maxPerTick      int
	enforceManaCost bool
	log             *zap.Logger
}

func NewInputSystem(
	state *world.State,
	queue *input.Queue,
	catalog *data.AbilityCatalog,
	bus *event.Bus,
	maxPerTick int,
	enforceManaCost bool,
	log *zap.Logger,
) *InputSystem {
	return &InputSystem{
		state:           state,
		queue:           queue,
		catalog:         catalog,
		bus:             bus,
		maxPerTick:      maxPerTick,
		enforceManaCost: enforceManaCost,
		log:             log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	s.queue.Drain(s.maxPerTick, func(c input.Command) {
		switch cmd := c.(type) {
		case input.Purchase:
			s.purchase(cmd)
		case input.Cast:
			s.cast(cmd)
		case input.LaneChange:
			s.changeLane(cmd)
		}
	})
}

func (s *InputSystem) reject(r *ability.Request, reason event.Reason) {
	if err := r.Reject(context.Background(), reason); err != nil {
		s.log.Error("reject ability request", zap.Error(err))
	}
	s.log.Warn("ability request rejected",
		zap.String("request", r.ID.String()),
		zap.Stringer("kind", r.Kind),
		zap.Uint8("player", uint8(r.Player)),
		zap.Uint16("ability", uint16(r.Ability)),
		zap.Int("slot", r.Slot),
		zap.String("reason", string(reason)),
	)
	event.Emit(s.bus, event.RequestRejected{
		PlayerID:  r.Player,
		AbilityID: r.Ability,
		Slot:      r.Slot,
		Reason:    reason,
	})
}

// purchase unlocks an ability, spends xp and applies its buffs before the
// tick continues so every later reader sees the new values.
func (s *InputSystem) purchase(cmd input.Purchase) {
	ctx := context.Background()
	r := ability.NewPurchase(cmd.Player, cmd.Ability, s.log)

	e, p, ok := s.state.PlayerByID(cmd.Player)
	if !ok {
		s.reject(r, event.ReasonUnknownPlayer)
		return
	}
	def := s.catalog.MustGet(cmd.Ability)

	if slices.Contains(p.Abilities, def.ID) {
		s.reject(r, event.ReasonAlreadyOwned)
		return
	}
	if def.XPCost > s.state.Score.XP {
		s.reject(r, event.ReasonInsufficientXP)
		return
	}
	for _, pre := range def.Prerequisites {
		if !slices.Contains(p.Abilities, pre) {
			s.reject(r, event.ReasonUnmetPrereq)
			return
		}
	}
	if err := r.Validate(ctx); err != nil {
		s.log.Error("validate purchase", zap.Error(err))
		return
	}

	p.Abilities = append(p.Abilities, def.ID)
	s.state.Score.XP -= def.XPCost

	now := s.state.Clock.Elapsed
	for _, b := range def.BuffEffects() {
		st := s.buffTarget(e, b.Stat)
		if st == nil {
			s.log.Warn("purchase buff has no matching statistic",
				zap.Uint16("ability", uint16(def.ID)),
				zap.Stringer("stat", b.Stat),
			)
			continue
		}
		st.AddBuff(b.Buff)
		st.Update(now)
	}

	if !def.Passive {
		if slots, ok := s.state.Slots.Get(e); ok {
			slots.Slots[def.Slot] = &component.ActionSlot{Ability: def.ID, NextAvailable: 0}
		}
	}

	if err := r.Apply(ctx); err != nil {
		s.log.Error("apply purchase", zap.Error(err))
	}
	if err := r.Despawn(ctx); err != nil {
		s.log.Error("despawn purchase", zap.Error(err))
	}

	s.log.Info("ability purchased",
		zap.Uint8("player", uint8(cmd.Player)),
		zap.Uint16("ability", uint16(def.ID)),
		zap.String("name", def.Name),
		zap.Int("xp_left", s.state.Score.XP),
	)
	event.Emit(s.bus, event.AbilityPurchased{PlayerID: cmd.Player, AbilityID: def.ID, XPLeft: s.state.Score.XP})
	event.Emit(s.bus, event.RedrawAbilityUI{PlayerID: cmd.Player})
}

// buffTarget maps a buff stat to the statistic it modifies on e.
func (s *InputSystem) buffTarget(e ecs.EntityID, bs data.BuffStat) *stat.Statistic {
	switch bs {
	case data.BuffArmour:
		if d, ok := s.state.Defences.Get(e); ok {
			return &d.Armour
		}
	case data.BuffHealth:
		if h, ok := s.state.Healths.Get(e); ok {
			return &h.Max
		}
	case data.BuffMana:
		if m, ok := s.state.Manas.Get(e); ok {
			return &m.Max
		}
	case data.BuffRegeneration:
		if h, ok := s.state.Healths.Get(e); ok {
			return &h.Regeneration
		}
	case data.BuffMovementSpeed:
		if m, ok := s.state.Movements.Get(e); ok {
			return &m.Speed
		}
	}
	return nil
}

// cast validates a hotkey press and spawns the ability for the apply step.
func (s *InputSystem) cast(cmd input.Cast) {
	r := ability.NewCast(cmd.Player, cmd.Slot, s.log)

	e, p, ok := s.state.PlayerByID(cmd.Player)
	if !ok {
		s.reject(r, event.ReasonUnknownPlayer)
		return
	}
	if s.state.Incapacitated(e) {
		s.reject(r, event.ReasonIncapacitated)
		return
	}
	slots, ok := s.state.Slots.Get(e)
	if !ok {
		s.reject(r, event.ReasonSlotEmpty)
		return
	}
	binding, ok := slots.Slots[cmd.Slot]
	if !ok {
		s.reject(r, event.ReasonSlotEmpty)
		return
	}
	r.Ability = binding.Ability

	now := s.state.Clock.Elapsed
	if now < binding.NextAvailable {
		s.reject(r, event.ReasonOnCooldown)
		return
	}
	def := s.catalog.MustGet(binding.Ability)
	if s.enforceManaCost && def.ManaCost > 0 {
		m, ok := s.state.Manas.Get(e)
		if !ok || m.Current < def.ManaCost {
			s.reject(r, event.ReasonInsufficientMana)
			return
		}
		m.Current -= def.ManaCost
	}
	if err := r.Validate(context.Background()); err != nil {
		s.log.Error("validate cast", zap.Error(err))
		return
	}

	binding.NextAvailable = now + def.Cooldown
	s.state.SpawnAbility(&component.SpawnedAbility{
		Request: r,
		Lane:    p.CurrentLane,
		Effects: def.Effects,
		Fresh:   true,
	})

	s.log.Debug("ability cast",
		zap.String("request", r.ID.String()),
		zap.Uint8("player", uint8(cmd.Player)),
		zap.String("name", def.Name),
		zap.Int("lane", p.CurrentLane),
		zap.Float64("next_available", binding.NextAvailable),
	)
	event.Emit(s.bus, event.AbilityCast{
		PlayerID:  cmd.Player,
		AbilityID: def.ID,
		Lane:      p.CurrentLane,
		RequestID: r.ID.String(),
	})
}

func (s *InputSystem) changeLane(cmd input.LaneChange) {
	rejected := func(reason event.Reason) {
		s.log.Warn("lane change rejected",
			zap.Uint8("player", uint8(cmd.Player)),
			zap.Int("delta", cmd.Delta),
			zap.String("reason", string(reason)),
		)
		event.Emit(s.bus, event.RequestRejected{PlayerID: cmd.Player, Delta: cmd.Delta, Reason: reason})
	}

	e, p, ok := s.state.PlayerByID(cmd.Player)
	if !ok {
		rejected(event.ReasonUnknownPlayer)
		return
	}
	if s.state.Incapacitated(e) {
		rejected(event.ReasonIncapacitated)
		return
	}
	next := p.TargetLane + cmd.Delta
	if !s.state.Lanes.Valid(next) {
		rejected(event.ReasonLaneOutOfBounds)
		return
	}
	p.TargetLane = next
	p.Moving = true
}
