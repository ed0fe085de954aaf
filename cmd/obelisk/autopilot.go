package main

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/core/event"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/game"
)

// autopilot plays the heroes: at every day end it spends the shared xp on
// the cheapest affordable upgrades and closes the day screen, and on every
// wave it fires whatever slots are ready. Handlers run inside the game
// loop, so reading state here is safe.
type autopilot struct {
	g     *game.Game
	roles map[data.PlayerID]data.Role
	log   *zap.Logger
}

func newAutopilot(g *game.Game, log *zap.Logger) *autopilot {
	roles := make(map[data.PlayerID]data.Role)
	all := []data.Role{data.RoleHealer, data.RoleRogue, data.RoleWarrior}
	g.State().AllPlayers(func(_ ecs.EntityID, p *component.Player) {
		roles[p.ID] = all[int(p.ID)%len(all)]
	})
	return &autopilot{g: g, roles: roles, log: log}
}

func (a *autopilot) attach() {
	event.Subscribe(a.g.Bus(), func(ev event.EndOfDay) {
		a.shop()
		a.g.ResumeDay()
	})
	event.Subscribe(a.g.Bus(), func(ev event.WaveSpawned) {
		a.castReady()
	})
	event.Subscribe(a.g.Bus(), func(ev event.PlayerIncapacitated) {
		a.castReady()
	})
}

func (a *autopilot) shop() {
	budget := a.g.State().Score.XP
	a.g.State().AllPlayers(func(_ ecs.EntityID, p *component.Player) {
		def := a.pick(p, budget)
		if def == nil {
			return
		}
		budget -= def.XPCost
		a.log.Info("autopilot purchase",
			zap.Uint8("player", uint8(p.ID)),
			zap.String("ability", def.Name),
			zap.Int("budget_left", budget),
		)
		a.g.RequestPurchase(p.ID, def.ID)
	})
}

// pick returns the cheapest ability p can buy right now, or nil.
func (a *autopilot) pick(p *component.Player, budget int) *data.AbilityDefinition {
	cat := a.g.Catalog()
	candidates := append(cat.ByRole(data.RoleGeneral), cat.ByRole(a.roles[p.ID])...)
	var best *data.AbilityDefinition
	for _, def := range candidates {
		if def.XPCost > budget || slices.Contains(p.Abilities, def.ID) {
			continue
		}
		ready := true
		for _, pre := range def.Prerequisites {
			if !slices.Contains(p.Abilities, pre) {
				ready = false
				break
			}
		}
		if ready && (best == nil || def.XPCost < best.XPCost) {
			best = def
		}
	}
	return best
}

func (a *autopilot) castReady() {
	s := a.g.State()
	now := s.Clock.Elapsed
	s.AllPlayers(func(e ecs.EntityID, p *component.Player) {
		if s.Incapacitated(e) {
			return
		}
		slots, ok := s.Slots.Get(e)
		if !ok {
			return
		}
		for _, n := range slices.Sorted(maps.Keys(slots.Slots)) {
			if slots.Slots[n].NextAvailable <= now {
				a.g.RequestCast(p.ID, n)
			}
		}
	})
}
