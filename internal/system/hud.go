package system

import (
	"sort"
	"time"

	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	coresys "github.com/obelisk/lanedefense/internal/core/system"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/presenter"
	"github.com/obelisk/lanedefense/internal/world"
)

// HUDSystem pushes HUD lines and health-bar fills that changed since the
// last tick. Phase 4 (Output).
type HUDSystem struct {
	state      *world.State
	catalog    *data.AbilityCatalog
	hud        *presenter.HUD
	view       presenter.Presenter
	totalWaves int

	text map[string]string
	bars map[ecs.EntityID]float64
}

func NewHUDSystem(state *world.State, catalog *data.AbilityCatalog, hud *presenter.HUD, view presenter.Presenter, totalWaves int) *HUDSystem {
	return &HUDSystem{
		state:      state,
		catalog:    catalog,
		hud:        hud,
		view:       view,
		totalWaves: totalWaves,
		text:       make(map[string]string),
		bars:       make(map[ecs.EntityID]float64),
	}
}

func (s *HUDSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *HUDSystem) Update(_ time.Duration) {
	now := s.state.Clock.Elapsed
	score := s.state.Score

	s.setText(presenter.KeyObelisk, s.hud.Obelisk(score.ObeliskHealth, s.state.ObeliskMaxHealth()))
	s.setText(presenter.KeyXP, s.hud.XP(score.XP))
	s.setText(presenter.KeyWave, s.hud.Wave(s.state.Wave.Index, s.totalWaves))

	s.state.AllPlayers(func(e ecs.EntityID, p *component.Player) {
		id := int(p.ID)
		if h, ok := s.state.Healths.Get(e); ok {
			s.setText(presenter.HealthKey(id), s.hud.Health(h.Current, h.Max.Value()))
		}
		if m, ok := s.state.Manas.Get(e); ok {
			s.setText(presenter.ManaKey(id), s.hud.Mana(m.Current, m.Max.Value()))
		}
		if slots, ok := s.state.Slots.Get(e); ok {
			nums := make([]int, 0, len(slots.Slots))
			for n := range slots.Slots {
				nums = append(nums, n)
			}
			sort.Ints(nums)
			for _, n := range nums {
				b := slots.Slots[n]
				name := s.catalog.MustGet(b.Ability).Name
				s.setText(presenter.SlotKey(id, n), s.hud.Cooldown(name, b.NextAvailable-now))
			}
		}
	})

	seen := make(map[ecs.EntityID]float64, len(s.bars))
	ecs.Each2(s.state.Healths, s.state.Positions, func(e ecs.EntityID, h *component.Health, _ *component.Position) {
		if s.state.ECS.PendingDestruction(e) {
			return
		}
		f := presenter.BarFraction(h.Current, h.Max.Value())
		if prev, ok := s.bars[e]; !ok || prev != f {
			s.view.SetHealthBar(e, f)
		}
		seen[e] = f
	})
	s.bars = seen
}

func (s *HUDSystem) setText(key, text string) {
	if s.text[key] == text {
		return
	}
	s.text[key] = text
	s.view.UpdateText(key, text)
}
