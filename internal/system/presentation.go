package system

import (
	"strings"

	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/core/event"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/presenter"
	"github.com/obelisk/lanedefense/internal/world"
)

// SubscribePresentation forwards simulation events that have an audio or
// UI side to the presenter.
func SubscribePresentation(bus *event.Bus, state *world.State, catalog *data.AbilityCatalog, view presenter.Presenter, log *zap.Logger) {
	event.Subscribe(bus, func(ev event.WaveSpawned) {
		view.PlayCue(presenter.CueWaveSpawned)
	})
	event.Subscribe(bus, func(ev event.EndOfDay) {
		view.PlayCue(presenter.CueEndOfDay)
	})
	event.Subscribe(bus, func(ev event.RedrawAbilityUI) {
		_, p, ok := state.PlayerByID(ev.PlayerID)
		if !ok {
			return
		}
		names := make([]string, 0, len(p.Abilities))
		for _, id := range p.Abilities {
			names = append(names, catalog.MustGet(id).Name)
		}
		view.UpdateText(presenter.AbilitiesKey(int(ev.PlayerID)), strings.Join(names, ", "))
	})
	event.Subscribe(bus, func(ev event.RequestRejected) {
		log.Debug("request rejected delivered",
			zap.Uint8("player", uint8(ev.PlayerID)),
			zap.String("reason", string(ev.Reason)),
		)
	})
}
