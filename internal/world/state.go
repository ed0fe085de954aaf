package world

import (
	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/config"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/data"
)

// PlayerScore is shared by every player. XP is the wallet spent on ability
// purchases.
type PlayerScore struct {
	XP                int
	ObeliskHealth     int
	LastObeliskDamage float64 // game time of the last obelisk announcement
	GameOver          bool
}

// CurrentWave tracks the wave scheduler. Index is the next wave to spawn.
type CurrentWave struct {
	Index        int
	NextWaveTime float64
}

// State is the whole simulation state threaded through every system.
// Accessed only from the game loop goroutine, no locks needed.
type State struct {
	ECS *ecs.World

	Positions  *ecs.PtrComponentStore[component.Position]
	Healths    *ecs.PtrComponentStore[component.Health]
	Manas      *ecs.PtrComponentStore[component.Mana]
	Stats      *ecs.PtrComponentStore[component.Stats]
	Movements  *ecs.PtrComponentStore[component.Movement]
	Attacks    *ecs.PtrComponentStore[component.BaseAttack]
	Defences   *ecs.PtrComponentStore[component.Defence]
	Players    *ecs.PtrComponentStore[component.Player]
	Enemies    *ecs.PtrComponentStore[component.Enemy]
	Targets    *ecs.PtrComponentStore[component.AttackTarget]
	Incaps     *ecs.PtrComponentStore[component.Incapacitated]
	Animations *ecs.PtrComponentStore[component.Animation]
	Slots      *ecs.PtrComponentStore[component.ActionSlots]
	Spawned    *ecs.PtrComponentStore[component.SpawnedAbility]

	Score PlayerScore
	Wave  CurrentWave
	Clock Clock
	Lanes Lanes

	players          map[data.PlayerID]ecs.EntityID
	manaRegen        float64
	obeliskMaxHealth int
	firstWaveDelay   float64
}

func NewState(cfg *config.Config) *State {
	w := ecs.NewWorld()
	r := w.Registry()
	s := &State{
		ECS:        w,
		Positions:  ecs.Store[component.Position](r),
		Healths:    ecs.Store[component.Health](r),
		Manas:      ecs.Store[component.Mana](r),
		Stats:      ecs.Store[component.Stats](r),
		Movements:  ecs.Store[component.Movement](r),
		Attacks:    ecs.Store[component.BaseAttack](r),
		Defences:   ecs.Store[component.Defence](r),
		Players:    ecs.Store[component.Player](r),
		Enemies:    ecs.Store[component.Enemy](r),
		Targets:    ecs.Store[component.AttackTarget](r),
		Incaps:     ecs.Store[component.Incapacitated](r),
		Animations: ecs.Store[component.Animation](r),
		Slots:      ecs.Store[component.ActionSlots](r),
		Spawned:    ecs.Store[component.SpawnedAbility](r),

		Clock: Clock{Speed: cfg.Simulation.DefaultGameSpeed},
		Lanes: NewLanes(cfg.Lanes),

		players:          make(map[data.PlayerID]ecs.EntityID, cfg.Lanes.Count),
		manaRegen:        cfg.Vitals.ManaRegeneration,
		obeliskMaxHealth: cfg.Obelisk.MaxHealth,
		firstWaveDelay:   cfg.Simulation.FirstWaveDelay,
	}
	s.resetScore()
	return s
}

func (s *State) ObeliskMaxHealth() int { return s.obeliskMaxHealth }

func (s *State) resetScore() {
	s.Score = PlayerScore{ObeliskHealth: s.obeliskMaxHealth}
	s.Wave = CurrentWave{NextWaveTime: s.Clock.Elapsed + s.firstWaveDelay}
}

// PlayerByID returns the live entity of player id.
func (s *State) PlayerByID(id data.PlayerID) (ecs.EntityID, *component.Player, bool) {
	e, ok := s.players[id]
	if !ok || !s.ECS.Alive(e) {
		return ecs.Nil, nil, false
	}
	p, ok := s.Players.Get(e)
	if !ok {
		return ecs.Nil, nil, false
	}
	return e, p, true
}

func (s *State) PlayerCount() int { return s.Players.Len() }

// AllPlayers visits every player in spawn order.
func (s *State) AllPlayers(fn func(ecs.EntityID, *component.Player)) {
	s.Players.Each(fn)
}

// Incapacitated reports whether e is a player at zero health.
func (s *State) Incapacitated(e ecs.EntityID) bool {
	return s.Incaps.Has(e)
}

// Active reports whether e exists and is not being destroyed this tick.
func (s *State) Active(e ecs.EntityID) bool {
	return !e.IsZero() && s.ECS.Alive(e) && !s.ECS.PendingDestruction(e)
}

// LivingEnemy reports whether e is an active enemy with health left.
func (s *State) LivingEnemy(e ecs.EntityID) bool {
	if !s.Active(e) || !s.Enemies.Has(e) {
		return false
	}
	h, ok := s.Healths.Get(e)
	return ok && h.Current > 0
}

// EnemiesInLane visits active, living enemies of one lane in spawn order.
// Returning false from fn stops the walk.
func (s *State) EnemiesInLane(lane int, fn func(ecs.EntityID, *component.Enemy, *component.Position, *component.Health) bool) {
	for _, e := range s.Enemies.IDs() {
		en, _ := s.Enemies.Get(e)
		if en.Lane != lane || !s.Active(e) {
			continue
		}
		h, ok := s.Healths.Get(e)
		if !ok || h.Current <= 0 {
			continue
		}
		pos, ok := s.Positions.Get(e)
		if !ok {
			continue
		}
		if !fn(e, en, pos, h) {
			return
		}
	}
}

// Despawn queues e for removal at the end of the tick.
func (s *State) Despawn(e ecs.EntityID) {
	if p, ok := s.Players.Get(e); ok && s.players[p.ID] == e {
		delete(s.players, p.ID)
	}
	s.ECS.MarkForDestruction(e)
}

// DespawnAll queues every entity.
func (s *State) DespawnAll() {
	seen := make(map[ecs.EntityID]struct{})
	for _, store := range []interface{ IDs() []ecs.EntityID }{
		s.Positions, s.Healths, s.Spawned, s.Players, s.Enemies,
	} {
		for _, e := range store.IDs() {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			s.Despawn(e)
		}
	}
}

// Reset prepares a fresh run: the score and wave counter return to their
// initial values and every actor is queued for removal. Players are
// respawned by the caller once the queue is flushed.
func (s *State) Reset() {
	s.DespawnAll()
	s.resetScore()
}
