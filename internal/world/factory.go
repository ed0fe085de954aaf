package world

import (
	"github.com/obelisk/lanedefense/internal/component"
	"github.com/obelisk/lanedefense/internal/core/ecs"
	"github.com/obelisk/lanedefense/internal/data"
	"github.com/obelisk/lanedefense/internal/stat"
)

// EnemyTemplate holds the fixed stats of one enemy kind.
type EnemyTemplate struct {
	Health       float64
	Regeneration float64
	MinDamage    int
	MaxDamage    int
	AttackSpeed  float64
	Armour       float64
	XP           int
}

var enemyTemplates = map[data.EnemyKind]EnemyTemplate{
	data.EnemyWolf: {Health: 30, Regeneration: 0, MinDamage: 3, MaxDamage: 5, AttackSpeed: 1.0, Armour: 0, XP: 10},
	data.EnemyBear: {Health: 50, Regeneration: 0.1, MinDamage: 9, MaxDamage: 12, AttackSpeed: 0.95, Armour: 1, XP: 25},
}

// Template returns the stats for kind. Unknown kinds panic.
func Template(kind data.EnemyKind) EnemyTemplate {
	t, ok := enemyTemplates[kind]
	if !ok {
		panic("world: no template for " + kind.String())
	}
	return t
}

// Player starting stats.
const (
	playerAttribute   = 10
	playerHealth      = 100
	playerHealthRegen = 1
	playerMana        = 200
	playerMovement    = 50
	playerMinDamage   = 10
	playerMaxDamage   = 15
	playerAttackSpeed = 1.0
	playerCritChance  = 0.1
	playerArmour      = 2
)

// SpawnPlayer creates player id standing in lane. Stats start dirty so the
// first refresh derives movement, max health and max mana from them.
func (s *State) SpawnPlayer(id data.PlayerID, lane int) ecs.EntityID {
	e := s.ECS.CreateEntity()
	x := s.Lanes.X(lane)
	s.Positions.Set(e, &component.Position{X: x, Y: s.Lanes.PlayerY()})
	s.Players.Set(e, &component.Player{ID: id, CurrentLane: lane, TargetLane: lane})
	s.Stats.Set(e, &component.Stats{
		Strength:     stat.New(playerAttribute),
		Agility:      stat.New(playerAttribute),
		Intelligence: stat.New(playerAttribute),
		Dirty:        true,
	})
	s.Healths.Set(e, component.NewHealth(playerHealth, playerHealthRegen))
	s.Manas.Set(e, component.NewMana(playerMana, s.manaRegen))
	s.Movements.Set(e, &component.Movement{Speed: stat.New(playerMovement)})
	s.Attacks.Set(e, &component.BaseAttack{
		Range:      s.Lanes.MeleeRange(),
		Speed:      stat.New(playerAttackSpeed),
		MinDamage:  playerMinDamage,
		MaxDamage:  playerMaxDamage,
		CritChance: playerCritChance,
	})
	s.Defences.Set(e, &component.Defence{Armour: stat.New(playerArmour)})
	s.Slots.Set(e, component.NewActionSlots())
	s.Animations.Set(e, &component.Animation{State: component.AnimDefault})
	s.players[id] = e
	return e
}

// SpawnEnemy creates an enemy of kind at lane's spawn point offset by
// (dx, dy).
func (s *State) SpawnEnemy(kind data.EnemyKind, lane int, dx, dy float64) ecs.EntityID {
	t := Template(kind)
	e := s.ECS.CreateEntity()
	x, y := s.Lanes.Spawn(lane)
	_, ty := s.Lanes.Target(lane)
	s.Positions.Set(e, &component.Position{X: x + dx, Y: y + dy})
	s.Enemies.Set(e, &component.Enemy{Kind: kind, Lane: lane, TargetY: ty, XPReward: t.XP})
	s.Healths.Set(e, component.NewHealth(t.Health, t.Regeneration))
	s.Attacks.Set(e, &component.BaseAttack{
		Range:     s.Lanes.MeleeRange(),
		Speed:     stat.New(t.AttackSpeed),
		MinDamage: t.MinDamage,
		MaxDamage: t.MaxDamage,
	})
	s.Defences.Set(e, &component.Defence{Armour: stat.New(t.Armour)})
	s.Targets.Set(e, &component.AttackTarget{})
	s.Animations.Set(e, &component.Animation{State: component.AnimDefault})
	return e
}

// SpawnAbility stores an accepted cast until the apply step resolves it.
func (s *State) SpawnAbility(a *component.SpawnedAbility) ecs.EntityID {
	e := s.ECS.CreateEntity()
	s.Spawned.Set(e, a)
	return e
}
