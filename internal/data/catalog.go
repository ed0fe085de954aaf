package data

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/obelisk/lanedefense/internal/stat"
	"gopkg.in/yaml.v3"
)

//go:embed yaml/abilities.yaml
var embeddedAbilities []byte

// AbilityCatalog holds all ability definitions indexed by id. Read-only after load.
type AbilityCatalog struct {
	abilities map[AbilityID]*AbilityDefinition
	ids       []AbilityID
}

// Get returns an ability by id.
func (c *AbilityCatalog) Get(id AbilityID) (*AbilityDefinition, bool) {
	d, ok := c.abilities[id]
	return d, ok
}

// MustGet returns an ability by id. Ids only come from static tables and UI
// bindings, so a miss means the data table is broken: it panics.
func (c *AbilityCatalog) MustGet(id AbilityID) *AbilityDefinition {
	d, ok := c.abilities[id]
	if !ok {
		panic(fmt.Sprintf("data: unknown ability id %d", id))
	}
	return d
}

// Count returns total loaded abilities.
func (c *AbilityCatalog) Count() int {
	return len(c.abilities)
}

// All returns every definition ordered by id.
func (c *AbilityCatalog) All() []*AbilityDefinition {
	out := make([]*AbilityDefinition, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.abilities[id])
	}
	return out
}

// ByRole returns the definitions in one id namespace, ordered by id.
func (c *AbilityCatalog) ByRole(r Role) []*AbilityDefinition {
	var out []*AbilityDefinition
	for _, id := range c.ids {
		if id.Role() == r {
			out = append(out, c.abilities[id])
		}
	}
	return out
}

// --- YAML loading ---

type buffEntry struct {
	Stat       string  `yaml:"stat"`
	Expiry     float64 `yaml:"expiry"`
	Percentage float64 `yaml:"percentage"`
	Amount     float64 `yaml:"amount"`
}

type attackEntry struct {
	DamageType string  `yaml:"damage_type"`
	MinDamage  int     `yaml:"min_damage"`
	MaxDamage  int     `yaml:"max_damage"`
	Radius     float64 `yaml:"radius"`
}

type healEntry struct {
	BurstHeal float64 `yaml:"burst_heal"`
}

type reviveEntry struct {
	ReviveTime float64 `yaml:"revive_time"`
}

type visualEntry struct {
	Effect     string `yaml:"effect"`
	FrameStart int    `yaml:"frame_start"`
	FrameEnd   int    `yaml:"frame_end"`
}

// effectEntry has exactly one field set.
type effectEntry struct {
	Buff        *buffEntry   `yaml:"buff"`
	Attack      *attackEntry `yaml:"attack"`
	AttackArea  *attackEntry `yaml:"attack_area"`
	Heal        *healEntry   `yaml:"heal"`
	Revive      *reviveEntry `yaml:"revive"`
	SpawnEffect *visualEntry `yaml:"spawn_effect"`
}

type abilityEntry struct {
	ID            AbilityID     `yaml:"id"`
	Name          string        `yaml:"name"`
	Description   string        `yaml:"description"`
	XPCost        int           `yaml:"xp_cost"`
	Prerequisites []AbilityID   `yaml:"prerequisites"`
	Passive       bool          `yaml:"passive"`
	Slot          int           `yaml:"slot"`
	Cooldown      float64       `yaml:"cooldown"`
	ManaCost      float64       `yaml:"mana_cost"`
	Effects       []effectEntry `yaml:"effects"`
}

type abilityListFile struct {
	Abilities []abilityEntry `yaml:"abilities"`
}

// DefaultAbilityCatalog parses the catalog compiled into the binary.
func DefaultAbilityCatalog() (*AbilityCatalog, error) {
	return ParseAbilityCatalog(embeddedAbilities)
}

// LoadAbilityCatalog loads ability definitions from a YAML file.
func LoadAbilityCatalog(path string) (*AbilityCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read abilities: %w", err)
	}
	return ParseAbilityCatalog(raw)
}

// ParseAbilityCatalog decodes and validates a YAML ability table.
func ParseAbilityCatalog(raw []byte) (*AbilityCatalog, error) {
	var f abilityListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse abilities: %w", err)
	}
	c := &AbilityCatalog{
		abilities: make(map[AbilityID]*AbilityDefinition, len(f.Abilities)),
		ids:       make([]AbilityID, 0, len(f.Abilities)),
	}
	for i := range f.Abilities {
		e := &f.Abilities[i]
		if e.ID.Role() == RoleInvalid {
			return nil, fmt.Errorf("ability %d (%s): id outside role namespaces", e.ID, e.Name)
		}
		if _, dup := c.abilities[e.ID]; dup {
			return nil, fmt.Errorf("ability %d: duplicate id", e.ID)
		}
		if !e.Passive && e.Slot < 1 {
			return nil, fmt.Errorf("ability %d (%s): active ability needs a slot", e.ID, e.Name)
		}
		effects := make([]Effect, 0, len(e.Effects))
		for j := range e.Effects {
			eff, err := e.Effects[j].decode()
			if err != nil {
				return nil, fmt.Errorf("ability %d (%s) effect %d: %w", e.ID, e.Name, j, err)
			}
			effects = append(effects, eff)
		}
		c.abilities[e.ID] = &AbilityDefinition{
			ID:            e.ID,
			Name:          e.Name,
			Description:   e.Description,
			XPCost:        e.XPCost,
			Prerequisites: e.Prerequisites,
			Passive:       e.Passive,
			Slot:          e.Slot,
			Cooldown:      e.Cooldown,
			ManaCost:      e.ManaCost,
			Effects:       effects,
		}
		c.ids = append(c.ids, e.ID)
	}
	for _, id := range c.ids {
		for _, pre := range c.abilities[id].Prerequisites {
			if _, ok := c.abilities[pre]; !ok {
				return nil, fmt.Errorf("ability %d: unknown prerequisite %d", id, pre)
			}
		}
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return c, nil
}

func (e *effectEntry) decode() (Effect, error) {
	var out []Effect
	if e.Buff != nil {
		st, ok := buffStatNames[e.Buff.Stat]
		if !ok {
			return nil, fmt.Errorf("unknown buff stat %q", e.Buff.Stat)
		}
		out = append(out, BuffEffect{Stat: st, Buff: stat.Buff{
			Expiry:     e.Buff.Expiry,
			Percentage: e.Buff.Percentage,
			Amount:     e.Buff.Amount,
		}})
	}
	if e.Attack != nil {
		d, err := e.Attack.detail()
		if err != nil {
			return nil, err
		}
		out = append(out, AttackEffect{Detail: d})
	}
	if e.AttackArea != nil {
		d, err := e.AttackArea.detail()
		if err != nil {
			return nil, err
		}
		if e.AttackArea.Radius <= 0 {
			return nil, fmt.Errorf("attack_area radius must be positive")
		}
		out = append(out, AttackAreaEffect{Detail: d, Radius: e.AttackArea.Radius})
	}
	if e.Heal != nil {
		out = append(out, HealEffect{BurstHeal: e.Heal.BurstHeal})
	}
	if e.Revive != nil {
		out = append(out, ReviveEffect{ReviveTime: e.Revive.ReviveTime})
	}
	if e.SpawnEffect != nil {
		if e.SpawnEffect.FrameEnd < e.SpawnEffect.FrameStart {
			return nil, fmt.Errorf("spawn_effect %q: frame_end before frame_start", e.SpawnEffect.Effect)
		}
		out = append(out, VisualEffect{
			EffectID:   e.SpawnEffect.Effect,
			FrameStart: e.SpawnEffect.FrameStart,
			FrameEnd:   e.SpawnEffect.FrameEnd,
		})
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("expected exactly one effect kind, got %d", len(out))
	}
	return out[0], nil
}

func (a *attackEntry) detail() (AttackDetail, error) {
	dt, ok := damageTypeNames[a.DamageType]
	if !ok {
		return AttackDetail{}, fmt.Errorf("unknown damage type %q", a.DamageType)
	}
	if a.MinDamage < 0 || a.MaxDamage < a.MinDamage {
		return AttackDetail{}, fmt.Errorf("bad damage range %d-%d", a.MinDamage, a.MaxDamage)
	}
	return AttackDetail{DamageType: dt, MinDamage: a.MinDamage, MaxDamage: a.MaxDamage}, nil
}
