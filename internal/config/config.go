package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Lanes      LanesConfig      `toml:"lanes"`
	Vitals     VitalsConfig     `toml:"vitals"`
	Obelisk    ObeliskConfig    `toml:"obelisk"`
	Abilities  AbilitiesConfig  `toml:"abilities"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Data       DataConfig       `toml:"data"`
	HUD        HUDConfig        `toml:"hud"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate         time.Duration `toml:"tick_rate"`
	Seed             int64         `toml:"seed"` // 0 = seeded from wall clock
	DefaultGameSpeed float64       `toml:"default_game_speed"`
	PauseOnEndOfDay  bool          `toml:"pause_on_end_of_day"`
	FirstWaveDelay   float64       `toml:"first_wave_delay"` // game seconds
	ResumeDelay      float64       `toml:"resume_delay"`     // game seconds after the day screen closes
	InputQueueSize   int           `toml:"input_queue_size"`
	MaxInputsPerTick int           `toml:"max_inputs_per_tick"` // 0 = drain everything
}

type LanesConfig struct {
	Count         int       `toml:"count"`
	SpawnX        []float64 `toml:"spawn_x"`
	SpawnY        float64   `toml:"spawn_y"`
	TargetY       float64   `toml:"target_y"`
	PlayerOffsetY float64   `toml:"player_offset_y"`
	MeleeRange    float64   `toml:"melee_range"`
	EnemySpeed    float64   `toml:"enemy_speed"`
	SpawnJitter   float64   `toml:"spawn_jitter"`
	ArriveEpsilon float64   `toml:"arrive_epsilon"`
}

type VitalsConfig struct {
	HealthLerpRate          float64 `toml:"health_lerp_rate"` // health per second
	IncapacitationThreshold float64 `toml:"incapacitation_threshold"`
	ReviveFraction          float64 `toml:"revive_fraction"`
	ManaRegeneration        float64 `toml:"mana_regeneration"`
}

type ObeliskConfig struct {
	MaxHealth        int     `toml:"max_health"`
	AnnounceCooldown float64 `toml:"announce_cooldown"`
	AnnounceInverted bool    `toml:"announce_inverted"` // legacy last-now polarity
}

type AbilitiesConfig struct {
	EnforceManaCost bool `toml:"enforce_mana_cost"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // optional override of the builtin formulas
}

type DataConfig struct {
	Abilities string `toml:"abilities"` // empty = embedded table
	Waves     string `toml:"waves"`
}

type HUDConfig struct {
	Language string `toml:"language"` // BCP 47 tag for number formatting
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints the TOML decoder cannot.
func (c *Config) Validate() error {
	if c.Lanes.Count < 1 {
		return fmt.Errorf("lanes.count must be at least 1")
	}
	if len(c.Lanes.SpawnX) != c.Lanes.Count {
		return fmt.Errorf("lanes.spawn_x has %d entries, want %d", len(c.Lanes.SpawnX), c.Lanes.Count)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive")
	}
	if c.Simulation.InputQueueSize < 1 {
		return fmt.Errorf("simulation.input_queue_size must be at least 1")
	}
	if c.Obelisk.MaxHealth <= 0 {
		return fmt.Errorf("obelisk.max_health must be positive")
	}
	if c.Vitals.ReviveFraction <= 0 || c.Vitals.ReviveFraction > 1 {
		return fmt.Errorf("vitals.revive_fraction must be in (0, 1]")
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate:         50 * time.Millisecond,
			DefaultGameSpeed: 1.0,
			PauseOnEndOfDay:  true,
			FirstWaveDelay:   1.0,
			ResumeDelay:      3.0,
			InputQueueSize:   128,
			MaxInputsPerTick: 32,
		},
		Lanes: LanesConfig{
			Count:         3,
			SpawnX:        []float64{-480, -180, 120},
			SpawnY:        365,
			TargetY:       -300,
			PlayerOffsetY: 40,
			MeleeRange:    42,
			EnemySpeed:    60,
			SpawnJitter:   20,
			ArriveEpsilon: 3,
		},
		Vitals: VitalsConfig{
			HealthLerpRate:          100,
			IncapacitationThreshold: 0.5,
			ReviveFraction:          0.5,
			ManaRegeneration:        2,
		},
		Obelisk: ObeliskConfig{
			MaxHealth:        1000,
			AnnounceCooldown: 10,
		},
		Abilities: AbilitiesConfig{
			EnforceManaCost: true,
		},
		HUD: HUDConfig{
			Language: "en",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
