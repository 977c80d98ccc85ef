package config

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Session holds the configuration for one play or simulation session.
type Session struct {
	TickRate int     `yaml:"tick_rate"`
	Gravity  float64 `yaml:"gravity"`
	LogLevel string  `yaml:"log_level"`
	Seed     int64   `yaml:"seed"`

	// Prefabs
	PrefabDir string `yaml:"prefab_dir"`
	HotReload bool   `yaml:"hot_reload"`

	// Economy
	StartingBalance     int `yaml:"starting_balance"`
	DeathPenaltyPercent int `yaml:"death_penalty_percent"`

	// Death handling, seconds
	RespawnDelay      float64 `yaml:"respawn_delay"`
	EnemyRemovalDelay float64 `yaml:"enemy_removal_delay"`

	Upgrades  Upgrades  `yaml:"upgrades"`
	Batch     Batch     `yaml:"batch"`
	Encounter Encounter `yaml:"encounter"`
}

// Upgrades prices the player's health and attack levels. From level n the
// next level costs base * multiplier^(n-1), rounded.
type Upgrades struct {
	HealthBaseCost       int     `yaml:"health_base_cost"`
	HealthCostMultiplier float64 `yaml:"health_cost_multiplier"`
	HealthAmount         int     `yaml:"health_amount"`
	AttackBaseCost       int     `yaml:"attack_base_cost"`
	AttackCostMultiplier float64 `yaml:"attack_cost_multiplier"`
	AttackAmount         int     `yaml:"attack_amount"`
}

// Batch configures headless simulation runs.
type Batch struct {
	Runs     int `yaml:"runs"`
	Workers  int `yaml:"workers"`
	MaxTicks int `yaml:"max_ticks"`
}

// Encounter lists what a session spawns.
type Encounter struct {
	Player     Placement   `yaml:"player"`
	Enemies    []Placement `yaml:"enemies"`
	Boss       *Placement  `yaml:"boss"`
	Coins      []Placement `yaml:"coins"`
	Breakables []Placement `yaml:"breakables"`
	JumpBoosts []Placement `yaml:"jump_boosts"`
	Traps      []Placement `yaml:"traps"`
	Ground     []Segment   `yaml:"ground"`
}

// Placement spawns Prefab centered at X, Y. An empty Prefab uses the
// default for the list it appears in.
type Placement struct {
	Prefab string  `yaml:"prefab"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

type Segment struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// Delta returns the fixed step in seconds.
func (s Session) Delta() float64 {
	if s.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(s.TickRate)
}

// Level parses LogLevel, falling back to info.
func (s Session) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(s.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Default returns the Session config with sensible defaults.
func Default() Session {
	return Session{
		TickRate:            60,
		Gravity:             -30,
		LogLevel:            "info",
		Seed:                1,
		PrefabDir:           "prefabs",
		StartingBalance:     0,
		DeathPenaltyPercent: 10,
		RespawnDelay:        2,
		EnemyRemovalDelay:   1,
		Upgrades: Upgrades{
			HealthBaseCost:       100,
			HealthCostMultiplier: 1.5,
			HealthAmount:         1,
			AttackBaseCost:       150,
			AttackCostMultiplier: 1.8,
			AttackAmount:         1,
		},
		Batch: Batch{
			Runs:     8,
			Workers:  4,
			MaxTicks: 60 * 120,
		},
		Encounter: Encounter{
			Player: Placement{Prefab: "player.yaml", X: 0, Y: 1},
			Enemies: []Placement{
				{Prefab: "enemy.yaml", X: 10, Y: 1},
				{Prefab: "enemy.yaml", X: 18, Y: 1},
			},
			Boss:       &Placement{Prefab: "boss.yaml", X: 45, Y: 1.5},
			Coins:      []Placement{{X: 3, Y: 0.5}, {X: 4, Y: 0.5}},
			Breakables: []Placement{{X: 6, Y: 0.5}},
			JumpBoosts: []Placement{{X: 24, Y: 0.5}},
			Ground: []Segment{
				{X1: -20, Y1: 0, X2: 70, Y2: 0},
			},
		},
	}
}

// Load loads the session config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Session, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}
