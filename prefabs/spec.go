package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// LoadSpec loads and decodes a prefab file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type BodySpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Gravity bool    `yaml:"gravity"`
}

type HealthSpec struct {
	Max           int     `yaml:"max"`
	Invincibility float64 `yaml:"invincibility"`
}

type HurtSpec struct {
	Flash        float64 `yaml:"flash"`
	FlashColor   Color   `yaml:"flash_color"`
	Trigger      string  `yaml:"trigger"`
	Bool         string  `yaml:"bool"`
	BoolDuration float64 `yaml:"bool_duration"`
}

type CueSpec struct {
	Clip  string  `yaml:"clip"`
	At    float64 `yaml:"at"`
	Event string  `yaml:"event"`
}

type RewardSpec struct {
	Points int    `yaml:"points"`
	Coins  int    `yaml:"coins"`
	Script string `yaml:"script"`
}

type PlayerSpec struct {
	Name      string     `yaml:"name"`
	Body      BodySpec   `yaml:"body"`
	Health    HealthSpec `yaml:"health"`
	Knockback float64    `yaml:"knockback"`
	Hurt      HurtSpec   `yaml:"hurt"`
	Stamina   struct {
		Max        float64 `yaml:"max"`
		DrainRate  float64 `yaml:"drain_rate"`
		RegenRate  float64 `yaml:"regen_rate"`
		MinToStart float64 `yaml:"min_to_start"`
	} `yaml:"stamina"`
	Movement struct {
		MoveSpeed    float64 `yaml:"move_speed"`
		JumpForce    float64 `yaml:"jump_force"`
		RollSpeed    float64 `yaml:"roll_speed"`
		RollDuration float64 `yaml:"roll_duration"`
		GroundBuffer float64 `yaml:"ground_buffer"`
	} `yaml:"movement"`
	Attack struct {
		Damage   int      `yaml:"damage"`
		Offset   float64  `yaml:"offset"`
		Radius   float64  `yaml:"radius"`
		Triggers []string `yaml:"triggers"`
	} `yaml:"attack"`
	Cues []CueSpec `yaml:"animation_cues"`
}

type EnemySpec struct {
	Name      string     `yaml:"name"`
	Body      BodySpec   `yaml:"body"`
	Health    HealthSpec `yaml:"health"`
	Knockback float64    `yaml:"knockback"`
	Stun      float64    `yaml:"stun"`
	Hurt      HurtSpec   `yaml:"hurt"`
	AI        struct {
		PatrolDistance    float64 `yaml:"patrol_distance"`
		PatrolSpeed       float64 `yaml:"patrol_speed"`
		WaitTime          float64 `yaml:"wait_time"`
		DetectionRange    float64 `yaml:"detection_range"`
		ChaseHysteresis   float64 `yaml:"chase_hysteresis"`
		AttackRange       float64 `yaml:"attack_range"`
		AttackSpeed       float64 `yaml:"attack_speed"`
		AttackCooldown    float64 `yaml:"attack_cooldown"`
		AttackDamage      int     `yaml:"attack_damage"`
		AttackRecovery    float64 `yaml:"attack_recovery"`
		AttackResolveTime float64 `yaml:"attack_resolve_time"`
		GroundProbeOffset float64 `yaml:"ground_probe_offset"`
		GroundProbeLength float64 `yaml:"ground_probe_length"`
		TurnMode          string  `yaml:"turn_mode"`
	} `yaml:"ai"`
	Reward RewardSpec `yaml:"reward"`
	Cues   []CueSpec  `yaml:"animation_cues"`
}

type BossSpec struct {
	Name   string     `yaml:"name"`
	Body   BodySpec   `yaml:"body"`
	Health HealthSpec `yaml:"health"`
	Hurt   HurtSpec   `yaml:"hurt"`
	Boss   struct {
		MoveSpeed             float64   `yaml:"move_speed"`
		DetectionRadius       float64   `yaml:"detection_radius"`
		IdealShootingDistance float64   `yaml:"ideal_shooting_distance"`
		KiteBackDistance      float64   `yaml:"kite_back_distance"`
		MeleeDamage           int       `yaml:"melee_damage"`
		MeleeRange            float64   `yaml:"melee_range"`
		MeleeOffset           float64   `yaml:"melee_offset"`
		MeleeCooldown         float64   `yaml:"melee_cooldown"`
		ShootCooldown         float64   `yaml:"shoot_cooldown"`
		ComboDelays           []float64 `yaml:"combo_delays"`
		Phase2Threshold       float64   `yaml:"phase2_threshold"`
		Phase3Threshold       float64   `yaml:"phase3_threshold"`
		PhaseFlash            float64   `yaml:"phase_flash"`
		Projectile            string    `yaml:"projectile"`
		ProjectileOffset      float64   `yaml:"projectile_offset"`
	} `yaml:"boss"`
	Reward RewardSpec `yaml:"reward"`
	Cues   []CueSpec  `yaml:"animation_cues"`
}

type ProjectileSpec struct {
	Name     string   `yaml:"name"`
	Body     BodySpec `yaml:"body"`
	Damage   int      `yaml:"damage"`
	Speed    float64  `yaml:"speed"`
	Lifetime float64  `yaml:"lifetime"`
	Radius   float64  `yaml:"radius"`
}

// PropSpec covers the static world props: coins, breakables, jump boosts
// and traps.
type PropSpec struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Body     BodySpec `yaml:"body"`
	Value    int      `yaml:"value"`
	CoinDrop int      `yaml:"coin_drop"`
	Force    float64  `yaml:"force"`
	Radius   float64  `yaml:"radius"`
}

func LoadPlayerSpec() (PlayerSpec, error) { return LoadSpec[PlayerSpec]("player.yaml") }

func LoadEnemySpec(name string) (EnemySpec, error) { return LoadSpec[EnemySpec](name) }

func LoadBossSpec(name string) (BossSpec, error) { return LoadSpec[BossSpec](name) }

func LoadProjectileSpec(name string) (ProjectileSpec, error) {
	return LoadSpec[ProjectileSpec](name)
}

func LoadPropSpec(name string) (PropSpec, error) { return LoadSpec[PropSpec](name) }

// Color decodes either a CSS color name ("red") or a hex string.
type Color struct {
	color.RGBA
	Set bool
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.RGBA = named
		c.Set = true
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.RGBA = color.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	c.Set = true
	return nil
}
