package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TickRateHz int `yaml:"tick_rate_hz"`
	TickLimit  int `yaml:"tick_limit"`

	// Phase thresholds (tick exclusive upper bounds; late runs to the limit).
	EarlyUntilTick int `yaml:"early_until_tick"`
	MidUntilTick   int `yaml:"mid_until_tick"`

	Lane      Lane      `yaml:"lane"`
	Leveling  Leveling  `yaml:"leveling"`
	Weather   Weather   `yaml:"weather"`
	Combat    Combat    `yaml:"combat"`
	Objective Objective `yaml:"objective"`
}

type Lane struct {
	WaveIntervalTicks  int     `yaml:"wave_interval_ticks"`
	WaveBatch          int     `yaml:"wave_batch"`
	DoubleCSThreshold  float64 `yaml:"double_cs_threshold"`
	GoldPerCS          int     `yaml:"gold_per_cs"`
	TradeBaseChance    float64 `yaml:"trade_base_chance"`
	TradeGapScale      float64 `yaml:"trade_gap_scale"`
	TradeBaseDamage    int     `yaml:"trade_base_damage"`
	TradeCooldownTicks int     `yaml:"trade_cooldown_ticks"`
	KillBaseGold       int     `yaml:"kill_base_gold"`
	KillStreakGold     int     `yaml:"kill_streak_gold"`
	KillTiltIncrease   float64 `yaml:"kill_tilt_increase"`
	AnnihilatePerTick  int     `yaml:"annihilate_per_tick"`
	PushRate           float64 `yaml:"push_rate"`
}

type Leveling struct {
	XPPerCS        int `yaml:"xp_per_cs"`
	XPPerKill      int `yaml:"xp_per_kill"`
	XPPerAssist    int `yaml:"xp_per_assist"`
	XPPerObjective int `yaml:"xp_per_objective"`

	HealthPerLevel      int `yaml:"health_per_level"`
	AttackPerLevel      int `yaml:"attack_per_level"`
	AbilityPerLevel     int `yaml:"ability_per_level"`
	ArmorPerLevel       int `yaml:"armor_per_level"`
	MagicResistPerLevel int `yaml:"magic_resist_per_level"`
}

type Weather struct {
	MinDurationTicks int     `yaml:"min_duration_ticks"`
	MaxDurationTicks int     `yaml:"max_duration_ticks"`
	ForecastDepth    int     `yaml:"forecast_depth"`
	GoldRainChance   float64 `yaml:"gold_rain_chance"`
	GoldRainMax      int     `yaml:"gold_rain_max"`
	TiltSurge        float64 `yaml:"tilt_surge"`
}

type Combat struct {
	SkirmishBaseChance float64 `yaml:"skirmish_base_chance"`
	SkirmishDamage     int     `yaml:"skirmish_damage"`
	KillBaseGold       int     `yaml:"kill_base_gold"`
	KillTiltIncrease   float64 `yaml:"kill_tilt_increase"`
}

type Objective struct {
	TowersPerLane    int     `yaml:"towers_per_lane"`
	TowerHealth      int     `yaml:"tower_health"`
	PressureDamage   float64 `yaml:"pressure_damage"`
	TowerGoldPerTeam int     `yaml:"tower_gold_per_team"`
	NexusHealth      int     `yaml:"nexus_health"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Defaults match configs/tuning.yaml and keep tests and snapshot resumes
// working without a config file on disk.
func Defaults() Tuning {
	return Tuning{
		TickRateHz:     2,
		TickLimit:      900,
		EarlyUntilTick: 300,
		MidUntilTick:   600,
		Lane: Lane{
			WaveIntervalTicks:  10,
			WaveBatch:          6,
			DoubleCSThreshold:  0.75,
			GoldPerCS:          21,
			TradeBaseChance:    0.30,
			TradeGapScale:      0.20,
			TradeBaseDamage:    80,
			TradeCooldownTicks: 5,
			KillBaseGold:       300,
			KillStreakGold:     100,
			KillTiltIncrease:   0.1,
			AnnihilatePerTick:  2,
			PushRate:           0.02,
		},
		Leveling: Leveling{
			XPPerCS:             30,
			XPPerKill:           250,
			XPPerAssist:         120,
			XPPerObjective:      200,
			HealthPerLevel:      90,
			AttackPerLevel:      4,
			AbilityPerLevel:     5,
			ArmorPerLevel:       3,
			MagicResistPerLevel: 2,
		},
		Weather: Weather{
			MinDurationTicks: 5,
			MaxDurationTicks: 12,
			ForecastDepth:    3,
			GoldRainChance:   0.25,
			GoldRainMax:      40,
			TiltSurge:        0.02,
		},
		Combat: Combat{
			SkirmishBaseChance: 0.12,
			SkirmishDamage:     120,
			KillBaseGold:       300,
			KillTiltIncrease:   0.1,
		},
		Objective: Objective{
			TowersPerLane:    2,
			TowerHealth:      1200,
			PressureDamage:   40,
			TowerGoldPerTeam: 150,
			NexusHealth:      2400,
		},
	}
}
