package engine

import "riftcast.gg/internal/sim/catalogs"

// Champion roles. TOP/MID/BOT are lane-bound; JUNGLE and SUPPORT roam and
// only participate in skirmishes and objectives.
const (
	RoleTop     = "TOP"
	RoleMid     = "MID"
	RoleBot     = "BOT"
	RoleJungle  = "JUNGLE"
	RoleSupport = "SUPPORT"
)

// Power curve tags for hidden stats.
const (
	CurveEarly = "early"
	CurveMid   = "mid"
	CurveLate  = "late"
)

// Identity is immutable after entity creation.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	Team int    `json:"team"` // 0 or 1
}

// Stats is the mutable combat sheet. Effective_* values are recomputed from
// base + items every tick by the item system; nothing accumulates into them.
type Stats struct {
	Gold int `json:"gold"`

	Health    int `json:"health"`
	MaxHealth int `json:"max_health"` // effective

	BaseMaxHealth   int `json:"base_max_health"`
	BaseAttack      int `json:"base_attack"`
	BaseAbility     int `json:"base_ability"`
	BaseAttackSpeed int `json:"base_attack_speed"`
	BaseArmor       int `json:"base_armor"`
	BaseMagicResist int `json:"base_magic_resist"`

	Attack      int `json:"attack"`
	Ability     int `json:"ability"`
	AttackSpeed int `json:"attack_speed"`
	Armor       int `json:"armor"`
	MagicResist int `json:"magic_resist"`

	CS      int `json:"cs"`
	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	KillStreak    int `json:"kill_streak"`
	LastTradeTick int `json:"last_trade_tick"`

	CritMult    float64 `json:"crit_mult"`
	HealingMult float64 `json:"healing_mult"`
}

// HiddenStats drive probabilistic outcomes. They are never exported to the
// opposing side's decision logic, only to event flavor.
type HiddenStats struct {
	Mechanics  float64 `json:"mechanics"`   // 0..1
	GameSense  float64 `json:"game_sense"`  // 0..1
	TiltResist float64 `json:"tilt_resist"` // 0..1
	Tilt       float64 `json:"tilt"`        // 0..1
	PowerCurve string  `json:"power_curve"` // early/mid/late
}

// ItemSnapshot is a copy of the catalog entry at purchase time, not a live
// reference; later catalog edits never change an ongoing match.
type ItemSnapshot struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Cost    int                `json:"cost"`
	Stats   catalogs.StatBlock `json:"stats"`
	Passive string             `json:"passive,omitempty"`
}

type Inventory struct {
	Items []ItemSnapshot `json:"items"`
}

func (inv *Inventory) Has(itemID string) bool {
	for _, it := range inv.Items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

// Leveling holds accumulated XP plus the pending buffer other systems stage
// awards into; the leveling system drains it once per tick.
type Leveling struct {
	Level   int `json:"level"`
	XP      int `json:"xp"`
	Pending int `json:"pending"`
}

// Abilities tracks per-slot unlock flags. Slot i unlocks when the champion
// reaches abilityUnlockLevels[i].
type Abilities struct {
	Unlocked [4]bool `json:"unlocked"`
}

// Entity is an opaque id plus a fixed component set. The shape never changes
// after setup; only component values mutate. A nil component means the entity
// does not carry that concern and systems skip it.
type Entity struct {
	ID        string
	Identity  Identity
	Stats     *Stats
	Hidden    *HiddenStats
	Items     *Inventory
	Leveling  *Leveling
	Abilities *Abilities
}

// StageXP adds to an entity's pending XP buffer. Safe on entities without a
// leveling component.
func StageXP(e *Entity, amount int) {
	if e == nil || e.Leveling == nil || amount <= 0 {
		return
	}
	e.Leveling.Pending += amount
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampMin(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}
