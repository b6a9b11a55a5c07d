package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type Catalogs struct {
	Items      ItemCatalog
	BuildPaths BuildPathCatalog
	Weathers   WeatherCatalog
}

type ItemCatalog struct {
	Defs   map[string]ItemDef
	IDs    []string // sorted
	Digest string
}

// StatBlock is the additive contribution of an item (or the base line of a
// champion) to effective stats.
type StatBlock struct {
	Health      int `json:"health,omitempty"`
	Attack      int `json:"attack,omitempty"`
	Ability     int `json:"ability,omitempty"`
	AttackSpeed int `json:"attack_speed,omitempty"`
	Armor       int `json:"armor,omitempty"`
	MagicResist int `json:"magic_resist,omitempty"`
}

type ItemDef struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Cost    int       `json:"cost"`
	Stats   StatBlock `json:"stats"`
	Passive string    `json:"passive,omitempty"`
	Roles   []string  `json:"roles,omitempty"`
}

// Passive ids in the item catalog. The closed set matters: effective-stat
// recomputation applies these in a fixed order.
const (
	PassiveAbilityAmp   = "ability_amp"    // multiplies effective ability power
	PassiveHealingPower = "healing_power"  // sets the healing multiplier
	PassiveCritDamage   = "crit_damage"    // overrides the crit damage multiplier
	PassiveOnHitBurn    = "onhit_burn"     // on-hit % of target current health
	PassiveThorns       = "thorns_reflect" // reflects % of incoming damage
)

type BuildPathCatalog struct {
	ByRole map[string][]BuildVariant
	Digest string
}

type BuildVariant struct {
	ID    string   `json:"id"`
	Role  string   `json:"role"`
	Items []string `json:"items"`
}

type WeatherCatalog struct {
	Defs   map[string]WeatherDef
	IDs    []string // sorted
	Digest string
}

type WeatherDef struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rarity string  `json:"rarity"` // "common","uncommon","rare"
	Weight float64 `json:"weight"`

	DamageMult   float64 `json:"damage_mult"`
	GoldMult     float64 `json:"gold_mult"`
	MoveMult     float64 `json:"move_mult"`
	VisionMult   float64 `json:"vision_mult"`
	Invisibility bool    `json:"invisibility,omitempty"`
	Teleport     bool    `json:"teleport,omitempty"`
	Corruption   bool    `json:"corruption,omitempty"`
	GoldRain     bool    `json:"gold_rain,omitempty"`
	TiltSurge    bool    `json:"tilt_surge,omitempty"`
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadItems(filepath.Join(configDir, "items.json"), &c.Items); err != nil {
		return nil, err
	}
	if err := loadBuildPaths(filepath.Join(configDir, "build_paths.json"), &c.BuildPaths); err != nil {
		return nil, err
	}
	if err := loadWeathers(filepath.Join(configDir, "weathers.json"), &c.Weathers); err != nil {
		return nil, err
	}

	// Every build path entry must resolve to a known item.
	for role, variants := range c.BuildPaths.ByRole {
		for _, v := range variants {
			for _, id := range v.Items {
				if _, ok := c.Items.Defs[id]; !ok {
					return nil, fmt.Errorf("build_paths.json: role %s variant %s references unknown item %s", role, v.ID, id)
				}
			}
		}
	}
	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadItems(path string, out *ItemCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Defs = map[string]ItemDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("items.json: empty id")
		}
		if d.Cost <= 0 {
			return fmt.Errorf("items.json: %s: cost must be positive", d.ID)
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.IDs = ids
	return nil
}

func loadBuildPaths(path string, out *BuildPathCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []BuildVariant
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("build_paths.json: %w", err)
	}
	out.ByRole = map[string][]BuildVariant{}
	for _, v := range defs {
		if v.Role == "" || v.ID == "" {
			return fmt.Errorf("build_paths.json: variant missing id or role")
		}
		if len(v.Items) == 0 {
			return fmt.Errorf("build_paths.json: variant %s has no items", v.ID)
		}
		out.ByRole[v.Role] = append(out.ByRole[v.Role], v)
	}
	return nil
}

func loadWeathers(path string, out *WeatherCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []WeatherDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("weathers.json: %w", err)
	}
	out.Defs = map[string]WeatherDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("weathers.json: empty id")
		}
		if d.Weight <= 0 {
			return fmt.Errorf("weathers.json: %s: weight must be positive", d.ID)
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.IDs = ids
	return nil
}
