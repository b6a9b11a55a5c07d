package engine

import (
	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/tuning"
)

const maxLevel = 18

// Slot i unlocks when the champion reaches abilityUnlockLevels[i].
var abilityUnlockLevels = [4]int{2, 3, 6, 11}

// Levels whose level-up counts as a power spike.
var powerSpikeLevels = map[int]bool{6: true, 11: true, 16: true}

// xpTable[l] is the cumulative XP required to reach level l:
// xpTable[l] = xpTable[l-1] + 280 + 100*(l-2), level 1 costs nothing.
var xpTable = buildXPTable()

func buildXPTable() [maxLevel + 1]int {
	var t [maxLevel + 1]int
	for l := 2; l <= maxLevel; l++ {
		t[l] = t[l-1] + 280 + 100*(l-2)
	}
	return t
}

// levelingSystem drains each champion's pending-XP buffer and performs at
// most one level-up per champion per tick. Excess XP past two thresholds
// stays banked; the champion levels again next tick. This single-step pacing
// is deliberate and load-bearing for event cadence.
type levelingSystem struct {
	tune tuning.Leveling
}

func newLevelingSystem(tune tuning.Leveling) *levelingSystem { return &levelingSystem{tune: tune} }

func (s *levelingSystem) Name() string { return "leveling" }

func (s *levelingSystem) Initialize(w *World, r *rng.Stream, log *EventLog) {}

func (s *levelingSystem) Update(w *World, r *rng.Stream, log *EventLog, phase Phase) {
	for _, e := range w.Champions() {
		if e.Stats == nil || e.Leveling == nil {
			continue
		}
		lv := e.Leveling
		if lv.Pending > 0 {
			lv.XP += lv.Pending
			lv.Pending = 0
		}
		if lv.Level >= maxLevel || lv.XP < xpTable[lv.Level+1] {
			continue
		}
		s.levelUp(w, e, log)
	}
}

func (s *levelingSystem) levelUp(w *World, e *Entity, log *EventLog) {
	lv := e.Leveling
	st := e.Stats
	lv.Level++

	// Base and effective both move so the new level is visible within this
	// tick; the item system re-derives effective from base next tick anyway.
	st.BaseMaxHealth += s.tune.HealthPerLevel
	st.MaxHealth += s.tune.HealthPerLevel
	st.Health += s.tune.HealthPerLevel // matching heal
	if st.Health > st.MaxHealth {
		st.Health = st.MaxHealth
	}
	st.BaseAttack += s.tune.AttackPerLevel
	st.Attack += s.tune.AttackPerLevel
	st.BaseAbility += s.tune.AbilityPerLevel
	st.Ability += s.tune.AbilityPerLevel
	st.BaseArmor += s.tune.ArmorPerLevel
	st.Armor += s.tune.ArmorPerLevel
	st.BaseMagicResist += s.tune.MagicResistPerLevel
	st.MagicResist += s.tune.MagicResistPerLevel

	unlocked := 0
	if e.Abilities != nil {
		for i, at := range abilityUnlockLevels {
			if lv.Level == at && !e.Abilities.Unlocked[i] {
				e.Abilities.Unlocked[i] = true
				unlocked = i + 1
				break
			}
		}
	}

	spike := powerSpikeLevels[lv.Level]
	flavor := ""
	if spike && e.Hidden != nil {
		flavor = spikeFlavor(e.Hidden.PowerCurve, lv.Level)
	}

	log.Log(Event{
		Type: EventLevelUp,
		Tick: w.Tick,
		LevelUp: &LevelUpPayload{
			Champion:   e.ID,
			Level:      lv.Level,
			PowerSpike: spike,
			Flavor:     flavor,
			Unlocked:   unlocked,
		},
	})
}

func spikeFlavor(curve string, level int) string {
	switch curve {
	case CurveEarly:
		if level <= 6 {
			return "hits their peak window"
		}
		return "squeezes out one more spike"
	case CurveLate:
		if level >= 16 {
			return "finally comes online"
		}
		return "still ramping up"
	default:
		return "spikes on schedule"
	}
}
