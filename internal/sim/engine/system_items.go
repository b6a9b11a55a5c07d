package engine

import (
	"riftcast.gg/internal/sim/catalogs"
	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/tuning"
)

// Passive tuning constants. These are per-item mechanics, not match tuning.
const (
	abilityAmpFactor = 1.3
	healingPowerMult = 1.25
	critDamageMult   = 2.5
	onHitBurnPct     = 0.03 // of target current health
	thornsReflectPct = 0.20 // of incoming damage
)

// itemSystem assigns each champion a build variant once, purchases down the
// path when gold allows, and recomputes effective stats from base + items
// every tick.
type itemSystem struct {
	cats *catalogs.Catalogs
	tune tuning.Tuning

	builds map[string]catalogs.BuildVariant // by champion id, fixed at init
}

func newItemSystem(cats *catalogs.Catalogs, tune tuning.Tuning) *itemSystem {
	return &itemSystem{cats: cats, tune: tune, builds: map[string]catalogs.BuildVariant{}}
}

func (s *itemSystem) Name() string { return "items" }

func (s *itemSystem) Initialize(w *World, r *rng.Stream, log *EventLog) {
	for _, e := range w.Champions() {
		variants := s.cats.BuildPaths.ByRole[e.Identity.Role]
		if len(variants) == 0 {
			// Unknown role in the roster input: the champion simply never buys.
			continue
		}
		// Forked by champion id so the variant is stable for the whole match
		// no matter how many ticks elapse.
		vr := r.Fork("build:" + e.ID)
		s.builds[e.ID] = variants[vr.IntN(len(variants))]
	}
}

func (s *itemSystem) Update(w *World, r *rng.Stream, log *EventLog, phase Phase) {
	for _, e := range w.Champions() {
		if e.Stats == nil || e.Items == nil {
			continue
		}
		s.tryPurchase(w, e, log)
		recomputeEffective(e)
	}
}

func (s *itemSystem) tryPurchase(w *World, e *Entity, log *EventLog) {
	build, ok := s.builds[e.ID]
	if !ok {
		return
	}
	for _, itemID := range build.Items {
		if e.Items.Has(itemID) {
			continue
		}
		def, ok := s.cats.Items.Defs[itemID]
		if !ok {
			// Catalog hole: skip this slot for the whole match rather than abort.
			continue
		}
		if e.Stats.Gold < def.Cost {
			return // first unowned item decides; no skipping ahead
		}
		e.Stats.Gold -= def.Cost
		e.Items.Items = append(e.Items.Items, ItemSnapshot{
			ID:      def.ID,
			Name:    def.Name,
			Cost:    def.Cost,
			Stats:   def.Stats,
			Passive: def.Passive,
		})
		log.Log(Event{
			Type: EventItemPurchase,
			Tick: w.Tick,
			Purchase: &PurchasePayload{
				Champion: e.ID,
				Item:     def.ID,
				Name:     def.Name,
				Cost:     def.Cost,
				GoldLeft: e.Stats.Gold,
			},
		})
		return // at most one purchase per tick
	}
}

// recomputeEffective rebuilds effective stats from base + item sums, then
// applies passives in inventory (purchase) order. Idempotent: running it twice
// in one tick changes nothing.
func recomputeEffective(e *Entity) {
	st := e.Stats

	st.Attack = st.BaseAttack
	st.Ability = st.BaseAbility
	st.AttackSpeed = st.BaseAttackSpeed
	st.Armor = st.BaseArmor
	st.MagicResist = st.BaseMagicResist
	st.CritMult = 2.0
	st.HealingMult = 1.0

	newMax := st.BaseMaxHealth
	for _, it := range e.Items.Items {
		st.Attack += it.Stats.Attack
		st.Ability += it.Stats.Ability
		st.AttackSpeed += it.Stats.AttackSpeed
		st.Armor += it.Stats.Armor
		st.MagicResist += it.Stats.MagicResist
		newMax += it.Stats.Health
	}
	for _, it := range e.Items.Items {
		switch it.Passive {
		case catalogs.PassiveAbilityAmp:
			st.Ability = int(float64(st.Ability) * abilityAmpFactor)
		case catalogs.PassiveHealingPower:
			st.HealingMult = healingPowerMult
		case catalogs.PassiveCritDamage:
			st.CritMult = critDamageMult
		}
	}

	// Health tops up when max health grows; it is never set outright.
	if newMax > st.MaxHealth {
		st.Health += newMax - st.MaxHealth
	}
	st.MaxHealth = newMax
	if st.Health > st.MaxHealth {
		st.Health = st.MaxHealth
	}
	st.Health = clampMin(st.Health, 0)
}

// OnHitBonus is the pure query the combat system uses: bonus on-hit damage as
// a percentage of the target's current health, from the attacker's inventory
// only. No side effects.
func OnHitBonus(attacker *Entity, targetHealth int) int {
	if attacker == nil || attacker.Items == nil || targetHealth <= 0 {
		return 0
	}
	for _, it := range attacker.Items.Items {
		if it.Passive == catalogs.PassiveOnHitBurn {
			return int(float64(targetHealth) * onHitBurnPct)
		}
	}
	return 0
}

// ReflectDamage is the defender-side pure query: damage reflected back to the
// attacker as a percentage of incoming damage.
func ReflectDamage(defender *Entity, incoming int) int {
	if defender == nil || defender.Items == nil || incoming <= 0 {
		return 0
	}
	for _, it := range defender.Items.Items {
		if it.Passive == catalogs.PassiveThorns {
			return int(float64(incoming) * thornsReflectPct)
		}
	}
	return 0
}

// PowerRating scores a champion's item progression for team-strength
// comparisons. Pure: derived from the inventory snapshot only.
func PowerRating(e *Entity) int {
	if e == nil || e.Items == nil {
		return 0
	}
	total := 0
	for _, it := range e.Items.Items {
		total += it.Cost
	}
	return total / 100
}
