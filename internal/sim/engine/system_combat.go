package engine

import (
	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/tuning"
)

// combatSystem runs skirmishes once laning is over (mid and late phases). It
// consumes the item system's pure queries (on-hit, reflect, power rating) and
// the weather damage multiplier exported to world metadata.
type combatSystem struct {
	tune tuning.Tuning
}

func newCombatSystem(tune tuning.Tuning) *combatSystem { return &combatSystem{tune: tune} }

func (s *combatSystem) Name() string { return "combat" }

func (s *combatSystem) Initialize(w *World, r *rng.Stream, log *EventLog) {}

func (s *combatSystem) Update(w *World, r *rng.Stream, log *EventLog, phase Phase) {
	if phase == PhaseEarly {
		return
	}

	chance := s.tune.Combat.SkirmishBaseChance
	if phase == PhaseLate {
		chance *= 1.5
	}
	occurs := r.Chance(chance)

	// The rest of the tick's draws happen unconditionally so the stream
	// position never depends on the occurrence roll.
	team := s.pickAttackerTeam(w, r)
	a := w.TeamChampions(team)
	d := w.TeamChampions(1 - team)
	if len(a) == 0 || len(d) == 0 {
		return
	}
	attacker := a[r.IntN(len(a))]
	defender := d[r.IntN(len(d))]

	if !occurs || attacker.Stats == nil || defender.Stats == nil {
		return
	}

	dmgMult := w.MetaOr(MetaWeatherDamageMult, 1.0)
	raw := s.tune.Combat.SkirmishDamage + attacker.Stats.Attack + attacker.Stats.Ability/2 +
		OnHitBonus(attacker, defender.Stats.Health)
	damage := int(float64(raw) * dmgMult * 100 / float64(100+defender.Stats.Armor))
	reflected := ReflectDamage(defender, damage)

	defender.Stats.Health = clampMin(defender.Stats.Health-damage, 0)
	attacker.Stats.Health = clampMin(attacker.Stats.Health-reflected, 0)

	log.Log(Event{
		Type: EventCombatSkirmish,
		Tick: w.Tick,
		Skirmish: &SkirmishPayload{
			Attacker:  attacker.ID,
			Defender:  defender.ID,
			Damage:    damage,
			Reflected: reflected,
		},
	})

	award := killAward{
		baseGold:   s.tune.Combat.KillBaseGold,
		streakGold: s.tune.Lane.KillStreakGold,
		tilt:       s.tune.Combat.KillTiltIncrease,
		xpKill:     s.tune.Leveling.XPPerKill,
		xpAssist:   s.tune.Leveling.XPPerAssist,
	}
	if defender.Stats.Health <= 0 {
		creditKill(w, log, EventCombatKill, "", attacker, defender, assistFor(w, attacker), award)
	}
	if attacker.Stats.Health <= 0 {
		creditKill(w, log, EventCombatKill, "", defender, attacker, assistFor(w, defender), award)
	}
}

// pickAttackerTeam weights the initiation roll by team strength: item power
// rating plus level, dampened by tilt. Hidden stats drive the odds but are
// never exposed to the other side's decisions.
func (s *combatSystem) pickAttackerTeam(w *World, r *rng.Stream) int {
	var power [2]float64
	for t := 0; t < 2; t++ {
		for _, e := range w.TeamChampions(t) {
			p := float64(PowerRating(e)) + 2
			if e.Leveling != nil {
				p += 2 * float64(e.Leveling.Level)
			}
			if e.Hidden != nil {
				p *= 1 - 0.3*e.Hidden.Tilt
			}
			power[t] += p
		}
	}
	total := power[0] + power[1]
	roll := r.Float64() // drawn even when total is degenerate
	if total <= 0 {
		return 0
	}
	if roll < power[0]/total {
		return 0
	}
	return 1
}
