package engine

import (
	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/tuning"
)

// laneSystem runs the laning phase: minion waves, CS contests, trades, kill
// conversion, and the per-lane pressure export. Active only in early and mid
// phases.
type laneSystem struct {
	tune tuning.Tuning
}

func newLaneSystem(tune tuning.Tuning) *laneSystem { return &laneSystem{tune: tune} }

func (s *laneSystem) Name() string { return "lane" }

func (s *laneSystem) Initialize(w *World, r *rng.Stream, log *EventLog) {}

func (s *laneSystem) Update(w *World, r *rng.Stream, log *EventLog, phase Phase) {
	if phase == PhaseLate {
		return
	}
	lt := s.tune.Lane

	// Wave spawn on the fixed interval.
	if w.Tick%lt.WaveIntervalTicks == 0 {
		for _, lane := range w.Lanes {
			lane.Minions[0] += lt.WaveBatch
			lane.Minions[1] += lt.WaveBatch
		}
	}

	for _, lane := range w.Lanes {
		c0 := firstLaner(w, lane.ID, 0)
		c1 := firstLaner(w, lane.ID, 1)
		if c0 == nil || c1 == nil {
			continue
		}

		s.contestCS(w, r, log, lane, c0, 0)
		s.contestCS(w, r, log, lane, c1, 1)
		s.trade(w, r, log, lane, c0, c1)

		lane.Pressure = clampFloat(
			float64(lane.Minions[0]-lane.Minions[1])*0.05+
				float64(c0.Stats.CS-c1.Stats.CS)*0.02+
				float64(c0.Stats.Health-c1.Stats.Health)*0.001,
			-1, 1)
		w.SetMeta(MetaLanePressure(lane.ID), lane.Pressure)

		s.resolveWaves(lane)
	}
}

func firstLaner(w *World, laneID string, team int) *Entity {
	for _, e := range w.ByTag(TagChampion, TagTeam(team), TagLane(laneID)) {
		if e.Stats != nil && e.Hidden != nil {
			return e
		}
	}
	return nil
}

func (s *laneSystem) contestCS(w *World, r *rng.Stream, log *EventLog, lane *LaneState, e *Entity, team int) {
	lt := s.tune.Lane
	hit := r.Chance(e.Hidden.Mechanics) // rolled every tick, applied conditionally
	if !hit {
		return
	}
	gain := 1
	if e.Hidden.Mechanics > lt.DoubleCSThreshold {
		gain = 2
	}
	enemy := 1 - team
	if gain > lane.Minions[enemy] {
		gain = lane.Minions[enemy]
	}
	if gain <= 0 {
		return
	}
	lane.Minions[enemy] -= gain
	e.Stats.CS += gain
	gold := gain * lt.GoldPerCS
	e.Stats.Gold += gold
	StageXP(e, gain*s.tune.Leveling.XPPerCS)

	log.Log(Event{
		Type: EventLaneCS,
		Tick: w.Tick,
		CS: &CSPayload{
			Champion: e.ID,
			Lane:     lane.ID,
			Gained:   gain,
			Total:    e.Stats.CS,
			Gold:     gold,
		},
	})
}

func (s *laneSystem) trade(w *World, r *rng.Stream, log *EventLog, lane *LaneState, c0, c1 *Entity) {
	lt := s.tune.Lane

	skill0 := c0.Hidden.Mechanics + c0.Hidden.GameSense
	skill1 := c1.Hidden.Mechanics + c1.Hidden.GameSense
	init, def := c0, c1
	gap := skill0 - skill1
	if skill1 > skill0 {
		init, def = c1, c0
		gap = skill1 - skill0
	}

	occurs := r.Chance(lt.TradeBaseChance + lt.TradeGapScale*gap)
	if !occurs {
		return
	}
	if w.Tick-init.Stats.LastTradeTick < lt.TradeCooldownTicks {
		return
	}
	init.Stats.LastTradeTick = w.Tick

	damage := tradeDamage(lt.TradeBaseDamage, init.Stats.Attack, def.Stats.Armor)
	def.Stats.Health = clampMin(def.Stats.Health-damage, 0)

	log.Log(Event{
		Type: EventLaneTrade,
		Tick: w.Tick,
		Trade: &TradePayload{
			Lane:       lane.ID,
			Initiator:  init.ID,
			Defender:   def.ID,
			Damage:     damage,
			HealthLeft: def.Stats.Health,
		},
	})

	if def.Stats.Health <= 0 {
		creditKill(w, log, EventLaneKill, lane.ID, init, def, nil, killAward{
			baseGold:   lt.KillBaseGold,
			streakGold: lt.KillStreakGold,
			tilt:       lt.KillTiltIncrease,
			xpKill:     s.tune.Leveling.XPPerKill,
		})
	}
}

// tradeDamage: floor(base * (1 + (AD-60)/100) * 100/(100+armor)).
func tradeDamage(base, attack, armor int) int {
	return int(float64(base) * (1 + float64(attack-60)/100) * 100 / float64(100+armor))
}

func (s *laneSystem) resolveWaves(lane *LaneState) {
	lt := s.tune.Lane

	if lane.Minions[0] > 0 && lane.Minions[1] > 0 {
		k := lt.AnnihilatePerTick
		if lane.Minions[0] < k {
			k = lane.Minions[0]
		}
		if lane.Minions[1] < k {
			k = lane.Minions[1]
		}
		lane.Minions[0] -= k
		lane.Minions[1] -= k
	}

	switch {
	case lane.Minions[0] > lane.Minions[1]:
		lane.Push[0] = clampFloat(lane.Push[0]+lt.PushRate, 0, 1)
	case lane.Minions[1] > lane.Minions[0]:
		lane.Push[1] = clampFloat(lane.Push[1]+lt.PushRate, 0, 1)
	}
}
