package engine

// killAward bundles the bounty constants a kill applies. Lane kills and
// skirmish kills share the bookkeeping but carry their own event types.
type killAward struct {
	baseGold   int
	streakGold int
	tilt       float64
	xpKill     int
	xpAssist   int
}

// creditKill applies the full kill bookkeeping: bounty scaled by the killer's
// streak before this kill, counters, victim tilt and respawn heal, staged XP,
// and the log record. Counters only ever move up.
func creditKill(w *World, log *EventLog, evType EventType, lane string, killer, victim, assist *Entity, a killAward) {
	gold := a.baseGold + a.streakGold*killer.Stats.KillStreak
	killer.Stats.Gold += gold
	killer.Stats.Kills++
	killer.Stats.KillStreak++
	victim.Stats.Deaths++
	victim.Stats.KillStreak = 0
	if victim.Hidden != nil {
		victim.Hidden.Tilt = clampFloat(victim.Hidden.Tilt+a.tilt, 0, 1)
	}
	victim.Stats.Health = victim.Stats.MaxHealth

	StageXP(killer, a.xpKill)

	assistID := ""
	if assist != nil {
		assist.Stats.Assists++
		StageXP(assist, a.xpAssist)
		assistID = assist.ID
	}

	log.Log(Event{
		Type: evType,
		Tick: w.Tick,
		Kill: &KillPayload{
			Killer: killer.ID,
			Victim: victim.ID,
			Assist: assistID,
			Gold:   gold,
			Streak: killer.Stats.KillStreak,
			Lane:   lane,
		},
	})
}

// assistFor picks the killer's highest-game-sense teammate, ties broken by
// creation order. Deterministic by construction.
func assistFor(w *World, killer *Entity) *Entity {
	var best *Entity
	for _, e := range w.TeamChampions(killer.Identity.Team) {
		if e == killer || e.Hidden == nil || e.Stats == nil {
			continue
		}
		if best == nil || e.Hidden.GameSense > best.Hidden.GameSense {
			best = e
		}
	}
	return best
}
