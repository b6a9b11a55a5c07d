package engine

import (
	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/tuning"
)

// objectiveSystem owns the structural win condition: a tower line per lane
// per team, then the nexus. It consumes the per-lane pressure the lane system
// exports through world metadata. Deterministic without randomness; its fork
// exists only to keep the pipeline's label discipline uniform.
type objectiveSystem struct {
	tune  tuning.Objective
	xpObj int

	towers [2][]int // [team][lane] remaining towers
	front  [2][]int // [team][lane] current front tower health
	nexus  [2]int
}

func newObjectiveSystem(tune tuning.Tuning) *objectiveSystem {
	return &objectiveSystem{tune: tune.Objective, xpObj: tune.Leveling.XPPerObjective}
}

func (s *objectiveSystem) Name() string { return "objectives" }

func (s *objectiveSystem) Initialize(w *World, r *rng.Stream, log *EventLog) {
	for t := 0; t < 2; t++ {
		s.towers[t] = make([]int, len(w.Lanes))
		s.front[t] = make([]int, len(w.Lanes))
		for i := range w.Lanes {
			s.towers[t][i] = s.tune.TowersPerLane
			s.front[t][i] = s.tune.TowerHealth
		}
		s.nexus[t] = s.tune.NexusHealth
	}
}

func (s *objectiveSystem) Update(w *World, r *rng.Stream, log *EventLog, phase Phase) {
	if _, down := w.Meta(MetaNexusDown); down {
		return
	}
	for i, lane := range w.Lanes {
		p := w.MetaOr(MetaLanePressure(lane.ID), 0)
		if p == 0 {
			continue
		}
		attacker := 0
		mag := p
		if p < 0 {
			attacker = 1
			mag = -p
		}
		damage := int(s.tune.PressureDamage * mag)
		if damage <= 0 {
			continue
		}
		s.siege(w, log, i, lane.ID, attacker, damage)
		if _, down := w.Meta(MetaNexusDown); down {
			return
		}
	}
}

func (s *objectiveSystem) siege(w *World, log *EventLog, laneIdx int, laneID string, attacker, damage int) {
	defender := 1 - attacker

	if s.towers[defender][laneIdx] > 0 {
		s.front[defender][laneIdx] -= damage
		if s.front[defender][laneIdx] > 0 {
			return
		}
		s.towers[defender][laneIdx]--
		s.front[defender][laneIdx] = s.tune.TowerHealth
		s.awardTower(w, log, attacker)
		log.Log(Event{
			Type: EventObjectiveTower,
			Tick: w.Tick,
			Tower: &TowerPayload{
				Lane:      laneID,
				Team:      defender,
				Remaining: s.towers[defender][laneIdx],
			},
		})
		return
	}

	// Lane is open: pressure bleeds into the nexus.
	s.nexus[defender] -= damage
	if s.nexus[defender] > 0 {
		return
	}
	s.nexus[defender] = 0
	w.SetMeta(MetaWinner, float64(attacker))
	w.SetMeta(MetaNexusDown, 1)
	log.Log(Event{
		Type: EventObjectiveNexus,
		Tick: w.Tick,
		Nexus: &NexusPayload{
			Team:   defender,
			Winner: attacker,
		},
	})
}

func (s *objectiveSystem) awardTower(w *World, log *EventLog, attacker int) {
	champs := w.TeamChampions(attacker)
	if len(champs) == 0 {
		return
	}
	goldEach := s.tune.TowerGoldPerTeam / len(champs)
	for _, e := range champs {
		if e.Stats == nil {
			continue
		}
		e.Stats.Gold += goldEach
		StageXP(e, s.xpObj)
	}
}
