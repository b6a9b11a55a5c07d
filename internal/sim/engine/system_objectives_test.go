package engine

import (
	"testing"

	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/tuning"
)

func TestObjectivePressureSiege(t *testing.T) {
	tune := tuning.Defaults()
	sys := newObjectiveSystem(tune)
	w, a, _ := pairWorld(RoleMid)
	log := NewEventLog()
	r := rng.New("siege")
	sys.Initialize(w, r, log)

	// Full pressure for team 0 in MID; everything else quiet.
	w.SetMeta(MetaLanePressure("MID"), 1)

	perTick := int(tune.Objective.PressureDamage)
	ticksPerTower := tune.Objective.TowerHealth / perTick
	goldBefore := a.Stats.Gold

	for i := 0; i < ticksPerTower; i++ {
		w.Tick++
		sys.Update(w, r, log, PhaseMid)
	}
	if sys.towers[1][1] != tune.Objective.TowersPerLane-1 {
		t.Fatalf("towers remaining = %d", sys.towers[1][1])
	}
	if log.Len() != 1 || log.At(0).Type != EventObjectiveTower {
		t.Fatalf("expected one tower event, log has %d", log.Len())
	}
	ev := log.At(0)
	if ev.Tower.Lane != "MID" || ev.Tower.Team != 1 || ev.Tower.Remaining != 1 {
		t.Fatalf("tower payload = %+v", ev.Tower)
	}
	if a.Stats.Gold != goldBefore+tune.Objective.TowerGoldPerTeam {
		t.Fatalf("tower gold = %d, want +%d", a.Stats.Gold-goldBefore, tune.Objective.TowerGoldPerTeam)
	}
	if a.Leveling.Pending != tune.Leveling.XPPerObjective {
		t.Fatalf("tower xp pending = %d", a.Leveling.Pending)
	}
}

func TestObjectiveNexusWin(t *testing.T) {
	tune := tuning.Defaults()
	sys := newObjectiveSystem(tune)
	w, _, _ := pairWorld(RoleMid)
	log := NewEventLog()
	r := rng.New("nexus")
	sys.Initialize(w, r, log)

	// Negative pressure attacks team 0.
	w.SetMeta(MetaLanePressure("MID"), -1)

	perTick := int(tune.Objective.PressureDamage)
	needed := tune.Objective.TowersPerLane*tune.Objective.TowerHealth + tune.Objective.NexusHealth
	for i := 0; i < needed/perTick+1; i++ {
		w.Tick++
		sys.Update(w, r, log, PhaseLate)
		if _, down := w.Meta(MetaNexusDown); down {
			break
		}
	}

	if _, down := w.Meta(MetaNexusDown); !down {
		t.Fatal("nexus never fell")
	}
	winner, ok := w.Meta(MetaWinner)
	if !ok || winner != 1 {
		t.Fatalf("winner meta = %v (%v)", winner, ok)
	}

	last := log.At(log.Len() - 1)
	if last.Type != EventObjectiveNexus || last.Nexus.Team != 0 || last.Nexus.Winner != 1 {
		t.Fatalf("nexus payload = %+v", last.Nexus)
	}

	// Frozen once decided: further pressure changes nothing.
	n := log.Len()
	w.Tick++
	sys.Update(w, r, log, PhaseLate)
	if log.Len() != n {
		t.Fatal("objective system kept running after the nexus fell")
	}
}

func TestObjectiveIgnoresZeroPressure(t *testing.T) {
	tune := tuning.Defaults()
	sys := newObjectiveSystem(tune)
	w, _, _ := pairWorld(RoleMid)
	log := NewEventLog()
	r := rng.New("idle")
	sys.Initialize(w, r, log)

	for i := 0; i < 100; i++ {
		w.Tick++
		sys.Update(w, r, log, PhaseMid)
	}
	if log.Len() != 0 {
		t.Fatalf("idle siege logged %d events", log.Len())
	}
	for tm := 0; tm < 2; tm++ {
		if sys.nexus[tm] != tune.Objective.NexusHealth {
			t.Fatalf("team %d nexus at %d without pressure", tm, sys.nexus[tm])
		}
	}
}
