package engine

import (
	"testing"

	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/tuning"
)

func TestXPTableRecurrence(t *testing.T) {
	if xpTable[1] != 0 {
		t.Fatalf("level 1 costs %d xp", xpTable[1])
	}
	if xpTable[2] != 280 {
		t.Fatalf("level 2 threshold = %d, want 280", xpTable[2])
	}
	if xpTable[3] != 660 {
		t.Fatalf("level 3 threshold = %d, want 660", xpTable[3])
	}
	for l := 2; l <= maxLevel; l++ {
		if step := xpTable[l] - xpTable[l-1]; step != 280+100*(l-2) {
			t.Fatalf("level %d step = %d, want %d", l, step, 280+100*(l-2))
		}
	}
}

func TestOneLevelUpPerTick(t *testing.T) {
	sys := newLevelingSystem(tuning.Defaults().Leveling)
	w, a, b := pairWorld(RoleMid)
	log := NewEventLog()
	r := rng.New("leveling")

	// Enough XP for many levels at once; the system steps one per tick.
	StageXP(a, xpTable[6])
	for wantLevel := 2; wantLevel <= 6; wantLevel++ {
		w.Tick++
		sys.Update(w, r, log, PhaseEarly)
		if a.Leveling.Level != wantLevel {
			t.Fatalf("tick %d: level = %d, want %d", w.Tick, a.Leveling.Level, wantLevel)
		}
	}
	// Banked XP spent; no further level-ups.
	w.Tick++
	sys.Update(w, r, log, PhaseEarly)
	if a.Leveling.Level != 6 {
		t.Fatalf("level = %d after xp exhausted", a.Leveling.Level)
	}
	if b.Leveling.Level != 1 {
		t.Fatalf("unfed laner leveled to %d", b.Leveling.Level)
	}
}

func TestLevelCapAt18(t *testing.T) {
	sys := newLevelingSystem(tuning.Defaults().Leveling)
	w, a, _ := pairWorld(RoleMid)
	log := NewEventLog()
	r := rng.New("cap")

	StageXP(a, 10*xpTable[maxLevel])
	for i := 0; i < 40; i++ {
		w.Tick++
		sys.Update(w, r, log, PhaseEarly)
	}
	if a.Leveling.Level != maxLevel {
		t.Fatalf("level = %d, want %d", a.Leveling.Level, maxLevel)
	}
}

func TestLevelUpGrowsStats(t *testing.T) {
	tune := tuning.Defaults().Leveling
	sys := newLevelingSystem(tune)
	w, a, _ := pairWorld(RoleMid)
	log := NewEventLog()

	base := *a.Stats
	StageXP(a, xpTable[2])
	w.Tick = 1
	sys.Update(w, rng.New("grow"), log, PhaseEarly)

	if a.Stats.MaxHealth != base.MaxHealth+tune.HealthPerLevel {
		t.Fatalf("max health = %d", a.Stats.MaxHealth)
	}
	if a.Stats.Health != base.Health+tune.HealthPerLevel {
		t.Fatalf("health = %d, want the matching heal", a.Stats.Health)
	}
	if a.Stats.Attack != base.Attack+tune.AttackPerLevel {
		t.Fatalf("attack = %d", a.Stats.Attack)
	}
	if a.Stats.BaseAttack != base.BaseAttack+tune.AttackPerLevel {
		t.Fatalf("base attack = %d; growth must be permanent", a.Stats.BaseAttack)
	}
}

func TestAbilityUnlocksAndSpikes(t *testing.T) {
	sys := newLevelingSystem(tuning.Defaults().Leveling)
	w, a, _ := pairWorld(RoleMid)
	log := NewEventLog()
	r := rng.New("unlocks")

	StageXP(a, xpTable[maxLevel])
	unlockedAt := map[int]int{} // level -> 1-based slot
	spikes := map[int]bool{}
	for a.Leveling.Level < maxLevel {
		w.Tick++
		sys.Update(w, r, log, PhaseEarly)
		ev := log.At(log.Len() - 1)
		if ev.Type != EventLevelUp {
			t.Fatalf("tick %d: last event %s, want level up", w.Tick, ev.Type)
		}
		if ev.LevelUp.Unlocked != 0 {
			unlockedAt[ev.LevelUp.Level] = ev.LevelUp.Unlocked
		}
		if ev.LevelUp.PowerSpike {
			spikes[ev.LevelUp.Level] = true
			if ev.LevelUp.Flavor == "" {
				t.Fatalf("level %d spike without flavor", ev.LevelUp.Level)
			}
		}
	}

	for i, at := range abilityUnlockLevels {
		if unlockedAt[at] != i+1 {
			t.Fatalf("slot %d not unlocked at level %d: %v", i+1, at, unlockedAt)
		}
		if !a.Abilities.Unlocked[i] {
			t.Fatalf("slot %d flag not set", i+1)
		}
	}
	for _, l := range []int{6, 11, 16} {
		if !spikes[l] {
			t.Fatalf("no power spike at level %d: %v", l, spikes)
		}
	}
	if len(spikes) != 3 {
		t.Fatalf("spikes at unexpected levels: %v", spikes)
	}
}
