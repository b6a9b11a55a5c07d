package engine

import (
	"testing"

	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/tuning"
)

func TestTradeDamage(t *testing.T) {
	cases := []struct {
		base, attack, armor int
		want                int
	}{
		{80, 60, 30, 61},     // neutral attack, floor(80*100/130)
		{80, 60, 0, 80},      // no armor, full base
		{100, 160, 100, 100}, // doubled by attack, halved by armor
		{80, 10, 30, 30},     // below-baseline attack shrinks the hit
	}
	for _, c := range cases {
		if got := tradeDamage(c.base, c.attack, c.armor); got != c.want {
			t.Errorf("tradeDamage(%d,%d,%d) = %d, want %d", c.base, c.attack, c.armor, got, c.want)
		}
	}
}

func TestLanePressureClamped(t *testing.T) {
	sys := newLaneSystem(tuning.Defaults())

	w, a, b := pairWorld(RoleMid)
	a.Stats.Health = 100000
	a.Stats.MaxHealth = 100000
	b.Stats.Health = 100
	w.Tick = 1 // off the wave interval

	sys.Update(w, rng.New("pressure").Fork("lane"), NewEventLog(), PhaseEarly)
	lane := w.Lane("MID")
	if lane.Pressure != 1 {
		t.Fatalf("pressure = %v, want clamped to 1", lane.Pressure)
	}
	if got := w.MetaOr(MetaLanePressure("MID"), 0); got != 1 {
		t.Fatalf("exported pressure = %v, want 1", got)
	}

	// Flip the advantage and the sign flips too.
	w2, a2, b2 := pairWorld(RoleMid)
	a2.Stats.Health = 100
	b2.Stats.Health = 100000
	b2.Stats.MaxHealth = 100000
	w2.Tick = 1
	sys.Update(w2, rng.New("pressure").Fork("lane"), NewEventLog(), PhaseEarly)
	if p := w2.Lane("MID").Pressure; p != -1 {
		t.Fatalf("pressure = %v, want clamped to -1", p)
	}
}

func TestWaveSpawnInterval(t *testing.T) {
	tune := tuning.Defaults()
	sys := newLaneSystem(tune)
	w := NewWorld() // no laners; waves spawn but nothing farms them
	log := NewEventLog()
	r := rng.New("waves")

	w.Tick = tune.Lane.WaveIntervalTicks
	sys.Update(w, r.Fork("lane"), log, PhaseEarly)
	for _, lane := range w.Lanes {
		if lane.Minions[0] != tune.Lane.WaveBatch || lane.Minions[1] != tune.Lane.WaveBatch {
			t.Fatalf("lane %s minions = %v after spawn tick", lane.ID, lane.Minions)
		}
	}

	w.Tick++
	sys.Update(w, r.Fork("lane"), log, PhaseEarly)
	for _, lane := range w.Lanes {
		if lane.Minions[0] != tune.Lane.WaveBatch {
			t.Fatalf("lane %s spawned off-interval: %v", lane.ID, lane.Minions)
		}
	}
}

func TestLaneInactiveInLatePhase(t *testing.T) {
	sys := newLaneSystem(tuning.Defaults())
	w, _, _ := pairWorld(RoleMid)
	w.Tick = 700
	log := NewEventLog()

	sys.Update(w, rng.New("late").Fork("lane"), log, PhaseLate)
	if log.Len() != 0 {
		t.Fatalf("late-phase lane update logged %d events", log.Len())
	}
	for _, lane := range w.Lanes {
		if lane.Minions[0] != 0 || lane.Minions[1] != 0 {
			t.Fatal("late-phase lane update spawned minions")
		}
	}
}

func TestResolveWavesAnnihilationAndPush(t *testing.T) {
	sys := newLaneSystem(tuning.Defaults())

	lane := &LaneState{ID: "TOP", Minions: [2]int{5, 3}}
	sys.resolveWaves(lane)
	if lane.Minions != [2]int{3, 1} {
		t.Fatalf("minions = %v, want [3 1]", lane.Minions)
	}
	if lane.Push[0] != sys.tune.Lane.PushRate {
		t.Fatalf("push = %v, want %v", lane.Push[0], sys.tune.Lane.PushRate)
	}

	lane = &LaneState{ID: "TOP", Minions: [2]int{10, 0}, Push: [2]float64{1, 0}}
	sys.resolveWaves(lane)
	if lane.Push[0] != 1 {
		t.Fatalf("push exceeded 1: %v", lane.Push[0])
	}
	if lane.Minions != [2]int{10, 0} {
		t.Fatalf("one-sided wave annihilated: %v", lane.Minions)
	}
}

func TestContestCSCappedByEnemyMinions(t *testing.T) {
	tune := tuning.Defaults()
	sys := newLaneSystem(tune)
	w, a, _ := pairWorld(RoleMid)
	a.Hidden.Mechanics = 1.0 // always hits, always rolls a double
	lane := w.Lane("MID")
	lane.Minions[1] = 1 // only one minion to take
	log := NewEventLog()

	sys.contestCS(w, rng.New("cs"), log, lane, a, 0)
	if a.Stats.CS != 1 {
		t.Fatalf("cs = %d, want capped at 1", a.Stats.CS)
	}
	if lane.Minions[1] != 0 {
		t.Fatalf("enemy minions = %d, want 0", lane.Minions[1])
	}
	if a.Stats.Gold != 500+tune.Lane.GoldPerCS {
		t.Fatalf("gold = %d", a.Stats.Gold)
	}
	if a.Leveling.Pending != tune.Leveling.XPPerCS {
		t.Fatalf("pending xp = %d", a.Leveling.Pending)
	}

	// Empty wave: the roll still happens but nothing is gained or logged.
	n := log.Len()
	sys.contestCS(w, rng.New("cs2"), log, lane, a, 0)
	if a.Stats.CS != 1 || log.Len() != n {
		t.Fatal("cs gained against an empty wave")
	}
}

func TestTradeRespectsCooldown(t *testing.T) {
	tune := tuning.Defaults()
	tune.Lane.TradeBaseChance = 1.0 // force the occurrence roll
	sys := newLaneSystem(tune)

	w, a, b := pairWorld(RoleMid)
	a.Hidden.Mechanics = 0.9 // a initiates every trade
	lane := w.Lane("MID")
	log := NewEventLog()
	r := rng.New("cooldown")

	w.Tick = 100
	sys.trade(w, r, log, lane, a, b)
	if log.Len() != 1 {
		t.Fatalf("expected one trade, got %d events", log.Len())
	}
	if a.Stats.LastTradeTick != 100 {
		t.Fatalf("last trade tick = %d", a.Stats.LastTradeTick)
	}

	w.Tick = 102 // inside the cooldown window
	sys.trade(w, r, log, lane, a, b)
	if log.Len() != 1 {
		t.Fatal("trade fired inside cooldown")
	}

	w.Tick = 100 + tune.Lane.TradeCooldownTicks
	sys.trade(w, r, log, lane, a, b)
	if log.Len() != 2 {
		t.Fatal("trade did not fire after cooldown expired")
	}
}

func TestTradeKillConversion(t *testing.T) {
	tune := tuning.Defaults()
	tune.Lane.TradeBaseChance = 1.0
	sys := newLaneSystem(tune)

	w, a, b := pairWorld(RoleMid)
	a.Hidden.Mechanics = 0.9
	b.Stats.Health = 10 // next trade is lethal
	log := NewEventLog()

	w.Tick = 50
	sys.trade(w, rng.New("lethal"), log, w.Lane("MID"), a, b)

	if a.Stats.Kills != 1 || b.Stats.Deaths != 1 {
		t.Fatalf("kills=%d deaths=%d", a.Stats.Kills, b.Stats.Deaths)
	}
	if a.Stats.Gold != 500+tune.Lane.KillBaseGold {
		t.Fatalf("killer gold = %d", a.Stats.Gold)
	}
	if b.Stats.Health != b.Stats.MaxHealth {
		t.Fatalf("victim health = %d, want respawn at %d", b.Stats.Health, b.Stats.MaxHealth)
	}
	last := log.At(log.Len() - 1)
	if last.Type != EventLaneKill || last.Kill.Lane != "MID" {
		t.Fatalf("last event = %+v, want lane kill in MID", last)
	}
}
