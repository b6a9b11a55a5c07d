package engine

import (
	"testing"

	"riftcast.gg/internal/sim/catalogs"
	"riftcast.gg/internal/sim/tuning"
)

func loadCats(t *testing.T) *catalogs.Catalogs {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return cats
}

func soloChampion(name, role string) RosterChampion {
	return RosterChampion{
		Name:        name,
		Role:        role,
		Health:      1000,
		Attack:      60,
		Ability:     40,
		AttackSpeed: 60,
		Armor:       30,
		MagicResist: 30,
		Mechanics:   0.6,
		GameSense:   0.6,
		TiltResist:  0.5,
		PowerCurve:  CurveMid,
	}
}

func soloRosters() [2]Roster {
	return [2]Roster{
		{Team: "Alpha", Champions: []RosterChampion{soloChampion("Solo A", RoleMid)}},
		{Team: "Beta", Champions: []RosterChampion{soloChampion("Solo B", RoleMid)}},
	}
}

func fullRoster(team string, offset float64) Roster {
	mk := func(name, role string, mech float64) RosterChampion {
		c := soloChampion(name, role)
		c.Mechanics = mech
		return c
	}
	return Roster{
		Team: team,
		Champions: []RosterChampion{
			mk(team+" Top", RoleTop, 0.55+offset),
			mk(team+" Jungle", RoleJungle, 0.65+offset),
			mk(team+" Mid", RoleMid, 0.8+offset),
			mk(team+" Bot", RoleBot, 0.75+offset),
			mk(team+" Support", RoleSupport, 0.5+offset),
		},
	}
}

func pairWorld(role string) (*World, *Entity, *Entity) {
	w := NewWorld()
	a := newChampion("T0C1", 0, soloChampion("A", role))
	b := newChampion("T1C1", 1, soloChampion("B", role))
	for i, e := range []*Entity{a, b} {
		tags := []string{TagChampion, TagTeam(i)}
		if lane := laneForRole(e.Identity.Role); lane != "" {
			tags = append(tags, TagLane(lane))
		}
		w.AddEntity(e, tags...)
	}
	return w, a, b
}

func newTestMatch(t *testing.T, seed string) *Match {
	t.Helper()
	m, err := NewMatch("test", seed, [2]Roster{fullRoster("Red", 0), fullRoster("Blue", 0.05)},
		tuning.Defaults(), loadCats(t))
	if err != nil {
		t.Fatalf("new match: %v", err)
	}
	return m
}
