package engine

import (
	"fmt"

	"riftcast.gg/internal/sim/catalogs"
	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/tuning"
)

type Phase int

const (
	PhaseEarly Phase = iota
	PhaseMid
	PhaseLate
)

func (p Phase) String() string {
	switch p {
	case PhaseEarly:
		return "early"
	case PhaseMid:
		return "mid"
	default:
		return "late"
	}
}

type MatchState int

const (
	StateSetup MatchState = iota
	StateRunning
	StateEnded
)

// System is one unit of the fixed pipeline. Update must draw a fixed,
// input-invariant sequence of random values per tick from its stream; the
// simulator forks the root with the system's name every tick, so names must be
// mutually distinct.
type System interface {
	Name() string
	Initialize(w *World, r *rng.Stream, log *EventLog)
	Update(w *World, r *rng.Stream, log *EventLog, phase Phase)
}

// RosterChampion is the external roster input for one champion.
type RosterChampion struct {
	Name string `json:"name"`
	Role string `json:"role"`

	Health      int `json:"health"`
	Attack      int `json:"attack"`
	Ability     int `json:"ability"`
	AttackSpeed int `json:"attack_speed"`
	Armor       int `json:"armor"`
	MagicResist int `json:"magic_resist"`

	Mechanics  float64 `json:"mechanics"`
	GameSense  float64 `json:"game_sense"`
	TiltResist float64 `json:"tilt_resist"`
	PowerCurve string  `json:"power_curve"`
}

type Roster struct {
	Team      string           `json:"team"`
	Champions []RosterChampion `json:"champions"`
}

// Result is the final snapshot produced on match.end.
type Result struct {
	MatchID   string             `json:"match_id"`
	Seed      string             `json:"seed"`
	Winner    int                `json:"winner"`
	Reason    string             `json:"reason"`
	Ticks     int                `json:"ticks"`
	Teams     [2]TeamAggregate   `json:"teams"`
	Champions []ChampionSnapshot `json:"champions"`
}

// Match is the simulator: one world, one RNG root, one event log, one ordered
// pipeline. Single pass, never retried or resumed across matches.
type Match struct {
	ID   string
	Seed string

	tune tuning.Tuning
	cats *catalogs.Catalogs

	world   *World
	root    *rng.Stream
	log     *EventLog
	systems []System

	state  MatchState
	teams  [2]string
	result *Result
}

// NewMatch builds the world from two rosters and runs each system's one-time
// initialize. The pipeline order is fixed and hard-coded here; it is part of
// the determinism contract.
func NewMatch(id, seed string, rosters [2]Roster, tune tuning.Tuning, cats *catalogs.Catalogs) (*Match, error) {
	if cats == nil {
		return nil, fmt.Errorf("nil catalogs")
	}
	for t := range rosters {
		if len(rosters[t].Champions) == 0 {
			return nil, fmt.Errorf("team %d: empty roster", t)
		}
	}

	m := &Match{
		ID:    id,
		Seed:  seed,
		tune:  tune,
		cats:  cats,
		world: NewWorld(),
		root:  rng.New(seed),
		log:   NewEventLog(),
		teams: [2]string{rosters[0].Team, rosters[1].Team},
	}

	for t := range rosters {
		for i, rc := range rosters[t].Champions {
			e := newChampion(fmt.Sprintf("T%dC%d", t, i+1), t, rc)
			tags := []string{TagChampion, TagTeam(t)}
			if lane := laneForRole(rc.Role); lane != "" {
				tags = append(tags, TagLane(lane))
			}
			m.world.AddEntity(e, tags...)
		}
	}

	m.systems = []System{
		newItemSystem(cats, tune),
		newLaneSystem(tune),
		newLevelingSystem(tune.Leveling),
		newWeatherSystem(cats, tune.Weather),
		newCombatSystem(tune),
		newObjectiveSystem(tune),
	}

	// match.start is the log's first record; setup events the systems emit
	// during Initialize (the opening weather publish) come after it.
	m.log.Log(Event{
		Type: EventMatchStart,
		Tick: 0,
		MatchStart: &MatchStartPayload{
			MatchID: id,
			Seed:    seed,
			Teams:   m.teams,
		},
	})
	for _, s := range m.systems {
		s.Initialize(m.world, m.root.Fork(s.Name()), m.log)
	}
	m.state = StateRunning
	return m, nil
}

func newChampion(id string, team int, rc RosterChampion) *Entity {
	return &Entity{
		ID: id,
		Identity: Identity{
			ID:   id,
			Name: rc.Name,
			Role: rc.Role,
			Team: team,
		},
		Stats: &Stats{
			Gold:            500,
			Health:          rc.Health,
			MaxHealth:       rc.Health,
			BaseMaxHealth:   rc.Health,
			BaseAttack:      rc.Attack,
			BaseAbility:     rc.Ability,
			BaseAttackSpeed: rc.AttackSpeed,
			BaseArmor:       rc.Armor,
			BaseMagicResist: rc.MagicResist,
			Attack:          rc.Attack,
			Ability:         rc.Ability,
			AttackSpeed:     rc.AttackSpeed,
			Armor:           rc.Armor,
			MagicResist:     rc.MagicResist,
			LastTradeTick:   -1000,
			CritMult:        2.0,
			HealingMult:     1.0,
		},
		Hidden: &HiddenStats{
			Mechanics:  rc.Mechanics,
			GameSense:  rc.GameSense,
			TiltResist: rc.TiltResist,
			PowerCurve: rc.PowerCurve,
		},
		Items:     &Inventory{},
		Leveling:  &Leveling{Level: 1},
		Abilities: &Abilities{},
	}
}

func laneForRole(role string) string {
	switch role {
	case RoleTop:
		return "TOP"
	case RoleMid:
		return "MID"
	case RoleBot:
		return "BOT"
	}
	return ""
}

func (m *Match) State() MatchState { return m.state }
func (m *Match) World() *World     { return m.world }
func (m *Match) Log() *EventLog    { return m.log }
func (m *Match) Result() *Result   { return m.result }
func (m *Match) Teams() [2]string  { return m.teams }

func (m *Match) phaseFor(tick int) Phase {
	switch {
	case tick < m.tune.EarlyUntilTick:
		return PhaseEarly
	case tick < m.tune.MidUntilTick:
		return PhaseMid
	default:
		return PhaseLate
	}
}

// Step advances exactly one tick. Returns false once the match has ended.
// A tick is atomic: all systems run, in order, before termination is checked.
func (m *Match) Step() bool {
	if m.state != StateRunning {
		return false
	}

	m.world.Tick++
	phase := m.phaseFor(m.world.Tick)

	for _, s := range m.systems {
		s.Update(m.world, m.root.Fork(s.Name()), m.log, phase)
	}

	if _, down := m.world.Meta(MetaNexusDown); down {
		m.finalize("nexus")
		return false
	}
	if m.world.Tick >= m.tune.TickLimit {
		m.finalize("tick_limit")
		return false
	}
	return true
}

// RunToCompletion drives the match synchronously, for archival replay
// generation. It is the no-cadence path of the adapter contract.
func (m *Match) RunToCompletion() *Result {
	for m.Step() {
	}
	return m.result
}

// Abort force-ends a running match between ticks, finalizing the log with a
// terminal event. Used by the live adapter on cancellation.
func (m *Match) Abort() {
	if m.state != StateRunning {
		return
	}
	m.finalize("aborted")
}

func (m *Match) finalize(reason string) {
	winner := m.computeWinner()

	var teams [2]TeamAggregate
	var champs []ChampionSnapshot
	for t := 0; t < 2; t++ {
		teams[t].Name = m.teams[t]
		for _, e := range m.world.TeamChampions(t) {
			if e.Stats == nil {
				continue
			}
			teams[t].Kills += e.Stats.Kills
			teams[t].Gold += e.Stats.Gold
			snap := ChampionSnapshot{
				Identity: e.Identity,
				Stats:    *e.Stats,
			}
			if e.Leveling != nil {
				snap.Level = e.Leveling.Level
			}
			if e.Items != nil {
				for _, it := range e.Items.Items {
					snap.Items = append(snap.Items, it.ID)
				}
			}
			champs = append(champs, snap)
		}
	}

	m.result = &Result{
		MatchID:   m.ID,
		Seed:      m.Seed,
		Winner:    winner,
		Reason:    reason,
		Ticks:     m.world.Tick,
		Teams:     teams,
		Champions: champs,
	}
	m.log.Log(Event{
		Type: EventMatchEnd,
		Tick: m.world.Tick,
		MatchEnd: &MatchEndPayload{
			Winner:    winner,
			Reason:    reason,
			Teams:     teams,
			Champions: champs,
		},
	})
	m.state = StateEnded
}

// computeWinner prefers the structural win condition owned by the objective
// system; otherwise kills, then gold, break ties toward team 0.
func (m *Match) computeWinner() int {
	if v, ok := m.world.Meta(MetaWinner); ok {
		return int(v)
	}
	var kills, gold [2]int
	for t := 0; t < 2; t++ {
		for _, e := range m.world.TeamChampions(t) {
			if e.Stats == nil {
				continue
			}
			kills[t] += e.Stats.Kills
			gold[t] += e.Stats.Gold
		}
	}
	if kills[1] > kills[0] {
		return 1
	}
	if kills[1] == kills[0] && gold[1] > gold[0] {
		return 1
	}
	return 0
}
