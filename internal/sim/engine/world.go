package engine

import "fmt"

// Lane ids, in pipeline processing order.
var LaneIDs = []string{"TOP", "MID", "BOT"}

// LaneState is owned by the world, not by entities: per-team minion counts,
// push positions in [0,1] toward the enemy side, and the derived pressure
// scalar in [-1,1] (positive favors team 0).
type LaneState struct {
	ID       string     `json:"id"`
	Minions  [2]int     `json:"minions"`
	Push     [2]float64 `json:"push"`
	Pressure float64    `json:"pressure"`
}

// MetaKey addresses the world metadata channel. The key set is closed: one-way
// per-tick export between systems (e.g. lane pressure for the objective
// system) goes through these and nothing else.
type MetaKey string

const (
	MetaWeatherDamageMult MetaKey = "weather.damage_mult"
	MetaWeatherGoldMult   MetaKey = "weather.gold_mult"
	MetaWeatherMoveMult   MetaKey = "weather.move_mult"
	MetaWeatherVisionMult MetaKey = "weather.vision_mult"
	MetaNexusDown         MetaKey = "objective.nexus_down"
	MetaWinner            MetaKey = "objective.winner"
)

// MetaLanePressure is the per-lane pressure channel.
func MetaLanePressure(laneID string) MetaKey {
	return MetaKey("lane.pressure:" + laneID)
}

// Tags used by the query surface.
const TagChampion = "champion"

func TagTeam(team int) string      { return fmt.Sprintf("team:%d", team) }
func TagLane(laneID string) string { return "lane:" + laneID }

// World owns all simulated entities, the tick counter, a tag index, the three
// lanes, and the metadata channel. One match simulator owns one world; it is
// never shared or reused across matches.
type World struct {
	Tick int

	entities []*Entity // creation order; the only iteration order systems use
	byID     map[string]*Entity
	byTag    map[string][]*Entity

	Lanes []*LaneState

	meta map[MetaKey]float64
}

func NewWorld() *World {
	w := &World{
		byID:  map[string]*Entity{},
		byTag: map[string][]*Entity{},
		meta:  map[MetaKey]float64{},
	}
	for _, id := range LaneIDs {
		w.Lanes = append(w.Lanes, &LaneState{ID: id})
	}
	return w
}

// AddEntity registers an entity under the given tags. Entities keep their
// creation order in every query result, which is what keeps iteration (and so
// RNG consumption) deterministic.
func (w *World) AddEntity(e *Entity, tags ...string) {
	w.entities = append(w.entities, e)
	w.byID[e.ID] = e
	for _, t := range tags {
		w.byTag[t] = append(w.byTag[t], e)
	}
}

func (w *World) Get(id string) *Entity { return w.byID[id] }

// ByTag returns entities carrying all given tags, in creation order.
func (w *World) ByTag(tags ...string) []*Entity {
	if len(tags) == 0 {
		return nil
	}
	base := w.byTag[tags[0]]
	if len(tags) == 1 {
		return base
	}
	var out []*Entity
	for _, e := range base {
		ok := true
		for _, t := range tags[1:] {
			if !w.hasTag(e, t) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) hasTag(e *Entity, tag string) bool {
	for _, x := range w.byTag[tag] {
		if x == e {
			return true
		}
	}
	return false
}

func (w *World) Champions() []*Entity { return w.byTag[TagChampion] }

func (w *World) TeamChampions(team int) []*Entity {
	return w.ByTag(TagChampion, TagTeam(team))
}

func (w *World) Lane(id string) *LaneState {
	for _, l := range w.Lanes {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (w *World) SetMeta(k MetaKey, v float64) { w.meta[k] = v }

func (w *World) Meta(k MetaKey) (float64, bool) {
	v, ok := w.meta[k]
	return v, ok
}

// MetaOr reads a metadata channel with a default for the not-yet-written case
// (e.g. weather multipliers before the weather system's first pass).
func (w *World) MetaOr(k MetaKey, def float64) float64 {
	if v, ok := w.meta[k]; ok {
		return v
	}
	return def
}
