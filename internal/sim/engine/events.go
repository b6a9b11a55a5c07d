package engine

// EventType is the closed catalog of event kinds, namespaced "domain.action".
type EventType string

const (
	EventMatchStart EventType = "match.start"
	EventMatchEnd   EventType = "match.end"

	EventItemPurchase EventType = "item.purchase"

	EventLaneCS    EventType = "lane.cs"
	EventLaneTrade EventType = "lane.trade"
	EventLaneKill  EventType = "lane.kill"

	EventLevelUp EventType = "leveling.level_up"

	EventWeatherChange EventType = "weather.change"
	EventWeatherEffect EventType = "weather.effect"

	EventCombatSkirmish EventType = "combat.skirmish"
	EventCombatKill     EventType = "combat.kill"

	EventObjectiveTower EventType = "objective.tower"
	EventObjectiveNexus EventType = "objective.nexus"
)

// Event is one record of the append-only log. Exactly one payload pointer is
// set, matching Type. The flat shape keeps the JSON encoding stable, which the
// byte-identical replay guarantee depends on.
type Event struct {
	Type EventType `json:"type"`
	Tick int       `json:"tick"`

	MatchStart *MatchStartPayload `json:"match_start,omitempty"`
	MatchEnd   *MatchEndPayload   `json:"match_end,omitempty"`
	Purchase   *PurchasePayload   `json:"purchase,omitempty"`
	CS         *CSPayload         `json:"cs,omitempty"`
	Trade      *TradePayload      `json:"trade,omitempty"`
	Kill       *KillPayload       `json:"kill,omitempty"`
	LevelUp    *LevelUpPayload    `json:"level_up,omitempty"`
	Weather    *WeatherPayload    `json:"weather,omitempty"`
	Effect     *EffectPayload     `json:"effect,omitempty"`
	Skirmish   *SkirmishPayload   `json:"skirmish,omitempty"`
	Tower      *TowerPayload      `json:"tower,omitempty"`
	Nexus      *NexusPayload      `json:"nexus,omitempty"`
}

type MatchStartPayload struct {
	MatchID string    `json:"match_id"`
	Seed    string    `json:"seed"`
	Teams   [2]string `json:"teams"`
}

type TeamAggregate struct {
	Name  string `json:"name"`
	Kills int    `json:"kills"`
	Gold  int    `json:"gold"`
}

type ChampionSnapshot struct {
	Identity Identity `json:"identity"`
	Stats    Stats    `json:"stats"`
	Level    int      `json:"level"`
	Items    []string `json:"items"`
}

type MatchEndPayload struct {
	Winner    int                `json:"winner"` // team index
	Reason    string             `json:"reason"` // "nexus", "tick_limit" or "aborted"
	Teams     [2]TeamAggregate   `json:"teams"`
	Champions []ChampionSnapshot `json:"champions"`
}

type PurchasePayload struct {
	Champion string `json:"champion"`
	Item     string `json:"item"`
	Name     string `json:"name"`
	Cost     int    `json:"cost"`
	GoldLeft int    `json:"gold_left"`
}

type CSPayload struct {
	Champion string `json:"champion"`
	Lane     string `json:"lane"`
	Gained   int    `json:"gained"`
	Total    int    `json:"total"`
	Gold     int    `json:"gold"`
}

type TradePayload struct {
	Lane       string `json:"lane"`
	Initiator  string `json:"initiator"`
	Defender   string `json:"defender"`
	Damage     int    `json:"damage"`
	HealthLeft int    `json:"health_left"`
}

type KillPayload struct {
	Killer string `json:"killer"`
	Victim string `json:"victim"`
	Assist string `json:"assist,omitempty"`
	Gold   int    `json:"gold"`
	Streak int    `json:"streak"`
	Lane   string `json:"lane,omitempty"`
}

type LevelUpPayload struct {
	Champion   string `json:"champion"`
	Level      int    `json:"level"`
	PowerSpike bool   `json:"power_spike,omitempty"`
	Flavor     string `json:"flavor,omitempty"`
	Unlocked   int    `json:"unlocked_slot,omitempty"` // 1-based; 0 means none
}

type WeatherPayload struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	UntilTick int      `json:"until_tick"`
	Forecast  []string `json:"forecast"`
}

type EffectPayload struct {
	Weather  string `json:"weather"`
	Effect   string `json:"effect"` // "gold_rain","tilt_surge","teleport","corruption"
	Champion string `json:"champion,omitempty"`
	Amount   int    `json:"amount,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

type SkirmishPayload struct {
	Attacker  string `json:"attacker"`
	Defender  string `json:"defender"`
	Damage    int    `json:"damage"`
	Reflected int    `json:"reflected,omitempty"`
}

type TowerPayload struct {
	Lane      string `json:"lane"`
	Team      int    `json:"team"` // owner of the fallen tower
	Remaining int    `json:"remaining"`
}

type NexusPayload struct {
	Team   int `json:"team"` // owner of the destroyed nexus
	Winner int `json:"winner"`
}

// EventLog is the append-only sink of typed, tick-stamped records and the sole
// channel of observable simulation output. Total order is emission order.
type EventLog struct {
	events []Event
}

func NewEventLog() *EventLog { return &EventLog{} }

func (l *EventLog) Log(e Event) { l.events = append(l.events, e) }

func (l *EventLog) Len() int { return len(l.events) }

// At supports random access for replay scrubbing.
func (l *EventLog) At(i int) Event { return l.events[i] }

// Events returns the backing slice; callers must treat it as read-only.
func (l *EventLog) Events() []Event { return l.events }

// Since returns events appended at or after index i, for incremental delivery.
func (l *EventLog) Since(i int) []Event {
	if i < 0 {
		i = 0
	}
	if i >= len(l.events) {
		return nil
	}
	return l.events[i:]
}
