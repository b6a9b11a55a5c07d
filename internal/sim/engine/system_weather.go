package engine

import (
	"riftcast.gg/internal/sim/catalogs"
	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/tuning"
)

// weatherSystem keeps the global ambient state. The next weather is popped
// from a fixed-depth forecast queue rather than rolled fresh, so a published
// forecast stays accurate; the queue is refilled after every pop.
type weatherSystem struct {
	cats *catalogs.Catalogs
	tune tuning.Weather

	active    catalogs.WeatherDef
	untilTick int
	forecast  []string
}

func newWeatherSystem(cats *catalogs.Catalogs, tune tuning.Weather) *weatherSystem {
	return &weatherSystem{cats: cats, tune: tune}
}

func (s *weatherSystem) Name() string { return "weather" }

func (s *weatherSystem) Initialize(w *World, r *rng.Stream, log *EventLog) {
	for len(s.forecast) < s.tune.ForecastDepth {
		s.forecast = append(s.forecast, s.sample(r))
	}
	s.advance(w, r, log)
}

func (s *weatherSystem) Update(w *World, r *rng.Stream, log *EventLog, phase Phase) {
	if w.Tick >= s.untilTick {
		s.advance(w, r, log)
	}

	w.SetMeta(MetaWeatherDamageMult, s.active.DamageMult)
	w.SetMeta(MetaWeatherGoldMult, s.active.GoldMult)
	w.SetMeta(MetaWeatherMoveMult, s.active.MoveMult)
	w.SetMeta(MetaWeatherVisionMult, s.active.VisionMult)

	s.rollEffects(w, r, log)
}

// advance pops the forecast head into the active slot, samples a fresh tail,
// and draws the new duration from the closed [min,max] range.
func (s *weatherSystem) advance(w *World, r *rng.Stream, log *EventLog) {
	next := s.forecast[0]
	s.forecast = append(s.forecast[1:], s.sample(r))

	def, ok := s.cats.Weathers.Defs[next]
	if !ok {
		// Catalog hole: keep the current weather running another cycle.
		def = s.active
	}
	s.active = def
	s.untilTick = w.Tick + r.Range(s.tune.MinDurationTicks, s.tune.MaxDurationTicks)

	log.Log(Event{
		Type: EventWeatherChange,
		Tick: w.Tick,
		Weather: &WeatherPayload{
			ID:        s.active.ID,
			Name:      s.active.Name,
			UntilTick: s.untilTick,
			Forecast:  append([]string(nil), s.forecast...),
		},
	})
}

// sample draws a weather id weighted by rarity weight, walking the sorted id
// list so the pick never depends on map iteration order.
func (s *weatherSystem) sample(r *rng.Stream) string {
	var total float64
	for _, id := range s.cats.Weathers.IDs {
		total += s.cats.Weathers.Defs[id].Weight
	}
	target := r.Float64() * total
	var acc float64
	for _, id := range s.cats.Weathers.IDs {
		acc += s.cats.Weathers.Defs[id].Weight
		if target < acc {
			return id
		}
	}
	return s.cats.Weathers.IDs[len(s.cats.Weathers.IDs)-1]
}

func (s *weatherSystem) rollEffects(w *World, r *rng.Stream, log *EventLog) {
	if s.active.GoldRain {
		for _, e := range w.Champions() {
			if e.Stats == nil {
				continue
			}
			hit := r.Chance(s.tune.GoldRainChance)
			amount := r.IntN(s.tune.GoldRainMax) + 1 // drawn unconditionally
			if !hit {
				continue
			}
			e.Stats.Gold += amount
			log.Log(Event{
				Type: EventWeatherEffect,
				Tick: w.Tick,
				Effect: &EffectPayload{
					Weather:  s.active.ID,
					Effect:   "gold_rain",
					Champion: e.ID,
					Amount:   amount,
				},
			})
		}
	}

	if s.active.TiltSurge {
		for _, e := range w.Champions() {
			if e.Hidden == nil {
				continue
			}
			e.Hidden.Tilt = clampFloat(e.Hidden.Tilt+s.tune.TiltSurge*(1-e.Hidden.TiltResist), 0, 1)
		}
	}

	// Teleport and stat corruption are logged here; their mechanical
	// application belongs to the combat/objective side of the pipeline.
	if s.active.Teleport {
		champs := w.Champions()
		pick := r.IntN(len(champs))
		if r.Chance(0.10) {
			log.Log(Event{
				Type: EventWeatherEffect,
				Tick: w.Tick,
				Effect: &EffectPayload{
					Weather:  s.active.ID,
					Effect:   "teleport",
					Champion: champs[pick].ID,
				},
			})
		}
	}
	if s.active.Corruption {
		champs := w.Champions()
		pick := r.IntN(len(champs))
		stat := rng.Pick(r, []string{"attack", "ability", "armor", "magic_resist"})
		if r.Chance(0.10) {
			log.Log(Event{
				Type: EventWeatherEffect,
				Tick: w.Tick,
				Effect: &EffectPayload{
					Weather:  s.active.ID,
					Effect:   "corruption",
					Champion: champs[pick].ID,
					Detail:   stat,
				},
			})
		}
	}
}
