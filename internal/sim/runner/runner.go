// Package runner adapts one match simulator for consumption: paced live
// delivery to subscribers, or a synchronous run for archival replay
// generation. The engine itself never waits; all timing lives here.
package runner

import (
	"context"
	"sync"
	"time"

	"riftcast.gg/internal/sim/engine"
)

// Feed is one delivered event plus its position in the event log, so viewers
// can scrub and resume.
type Feed struct {
	Index int
	Event engine.Event
}

type subscriber struct {
	ch   chan Feed
	next int // next log index to deliver
}

type Runner struct {
	match    *engine.Match
	interval time.Duration

	mu   sync.Mutex
	subs []*subscriber
}

// New wraps a freshly built match. tickRateHz controls live pacing only; it
// has no effect on simulation outcomes.
func New(m *engine.Match, tickRateHz int) *Runner {
	if tickRateHz <= 0 {
		tickRateHz = 2
	}
	return &Runner{
		match:    m,
		interval: time.Second / time.Duration(tickRateHz),
	}
}

func (r *Runner) Match() *engine.Match { return r.match }

// Subscribe registers a viewer starting at log position since. Backlog and
// live events alike are delivered by the run loop after the next tick, in
// log order. A subscriber that cannot keep up loses events (the log itself
// is never trimmed); the channel closes when the match ends.
func (r *Runner) Subscribe(since int) <-chan Feed {
	if since < 0 {
		since = 0
	}
	s := &subscriber{ch: make(chan Feed, 1024), next: since}
	r.mu.Lock()
	r.subs = append(r.subs, s)
	r.mu.Unlock()
	return s.ch
}

// Run drives the match at the live cadence until it ends or ctx is canceled.
// Cancellation lands between ticks, never inside one: the match is aborted,
// which finalizes the event log with a terminal event, and the remaining
// events are flushed before the timer is released.
func (r *Runner) Run(ctx context.Context) *engine.Result {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.flush()
	for {
		select {
		case <-ctx.Done():
			r.match.Abort()
			r.flush()
			r.closeSubs()
			return r.match.Result()
		case <-ticker.C:
			running := r.match.Step()
			r.flush()
			if !running {
				r.closeSubs()
				return r.match.Result()
			}
		}
	}
}

// RunArchival completes the match synchronously and flushes everything once.
func (r *Runner) RunArchival() *engine.Result {
	res := r.match.RunToCompletion()
	r.flush()
	r.closeSubs()
	return res
}

// flush runs on the loop goroutine only; it is the sole reader of the event
// log while the match is live.
func (r *Runner) flush() {
	log := r.match.Log()
	n := log.Len()

	r.mu.Lock()
	subs := append([]*subscriber(nil), r.subs...)
	r.mu.Unlock()

	for _, s := range subs {
		for s.next < n {
			select {
			case s.ch <- Feed{Index: s.next, Event: log.At(s.next)}:
			default: // slow subscriber, drop
			}
			s.next++
		}
	}
}

func (r *Runner) closeSubs() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		close(s.ch)
	}
	r.subs = nil
}
