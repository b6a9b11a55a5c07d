package rng

import (
	"crypto/sha256"
	"encoding/binary"
)

// Stream is a deterministic random stream built on splitmix64. State is a
// single 64-bit counter, so copying a Stream value copies the whole stream.
//
// Reproducibility contract: a system must fork with a fixed, tick-invariant
// label and draw a fixed sequence of values per tick. Forking advances the
// parent, so the same label forked on consecutive ticks yields fresh children.
type Stream struct {
	state uint64
}

// New derives a root stream from an arbitrary seed string.
func New(seed string) *Stream {
	sum := sha256.Sum256([]byte(seed))
	return &Stream{state: binary.BigEndian.Uint64(sum[:8])}
}

// FromState restores a stream from a raw state value (snapshot resume).
func FromState(state uint64) *Stream { return &Stream{state: state} }

// State exposes the raw stream state for snapshots.
func (s *Stream) State() uint64 { return s.state }

func (s *Stream) next64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Fork consumes one draw from s and returns an independent child stream that
// is a pure function of (parent state before the call, label). Calling Fork
// twice with the same label from the same parent state yields identical
// children; because the parent advances, a later Fork with the same label
// yields a different child.
func (s *Stream) Fork(label string) *Stream {
	h := sha256.Sum256([]byte(label))
	child := s.next64() ^ binary.BigEndian.Uint64(h[:8])
	// One extra mix so child sequences with related labels diverge immediately.
	c := &Stream{state: child}
	c.next64()
	return &Stream{state: c.state}
}

// Float64 returns a uniform float in [0,1).
func (s *Stream) Float64() float64 {
	return float64(s.next64()>>11) / (1 << 53)
}

// Chance returns true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.Float64() < p
}

// IntN returns a uniform int in [0,n). n must be > 0.
func (s *Stream) IntN(n int) int {
	return int(s.Float64() * float64(n))
}

// Range returns a uniform int in [lo,hi] inclusive.
func (s *Stream) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.IntN(hi-lo+1)
}

// Pick selects one element uniformly. Panics on empty input the same way an
// index out of range would; callers guard emptiness.
func Pick[T any](s *Stream, list []T) T {
	return list[s.IntN(len(list))]
}
