package matching

import "sync/atomic"

// Sequencer hands out order IDs and tie-break sequence numbers. Both must be
// strictly increasing across the life of the engine; the sequence is a logical
// counter, deliberately not a wall-clock timestamp, so same-instant
// submissions still have an unambiguous order. It is injected rather than
// kept as package state so tests can run with a fresh counter.
type Sequencer interface {
	Next() (id int64, seq uint64)
}

type counterSequencer struct {
	n atomic.Uint64
}

// NewSequencer returns a Sequencer backed by a single atomic counter; the
// first call yields id 1, seq 1.
func NewSequencer() Sequencer {
	return &counterSequencer{}
}

func (s *counterSequencer) Next() (int64, uint64) {
	n := s.n.Add(1)
	return int64(n), n
}
