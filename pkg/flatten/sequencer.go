// File: pkg/flatten/sequencer.go
package flatten

// Sequencer re-establishes walker enumeration order over results that arrive
// in reader completion order. It is not safe for concurrent use; the single
// writer-side goroutine owns it.
type Sequencer struct {
	next    int
	pending map[int]FileResult
	high    int
}

// NewSequencer starts expecting index 0.
func NewSequencer() *Sequencer {
	return &Sequencer{pending: make(map[int]FileResult)}
}

// Push accepts one result and returns the contiguous run of results that are
// now emittable in order. A result matching the expected index drains itself
// plus any buffered successors; anything else is buffered and Push returns
// nil.
func (s *Sequencer) Push(res FileResult) []FileResult {
	if res.Index != s.next {
		s.pending[res.Index] = res
		if len(s.pending) > s.high {
			s.high = len(s.pending)
		}
		return nil
	}

	run := []FileResult{res}
	s.next++
	for {
		buffered, ok := s.pending[s.next]
		if !ok {
			break
		}
		delete(s.pending, s.next)
		run = append(run, buffered)
		s.next++
	}
	return run
}

// Pending returns the number of buffered out-of-order results.
func (s *Sequencer) Pending() int { return len(s.pending) }

// HighWater returns the peak number of simultaneously buffered results.
func (s *Sequencer) HighWater() int { return s.high }

// Next returns the index the sequencer is waiting for.
func (s *Sequencer) Next() int { return s.next }
