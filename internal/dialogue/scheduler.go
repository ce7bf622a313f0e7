package dialogue

import "time"

// Scheduler lays inbound audio chunks back-to-back on a playback
// timeline: each chunk starts at the later of "now" and the previous
// chunk's end. An interruption flushes every chunk that has not finished
// and resets the cursor to zero.
type Scheduler struct {
	now    func() time.Time
	cursor time.Time
	ends   []time.Time
}

// NewScheduler creates a Scheduler on the real clock.
func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now}
}

// newSchedulerAt creates a Scheduler on an injected clock, for tests.
func newSchedulerAt(now func() time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Schedule places a chunk of the given duration on the timeline and
// returns its start time.
func (s *Scheduler) Schedule(d time.Duration) time.Time {
	now := s.now()
	if s.cursor.Before(now) {
		s.cursor = now
	}
	start := s.cursor
	s.cursor = s.cursor.Add(d)
	s.ends = append(s.ends, s.cursor)
	s.prune(now)
	return start
}

// Flush drops every not-yet-finished chunk and resets the timeline
// cursor.
func (s *Scheduler) Flush() {
	s.cursor = time.Time{}
	s.ends = nil
}

// Pending reports how many scheduled chunks have not finished playing.
func (s *Scheduler) Pending() int {
	s.prune(s.now())
	return len(s.ends)
}

func (s *Scheduler) prune(now time.Time) {
	kept := s.ends[:0]
	for _, end := range s.ends {
		if end.After(now) {
			kept = append(kept, end)
		}
	}
	s.ends = kept
}
