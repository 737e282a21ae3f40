// Package tracker detects deals that appear between polling cycles.
package tracker

import "github.com/junipr-dev/dealscout/internal/domain/entity"

// PollingSession owns the set of deal IDs already seen in one continuous
// scanning session. It is not safe for concurrent use: a session belongs to
// exactly one scanner goroutine, which is what guarantees observation
// ordering.
type PollingSession struct {
	known  map[int64]struct{}
	primed bool
}

func NewPollingSession() *PollingSession {
	return &PollingSession{
		known: make(map[int64]struct{}),
	}
}

// Observe records a poll result and returns the deals whose IDs were not in
// the known set. The first poll of a session only primes the set and emits
// nothing, so a cold start never produces an alert storm.
//
// The known set is replaced wholesale: deals that disappeared (dismissed,
// purchased, expired) are dropped silently, and a listing that vanishes and
// later reappears counts as new again.
func (s *PollingSession) Observe(deals []entity.Deal) []entity.Deal {
	current := make(map[int64]struct{}, len(deals))

	var fresh []entity.Deal

	for _, d := range deals {
		current[d.ID] = struct{}{}

		if s.primed {
			if _, seen := s.known[d.ID]; !seen {
				fresh = append(fresh, d)
			}
		}
	}

	s.known = current
	s.primed = true

	return fresh
}

// Reset clears the session, so the next Observe primes again. Called on
// filter changes to avoid cross-filter false positives.
func (s *PollingSession) Reset() {
	s.known = make(map[int64]struct{})
	s.primed = false
}

// Primed reports whether the session has completed its first poll.
func (s *PollingSession) Primed() bool {
	return s.primed
}

// Size returns the number of tracked deal IDs.
func (s *PollingSession) Size() int {
	return len(s.known)
}
