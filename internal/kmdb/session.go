package kmdb

import (
	"sync"

	"github.com/minchan-k/cinelog/internal/models"
)

// Session holds the "currently shown" search results under a last-writer-
// wins rule. Each submission takes a monotonically increasing sequence
// number; a response only replaces the shown results if no newer
// submission has committed in the meantime. A superseded response that
// arrives late is dropped rather than clobbering newer results.
type Session struct {
	mu      sync.Mutex
	nextSeq uint64
	applied uint64
	results []models.MovieRecord
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Begin allocates the sequence number for a new submission. Sequence
// numbers are strictly increasing and start at 1.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// Commit installs the results for the given submission. It reports
// whether the results were applied; a submission older than the last
// applied one is dropped. Failed requests commit an empty slice, which
// clears the shown results under the same ordering rule.
func (s *Session) Commit(seq uint64, results []models.MovieRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.results = results
	return true
}

// Latest returns a copy of the most recently committed results.
func (s *Session) Latest() []models.MovieRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MovieRecord, len(s.results))
	copy(out, s.results)
	return out
}
