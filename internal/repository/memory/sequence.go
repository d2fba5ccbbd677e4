// Package memory implements the repository contracts on top of plain
// in-process maps. All state is guarded by one coarse RWMutex per
// store; mutating operations take the write lock, reads the read lock.
// The backend is used by the test suite and by APP_STORAGE=memory runs
// where no database is available.
package memory

import "sync"

// Sequence allocates monotonically increasing identifiers for a single
// entity kind. Each store owns its own Sequence instance so tests stay
// hermetic; there is no process-wide counter.
type Sequence struct {
	mu   sync.Mutex
	last uint64
}

// Next returns the next identifier, starting at 1.
func (s *Sequence) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

// Current returns the most recently allocated identifier, 0 if none.
func (s *Sequence) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
