package usecase

import "sync"

// SeenMatches remembers match ids already scheduled during one feed refresh
// so summoners who played together do not import the same match twice.
// Membership is exact: feed refreshes stop at the first known id, so an id
// wrongly reported as seen would never be revisited.
type SeenMatches struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewSeenMatches(expected int) *SeenMatches {
	if expected < 0 {
		expected = 0
	}
	return &SeenMatches{ids: make(map[string]struct{}, expected)}
}

// Claim records id and reports true when it had not been seen before.
func (s *SeenMatches) Claim(id string) bool {
	if s == nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}
