package viewmodel

import (
	"sync"

	"settings-core/internal/entity"
)

// NavigationStack is the settings navigation path. It only grows by push and
// shrinks by pop.
type NavigationStack struct {
	mu   sync.Mutex
	path []entity.Destination
}

func (s *NavigationStack) Push(d entity.Destination) {
	s.mu.Lock()
	s.path = append(s.path, d)
	s.mu.Unlock()
}

// Pop removes the top destination. It returns false on an empty stack.
func (s *NavigationStack) Pop() (entity.Destination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.path) == 0 {
		return "", false
	}
	top := s.path[len(s.path)-1]
	s.path = s.path[:len(s.path)-1]
	return top, true
}

func (s *NavigationStack) PopToRoot() {
	s.mu.Lock()
	s.path = nil
	s.mu.Unlock()
}

func (s *NavigationStack) Top() (entity.Destination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.path) == 0 {
		return "", false
	}
	return s.path[len(s.path)-1], true
}

func (s *NavigationStack) Path() []entity.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Destination, len(s.path))
	copy(out, s.path)
	return out
}
