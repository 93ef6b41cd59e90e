package replay

import (
	"sync"

	"github.com/penwyp/go-geo-replay/internal/core/model"
)

// StateManager is a StepSink that retains the most recent step so other
// components (status lines, the metrics poller, tests) can read the cursor
// position without subscribing to the stream.
type StateManager struct {
	mu      sync.RWMutex
	latest  model.StepUpdate
	stepped bool
	loading bool
}

func NewStateManager() *StateManager {
	return &StateManager{}
}

func (s *StateManager) OnStep(update model.StepUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = update
	s.stepped = true
}

// Latest returns the most recent step. The second return is false until the
// first step has been realized.
func (s *StateManager) Latest() (model.StepUpdate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.stepped
}

// SetLoading marks a reload in progress.
func (s *StateManager) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *StateManager) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
