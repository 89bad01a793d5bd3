package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/ports/driven"
)

// Ensure ProgressStore implements the interface.
var _ driven.ProgressStore = (*ProgressStore)(nil)

// ProgressStore keeps the progress snapshot in memory. The snapshot is
// held encoded so callers never share maps with the store.
type ProgressStore struct {
	mu       sync.RWMutex
	snapshot []byte
}

// NewProgressStore creates an empty in-memory progress store.
func NewProgressStore() *ProgressStore {
	return &ProgressStore{}
}

// Load returns the saved snapshot or domain.ErrNotFound.
func (s *ProgressStore) Load(_ context.Context) (*domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, domain.ErrNotFound
	}
	var p domain.Progress
	if err := json.Unmarshal(s.snapshot, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return &p, nil
}

// Save replaces the snapshot.
func (s *ProgressStore) Save(_ context.Context, progress domain.Progress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = data
	return nil
}

// Reset deletes the snapshot.
func (s *ProgressStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	return nil
}
