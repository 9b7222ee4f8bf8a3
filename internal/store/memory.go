package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/what2wear/backend/internal/closet"
)

// MemoryStore keeps the snapshot in process memory. Snapshots go through a
// JSON round-trip so the stored copy never aliases the manager's state.
// Used for tests and ephemeral runs.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*closet.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	var snap closet.Snapshot
	if err := json.Unmarshal(s.data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode stored snapshot: %w", err)
	}
	return &snap, nil
}

func (s *MemoryStore) Save(_ context.Context, snap *closet.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
