// Package memory provides an in-process SnapshotStore.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/smallnest/scalargrad/store"
)

// MemorySnapshotStore implements store.SnapshotStore with a mutex-guarded
// map. Snapshots are copied on the way in and out, so callers cannot alias
// stored state.
type MemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]*store.Snapshot
	runs      map[string][]string
}

// NewMemorySnapshotStore creates an empty in-memory snapshot store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snapshots: make(map[string]*store.Snapshot),
		runs:      make(map[string][]string),
	}
}

// Save stores a snapshot.
func (s *MemorySnapshotStore) Save(_ context.Context, snapshot *store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.snapshots[snapshot.ID]; !exists && snapshot.RunID != "" {
		s.runs[snapshot.RunID] = append(s.runs[snapshot.RunID], snapshot.ID)
	}
	s.snapshots[snapshot.ID] = copySnapshot(snapshot)
	return nil
}

// Load retrieves a snapshot by ID.
func (s *MemorySnapshotStore) Load(_ context.Context, snapshotID string) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[snapshotID]
	if !ok {
		return nil, fmt.Errorf("snapshot not found: %s", snapshotID)
	}
	return copySnapshot(snapshot), nil
}

// List returns all snapshots for a run, oldest first.
func (s *MemorySnapshotStore) List(_ context.Context, runID string) ([]*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*store.Snapshot
	for _, id := range s.runs[runID] {
		if snapshot, ok := s.snapshots[id]; ok {
			out = append(out, copySnapshot(snapshot))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// Delete removes a snapshot.
func (s *MemorySnapshotStore) Delete(_ context.Context, snapshotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.snapshots[snapshotID]
	if !ok {
		return fmt.Errorf("snapshot not found: %s", snapshotID)
	}
	delete(s.snapshots, snapshotID)

	ids := s.runs[snapshot.RunID]
	for i, id := range ids {
		if id == snapshotID {
			s.runs[snapshot.RunID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes all snapshots for a run.
func (s *MemorySnapshotStore) Clear(_ context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.runs[runID] {
		delete(s.snapshots, id)
	}
	delete(s.runs, runID)
	return nil
}

func copySnapshot(in *store.Snapshot) *store.Snapshot {
	out := *in
	out.Params = append([]float64(nil), in.Params...)
	return &out
}
