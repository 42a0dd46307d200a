package store

import (
	"context"
	"time"
)

// Snapshot captures a model's parameters at a specific point in a training
// run.
type Snapshot struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Epoch     int       `json:"epoch"`
	Params    []float64 `json:"params"`
	Loss      float64   `json:"loss"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
	Version   int       `json:"version"`
}

// SnapshotStore defines the interface for snapshot persistence.
type SnapshotStore interface {
	// Save stores a snapshot.
	Save(ctx context.Context, snapshot *Snapshot) error

	// Load retrieves a snapshot by ID.
	Load(ctx context.Context, snapshotID string) (*Snapshot, error)

	// List returns all snapshots for a given run, oldest first.
	List(ctx context.Context, runID string) ([]*Snapshot, error)

	// Delete removes a snapshot.
	Delete(ctx context.Context, snapshotID string) error

	// Clear removes all snapshots for a run.
	Clear(ctx context.Context, runID string) error
}
