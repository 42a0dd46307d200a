package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/smallnest/scalargrad/store"
)

func TestMemorySnapshotStore_New(t *testing.T) {
	t.Parallel()

	ms := NewMemorySnapshotStore()

	if ms == nil {
		t.Fatal("Store should not be nil")
	}

	// Verify it implements the interface
	var _ store.SnapshotStore = ms
}

func TestMemorySnapshotStore_BasicOperations(t *testing.T) {
	t.Parallel()

	t.Run("save and load", func(t *testing.T) {
		t.Parallel()

		ms := NewMemorySnapshotStore()
		ctx := context.Background()

		snap := &store.Snapshot{
			ID:        "snap-1",
			RunID:     "run-moons-1",
			Epoch:     3,
			Params:    []float64{0.25, -1.5, 0.75},
			Loss:      0.412,
			Accuracy:  0.87,
			Timestamp: time.Now(),
			Version:   4,
		}

		if err := ms.Save(ctx, snap); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}

		loaded, err := ms.Load(ctx, snap.ID)
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}

		if loaded.ID != snap.ID {
			t.Errorf("ID mismatch: got %s, want %s", loaded.ID, snap.ID)
		}
		if loaded.Epoch != snap.Epoch {
			t.Errorf("Epoch mismatch: got %d, want %d", loaded.Epoch, snap.Epoch)
		}
		if len(loaded.Params) != 3 || loaded.Params[1] != -1.5 {
			t.Errorf("Params mismatch: got %v", loaded.Params)
		}
	})

	t.Run("load missing", func(t *testing.T) {
		t.Parallel()

		ms := NewMemorySnapshotStore()
		if _, err := ms.Load(context.Background(), "nope"); err == nil {
			t.Fatal("Expected error for missing snapshot")
		}
	})

	t.Run("stored snapshot is isolated from caller", func(t *testing.T) {
		t.Parallel()

		ms := NewMemorySnapshotStore()
		ctx := context.Background()

		snap := &store.Snapshot{ID: "snap-1", RunID: "run-1", Params: []float64{1, 2}}
		if err := ms.Save(ctx, snap); err != nil {
			t.Fatal(err)
		}
		snap.Params[0] = 99

		loaded, err := ms.Load(ctx, "snap-1")
		if err != nil {
			t.Fatal(err)
		}
		if loaded.Params[0] != 1 {
			t.Errorf("Stored params aliased caller slice: %v", loaded.Params)
		}
	})
}

func TestMemorySnapshotStore_ListOrderedByTime(t *testing.T) {
	t.Parallel()

	ms := NewMemorySnapshotStore()
	ctx := context.Background()
	base := time.Now()

	// Save out of order.
	for _, i := range []int{2, 0, 1} {
		snap := &store.Snapshot{
			ID:        fmt.Sprintf("snap-%d", i),
			RunID:     "run-1",
			Epoch:     i,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := ms.Save(ctx, snap); err != nil {
			t.Fatal(err)
		}
	}

	listed, err := ms.List(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 3 {
		t.Fatalf("Expected 3 snapshots, got %d", len(listed))
	}
	for i, snap := range listed {
		if snap.Epoch != i {
			t.Errorf("Position %d holds epoch %d", i, snap.Epoch)
		}
	}
}

func TestMemorySnapshotStore_DeleteAndClear(t *testing.T) {
	t.Parallel()

	ms := NewMemorySnapshotStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := ms.Save(ctx, &store.Snapshot{
			ID:        fmt.Sprintf("snap-%d", i),
			RunID:     "run-1",
			Timestamp: time.Now(),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	if err := ms.Delete(ctx, "snap-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := ms.Load(ctx, "snap-1"); err == nil {
		t.Error("Deleted snapshot still loadable")
	}
	listed, _ := ms.List(ctx, "run-1")
	if len(listed) != 2 {
		t.Errorf("Expected 2 snapshots after delete, got %d", len(listed))
	}

	if err := ms.Delete(ctx, "snap-1"); err == nil {
		t.Error("Deleting a missing snapshot should error")
	}

	if err := ms.Clear(ctx, "run-1"); err != nil {
		t.Fatal(err)
	}
	listed, _ = ms.List(ctx, "run-1")
	if len(listed) != 0 {
		t.Errorf("Expected no snapshots after clear, got %d", len(listed))
	}
}
