package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smallnest/scalargrad/store"
)

// SqliteSnapshotStore implements store.SnapshotStore using SQLite.
type SqliteSnapshotStore struct {
	db        *sql.DB
	tableName string
}

// SqliteOptions configuration for the SQLite connection.
type SqliteOptions struct {
	Path      string
	TableName string // Default "snapshots"
}

// NewSqliteSnapshotStore opens (or creates) the database and ensures the
// schema exists.
func NewSqliteSnapshotStore(opts SqliteOptions) (*SqliteSnapshotStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "snapshots"
	}

	s := &SqliteSnapshotStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// InitSchema creates the necessary table if it doesn't exist.
func (s *SqliteSnapshotStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			epoch INTEGER NOT NULL,
			params TEXT NOT NULL,
			loss REAL NOT NULL,
			accuracy REAL NOT NULL,
			timestamp DATETIME NOT NULL,
			version INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_run_id ON %s (run_id);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SqliteSnapshotStore) Close() error {
	return s.db.Close()
}

// Save stores a snapshot.
func (s *SqliteSnapshotStore) Save(ctx context.Context, snapshot *store.Snapshot) error {
	paramsJSON, err := json.Marshal(snapshot.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, run_id, epoch, params, loss, accuracy, timestamp, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			run_id = excluded.run_id,
			epoch = excluded.epoch,
			params = excluded.params,
			loss = excluded.loss,
			accuracy = excluded.accuracy,
			timestamp = excluded.timestamp,
			version = excluded.version
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.RunID,
		snapshot.Epoch,
		string(paramsJSON),
		snapshot.Loss,
		snapshot.Accuracy,
		snapshot.Timestamp,
		snapshot.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load retrieves a snapshot by ID.
func (s *SqliteSnapshotStore) Load(ctx context.Context, snapshotID string) (*store.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT id, run_id, epoch, params, loss, accuracy, timestamp, version
		FROM %s
		WHERE id = ?
	`, s.tableName)

	var snap store.Snapshot
	var paramsJSON string

	err := s.db.QueryRowContext(ctx, query, snapshotID).Scan(
		&snap.ID,
		&snap.RunID,
		&snap.Epoch,
		&paramsJSON,
		&snap.Loss,
		&snap.Accuracy,
		&snap.Timestamp,
		&snap.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot not found: %s", snapshotID)
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(paramsJSON), &snap.Params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}
	return &snap, nil
}

// List returns all snapshots for a given run, oldest first.
func (s *SqliteSnapshotStore) List(ctx context.Context, runID string) ([]*store.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT id, run_id, epoch, params, loss, accuracy, timestamp, version
		FROM %s
		WHERE run_id = ?
		ORDER BY timestamp ASC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*store.Snapshot
	for rows.Next() {
		var snap store.Snapshot
		var paramsJSON string

		err := rows.Scan(
			&snap.ID,
			&snap.RunID,
			&snap.Epoch,
			&paramsJSON,
			&snap.Loss,
			&snap.Accuracy,
			&snap.Timestamp,
			&snap.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if err := json.Unmarshal([]byte(paramsJSON), &snap.Params); err != nil {
			return nil, fmt.Errorf("failed to unmarshal params: %w", err)
		}
		snapshots = append(snapshots, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return snapshots, nil
}

// Delete removes a snapshot.
func (s *SqliteSnapshotStore) Delete(ctx context.Context, snapshotID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	_, err := s.db.ExecContext(ctx, query, snapshotID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Clear removes all snapshots for a run.
func (s *SqliteSnapshotStore) Clear(ctx context.Context, runID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE run_id = ?", s.tableName)
	_, err := s.db.ExecContext(ctx, query, runID)
	if err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}
