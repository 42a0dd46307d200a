package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallnest/scalargrad/store"
)

// RedisSnapshotStore implements store.SnapshotStore using Redis.
type RedisSnapshotStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configuration for the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "scalargrad:"
	TTL      time.Duration // Expiration for snapshots, default 0 (no expiration)
}

// NewRedisSnapshotStore creates a new Redis snapshot store.
func NewRedisSnapshotStore(opts RedisOptions) *RedisSnapshotStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "scalargrad:"
	}

	return &RedisSnapshotStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *RedisSnapshotStore) snapshotKey(id string) string {
	return fmt.Sprintf("%ssnapshot:%s", s.prefix, id)
}

func (s *RedisSnapshotStore) runKey(id string) string {
	return fmt.Sprintf("%srun:%s:snapshots", s.prefix, id)
}

// Save stores a snapshot and indexes it under its run.
func (s *RedisSnapshotStore) Save(ctx context.Context, snapshot *store.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.snapshotKey(snapshot.ID), data, s.ttl)

	if snapshot.RunID != "" {
		runKey := s.runKey(snapshot.RunID)
		pipe.SAdd(ctx, runKey, snapshot.ID)
		if s.ttl > 0 {
			pipe.Expire(ctx, runKey, s.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot to redis: %w", err)
	}
	return nil
}

// Load retrieves a snapshot by ID.
func (s *RedisSnapshotStore) Load(ctx context.Context, snapshotID string) (*store.Snapshot, error) {
	data, err := s.client.Get(ctx, s.snapshotKey(snapshotID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("snapshot not found: %s", snapshotID)
		}
		return nil, fmt.Errorf("failed to load snapshot from redis: %w", err)
	}

	var snapshot store.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// List returns all snapshots for a run, oldest first. Expired snapshot
// keys missing from the run set are skipped.
func (s *RedisSnapshotStore) List(ctx context.Context, runID string) ([]*store.Snapshot, error) {
	ids, err := s.client.SMembers(ctx, s.runKey(runID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots for run %s: %w", runID, err)
	}
	if len(ids) == 0 {
		return []*store.Snapshot{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.snapshotKey(id)
	}

	results, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshots: %w", err)
	}

	var snapshots []*store.Snapshot
	for _, result := range results {
		strData, ok := result.(string)
		if !ok {
			continue
		}
		var snapshot store.Snapshot
		if err := json.Unmarshal([]byte(strData), &snapshot); err != nil {
			continue
		}
		snapshots = append(snapshots, &snapshot)
	}

	// SMembers has no order; restore the chronological one.
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp.Before(snapshots[j].Timestamp)
	})
	return snapshots, nil
}

// Delete removes a snapshot and its run index entry.
func (s *RedisSnapshotStore) Delete(ctx context.Context, snapshotID string) error {
	snapshot, err := s.Load(ctx, snapshotID)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.snapshotKey(snapshotID))
	if snapshot.RunID != "" {
		pipe.SRem(ctx, s.runKey(snapshot.RunID), snapshotID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Clear removes all snapshots for a run.
func (s *RedisSnapshotStore) Clear(ctx context.Context, runID string) error {
	runKey := s.runKey(runID)
	ids, err := s.client.SMembers(ctx, runKey).Result()
	if err != nil {
		return fmt.Errorf("failed to get snapshots for clearing: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, s.snapshotKey(id))
	}
	pipe.Del(ctx, runKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}
