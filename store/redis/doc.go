// Package redis provides a SnapshotStore on Redis, with a key per snapshot
// and a set per run. Useful when several training processes share one
// experiment history, or when snapshots should expire on their own.
package redis
