// Package store defines parameter snapshot persistence for training runs.
//
// A Snapshot is the flattened parameter vector of a model at the end of an
// epoch, together with the run it belongs to and the metrics at that point.
// SnapshotStore is the storage interface; backends live in the subpackages:
//
//   - store/memory: in-process map, good for tests and short runs
//   - store/sqlite: single-file database
//   - store/redis: shared in-memory store with optional TTL
//   - store/postgres: relational backend for long-lived experiment history
//
// Snapshots persist model parameters only, never the computation graph;
// restoring one means loading the parameter vector back into a model of the
// same architecture.
package store
