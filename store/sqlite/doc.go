// Package sqlite provides a SnapshotStore backed by a single SQLite file,
// suitable for keeping the parameter history of local experiments.
package sqlite
