// Package postgres provides a SnapshotStore backed by PostgreSQL, for
// experiment histories that outlive a single machine. Parameter vectors are
// stored as JSONB and indexed by run, so many training processes can write
// into the same table.
//
// The store takes either a connection string (a pgxpool is created for you)
// or an existing pool through the DBPool interface, which also makes the
// store testable with pgxmock.
package postgres
