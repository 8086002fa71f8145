package dvgen

import (
	"context"
)

// DBQuerier abstracts the read-only database operations needed by the
// introspector. This interface decouples the public API from pgx-specific
// types: unit tests supply fake implementations, production code wraps a
// pgxpool.Pool.
//
// Thread-Safety: Implementations should follow their underlying connection's
// thread-safety guarantees. Connection pool implementations are typically safe
// for concurrent use.
type DBQuerier interface {
	// Query executes a query that returns multiple rows.
	// The caller must call Close() on the returned Rows when done.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows represents an iterable query result set.
// This interface decouples from pgx.Rows.
type Rows interface {
	// Next advances to the next row, returning false when no rows remain.
	Next() bool

	// Scan reads the values from the current row into dest values.
	Scan(dest ...any) error

	// Err returns any error that occurred during iteration.
	// Must be checked after Next() returns false.
	Err() error

	// Close releases resources held by the result set.
	Close()
}
