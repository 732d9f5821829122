// Package remote defines the boundary to the authoritative relational store:
// per-table insert/update/delete/select operations scoped by owner id.
package remote

import "context"

// Row is one remote record in the remote schema's shape: snake_case column
// names mapped to primitive values (string, bool, float64, int64, time.Time
// or nil). List-valued fields travel as JSON-encoded strings.
type Row map[string]any

// Store is the minimal remote surface the sync engine depends on.
//
// Inserts must be idempotent upserts keyed by primary id and deletes must
// tolerate already-absent rows, so a retried drain pass cannot create
// duplicates.
type Store interface {
	// Insert upserts a full row and returns the stored row.
	Insert(ctx context.Context, table string, row Row) (Row, error)

	// Update applies a partial patch to the row with the given id.
	Update(ctx context.Context, table string, id string, patch Row) error

	// Delete removes the row with the given id; absent rows are not an error.
	Delete(ctx context.Context, table string, id string) error

	// SelectAll returns every row in table owned by ownerID.
	SelectAll(ctx context.Context, table string, ownerID string) ([]Row, error)

	// Ping reports whether the remote store is currently reachable.
	Ping(ctx context.Context) error
}
