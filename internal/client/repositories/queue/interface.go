package queue

import (
	"context"

	"github.com/mkazhan/teamkeeper/internal/client/models"
)

// Repository is the durable sync queue: an append-only log of mutations not
// yet confirmed by the remote store. The facade appends; the processor
// consumes.
type Repository interface {
	// Append durably persists one entry and assigns its ID. The mutation
	// that produced the entry must be reported as failed if Append fails.
	Append(ctx context.Context, e *models.QueueEntry) error

	// Pending returns the owner's entries in FIFO append order.
	Pending(ctx context.Context, ownerID string) ([]*models.QueueEntry, error)

	// Remove deletes an entry after its remote operation succeeded. A
	// removed entry is never returned by Pending again.
	Remove(ctx context.Context, id int64) error

	// Len reports the number of pending entries for the owner.
	Len(ctx context.Context, ownerID string) (int, error)
}
