package models

import (
	"encoding/json"
	"time"
)

// Table names shared by the mirror store, the sync queue and the remote store.
const (
	TableTeams   = "teams"
	TableMembers = "members"
)

// Op classifies a queued mutation.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// QueueEntry is one pending mutation awaiting push to the remote store.
// Entries are appended in mutation order; the autoincrement ID preserves
// that order across restarts.
type QueueEntry struct {
	// ID is assigned by the queue on append; ascending ID equals FIFO order.
	ID int64

	// Table the mutation targets (TableTeams or TableMembers).
	Table string

	// Op is the mutation kind.
	Op Op

	// RecordID is the primary id of the targeted record.
	RecordID string

	// Payload holds local-shaped JSON: the full entity for inserts, the
	// changed fields for updates, empty for deletes.
	Payload json.RawMessage

	// CreatedAt is the enqueue time in UTC.
	CreatedAt time.Time

	// UserID scopes the entry to its owner.
	UserID string
}
