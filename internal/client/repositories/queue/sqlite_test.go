package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazhan/teamkeeper/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE sync_queue (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  table_name TEXT NOT NULL,
  op TEXT NOT NULL,
  record_id TEXT NOT NULL,
  payload BLOB NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  user_id TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func entry(owner, table string, op models.Op, recordID string) *models.QueueEntry {
	return &models.QueueEntry{
		Table:    table,
		Op:       op,
		RecordID: recordID,
		Payload:  json.RawMessage(`{"name":"x"}`),
		UserID:   owner,
	}
}

func TestAppend_AssignsAscendingIDs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	a := entry("u1", models.TableTeams, models.OpInsert, "t1")
	b := entry("u1", models.TableTeams, models.OpUpdate, "t1")
	require.NoError(t, r.Append(ctx, a))
	require.NoError(t, r.Append(ctx, b))

	assert.Positive(t, a.ID)
	assert.Greater(t, b.ID, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestAppend_DeleteEntryWithoutPayload(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	// deletes are enqueued with a nil payload
	e := &models.QueueEntry{
		Table:    models.TableTeams,
		Op:       models.OpDelete,
		RecordID: "t1",
		UserID:   "u1",
	}
	require.NoError(t, r.Append(ctx, e))

	got, err := r.Pending(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.OpDelete, got[0].Op)
	assert.Equal(t, "t1", got[0].RecordID)
	assert.Empty(t, got[0].Payload)
}

func TestPending_FIFOOrderPerOwner(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	first := entry("u1", models.TableTeams, models.OpInsert, "t1")
	foreign := entry("u2", models.TableTeams, models.OpInsert, "t9")
	second := entry("u1", models.TableMembers, models.OpInsert, "m1")
	third := entry("u1", models.TableMembers, models.OpDelete, "m1")
	for _, e := range []*models.QueueEntry{first, foreign, second, third} {
		require.NoError(t, r.Append(ctx, e))
	}

	got, err := r.Pending(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{first.ID, second.ID, third.ID}, []int64{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, models.OpDelete, got[2].Op)
	assert.Equal(t, json.RawMessage(`{"name":"x"}`), got[0].Payload)
}

func TestRemove_RemovedEntryNeverComesBack(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	a := entry("u1", models.TableTeams, models.OpInsert, "t1")
	b := entry("u1", models.TableTeams, models.OpUpdate, "t1")
	require.NoError(t, r.Append(ctx, a))
	require.NoError(t, r.Append(ctx, b))

	require.NoError(t, r.Remove(ctx, a.ID))

	got, err := r.Pending(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	n, err := r.Len(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// removing twice is harmless
	require.NoError(t, r.Remove(ctx, a.ID))
}

func TestPending_EmptyQueue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.Pending(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, got)

	n, err := r.Len(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}
