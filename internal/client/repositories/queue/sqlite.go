package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/mkazhan/teamkeeper/internal/client/models"
	"github.com/mkazhan/teamkeeper/internal/dbx"
)

// SQLiteRepository implements Repository over the sync_queue table. The
// AUTOINCREMENT id doubles as the FIFO position: ids are assigned in append
// order and never reused, so draining by ascending id preserves causal order
// across restarts.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, e *models.QueueEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	// delete entries carry no payload; bind an empty blob, not NULL
	payload := []byte(e.Payload)
	if payload == nil {
		payload = []byte{}
	}
	query := `INSERT INTO sync_queue (table_name, op, record_id, payload, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		e.Table, string(e.Op), e.RecordID, payload,
		e.CreatedAt.UTC().Format(time.RFC3339Nano), e.UserID)
	if err != nil {
		return fmt.Errorf("failed to append queue entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get queue entry id: %w", err)
	}
	e.ID = id
	return nil
}

func (r *SQLiteRepository) Pending(ctx context.Context, ownerID string) ([]*models.QueueEntry, error) {
	query := `SELECT id, table_name, op, record_id, payload, created_at, user_id
		FROM sync_queue WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select queue entries: %w", err)
	}
	defer rows.Close()

	var result []*models.QueueEntry
	for rows.Next() {
		e := &models.QueueEntry{}
		var op, createdAt string
		if err := rows.Scan(&e.ID, &e.Table, &op, &e.RecordID, &e.Payload, &createdAt, &e.UserID); err != nil {
			return nil, err
		}
		e.Op = models.Op(op)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = ts.UTC()
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sync_queue WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove queue entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Len(ctx context.Context, ownerID string) (int, error) {
	var n int
	row := r.db.QueryRowContext(ctx, `SELECT count(*) FROM sync_queue WHERE user_id = ?`, ownerID)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count queue entries: %w", err)
	}
	return n, nil
}
