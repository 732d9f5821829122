package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mkazhan/teamkeeper/internal/client/models"
	"github.com/mkazhan/teamkeeper/internal/client/repositories/queue"
	"github.com/mkazhan/teamkeeper/internal/client/translate"
	"github.com/mkazhan/teamkeeper/internal/common"
	"github.com/mkazhan/teamkeeper/internal/logging"
	"github.com/mkazhan/teamkeeper/internal/remote"
)

// Processor drains the sync queue against the remote store. A pass walks the
// owner's entries in FIFO order and removes each one only after the remote
// confirmed it; the first failure halts the pass so later entries can never
// overtake earlier ones. Remote upserts/deletes are idempotent, so a retried
// pass cannot duplicate records.
type Processor struct {
	queue queue.Repository
	store remote.Store
	log   logging.Logger

	// mu serializes passes.
	mu sync.Mutex
}

func NewProcessor(q queue.Repository, store remote.Store, log logging.Logger) *Processor {
	return &Processor{queue: q, store: store, log: log}
}

// ProcessQueue runs one drain pass for ownerID. A pass that finds another one
// in flight is a no-op. Remote failures are logged and returned but must not
// be surfaced to the UI path: the mutation already succeeded locally and the
// entry stays queued for the next pass.
func (p *Processor) ProcessQueue(ctx context.Context, ownerID string) error {
	if !p.mu.TryLock() {
		return nil
	}
	defer p.mu.Unlock()

	return p.drain(ctx, ownerID)
}

// Flush runs a drain pass for ownerID, waiting for any in-flight pass to
// finish first. Reconnect uses it so the pull that follows cannot start while
// queued mutations are still on their way out.
func (p *Processor) Flush(ctx context.Context, ownerID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.drain(ctx, ownerID)
}

// drain walks the owner's pending entries in FIFO order. Callers hold p.mu.
func (p *Processor) drain(ctx context.Context, ownerID string) error {
	entries, err := p.queue.Pending(ctx, ownerID)
	if err != nil {
		p.log.Error(ctx, "failed to read sync queue", "owner", ownerID, "error", err)
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	for n, e := range entries {
		if err := p.push(ctx, e); err != nil {
			p.log.Warn(ctx, "drain pass halted",
				"owner", ownerID, "entry", e.ID, "table", e.Table, "op", string(e.Op),
				"pushed", n, "remaining", len(entries)-n, "error", err)
			return err
		}
		if err := p.queue.Remove(ctx, e.ID); err != nil {
			p.log.Error(ctx, "failed to remove pushed queue entry", "entry", e.ID, "error", err)
			return err
		}
	}

	p.log.Info(ctx, "queue drained", "owner", ownerID, "entries", len(entries))
	return nil
}

// push applies one queued mutation to the remote store.
func (p *Processor) push(ctx context.Context, e *models.QueueEntry) error {
	switch e.Op {
	case models.OpInsert:
		row, err := p.insertRow(e)
		if err != nil {
			// The payload came from our own write path; if it cannot be
			// decoded it can never be pushed, so drop it rather than wedge
			// the queue. Pull-wins reconciliation restores consistency.
			p.log.Error(ctx, "dropping unreadable insert entry", "entry", e.ID, "error", err)
			return p.queue.Remove(ctx, e.ID)
		}
		_, err = p.store.Insert(ctx, e.Table, row)
		return err

	case models.OpUpdate:
		return p.store.Update(ctx, e.Table, e.RecordID, translate.PatchToRow(e.Table, e.Payload))

	case models.OpDelete:
		return p.store.Delete(ctx, e.Table, e.RecordID)

	default:
		return fmt.Errorf("%w: %q", common.ErrorUnknownOp, e.Op)
	}
}

func (p *Processor) insertRow(e *models.QueueEntry) (remote.Row, error) {
	switch e.Table {
	case models.TableTeams:
		var t models.Team
		if err := json.Unmarshal(e.Payload, &t); err != nil {
			return nil, err
		}
		return translate.TeamToRow(t), nil
	case models.TableMembers:
		var m models.Member
		if err := json.Unmarshal(e.Payload, &m); err != nil {
			return nil, err
		}
		return translate.MemberToRow(m), nil
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrorUnknownTable, e.Table)
	}
}
