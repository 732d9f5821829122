package services

import (
	"context"
	"fmt"

	"github.com/mkazhan/teamkeeper/internal/client/models"
	"github.com/mkazhan/teamkeeper/internal/client/repositories/mirror"
	"github.com/mkazhan/teamkeeper/internal/client/translate"
	"github.com/mkazhan/teamkeeper/internal/logging"
	"github.com/mkazhan/teamkeeper/internal/remote"
)

// Orchestrator performs pull-wins reconciliation: it fetches the owner's
// complete remote dataset and replaces the mirror store with it in one
// transaction. It does not touch the in-memory state; the caller rebuilds
// that from the mirror afterwards (drain-before-pull sequencing lives in
// the monitor's reconnect handler, not here).
type Orchestrator struct {
	store  remote.Store
	mirror mirror.Repository
	log    logging.Logger
}

func NewOrchestrator(store remote.Store, m mirror.Repository, log logging.Logger) *Orchestrator {
	return &Orchestrator{store: store, mirror: m, log: log}
}

// FullSync pulls remote truth for ownerID and overwrites the mirror. Any
// fetch or storage error leaves the mirror exactly as it was.
func (o *Orchestrator) FullSync(ctx context.Context, ownerID string) error {
	teamRows, err := o.store.SelectAll(ctx, models.TableTeams, ownerID)
	if err != nil {
		return fmt.Errorf("failed to fetch teams: %w", err)
	}
	memberRows, err := o.store.SelectAll(ctx, models.TableMembers, ownerID)
	if err != nil {
		return fmt.Errorf("failed to fetch members: %w", err)
	}

	teams := make([]models.Team, 0, len(teamRows))
	for _, r := range teamRows {
		teams = append(teams, translate.TeamFromRow(r))
	}
	members := make([]models.Member, 0, len(memberRows))
	for _, r := range memberRows {
		members = append(members, translate.MemberFromRow(r))
	}

	if err := o.mirror.ReplaceAll(ctx, ownerID, teams, members); err != nil {
		return fmt.Errorf("failed to rebuild mirror: %w", err)
	}

	o.log.Info(ctx, "full sync complete", "owner", ownerID, "teams", len(teams), "members", len(members))
	return nil
}
