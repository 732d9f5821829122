package mirror

import (
	"context"

	"github.com/mkazhan/teamkeeper/internal/client/models"
)

// Repository is the local mirror store: the durable copy of the owner's
// teams and members that the UI reads for instant response. The facade is
// its only writer; the full-sync orchestrator rebuilds it wholesale.
type Repository interface {
	// GetTeams returns all teams owned by ownerID; an empty store yields an
	// empty slice, not an error.
	GetTeams(ctx context.Context, ownerID string) ([]models.Team, error)

	// GetMembers returns all members owned by ownerID.
	GetMembers(ctx context.Context, ownerID string) ([]models.Member, error)

	// PutTeam upserts a team by id; last write wins.
	PutTeam(ctx context.Context, t *models.Team) error

	// PutMember upserts a member by id.
	PutMember(ctx context.Context, m *models.Member) error

	// DeleteTeam removes the team and all of its members in one
	// transaction, members first. Absent ids are a no-op.
	DeleteTeam(ctx context.Context, id string) error

	// DeleteMember removes a member by id; no-op if absent.
	DeleteMember(ctx context.Context, id string) error

	// ReplaceAll atomically replaces the owner's mirrored dataset with the
	// given one. Used by pull-wins reconciliation; on error nothing changes.
	ReplaceAll(ctx context.Context, ownerID string, teams []models.Team, members []models.Member) error
}
