package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkazhan/teamkeeper/internal/client/models"
	"github.com/mkazhan/teamkeeper/internal/client/repositories/mirror"
	"github.com/mkazhan/teamkeeper/internal/client/repositories/queue"
	"github.com/mkazhan/teamkeeper/internal/common"
	"github.com/mkazhan/teamkeeper/internal/cryptox"
	"github.com/mkazhan/teamkeeper/internal/logging"
)

// Facade is the single CRUD entry point for all application code. Every
// mutation follows the same template: construct locally, write the mirror,
// append a queue entry, then update the in-memory state and kick the
// processor. If either durable write fails the state is left untouched and
// the error returns to the caller, so the UI never shows data that was not
// persisted.
type Facade struct {
	ownerID string
	mirror  mirror.Repository
	queue   queue.Repository
	state   *State
	sealer  *cryptox.Sealer
	log     logging.Logger

	// kick asks the monitor to run a background drain if currently online.
	kick func()

	now   func() time.Time
	newID func() string
}

func NewFacade(ownerID string, m mirror.Repository, q queue.Repository, state *State, sealer *cryptox.Sealer, log logging.Logger) *Facade {
	return &Facade{
		ownerID: ownerID,
		mirror:  m,
		queue:   q,
		state:   state,
		sealer:  sealer,
		log:     log,
		kick:    func() {},
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// SetKick wires the fire-and-forget processor trigger. Called once during
// app wiring, before the facade is used.
func (f *Facade) SetKick(kick func()) {
	if kick != nil {
		f.kick = kick
	}
}

// Bootstrap populates the in-memory state from the mirror store. This is
// the fast, local-only path run at startup; the monitor pulls remote truth
// once connectivity is confirmed.
func (f *Facade) Bootstrap(ctx context.Context) error {
	return f.Reload(ctx)
}

// Reload rebuilds the in-memory state from the mirror store.
func (f *Facade) Reload(ctx context.Context) error {
	teams, err := f.mirror.GetTeams(ctx, f.ownerID)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}
	members, err := f.mirror.GetMembers(ctx, f.ownerID)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}
	f.state.Replace(teams, members)
	return nil
}

// Teams returns the cached teams with members; no storage or network access.
func (f *Facade) Teams() []TeamView {
	return f.state.Teams()
}

// Team returns one cached team with members.
func (f *Facade) Team(id string) (TeamView, bool) {
	return f.state.Team(id)
}

// CreateTeam constructs a team with a locally generated id, persists it
// optimistically and enqueues the remote insert.
func (f *Facade) CreateTeam(ctx context.Context, name, adminContact, logo string, isYearly, isPlus bool) (models.Team, error) {
	if name == "" {
		return models.Team{}, common.ErrorNameRequired
	}

	team := models.Team{
		ID:           f.newID(),
		UserID:       f.ownerID,
		Name:         name,
		AdminContact: adminContact,
		Logo:         logo,
		CreatedAt:    f.now(),
		IsYearly:     isYearly,
		IsPlus:       isPlus,
	}

	if err := f.mirror.PutTeam(ctx, &team); err != nil {
		return models.Team{}, err
	}
	if err := f.enqueue(ctx, models.TableTeams, models.OpInsert, team.ID, team); err != nil {
		return models.Team{}, err
	}

	f.state.PutTeam(team)
	f.kick()
	return team, nil
}

// UpdateTeam applies a field-level patch to an existing team.
func (f *Facade) UpdateTeam(ctx context.Context, id string, patch models.TeamPatch) (models.Team, error) {
	view, ok := f.state.Team(id)
	if !ok {
		return models.Team{}, common.ErrorTeamNotFound
	}

	team := view.Team
	patch.Apply(&team)

	if err := f.mirror.PutTeam(ctx, &team); err != nil {
		return models.Team{}, err
	}
	if err := f.enqueue(ctx, models.TableTeams, models.OpUpdate, id, patch); err != nil {
		return models.Team{}, err
	}

	f.state.PutTeam(team)
	f.kick()
	return team, nil
}

// DeleteTeam removes the team and, by cascade, its members. Remote deletes
// are enqueued members-first so the drain never orphans children.
func (f *Facade) DeleteTeam(ctx context.Context, id string) error {
	view, ok := f.state.Team(id)
	if !ok {
		return common.ErrorTeamNotFound
	}

	if err := f.mirror.DeleteTeam(ctx, id); err != nil {
		return err
	}
	for _, m := range view.Members {
		if err := f.enqueue(ctx, models.TableMembers, models.OpDelete, m.ID, nil); err != nil {
			return err
		}
	}
	if err := f.enqueue(ctx, models.TableTeams, models.OpDelete, id, nil); err != nil {
		return err
	}

	f.state.DeleteTeam(id)
	f.kick()
	return nil
}

// AddMember adds m to its team. The caller fills the data fields; id, owner
// and join date are assigned here, and secret fields are sealed.
func (f *Facade) AddMember(ctx context.Context, m models.Member) (models.Member, error) {
	if m.Email == "" {
		return models.Member{}, common.ErrorEmailRequired
	}
	if _, ok := f.state.Team(m.TeamID); !ok {
		return models.Member{}, common.ErrorTeamNotFound
	}

	m.ID = f.newID()
	m.UserID = f.ownerID
	if m.JoinedAt.IsZero() {
		m.JoinedAt = f.now()
	}
	if err := f.sealMember(&m); err != nil {
		return models.Member{}, err
	}

	if err := f.mirror.PutMember(ctx, &m); err != nil {
		return models.Member{}, err
	}
	if err := f.enqueue(ctx, models.TableMembers, models.OpInsert, m.ID, m); err != nil {
		return models.Member{}, err
	}

	f.state.PutMember(m)
	f.kick()
	return m, nil
}

// UpdateMember applies a field-level patch to an existing member.
func (f *Facade) UpdateMember(ctx context.Context, id string, patch models.MemberPatch) (models.Member, error) {
	member, ok := f.state.Member(id)
	if !ok {
		return models.Member{}, common.ErrorMemberNotFound
	}
	if err := f.sealPatch(&patch); err != nil {
		return models.Member{}, err
	}

	patch.Apply(&member)

	if err := f.mirror.PutMember(ctx, &member); err != nil {
		return models.Member{}, err
	}
	if err := f.enqueue(ctx, models.TableMembers, models.OpUpdate, id, patch); err != nil {
		return models.Member{}, err
	}

	f.state.PutMember(member)
	f.kick()
	return member, nil
}

// RemoveMember deletes a single member.
func (f *Facade) RemoveMember(ctx context.Context, id string) error {
	if _, ok := f.state.Member(id); !ok {
		return common.ErrorMemberNotFound
	}

	if err := f.mirror.DeleteMember(ctx, id); err != nil {
		return err
	}
	if err := f.enqueue(ctx, models.TableMembers, models.OpDelete, id, nil); err != nil {
		return err
	}

	f.state.DeleteMember(id)
	f.kick()
	return nil
}

// snapshot is the export/import wire format: teams with nested members.
type snapshot struct {
	ExportedAt time.Time  `json:"exportedAt"`
	Teams      []TeamView `json:"teams"`
}

// ExportData returns a JSON snapshot of the owner's teams for manual backup.
// Sealed secret fields are opened so the snapshot is self-contained.
func (f *Facade) ExportData(ctx context.Context) ([]byte, error) {
	snap := snapshot{ExportedAt: f.now(), Teams: f.state.Teams()}

	for ti := range snap.Teams {
		for mi := range snap.Teams[ti].Members {
			if err := f.openMember(&snap.Teams[ti].Members[mi]); err != nil {
				return nil, err
			}
		}
	}
	return json.MarshalIndent(snap, "", "  ")
}

// ImportData replays a snapshot through the normal mutation path, so the
// imported records reach the remote store via the ordinary queue drain.
// Record ids are preserved; both local and remote writes are upserts.
func (f *Facade) ImportData(ctx context.Context, data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}

	for _, view := range snap.Teams {
		team := view.Team
		team.UserID = f.ownerID
		if err := f.mirror.PutTeam(ctx, &team); err != nil {
			return err
		}
		if err := f.enqueue(ctx, models.TableTeams, models.OpInsert, team.ID, team); err != nil {
			return err
		}
		f.state.PutTeam(team)

		for _, member := range view.Members {
			member.UserID = f.ownerID
			member.TeamID = team.ID
			if err := f.sealMember(&member); err != nil {
				return err
			}
			if err := f.mirror.PutMember(ctx, &member); err != nil {
				return err
			}
			if err := f.enqueue(ctx, models.TableMembers, models.OpInsert, member.ID, member); err != nil {
				return err
			}
			f.state.PutMember(member)
		}
	}

	f.kick()
	return nil
}

// MarkBackupDone stamps every team with the backup time via the normal
// update path.
func (f *Facade) MarkBackupDone(ctx context.Context, at time.Time) error {
	for _, view := range f.state.Teams() {
		ts := at.UTC()
		if _, err := f.UpdateTeam(ctx, view.ID, models.TeamPatch{LastBackupAt: &ts}); err != nil {
			return err
		}
	}
	return nil
}

// enqueue appends one queue entry describing a mutation that was already
// applied to the mirror.
func (f *Facade) enqueue(ctx context.Context, table string, op models.Op, recordID string, payload any) error {
	e := &models.QueueEntry{
		Table:     table,
		Op:        op,
		RecordID:  recordID,
		CreatedAt: f.now(),
		UserID:    f.ownerID,
	}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode queue payload: %w", err)
		}
		e.Payload = b
	}
	if err := f.queue.Append(ctx, e); err != nil {
		return err
	}
	f.log.Debug(ctx, "mutation enqueued", "table", table, "op", string(op), "record", recordID, "entry", e.ID)
	return nil
}

func (f *Facade) sealMember(m *models.Member) error {
	var err error
	if m.TwoFactorCode, err = f.sealer.Seal(m.TwoFactorCode); err != nil {
		return err
	}
	if m.Password, err = f.sealer.Seal(m.Password); err != nil {
		return err
	}
	if m.CredentialOne, err = f.sealer.Seal(m.CredentialOne); err != nil {
		return err
	}
	if m.CredentialTwo, err = f.sealer.Seal(m.CredentialTwo); err != nil {
		return err
	}
	return nil
}

func (f *Facade) openMember(m *models.Member) error {
	var err error
	if m.TwoFactorCode, err = f.sealer.Open(m.TwoFactorCode); err != nil {
		return err
	}
	if m.Password, err = f.sealer.Open(m.Password); err != nil {
		return err
	}
	if m.CredentialOne, err = f.sealer.Open(m.CredentialOne); err != nil {
		return err
	}
	if m.CredentialTwo, err = f.sealer.Open(m.CredentialTwo); err != nil {
		return err
	}
	return nil
}

func (f *Facade) sealPatch(p *models.MemberPatch) error {
	seal := func(field **string) error {
		if *field == nil {
			return nil
		}
		sealed, err := f.sealer.Seal(**field)
		if err != nil {
			return err
		}
		*field = &sealed
		return nil
	}
	for _, field := range []**string{&p.TwoFactorCode, &p.Password, &p.CredentialOne, &p.CredentialTwo} {
		if err := seal(field); err != nil {
			return err
		}
	}
	return nil
}
