package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkazhan/teamkeeper/internal/client/models"
	"github.com/mkazhan/teamkeeper/internal/dbx"
)

// SQLiteRepository implements Repository over a local SQLite database.
// It holds *sql.DB (not dbx.DBTX) because DeleteTeam and ReplaceAll open
// their own transactions.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Times are stored as RFC3339Nano text so scans stay driver-independent.
func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func (r *SQLiteRepository) GetTeams(ctx context.Context, ownerID string) ([]models.Team, error) {
	query := `SELECT id, user_id, name, admin_contact, logo, created_at, last_backup_at, is_yearly, is_plus
		FROM teams WHERE user_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select teams: %w", err)
	}
	defer rows.Close()

	result := []models.Team{}
	for rows.Next() {
		var t models.Team
		var createdAt string
		var lastBackupAt sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.AdminContact, &t.Logo,
			&createdAt, &lastBackupAt, &t.IsYearly, &t.IsPlus); err != nil {
			return nil, err
		}
		t.CreatedAt = parseTime(createdAt)
		if lastBackupAt.Valid {
			lb := parseTime(lastBackupAt.String)
			t.LastBackupAt = &lb
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetMembers(ctx context.Context, ownerID string) ([]models.Member, error) {
	return selectMembers(ctx, r.db, `WHERE user_id = ?`, ownerID)
}

func selectMembers(ctx context.Context, db dbx.DBTX, where string, arg string) ([]models.Member, error) {
	query := `SELECT id, team_id, user_id, email, phone, telegram, two_factor_code, password,
		credential_one, credential_two, joined_at, paid, paid_amount, due_amount, tags, pushed, active_team_id
		FROM members ` + where + ` ORDER BY joined_at, id`
	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to select members: %w", err)
	}
	defer rows.Close()

	result := []models.Member{}
	for rows.Next() {
		var m models.Member
		var joinedAt, tags string
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Email, &m.Phone, &m.Telegram,
			&m.TwoFactorCode, &m.Password, &m.CredentialOne, &m.CredentialTwo,
			&joinedAt, &m.Paid, &m.PaidAmount, &m.DueAmount, &tags, &m.Pushed, &m.ActiveTeamID); err != nil {
			return nil, err
		}
		m.JoinedAt = parseTime(joinedAt)
		m.Tags = models.DecodeTags(tags)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) PutTeam(ctx context.Context, t *models.Team) error {
	return putTeam(ctx, r.db, t)
}

func putTeam(ctx context.Context, db dbx.DBTX, t *models.Team) error {
	query := `INSERT INTO teams (id, user_id, name, admin_contact, logo, created_at, last_backup_at, is_yearly, is_plus)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			admin_contact = excluded.admin_contact,
			logo = excluded.logo,
			created_at = excluded.created_at,
			last_backup_at = excluded.last_backup_at,
			is_yearly = excluded.is_yearly,
			is_plus = excluded.is_plus`

	var lastBackupAt any
	if t.LastBackupAt != nil {
		lastBackupAt = fmtTime(*t.LastBackupAt)
	}
	_, err := db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Name, t.AdminContact, t.Logo, fmtTime(t.CreatedAt), lastBackupAt, t.IsYearly, t.IsPlus)
	if err != nil {
		return fmt.Errorf("failed to upsert team: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) PutMember(ctx context.Context, m *models.Member) error {
	return putMember(ctx, r.db, m)
}

func putMember(ctx context.Context, db dbx.DBTX, m *models.Member) error {
	query := `INSERT INTO members (id, team_id, user_id, email, phone, telegram, two_factor_code, password,
			credential_one, credential_two, joined_at, paid, paid_amount, due_amount, tags, pushed, active_team_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			team_id = excluded.team_id,
			user_id = excluded.user_id,
			email = excluded.email,
			phone = excluded.phone,
			telegram = excluded.telegram,
			two_factor_code = excluded.two_factor_code,
			password = excluded.password,
			credential_one = excluded.credential_one,
			credential_two = excluded.credential_two,
			joined_at = excluded.joined_at,
			paid = excluded.paid,
			paid_amount = excluded.paid_amount,
			due_amount = excluded.due_amount,
			tags = excluded.tags,
			pushed = excluded.pushed,
			active_team_id = excluded.active_team_id`

	_, err := db.ExecContext(ctx, query,
		m.ID, m.TeamID, m.UserID, m.Email, m.Phone, m.Telegram, m.TwoFactorCode, m.Password,
		m.CredentialOne, m.CredentialTwo, fmtTime(m.JoinedAt), m.Paid, m.PaidAmount, m.DueAmount,
		models.EncodeTags(m.Tags), m.Pushed, m.ActiveTeamID)
	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}
	return nil
}

// DeleteTeam removes the team's members and then the team itself inside one
// transaction, so children are never orphaned by a crash in between.
func (r *SQLiteRepository) DeleteTeam(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM members WHERE team_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete team members: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete team: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) DeleteMember(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// ReplaceAll wipes the owner's mirrored rows and writes the given dataset in
// a single transaction. A failure rolls everything back.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, ownerID string, teams []models.Team, members []models.Member) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM members WHERE user_id = ?`, ownerID); err != nil {
			return fmt.Errorf("failed to clear members: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM teams WHERE user_id = ?`, ownerID); err != nil {
			return fmt.Errorf("failed to clear teams: %w", err)
		}
		for i := range teams {
			if err := putTeam(ctx, tx, &teams[i]); err != nil {
				return err
			}
		}
		for i := range members {
			if err := putMember(ctx, tx, &members[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
