package remote

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mkazhan/teamkeeper/internal/common"
	"github.com/mkazhan/teamkeeper/internal/remote/migrations"
)

// tableColumns whitelists the remote schema per table, in column order.
// Row keys outside the whitelist are ignored, mirroring the translator's
// "unknown field is absent" policy.
var tableColumns = map[string][]string{
	"teams": {
		"id", "user_id", "name", "admin_contact", "logo",
		"created_at", "last_backup_at", "is_yearly", "is_plus",
	},
	"members": {
		"id", "team_id", "user_id", "email", "phone", "telegram",
		"two_factor_code", "password", "credential_one", "credential_two",
		"joined_at", "paid", "paid_amount", "due_amount", "tags", "pushed",
		"active_team_id",
	},
}

// PostgresStore implements Store over Postgres via the pgx stdlib driver.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB wraps an existing handle; used by tests.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, s.db, ".")
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Insert upserts the full row keyed by id and returns the stored row.
func (s *PostgresStore) Insert(ctx context.Context, table string, row Row) (Row, error) {
	columns, err := presentColumns(table, row)
	if err != nil {
		return nil, err
	}
	if _, ok := row["id"]; !ok {
		return nil, fmt.Errorf("insert into %s: row has no id", table)
	}

	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	updates := make([]string, 0, len(columns))
	for i, c := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[c]
		if c != "id" {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		}
	}

	all := tableColumns[table]
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s RETURNING %s`,
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
		strings.Join(updates, ", "), strings.Join(all, ", "))

	stored, err := scanRow(s.db.QueryRowContext(ctx, query, args...), all)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert into %s: %w", table, err)
	}
	return stored, nil
}

// Update applies a partial patch. A patch touching zero known columns, or a
// row that no longer exists remotely, is a no-op: ordering guarantees that
// an insert always precedes its updates, so a missing row means it was
// legitimately deleted and pull-wins will reconcile.
func (s *PostgresStore) Update(ctx context.Context, table string, id string, patch Row) error {
	columns, err := presentColumns(table, patch)
	if err != nil {
		return err
	}

	sets := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns)+1)
	for _, c := range columns {
		if c == "id" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", c, len(args)+1))
		args = append(args, patch[c])
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`,
		table, strings.Join(sets, ", "), len(args))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	return nil
}

// Delete tolerates already-absent rows so retried drain passes stay
// idempotent.
func (s *PostgresStore) Delete(ctx context.Context, table string, id string) error {
	if _, ok := tableColumns[table]; !ok {
		return fmt.Errorf("%w: %s", common.ErrorUnknownTable, table)
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

func (s *PostgresStore) SelectAll(ctx context.Context, table string, ownerID string) ([]Row, error) {
	all, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrorUnknownTable, table)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY id`,
		strings.Join(all, ", "), table)
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", table, err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		values := make([]any, len(all))
		ptrs := make([]any, len(all))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := Row{}
		for i, c := range all {
			row[c] = normalize(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// presentColumns returns the whitelisted columns present in row, in schema
// order.
func presentColumns(table string, row Row) ([]string, error) {
	all, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrorUnknownTable, table)
	}
	columns := make([]string, 0, len(row))
	for _, c := range all {
		if _, ok := row[c]; ok {
			columns = append(columns, c)
		}
	}
	return columns, nil
}

func scanRow(row *sql.Row, columns []string) (Row, error) {
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := row.Scan(ptrs...); err != nil {
		return nil, err
	}
	out := Row{}
	for i, c := range columns {
		out[c] = normalize(values[i])
	}
	return out, nil
}

// normalize flattens driver-specific scan types into the Row value set.
func normalize(v any) any {
	switch value := v.(type) {
	case []byte:
		return string(value)
	case int32:
		return int64(value)
	default:
		return v
	}
}
