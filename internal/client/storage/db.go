// Package storage opens the local client database and wires the repositories
// on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/mkazhan/teamkeeper/internal/client/migrations"
	"github.com/mkazhan/teamkeeper/internal/client/repositories/mirror"
	"github.com/mkazhan/teamkeeper/internal/client/repositories/queue"
)

// Repositories bundles everything built on the local database.
type Repositories struct {
	Mirror mirror.Repository
	Queue  queue.Repository
	DB     *sql.DB
}

// RunMigrations applies the embedded goose migrations. Reapplying on an
// up-to-date database is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if necessary) the SQLite database at dsn,
// migrates it and returns the repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repositories{
		Mirror: mirror.NewSQLiteRepository(db),
		Queue:  queue.NewSQLiteRepository(db),
		DB:     db,
	}, nil
}
