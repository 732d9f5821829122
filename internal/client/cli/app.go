// Package cli implements the interactive REPL the user drives the
// application with.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mkazhan/teamkeeper/internal/backup"
	"github.com/mkazhan/teamkeeper/internal/client/config"
	"github.com/mkazhan/teamkeeper/internal/client/services"
	"github.com/mkazhan/teamkeeper/internal/client/storage"
	"github.com/mkazhan/teamkeeper/internal/cryptox"
	"github.com/mkazhan/teamkeeper/internal/filex"
	"github.com/mkazhan/teamkeeper/internal/logging"
	"github.com/mkazhan/teamkeeper/internal/remote"

	_ "modernc.org/sqlite"
)

// App wires the sync engine together and serves the REPL. The remote store
// and the snapshot uploader are optional; without them the app works purely
// locally.
type App struct {
	config   *config.Config
	facade   *services.Facade
	monitor  *services.Monitor
	uploader *backup.Uploader
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	repos *storage.Repositories
	store *remote.PostgresStore
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dataDir, err := filex.EnsureDataDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	repos, err := storage.InitDatabase(ctx, filepath.Join(dataDir, "teamkeeper.db"))
	if err != nil {
		return nil, err
	}

	var sealer *cryptox.Sealer
	if c.SealPassphrase != "" {
		key := cryptox.DeriveKey([]byte(c.SealPassphrase), []byte("teamkeeper:"+c.OwnerID))
		sealer, err = cryptox.NewSealer(key)
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		config: c,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		repos:  repos,
	}

	state := services.NewState()
	app.facade = services.NewFacade(c.OwnerID, repos.Mirror, repos.Queue, state, sealer, log)

	if c.RemoteDSN != "" {
		store, err := remote.NewPostgresStore(c.RemoteDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open remote store: %w", err)
		}
		app.store = store

		processor := services.NewProcessor(repos.Queue, store, log)
		orchestrator := services.NewOrchestrator(store, repos.Mirror, log)
		app.monitor = services.NewMonitor(store, processor, orchestrator, app.facade,
			c.OwnerID, c.ProbeInterval, c.FlushInterval, log)
		app.facade.SetKick(app.monitor.Kick)
	}

	if c.BackupBucket != "" {
		client, err := backup.NewClient(ctx, backup.ClientConfig{
			Region:       c.S3Region,
			BaseEndpoint: c.S3Endpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build backup client: %w", err)
		}
		app.uploader = backup.NewUploader(client, c.BackupBucket, log)
	}

	return app, nil
}

// Close releases the local database and the remote connection.
func (a *App) Close() error {
	if a.store != nil {
		_ = a.store.Close()
	}
	return a.repos.DB.Close()
}

// Run bootstraps from the mirror, starts the connectivity monitor and serves
// the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	if err := a.facade.Bootstrap(ctx); err != nil {
		return err
	}
	if a.monitor != nil {
		go a.monitor.Run(ctx)
	}
	a.Root(ctx)
	return nil
}

// status renders the prompt suffix.
func (a *App) status() string {
	if a.monitor == nil {
		return "(local only)"
	}
	return fmt.Sprintf("(%s)", a.monitor.Status())
}
