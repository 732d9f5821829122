package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazhan/teamkeeper/internal/client/config"
	"github.com/mkazhan/teamkeeper/internal/client/services"
	"github.com/mkazhan/teamkeeper/internal/client/storage"
	"github.com/mkazhan/teamkeeper/internal/logging"

	_ "modernc.org/sqlite"
)

// newTestApp builds an App on a throwaway database, without a remote store
// or a backup bucket.
func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	repos, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.DB.Close() })

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	facade := services.NewFacade("u1", repos.Mirror, repos.Queue, services.NewState(), nil, log)
	require.NoError(t, facade.Bootstrap(context.Background()))

	out := &bytes.Buffer{}
	app := &App{
		config: &config.Config{OwnerID: "u1"},
		facade: facade,
		log:    log,
		out:    out,
		repos:  repos,
	}
	return app, out
}

func feed(app *App, input string) {
	app.reader = bufio.NewReader(strings.NewReader(input))
}

func TestAddTeam_ThenList(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	feed(app, "Streaming\nadmin@example.com\ntv\ny\nn\n")
	app.addTeam(ctx)
	assert.Contains(t, out.String(), "Created team Streaming")

	out.Reset()
	app.listTeams(ctx)
	assert.Contains(t, out.String(), "Streaming")
	assert.Contains(t, out.String(), "yearly")
}

func TestListTeams_Empty(t *testing.T) {
	app, out := newTestApp(t)
	app.listTeams(context.Background())
	assert.Contains(t, out.String(), "No teams yet")
}

func TestAddMember_RequiresTeamArg(t *testing.T) {
	app, out := newTestApp(t)
	app.addMember(context.Background(), nil)
	assert.Contains(t, out.String(), "Usage: addmember")
}

func TestAddMember_ThenPay(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	feed(app, "Streaming\n\n\nn\nn\n")
	app.addTeam(ctx)
	team := app.facade.Teams()[0]

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) { return nil, nil }

	out.Reset()
	feed(app, "a@example.com\n\n\n4.99\npremium, 4k\n")
	app.addMember(ctx, []string{team.ID})
	assert.Contains(t, out.String(), "Added member a@example.com")

	member := app.facade.Teams()[0].Members[0]
	assert.Equal(t, 4.99, member.DueAmount)
	assert.Equal(t, []string{"premium", "4k"}, member.Tags)

	out.Reset()
	app.markPaid(ctx, []string{member.ID, "4.99"})
	assert.Contains(t, out.String(), "Marked as paid")

	member = app.facade.Teams()[0].Members[0]
	assert.True(t, member.Paid)
	assert.Equal(t, 4.99, member.PaidAmount)
	assert.Zero(t, member.DueAmount)
}

func TestDeleteTeam_AbortsWithoutConfirmation(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	feed(app, "Streaming\n\n\nn\nn\n")
	app.addTeam(ctx)
	team := app.facade.Teams()[0]

	out.Reset()
	feed(app, "n\n")
	app.deleteTeam(ctx, []string{team.ID})
	assert.Contains(t, out.String(), "Aborted")
	assert.Len(t, app.facade.Teams(), 1)

	out.Reset()
	feed(app, "y\n")
	app.deleteTeam(ctx, []string{team.ID})
	assert.Contains(t, out.String(), "Deleted")
	assert.Empty(t, app.facade.Teams())
}

func TestExportImport_ViaFiles(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	feed(app, "Streaming\n\n\nn\nn\n")
	app.addTeam(ctx)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	out.Reset()
	app.export(ctx, []string{path})
	assert.Contains(t, out.String(), "Exported to")

	other, otherOut := newTestApp(t)
	other.importFile(ctx, []string{path})
	assert.Contains(t, otherOut.String(), "Imported 1 team(s)")
	assert.Len(t, other.facade.Teams(), 1)
}

func TestStatus_ShowsLocalMode(t *testing.T) {
	app, out := newTestApp(t)
	app.showStatus(context.Background())
	assert.Contains(t, out.String(), "local only")
	assert.Contains(t, out.String(), "Pending changes: 0")
}

func TestSync_WithoutRemote(t *testing.T) {
	app, out := newTestApp(t)
	app.sync(context.Background())
	assert.Contains(t, out.String(), "No remote store configured")
}

func TestBackup_WithoutBucket(t *testing.T) {
	app, out := newTestApp(t)
	app.backup(context.Background())
	assert.Contains(t, out.String(), "No backup bucket configured")
}
