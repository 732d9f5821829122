package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/mkazhan/teamkeeper/internal/client/models"
	"github.com/mkazhan/teamkeeper/internal/logging"
	"github.com/mkazhan/teamkeeper/internal/remote"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeMirror is an in-memory mirror.Repository.
type fakeMirror struct {
	mu      sync.Mutex
	teams   map[string]models.Team
	members map[string]models.Member

	failPutTeam error
	failReplace error
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{
		teams:   map[string]models.Team{},
		members: map[string]models.Member{},
	}
}

func (f *fakeMirror) GetTeams(_ context.Context, ownerID string) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Team{}
	for _, t := range f.teams {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMirror) GetMembers(_ context.Context, ownerID string) ([]models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Member{}
	for _, m := range f.members {
		if m.UserID == ownerID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMirror) PutTeam(_ context.Context, t *models.Team) error {
	if f.failPutTeam != nil {
		return f.failPutTeam
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams[t.ID] = *t
	return nil
}

func (f *fakeMirror) PutMember(_ context.Context, m *models.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[m.ID] = *m
	return nil
}

func (f *fakeMirror) DeleteTeam(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.teams, id)
	for mid, m := range f.members {
		if m.TeamID == id {
			delete(f.members, mid)
		}
	}
	return nil
}

func (f *fakeMirror) DeleteMember(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, id)
	return nil
}

func (f *fakeMirror) ReplaceAll(_ context.Context, ownerID string, teams []models.Team, members []models.Member) error {
	if f.failReplace != nil {
		return f.failReplace
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.teams {
		if t.UserID == ownerID {
			delete(f.teams, id)
		}
	}
	for id, m := range f.members {
		if m.UserID == ownerID {
			delete(f.members, id)
		}
	}
	for _, t := range teams {
		f.teams[t.ID] = t
	}
	for _, m := range members {
		f.members[m.ID] = m
	}
	return nil
}

// fakeQueue is an in-memory queue.Repository preserving append order.
type fakeQueue struct {
	mu      sync.Mutex
	entries []models.QueueEntry
	nextID  int64

	failAppend error
}

func newFakeQueue() *fakeQueue { return &fakeQueue{} }

func (f *fakeQueue) Append(_ context.Context, e *models.QueueEntry) error {
	if f.failAppend != nil {
		return f.failAppend
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = f.nextID
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeQueue) Pending(_ context.Context, ownerID string) ([]*models.QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.QueueEntry{}
	for i := range f.entries {
		if f.entries[i].UserID == ownerID {
			cp := f.entries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeQueue) Remove(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func (f *fakeQueue) Len(_ context.Context, ownerID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.entries {
		if e.UserID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeQueue) ops(ownerID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, e := range f.entries {
		if e.UserID == ownerID {
			out = append(out, fmt.Sprintf("%s %s %s", e.Op, e.Table, e.RecordID))
		}
	}
	return out
}

// fakeStore is a recording remote.Store. Calls are logged as
// "op table id" strings; a matching entry in failures makes that call fail.
type fakeStore struct {
	mu       sync.Mutex
	calls    []string
	rows     map[string]map[string]remote.Row
	failures map[string]error
	pingErr  error
	lastCtx  context.Context
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows: map[string]map[string]remote.Row{
			models.TableTeams:   {},
			models.TableMembers: {},
		},
		failures: map[string]error{},
	}
}

func (s *fakeStore) record(format string, args ...any) error {
	key := fmt.Sprintf(format, args...)
	s.calls = append(s.calls, key)
	return s.failures[key]
}

func (s *fakeStore) Insert(ctx context.Context, table string, row remote.Row) (remote.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCtx = ctx
	id, _ := row["id"].(string)
	if err := s.record("insert %s %s", table, id); err != nil {
		return nil, err
	}
	s.rows[table][id] = row
	return row, nil
}

func (s *fakeStore) Update(ctx context.Context, table string, id string, patch remote.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCtx = ctx
	if err := s.record("update %s %s", table, id); err != nil {
		return err
	}
	row, ok := s.rows[table][id]
	if !ok {
		return nil
	}
	for k, v := range patch {
		row[k] = v
	}
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, table string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCtx = ctx
	if err := s.record("delete %s %s", table, id); err != nil {
		return err
	}
	delete(s.rows[table], id)
	return nil
}

func (s *fakeStore) SelectAll(ctx context.Context, table string, ownerID string) ([]remote.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCtx = ctx
	if err := s.record("selectall %s %s", table, ownerID); err != nil {
		return nil, err
	}
	ids := []string{}
	for id, row := range s.rows[table] {
		if owner, _ := row["user_id"].(string); owner == ownerID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := []remote.Row{}
	for _, id := range ids {
		out = append(out, s.rows[table][id])
	}
	return out, nil
}

func (s *fakeStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "ping")
	return s.pingErr
}

func (s *fakeStore) callLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *fakeStore) lastContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCtx
}

func (s *fakeStore) setPingErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pingErr = err
}
