package services

import (
	"context"
	"sync"
	"time"

	"github.com/mkazhan/teamkeeper/internal/logging"
	"github.com/mkazhan/teamkeeper/internal/remote"
)

// Status is the monitor's view of remote reachability.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// Monitor probes the remote store and drives the sync machinery: on an
// offline-to-online transition it drains the queue, runs a pull-wins full
// sync and reloads the in-memory state, in that order. While online it also
// flushes the queue periodically so entries accumulated between transitions
// do not sit around.
//
// It starts offline; the first successful probe runs the reconnect sequence,
// which doubles as the initial sync on startup.
type Monitor struct {
	store     remote.Store
	processor *Processor
	orch      *Orchestrator
	facade    *Facade
	ownerID   string
	log       logging.Logger

	probeEvery  time.Duration
	flushEvery  time.Duration
	pingTimeout time.Duration

	mu     sync.RWMutex
	status Status
	runCtx context.Context
}

func NewMonitor(store remote.Store, p *Processor, o *Orchestrator, f *Facade, ownerID string,
	probeEvery, flushEvery time.Duration, log logging.Logger) *Monitor {
	return &Monitor{
		store:       store,
		processor:   p,
		orch:        o,
		facade:      f,
		ownerID:     ownerID,
		log:         log,
		probeEvery:  probeEvery,
		flushEvery:  flushEvery,
		pingTimeout: 3 * time.Second,
		status:      StatusOffline,
	}
}

// Status returns the last observed connectivity status.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Online reports whether the remote was reachable at the last probe.
func (m *Monitor) Online() bool {
	return m.Status() == StatusOnline
}

// Kick requests an immediate queue flush. It is fire-and-forget: offline it
// does nothing, and a flush already in progress absorbs the request.
func (m *Monitor) Kick() {
	if !m.Online() {
		return
	}
	ctx := m.kickContext()
	go func() {
		if err := m.processor.ProcessQueue(ctx, m.ownerID); err != nil {
			m.log.Warn(ctx, "queue flush failed", "error", err)
		}
	}()
}

// kickContext returns the monitor's run context so background flushes stop
// with Run; before Run has started it falls back to context.Background().
func (m *Monitor) kickContext() context.Context {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.runCtx != nil {
		return m.runCtx
	}
	return context.Background()
}

// Run probes the remote on a ticker until ctx is cancelled. It is meant to
// run on its own goroutine.
func (m *Monitor) Run(ctx context.Context) {
	m.mu.Lock()
	m.runCtx = ctx
	m.mu.Unlock()

	probe := time.NewTicker(m.probeEvery)
	defer probe.Stop()
	flush := time.NewTicker(m.flushEvery)
	defer flush.Stop()

	m.Probe(ctx)

	for {
		select {
		case <-probe.C:
			m.Probe(ctx)
		case <-flush.C:
			if m.Online() {
				if err := m.processor.ProcessQueue(ctx, m.ownerID); err != nil {
					m.log.Warn(ctx, "periodic queue flush failed", "error", err)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// Probe pings the remote once and applies any status transition. Exposed so
// callers can force a check (e.g. the CLI's sync command) instead of waiting
// for the next tick.
func (m *Monitor) Probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, m.pingTimeout)
	err := m.store.Ping(pingCtx)
	cancel()

	if err != nil {
		if m.setStatus(StatusOffline) {
			m.log.Info(ctx, "remote unreachable, switching to offline mode", "error", err)
		}
		return
	}

	if m.setStatus(StatusOnline) {
		m.log.Info(ctx, "remote reachable, switching to online mode")
		if err := m.reconnect(ctx); err != nil {
			m.log.Warn(ctx, "reconnect sync failed", "error", err)
		}
	}
}

// reconnect drains pending local changes first, then pulls remote truth and
// reloads the in-memory state from the rebuilt mirror. The drain must come
// first and must wait for any pass already in flight: pulling before the
// queue is empty would overwrite the mirror with rows the remote has not
// seen yet.
func (m *Monitor) reconnect(ctx context.Context) error {
	if err := m.processor.Flush(ctx, m.ownerID); err != nil {
		return err
	}
	if err := m.orch.FullSync(ctx, m.ownerID); err != nil {
		return err
	}
	return m.facade.Reload(ctx)
}

// setStatus records the new status and reports whether it changed.
func (m *Monitor) setStatus(s Status) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == s {
		return false
	}
	m.status = s
	return true
}
