package cli

import (
	"context"
	"fmt"
)

func (a *App) sync(ctx context.Context) {
	if a.monitor == nil {
		fmt.Fprintln(a.out, "No remote store configured; working locally.")
		return
	}

	a.monitor.Probe(ctx)
	if !a.monitor.Online() {
		fmt.Fprintln(a.out, "Remote store unreachable; changes stay queued.")
		return
	}
	// a probe that was already online does not flush by itself
	a.monitor.Kick()
	fmt.Fprintln(a.out, "Sync triggered.")
}

func (a *App) showStatus(ctx context.Context) {
	if a.monitor == nil {
		fmt.Fprintln(a.out, "Mode: local only (no remote configured)")
	} else {
		fmt.Fprintln(a.out, "Mode:", a.monitor.Status())
	}

	pending, err := a.repos.Queue.Len(ctx, a.config.OwnerID)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Pending changes:", pending)
	fmt.Fprintln(a.out, "Teams:", len(a.facade.Teams()))
}
