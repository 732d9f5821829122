package cli

import (
	"context"
	"fmt"
	"os"
	"time"
)

func (a *App) backup(ctx context.Context) {
	if a.uploader == nil {
		fmt.Fprintln(a.out, "No backup bucket configured.")
		return
	}

	data, err := a.facade.ExportData(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	key, err := a.uploader.Upload(ctx, a.config.OwnerID, data)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	if err := a.facade.MarkBackupDone(ctx, time.Now().UTC()); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Snapshot uploaded as", key)
}

func (a *App) export(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: export <file>")
		return
	}

	data, err := a.facade.ExportData(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if err := os.WriteFile(args[0], data, 0o600); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Exported to", args[0])
}

func (a *App) importFile(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: import <file>")
		return
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if err := a.facade.ImportData(ctx, data); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintf(a.out, "Imported %d team(s)\n", len(a.facade.Teams()))
}
