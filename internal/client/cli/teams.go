package cli

import (
	"context"
	"fmt"

	"github.com/mkazhan/teamkeeper/internal/client/models"
)

func (a *App) listTeams(ctx context.Context) {
	views := a.facade.Teams()
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No teams yet. Use 'addteam' to create one.")
		return
	}

	for _, v := range views {
		plan := "monthly"
		if v.IsYearly {
			plan = "yearly"
		}
		if v.IsPlus {
			plan += "+"
		}
		fmt.Fprintf(a.out, "%s  %-20s %s, %d member(s)", v.ID, v.Name, plan, len(v.Members))
		if v.LastBackupAt != nil {
			fmt.Fprintf(a.out, ", backed up %s", v.LastBackupAt.Format("2006-01-02"))
		}
		fmt.Fprintln(a.out)
	}
}

func (a *App) addTeam(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter team name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	adminContact, err := GetSimpleText(a.reader, "Enter admin contact (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	logo, err := GetSimpleText(a.reader, "Enter logo tag (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	isYearly, err := GetYesNo(a.reader, "Yearly subscription?", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	isPlus, err := GetYesNo(a.reader, "Plus tier?", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	team, err := a.facade.CreateTeam(ctx, name, adminContact, logo, isYearly, isPlus)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintf(a.out, "Created team %s (%s)\n", team.Name, team.ID)
}

func (a *App) renameTeam(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: renameteam <team-id>")
		return
	}

	name, err := GetSimpleText(a.reader, "Enter new name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	if _, err := a.facade.UpdateTeam(ctx, args[0], models.TeamPatch{Name: &name}); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Renamed.")
}

func (a *App) deleteTeam(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delteam <team-id>")
		return
	}

	view, ok := a.facade.Team(args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such team:", args[0])
		return
	}

	confirmed, err := GetYesNo(a.reader,
		fmt.Sprintf("Delete team %q and its %d member(s)?", view.Name, len(view.Members)), a.out)
	if err != nil || !confirmed {
		fmt.Fprintln(a.out, "Aborted.")
		return
	}

	if err := a.facade.DeleteTeam(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Deleted.")
}
