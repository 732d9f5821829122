package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to teamkeeper (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "teamkeeper %s> ", a.status())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(a.out, "Available commands: teams, addteam, renameteam, delteam,")
			fmt.Fprintln(a.out, "  members, addmember, pay, delmember,")
			fmt.Fprintln(a.out, "  sync, status, backup, export, import, exit")

		case "teams":
			a.listTeams(ctx)
		case "addteam":
			a.addTeam(ctx)
		case "renameteam":
			a.renameTeam(ctx, args)
		case "delteam":
			a.deleteTeam(ctx, args)

		case "members":
			a.listMembers(ctx, args)
		case "addmember":
			a.addMember(ctx, args)
		case "pay":
			a.markPaid(ctx, args)
		case "delmember":
			a.deleteMember(ctx, args)

		case "sync":
			a.sync(ctx)
		case "status":
			a.showStatus(ctx)
		case "backup":
			a.backup(ctx)
		case "export":
			a.export(ctx, args)
		case "import":
			a.importFile(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
