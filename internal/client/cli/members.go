package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mkazhan/teamkeeper/internal/client/models"
	"github.com/mkazhan/teamkeeper/internal/cryptox"
)

func (a *App) listMembers(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: members <team-id>")
		return
	}

	view, ok := a.facade.Team(args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such team:", args[0])
		return
	}

	if len(view.Members) == 0 {
		fmt.Fprintln(a.out, "No members in", view.Name)
		return
	}
	for _, m := range view.Members {
		paid := " "
		if m.Paid {
			paid = "paid"
		}
		fmt.Fprintf(a.out, "%s  %-30s %-4s due %.2f", m.ID, m.Email, paid, m.DueAmount)
		if len(m.Tags) > 0 {
			fmt.Fprintf(a.out, "  [%s]", strings.Join(m.Tags, ","))
		}
		fmt.Fprintln(a.out)
	}
}

func (a *App) addMember(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: addmember <team-id>")
		return
	}

	email, err := GetSimpleText(a.reader, "Enter member email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	phone, err := GetSimpleText(a.reader, "Enter phone (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	telegram, err := GetSimpleText(a.reader, "Enter telegram handle (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	password, err := GetPassword("Enter account password (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	defer cryptox.WipeBytes(password)
	due, err := GetSimpleText(a.reader, "Enter due amount (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	tags, err := GetSimpleText(a.reader, "Enter tags, comma separated (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	m := models.Member{
		TeamID:   args[0],
		Email:    email,
		Phone:    phone,
		Telegram: telegram,
		Password: string(password),
	}
	if due != "" {
		m.DueAmount, err = strconv.ParseFloat(due, 64)
		if err != nil {
			fmt.Fprintln(a.out, "error: invalid amount:", due)
			return
		}
	}
	if tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				m.Tags = append(m.Tags, tag)
			}
		}
	}

	added, err := a.facade.AddMember(ctx, m)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintf(a.out, "Added member %s (%s)\n", added.Email, added.ID)
}

func (a *App) markPaid(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: pay <member-id> [amount]")
		return
	}

	paid := true
	patch := models.MemberPatch{Paid: &paid}
	if len(args) > 1 {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			fmt.Fprintln(a.out, "error: invalid amount:", args[1])
			return
		}
		zero := 0.0
		patch.PaidAmount = &amount
		patch.DueAmount = &zero
	}

	if _, err := a.facade.UpdateMember(ctx, args[0], patch); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Marked as paid.")
}

func (a *App) deleteMember(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delmember <member-id>")
		return
	}

	if err := a.facade.RemoveMember(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Removed.")
}
