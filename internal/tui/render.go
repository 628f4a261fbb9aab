package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aiachain/migrator/internal/domain"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	danger    = lipgloss.AdaptiveColor{Light: "#C53030", Dark: "#FC8181"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(highlight).
			Padding(1, 2)

	labelStyle   = lipgloss.NewStyle().Foreground(subtle)
	balanceStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(danger)
	successStyle = lipgloss.NewStyle().Foreground(special).Bold(true)
)

const title = "AIA TOKEN MIGRATION"

// RenderCard draws the wallet and migration state.
func RenderCard(s domain.Snapshot) string {
	var b strings.Builder

	if s.Connected {
		fmt.Fprintf(&b, "%s %s (%s)\n\n", labelStyle.Render("Wallet"), s.ShortAddress, s.Provider)
	} else {
		fmt.Fprintf(&b, "%s not connected\n\n", labelStyle.Render("Wallet"))
	}

	legacy := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(domain.LegacyToken.String()),
		balanceStyle.Render(s.Legacy))
	native := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(domain.NativeToken.String()),
		balanceStyle.Render(s.Native))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, legacy, "    ", native))
	b.WriteString("\n")

	if s.Amount != "" {
		fmt.Fprintf(&b, "\n%s %s  %s %s\n",
			labelStyle.Render("Amount"), s.Amount,
			labelStyle.Render("You receive"), s.Receive)
	}

	if line := StatusLine(s); line != "" {
		b.WriteString("\n" + line)
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// StatusLine is the one-line progress or outcome message, empty when idle
// without an error.
func StatusLine(s domain.Snapshot) string {
	switch s.Status {
	case domain.StatusApproving, domain.StatusMigrating:
		return stepStyle.Render(s.Action)
	case domain.StatusSuccess:
		return successStyle.Render("Migration successful")
	}
	if s.Error != "" {
		return errorStyle.Render(s.Error)
	}
	return ""
}

// RenderHistory draws journaled migrations as a table, newest first.
func RenderHistory(records []domain.MigrationRecord) string {
	if len(records) == 0 {
		return labelStyle.Render("No migrations recorded.")
	}

	rows := make([][]string, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		rows = append(rows, []string{
			r.CreatedAt.Local().Format(time.DateTime),
			r.Amount.String(),
			domain.ShortAddress(r.Address),
			r.Provider,
			string(r.Status),
			r.Error,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(highlight)).
		Headers("TIME", "AMOUNT", "ADDRESS", "WALLET", "STATUS", "ERROR").
		Rows(rows...)

	return t.String()
}
