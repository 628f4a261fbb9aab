// Package tui is the interactive terminal front end of the portal.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/aiachain/migrator/internal/app"
	"github.com/aiachain/migrator/internal/domain"
)

const (
	actionMigrate    = "migrate"
	actionHistory    = "history"
	actionDisconnect = "disconnect"
	actionQuit       = "quit"
)

// Run drives p from the terminal until the user quits or ctx is done.
func Run(ctx context.Context, p *app.Portal, out io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		redraw(out, p)

		var err error
		if p.Session.IsConnected() {
			err = connectedStep(ctx, p, out)
		} else {
			err = connectStep(ctx, p, out)
		}
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

var errQuit = errors.New("quit")

func redraw(out io.Writer, p *app.Portal) {
	fmt.Fprint(out, "\033[H\033[2J")
	fmt.Fprintln(out, headerStyle.Render(title))
	fmt.Fprintln(out, RenderCard(p.Workflow.Snapshot()))
}

func connectStep(ctx context.Context, p *app.Portal, out io.Writer) error {
	var provider string

	options := make([]huh.Option[string], 0, len(p.Connector.Providers())+1)
	for _, wp := range p.Connector.Providers() {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  %s", wp.Name, labelStyle.Render(wp.Description)), wp.Name))
	}
	options = append(options, huh.NewOption("Quit", actionQuit))

	fmt.Fprintln(out, stepStyle.Render("CONNECT WALLET"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose your wallet").
				Options(options...).
				Value(&provider),
		),
	).Run()
	if err != nil {
		return err
	}
	if provider == actionQuit {
		return errQuit
	}

	fmt.Fprintln(out, labelStyle.Render("Connecting..."))
	if _, err := p.Connector.Connect(ctx, provider); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return errors.Wrap(err, "connect wallet")
	}
	return nil
}

func connectedStep(ctx context.Context, p *app.Portal, out io.Writer) error {
	var action string

	options := []huh.Option[string]{huh.NewOption("Migrate tokens", actionMigrate)}
	if p.Journal != nil {
		options = append(options, huh.NewOption("Migration history", actionHistory))
	}
	options = append(options,
		huh.NewOption("Disconnect", actionDisconnect),
		huh.NewOption("Quit", actionQuit),
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What next?").
				Options(options...).
				Value(&action),
		),
	).Run()
	if err != nil {
		return err
	}

	switch action {
	case actionMigrate:
		return migrateStep(ctx, p, out)
	case actionHistory:
		return historyStep(p, out)
	case actionDisconnect:
		p.Connector.Disconnect()
		return nil
	default:
		return errQuit
	}
}

func migrateStep(ctx context.Context, p *app.Portal, out io.Writer) error {
	amount := p.Workflow.Amount()
	legacy := p.Session.LegacyBalance()

	fmt.Fprintln(out, stepStyle.Render("MIGRATE"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Description(fmt.Sprintf("Balance %s %s. Type max to use all of it.", legacy.StringFixed(2), domain.LegacyToken.Symbol)).
				Value(&amount).
				Validate(func(s string) error {
					if strings.EqualFold(strings.TrimSpace(s), "max") || domain.IsAmountInput(s) {
						return nil
					}
					return errors.New(domain.UserMessage(domain.ErrInvalidAmount))
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	if strings.EqualFold(strings.TrimSpace(amount), "max") {
		amount = p.Workflow.Max()
	} else {
		p.Workflow.SetAmount(amount)
	}

	confirm := false
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Migrate %s %s?", amount, domain.LegacyToken.Symbol)).
				Description(fmt.Sprintf("You will receive %s %s on %s.", amount, domain.NativeToken.Symbol, domain.NativeToken.Network)).
				Affirmative("Migrate").
				Negative("Back").
				Value(&confirm),
		),
	).Run()
	if err != nil || !confirm {
		return err
	}

	sub := p.Events.Subscribe()
	defer p.Events.Unsubscribe(sub)

	done, err := p.Workflow.Start(ctx)
	if err != nil {
		// the card shows the validation message on the next redraw
		return nil
	}

	redraw(out, p)
	for {
		select {
		case snap := <-sub:
			if line := StatusLine(snap); line != "" && snap.Status.IsBusy() {
				fmt.Fprintln(out, line)
			}
		case <-done:
			return nil
		}
	}
}

func historyStep(p *app.Portal, out io.Writer) error {
	records, err := p.History()
	if err != nil {
		return errors.Wrap(err, "load migration history")
	}

	fmt.Fprintln(out, stepStyle.Render("HISTORY"))
	fmt.Fprintln(out, RenderHistory(records))

	back := true
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Back to portal?").
				Affirmative("Back").
				Negative("").
				Value(&back),
		),
	).Run()
}

// Banner is the one-line title used outside the interactive loop.
func Banner() string {
	return lipgloss.NewStyle().Bold(true).Foreground(highlight).Render(title)
}
