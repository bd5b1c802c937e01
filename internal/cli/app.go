// Package cli implements the patrimonio command-line client. Each command
// maps to one screen action of the application.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"patrimonio/internal/client"
	"patrimonio/internal/confirm"
	"patrimonio/internal/forms"
	"patrimonio/internal/logger"
	"patrimonio/internal/models"
	"patrimonio/internal/session"
)

// App carries the dependencies shared by every command.
type App struct {
	API      *client.Client
	Sessions *session.Manager
	Prompter confirm.Prompter
	Out      io.Writer
	Err      io.Writer
	Currency string
	// Plain prints markdown as is instead of rendering it for a terminal.
	Plain bool
	Now   func() time.Time
}

// Register adds every command to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&signupCmd{app: app}, "session")
	c.Register(&loginCmd{app: app}, "session")
	c.Register(&logoutCmd{app: app}, "session")
	c.Register(&whoamiCmd{app: app}, "session")

	c.Register(&dashboardCmd{app: app}, "overview")

	c.Register(&accountsCmd{app: app}, "finances")
	c.Register(&accountAddCmd{app: app}, "finances")
	c.Register(&transactionsCmd{app: app}, "finances")
	c.Register(&transactionAddCmd{app: app}, "finances")
	c.Register(&transactionEditCmd{app: app}, "finances")
	c.Register(&transactionDeleteCmd{app: app}, "finances")

	c.Register(&assetsCmd{app: app}, "assets")
	c.Register(&assetAddCmd{app: app}, "assets")
	c.Register(&assetEditCmd{app: app}, "assets")
	c.Register(&assetDeleteCmd{app: app}, "assets")

	c.Register(&vehiclesCmd{app: app}, "vehicles")
	c.Register(&vehicleAddCmd{app: app}, "vehicles")
	c.Register(&vehicleEditCmd{app: app}, "vehicles")
	c.Register(&vehicleDeleteCmd{app: app}, "vehicles")
	c.Register(&refuelCmd{app: app}, "vehicles")
	c.Register(&maintenanceCmd{app: app}, "vehicles")
}

// WatchProfile looks up the signed-in profile every time a new session is
// established, so the stored profile follows the server. The returned
// function stops it.
func (a *App) WatchProfile(ctx context.Context) func() {
	lookup := func(ctx context.Context, token string) (*models.Profile, error) {
		return a.API.WithToken(token).Profile(ctx)
	}
	return a.Sessions.WatchProfile(ctx, lookup, func(err error) {
		logger.Named("cli").Warnw("profile lookup failed", "error", err)
	})
}

// protected runs fn with a client authenticated as the signed-in profile.
// Without a session it prints "login required" and fails.
func (a *App) protected(ctx context.Context, fn func(context.Context, *client.Client) error) subcommands.ExitStatus {
	token, err := a.Sessions.Token(ctx)
	if err != nil {
		if errors.Is(err, session.ErrLoginRequired) {
			fmt.Fprintln(a.Err, err)
		} else {
			fmt.Fprintf(a.Err, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	return a.run(ctx, func(ctx context.Context) error {
		return fn(ctx, a.API.WithToken(token))
	})
}

// run reports fn's error on stderr and maps it to an exit status.
func (a *App) run(ctx context.Context, fn func(context.Context) error) subcommands.ExitStatus {
	if err := fn(ctx); err != nil {
		logger.Named("cli").Debugw("command failed", "error", err)
		fmt.Fprintf(a.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (a *App) today() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) prompter(yes bool) confirm.Prompter {
	if yes || a.Prompter == nil {
		return confirm.Always{}
	}
	return a.Prompter
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func (a *App) printMarkdown(md string) {
	if a.Plain {
		fmt.Fprint(a.Out, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(a.Out, out)
			return
		}
	}
	fmt.Fprint(a.Out, md)
}

// formFlags declares one string flag per form field.
func formFlags[F forms.Form[F]](f *flag.FlagSet, form F) map[string]*string {
	values := make(map[string]*string)
	for _, name := range form.Fields() {
		values[name] = f.String(name, "", "form field "+name)
	}
	return values
}

// applyFlags copies the flags given on the command line into form, leaving
// the other fields untouched.
func applyFlags[F forms.Form[F]](f *flag.FlagSet, form F, values map[string]*string) (F, error) {
	var err error
	f.Visit(func(fl *flag.Flag) {
		v, ok := values[fl.Name]
		if !ok || err != nil {
			return
		}
		form, err = form.Set(fl.Name, *v)
	})
	return form, err
}
