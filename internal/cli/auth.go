package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"patrimonio/internal/client"
)

type signupCmd struct {
	app      *App
	email    string
	password string
	name     string
}

func (*signupCmd) Name() string     { return "signup" }
func (*signupCmd) Synopsis() string { return "create a profile and sign in" }
func (*signupCmd) Usage() string {
	return `patrimonio signup -email <email> -password <password> [-name <name>]

  Creates a profile. The first profile of a new installation becomes admin.
`
}

func (c *signupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address")
	f.StringVar(&c.password, "password", "", "Password (at least 8 characters)")
	f.StringVar(&c.name, "name", "", "Display name")
}

func (c *signupCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.password == "" {
		fmt.Fprintln(c.app.Err, "Error: -email and -password are required")
		return subcommands.ExitUsageError
	}
	return c.app.run(ctx, func(ctx context.Context) error {
		s, err := c.app.Sessions.SignUp(ctx, c.email, c.password, c.name)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Signed up as %s (%s)\n", s.Profile.Email, s.Profile.Role)
		return nil
	})
}

type loginCmd struct {
	app      *App
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "sign in with email and password" }
func (*loginCmd) Usage() string {
	return `patrimonio login -email <email> -password <password>

  Signs in and keeps the session for the following commands.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address")
	f.StringVar(&c.password, "password", "", "Password")
}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.password == "" {
		fmt.Fprintln(c.app.Err, "Error: -email and -password are required")
		return subcommands.ExitUsageError
	}
	return c.app.run(ctx, func(ctx context.Context) error {
		s, err := c.app.Sessions.SignIn(ctx, c.email, c.password)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Signed in as %s\n", s.Profile.Email)
		return nil
	})
}

type logoutCmd struct {
	app *App
}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "sign out and forget the session" }
func (*logoutCmd) Usage() string {
	return `patrimonio logout
`
}

func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (c *logoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context) error {
		if err := c.app.Sessions.SignOut(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.app.Out, "Signed out")
		return nil
	})
}

type whoamiCmd struct {
	app *App
}

func (*whoamiCmd) Name() string     { return "whoami" }
func (*whoamiCmd) Synopsis() string { return "show the signed-in profile" }
func (*whoamiCmd) Usage() string {
	return `patrimonio whoami
`
}

func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (c *whoamiCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		profile, err := api.Profile(ctx)
		if err != nil {
			return err
		}
		if err := c.app.Sessions.SetProfile(*profile); err != nil {
			return err
		}
		name := profile.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(c.app.Out, "%s\nname: %s\nrole: %s\nid:   %s\n", profile.Email, name, profile.Role, profile.ID)
		return nil
	})
}
