package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"patrimonio/internal/client"
)

type dashboardCmd struct {
	app *App
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display this month's overview" }
func (*dashboardCmd) Usage() string {
	return `patrimonio dashboard

  Displays the month's income, expenses and balance, the value of your
  assets, where the money went and the latest transactions.
`
}

func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		d, err := api.Dashboard(ctx)
		if err != nil {
			return err
		}
		c.app.printMarkdown(DashboardMarkdown(*d))
		return nil
	})
}
