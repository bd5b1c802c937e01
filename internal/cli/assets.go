package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"patrimonio/internal/client"
	"patrimonio/internal/confirm"
	"patrimonio/internal/forms"
)

type assetsCmd struct {
	app   *App
	query client.AssetQuery
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list and search your assets" }
func (*assetsCmd) Usage() string {
	return `patrimonio assets [-search <text>] [-category <name>] [-page n]

  Lists assets, most recently added first, with their total value and the
  warranties about to expire.
`
}

func (c *assetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query.Search, "search", "", "Text to look for in name or category")
	f.StringVar(&c.query.Category, "category", "", "Category")
	f.IntVar(&c.query.Page, "page", 1, "Page number")
}

func (c *assetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		page, err := api.Assets(ctx, c.query)
		if err != nil {
			return err
		}
		overview, err := api.AssetSummary(ctx)
		if err != nil {
			return err
		}
		c.app.printMarkdown(AssetsMarkdown(page, overview, c.app.Currency))
		return nil
	})
}

type assetAddCmd struct {
	app    *App
	values map[string]*string
}

func (*assetAddCmd) Name() string     { return "asset-add" }
func (*assetAddCmd) Synopsis() string { return "record an asset" }
func (*assetAddCmd) Usage() string {
	return `patrimonio asset-add -name <name> -category <name> -acquisition_value <amount>
                     [-current_value <amount>] [-acquisition_date YYYY-MM-DD] [-<field> <value> ...]

  Leave -current_value out when the current value is unknown.
`
}

func (c *assetAddCmd) SetFlags(f *flag.FlagSet) {
	c.values = formFlags(f, forms.AssetForm{})
}

func (c *assetAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	form, err := applyFlags(f, forms.NewAssetForm(c.app.today()), c.values)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		asset, err := forms.SubmitAsset(ctx, c.app.Sessions, api, form, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Asset %s recorded (%s)\n", asset.Name, asset.ID)
		return nil
	})
}

type assetEditCmd struct {
	app    *App
	id     string
	values map[string]*string
}

func (*assetEditCmd) Name() string     { return "asset-edit" }
func (*assetEditCmd) Synopsis() string { return "change an asset" }
func (*assetEditCmd) Usage() string {
	return `patrimonio asset-edit -id <id> [-<field> <value> ...]

  Loads the asset and changes only the fields given. An empty value clears
  an optional field, e.g. -current_value "".
`
}

func (c *assetEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id")
	c.values = formFlags(f, forms.AssetForm{})
}

func (c *assetEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(c.app.Err, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		existing, err := api.Asset(ctx, c.id)
		if err != nil {
			return err
		}
		form, err := applyFlags(f, forms.FromAsset(*existing), c.values)
		if err != nil {
			return err
		}
		asset, err := forms.SubmitAsset(ctx, c.app.Sessions, api, form, existing)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Asset %s updated\n", asset.ID)
		return nil
	})
}

type assetDeleteCmd struct {
	app *App
	id  string
	yes bool
}

func (*assetDeleteCmd) Name() string     { return "asset-delete" }
func (*assetDeleteCmd) Synopsis() string { return "delete an asset" }
func (*assetDeleteCmd) Usage() string {
	return `patrimonio asset-delete -id <id> [-yes]

  Asks for confirmation unless -yes is given. Deletion cannot be undone.
`
}

func (c *assetDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id")
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation")
}

func (c *assetDeleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(c.app.Err, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		deleted, err := confirm.Delete(ctx, c.app.prompter(c.yes), "Delete asset",
			"Are you sure you want to delete this asset?",
			func(ctx context.Context) error { return api.DeleteAsset(ctx, c.id) })
		return reportDeletion(c.app, "Asset", deleted, err)
	})
}
