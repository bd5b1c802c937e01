package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"patrimonio/internal/client"
	"patrimonio/internal/confirm"
	"patrimonio/internal/forms"
	"patrimonio/internal/models"
	"patrimonio/internal/money"
)

type accountsCmd struct {
	app  *App
	page int
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list your accounts" }
func (*accountsCmd) Usage() string {
	return `patrimonio accounts [-page n]
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.page, "page", 1, "Page number")
}

func (c *accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		page, err := api.Accounts(ctx, client.PageQuery{Page: c.page})
		if err != nil {
			return err
		}
		c.app.printMarkdown(AccountsMarkdown(page, c.app.Currency))
		return nil
	})
}

type accountAddCmd struct {
	app         *App
	name        string
	accountType string
	balance     string
}

func (*accountAddCmd) Name() string     { return "account-add" }
func (*accountAddCmd) Synopsis() string { return "open an account" }
func (*accountAddCmd) Usage() string {
	return `patrimonio account-add -name <name> [-type checking|savings|cash|credit|other] [-balance <amount>]
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name")
	f.StringVar(&c.accountType, "type", string(models.AccountTypeChecking), "Account type")
	f.StringVar(&c.balance, "balance", "0", "Opening balance")
}

func (c *accountAddCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	balance, err := money.Parse(c.balance)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: balance: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		account, err := api.CreateAccount(ctx, client.AccountPayload{
			Name:    c.name,
			Type:    models.AccountType(c.accountType),
			Balance: balance,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Account %s created (%s)\n", account.Name, account.ID)
		return nil
	})
}

type transactionsCmd struct {
	app   *App
	query client.TransactionQuery
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list and search transactions" }
func (*transactionsCmd) Usage() string {
	return `patrimonio transactions [-search <text>] [-type income|expense] [-category <name>]
                        [-account <id>] [-from <date>] [-to <date>] [-page n]

  Lists transactions, newest first, followed by the totals of every
  transaction matching the filters. The search matches the description or
  the category, ignoring case.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query.Search, "search", "", "Text to look for in description or category")
	f.StringVar(&c.query.Type, "type", "", "income, expense or all")
	f.StringVar(&c.query.Category, "category", "", "Category")
	f.StringVar(&c.query.AccountID, "account", "", "Account id")
	f.StringVar(&c.query.FromDate, "from", "", "First date (YYYY-MM-DD)")
	f.StringVar(&c.query.ToDate, "to", "", "Last date (YYYY-MM-DD)")
	f.IntVar(&c.query.Page, "page", 1, "Page number")
}

func (c *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		page, err := api.Transactions(ctx, c.query)
		if err != nil {
			return err
		}
		summary, err := api.TransactionSummary(ctx, c.query)
		if err != nil {
			return err
		}
		c.app.printMarkdown(TransactionsMarkdown(page, summary, c.app.Currency))
		return nil
	})
}

type transactionAddCmd struct {
	app    *App
	values map[string]*string
}

func (*transactionAddCmd) Name() string     { return "transaction-add" }
func (*transactionAddCmd) Synopsis() string { return "record an income or expense" }
func (*transactionAddCmd) Usage() string {
	return `patrimonio transaction-add -account_id <id> -category <name> -amount <amount> -description <text>
                           [-type income|expense] [-date YYYY-MM-DD] [-notes <text>] [-is_recurring true]

  Amounts accept a dot or a comma as decimal separator. The type defaults to
  expense and the date to today.
`
}

func (c *transactionAddCmd) SetFlags(f *flag.FlagSet) {
	c.values = formFlags(f, forms.TransactionForm{})
}

func (c *transactionAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	form, err := applyFlags(f, forms.NewTransactionForm(c.app.today()), c.values)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		tx, err := forms.SubmitTransaction(ctx, c.app.Sessions, api, form, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Transaction %s recorded\n", tx.ID)
		return nil
	})
}

type transactionEditCmd struct {
	app    *App
	id     string
	values map[string]*string
}

func (*transactionEditCmd) Name() string     { return "transaction-edit" }
func (*transactionEditCmd) Synopsis() string { return "change a transaction" }
func (*transactionEditCmd) Usage() string {
	return `patrimonio transaction-edit -id <id> [-<field> <value> ...]

  Loads the transaction and changes only the fields given.
`
}

func (c *transactionEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id")
	c.values = formFlags(f, forms.TransactionForm{})
}

func (c *transactionEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(c.app.Err, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		existing, err := api.Transaction(ctx, c.id)
		if err != nil {
			return err
		}
		form, err := applyFlags(f, forms.FromTransaction(*existing), c.values)
		if err != nil {
			return err
		}
		tx, err := forms.SubmitTransaction(ctx, c.app.Sessions, api, form, existing)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Transaction %s updated\n", tx.ID)
		return nil
	})
}

type transactionDeleteCmd struct {
	app *App
	id  string
	yes bool
}

func (*transactionDeleteCmd) Name() string     { return "transaction-delete" }
func (*transactionDeleteCmd) Synopsis() string { return "delete a transaction" }
func (*transactionDeleteCmd) Usage() string {
	return `patrimonio transaction-delete -id <id> [-yes]

  Asks for confirmation unless -yes is given. Deletion cannot be undone.
`
}

func (c *transactionDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id")
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation")
}

func (c *transactionDeleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(c.app.Err, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	return c.app.protected(ctx, func(ctx context.Context, api *client.Client) error {
		deleted, err := confirm.Delete(ctx, c.app.prompter(c.yes), "Delete transaction",
			"Are you sure you want to delete this transaction?",
			func(ctx context.Context) error { return api.DeleteTransaction(ctx, c.id) })
		return reportDeletion(c.app, "Transaction", deleted, err)
	})
}

func reportDeletion(app *App, what string, deleted bool, err error) error {
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(app.Out, "%s deleted\n", what)
	} else {
		fmt.Fprintln(app.Out, "Cancelled")
	}
	return nil
}
