// Command patrimonio is the terminal client of the Patrimônio API.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/google/subcommands"

	"patrimonio/internal/cli"
	"patrimonio/internal/client"
	"patrimonio/internal/config"
	"patrimonio/internal/confirm"
	"patrimonio/internal/logger"
	"patrimonio/internal/money"
	"patrimonio/internal/session"
)

func main() {
	env := os.Getenv("ENV")
	if env == "" {
		env = "production"
	}
	logger.Init(env)

	plain := flag.Bool("plain", false, "Print markdown without terminal styling")

	cfg := config.LoadClient()
	api := client.New(cfg.APIURL, &http.Client{Timeout: cfg.RequestTimeout})
	sessions, err := session.NewManager(session.API(api), session.NewFileStore(cfg.SessionFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := &cli.App{
		API:      api,
		Sessions: sessions,
		Prompter: confirm.NewTerminalPrompter(os.Stdin, os.Stdout),
		Out:      os.Stdout,
		Err:      os.Stderr,
		Currency: money.Currency(cfg.Currency),
		Now:      time.Now,
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, app)

	flag.Parse()
	app.Plain = *plain

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	unwatch := app.WatchProfile(ctx)
	status := commander.Execute(ctx)
	unwatch()
	stop()
	logger.Sync()
	os.Exit(int(status))
}
