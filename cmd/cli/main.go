package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/lostfound/internal/client/bootstrap"
	"github.com/dmitrijs2005/lostfound/internal/client/cli"
	"github.com/dmitrijs2005/lostfound/internal/client/config"
	"github.com/dmitrijs2005/lostfound/internal/common"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app *cli.App
	core, err := bootstrap.New(ctx, cfg, log, func(ctx context.Context) {
		if app != nil {
			app.OnUnauthorized(ctx)
		}
	})
	if err != nil {
		return err
	}
	defer core.Close()

	placeholder := cfg.PlaceholderImageURL
	if placeholder == "" {
		placeholder = common.PlaceholderImageURL
	}
	app = cli.NewApp(cli.Deps{
		Auth:        core.Auth,
		Items:       core.Items,
		Reports:     core.Reports,
		CloseOut:    core.CloseOut,
		Tokens:      core.Sessions,
		Log:         log,
		Placeholder: placeholder,
	}, os.Stdin, os.Stdout)

	log.Info(ctx, "cli started", "api", cfg.APIBaseURL, "db", cfg.DatabasePath)
	app.Run(ctx)
	return nil
}
