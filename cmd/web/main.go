package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/lostfound/internal/client/bootstrap"
	"github.com/dmitrijs2005/lostfound/internal/client/config"
	"github.com/dmitrijs2005/lostfound/internal/client/web"
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

	var srv *web.Server
	core, err := bootstrap.New(ctx, cfg, log, func(ctx context.Context) {
		if srv != nil {
			srv.OnUnauthorized(ctx)
		}
	})
	if err != nil {
		return err
	}
	defer core.Close()

	srv, err = web.New(web.Deps{
		Auth:        core.Auth,
		Items:       core.Items,
		Reports:     core.Reports,
		CloseOut:    core.CloseOut,
		Tokens:      core.Sessions,
		Log:         log,
		Placeholder: cfg.PlaceholderImageURL,
	})
	if err != nil {
		return err
	}

	log.Info(ctx, "open the frontend in a browser", "url", "http://"+cfg.WebListenAddr)
	return srv.ListenAndServe(ctx, cfg.WebListenAddr)
}
