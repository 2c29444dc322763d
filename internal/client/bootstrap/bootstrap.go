// Package bootstrap wires the client core from a Config. Both surfaces
// (cmd/cli and cmd/web) start here.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lostfound/internal/client/client"
	"github.com/dmitrijs2005/lostfound/internal/client/config"
	"github.com/dmitrijs2005/lostfound/internal/client/querycache"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
	"github.com/dmitrijs2005/lostfound/internal/client/session"
	"github.com/dmitrijs2005/lostfound/internal/filex"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// Core is the shared state of one client process.
type Core struct {
	DB       *sql.DB
	Sessions *session.Store
	API      *client.RESTClient
	Cache    *querycache.Cache

	Auth     services.AuthService
	Items    services.ItemService
	Reports  services.ReportService
	CloseOut services.CloseOutService
}

// New opens the local database and builds the services. onUnauthorized is
// called after the API client dropped a rejected session; it may be nil.
func New(ctx context.Context, cfg *config.Config, log logging.Logger, onUnauthorized func(ctx context.Context)) (*Core, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	previewDir, err := filex.EnsureSubDir(cfg.PreviewDir, "lostfound-previews")
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sessions := session.NewSQLite(db)
	opts := []client.Option{
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	}
	if onUnauthorized != nil {
		opts = append(opts, client.WithUnauthorizedHook(onUnauthorized))
	}
	api := client.New(cfg.APIBaseURL, sessions, opts...)
	cache := querycache.New(
		querycache.WithStaleTime(cfg.StaleTime),
		querycache.WithLogger(log),
	)

	return &Core{
		DB:       db,
		Sessions: sessions,
		API:      api,
		Cache:    cache,
		Auth:     services.NewAuthService(api, sessions, cache, log),
		Items:    services.NewItemService(api, sessions, cache, log),
		Reports:  services.NewReportService(api, cache, previewDir, log),
		CloseOut: services.NewCloseOutService(api, cache, previewDir, log),
	}, nil
}

func (c *Core) Close() error {
	return c.DB.Close()
}
