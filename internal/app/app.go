// Package app wires the application bot: storage, service, relay, dialog
// manager, and Telegram routes, on top of the core bootstrap pipeline.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	corebootstrap "github.com/spacecrew/applybot/core/bootstrap"
	coreconfig "github.com/spacecrew/applybot/core/config"
	tg "github.com/spacecrew/applybot/core/telegram"
	"github.com/spacecrew/applybot/core/telegram/router"
	"github.com/spacecrew/applybot/internal/service"
	"github.com/spacecrew/applybot/internal/storage"
	"github.com/spacecrew/applybot/internal/telegram/dialog"
	"github.com/spacecrew/applybot/internal/telegram/handlers"
	"github.com/spacecrew/applybot/internal/telegram/relay"
)

// App holds the wired components of the bot.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	dialog   *dialog.Manager
	relay    *relay.Relay
	handlers *handlers.Handlers
	registry *tg.Registry
	janitor  *dialog.Janitor
}

// New runs the bootstrap pipeline (logger, database, migrations) and builds
// the domain components.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	res, err := corebootstrap.Run(corebootstrap.Options{
		Config:   &cfg.Core,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	adminID := cfg.Core.Telegram.AdminID

	store := storage.NewApplicationStore(res.DB)
	rl := relay.New(adminID)
	svc := service.NewApplications(store, rl)
	dlg := dialog.NewManager()
	h := handlers.New(svc, dlg, rl, adminID)

	reg := tg.NewRegistry()
	h.Register(reg)

	return &App{
		cfg:      cfg,
		db:       res.DB,
		dialog:   dlg,
		relay:    rl,
		handlers: h,
		registry: reg,
	}, nil
}

// CoreConfig exposes the embedded core configuration to the runner.
func (a *App) CoreConfig() *coreconfig.Config {
	return a.cfg.CoreConfig()
}

// TelegramRunOptions assembles routes, middleware, and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	adminID := a.cfg.Core.Telegram.AdminID

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID:       adminID,
		OnAdminReject: a.handlers.OnAdminCommandReject,
	})
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.handlers, a.registry, router.TextOptions{})...)

	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.relay.Bind(rt.Bot)
			j, err := dialog.StartJanitor(
				a.dialog,
				time.Duration(a.cfg.Dialog.TTLMinutes)*time.Minute,
				a.cfg.Dialog.SweepSpec,
			)
			if err != nil {
				return err
			}
			a.janitor = j
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			a.janitor.Stop()
			a.relay.Bind(nil)
			return a.db.Close()
		},
	}, nil
}
