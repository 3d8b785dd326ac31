package app

import (
	"context"
	"fmt"
	"log/slog"

	"launchdash.dev/internal/appconf"
	"launchdash.dev/internal/dashboard"
	"launchdash.dev/internal/launches"
	"launchdash.dev/internal/mirror"
	"launchdash.dev/internal/models"
)

// Store names accepted by the --store flag.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config        appconf.Config
	LaunchConfig  launches.Config
	Logger        *slog.Logger
	LaunchManager *launches.Manager
	Dispatcher    *dashboard.Dispatcher
	Layout        models.Layout
	Mirror        *mirror.Publisher
}

// SelectSource returns the query backend named by store.
func SelectSource(manager *launches.Manager, store string) (dashboard.Source, error) {
	switch store {
	case "", StoreMemory:
		return manager.Dataset(), nil
	case StoreSQLite:
		return manager.LaunchDB, nil
	default:
		return nil, fmt.Errorf("unknown store %q (want %s or %s)", store, StoreMemory, StoreSQLite)
	}
}

// New wires the dispatcher and layout over a loaded launch manager. A nil publisher
// disables mirroring.
func New(config appconf.Config, launchConfig launches.Config, logger *slog.Logger, manager *launches.Manager, store string, publisher *mirror.Publisher) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	source, err := SelectSource(manager, store)
	if err != nil {
		return nil, err
	}

	sites, err := source.Sites(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	dispatcher := dashboard.NewDispatcher(source, logger)
	if publisher != nil {
		dispatcher.Observe(publisher.Observe)
	}

	return &Application{
		Config:        config,
		LaunchConfig:  launchConfig,
		Logger:        logger,
		LaunchManager: manager,
		Dispatcher:    dispatcher,
		Layout:        dashboard.BuildLayout(sites, manager.Dataset().PayloadBounds()),
		Mirror:        publisher,
	}, nil
}

// KnownSite reports whether site is empty, the all-sites value, or a site with at
// least one launch in the dataset.
func (app *Application) KnownSite(site string) bool {
	return site == "" || site == models.AllSites || app.LaunchManager.Dataset().HasSite(site)
}

// InitialState is the control state a fresh page opens with.
func (app *Application) InitialState() dashboard.State {
	return dashboard.InitialState(app.Layout)
}
