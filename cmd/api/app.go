package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"launchdash.dev/internal/app"
	"launchdash.dev/internal/launches"
	"launchdash.dev/internal/mirror"
	"launchdash.dev/internal/restapi"
	"launchdash.dev/internal/webui"
)

// buildApplication loads the dataset and wires the dashboard around it. The returned
// cleanup releases the broker connection and the database.
func buildApplication(ctx context.Context, opts options, logger *slog.Logger) (*app.Application, func(), error) {
	launchConfig := opts.launchConfig()

	manager, err := launches.InitLaunchManager(ctx, launchConfig, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load launch data: %w", err)
	}
	manager.PrintStatistics(ctx)

	publisher := mirror.NewPublisher(opts.mirrorConfig(), logger)

	cleanup := func() {
		publisher.Close()
		manager.Shutdown()
	}

	application, err := app.New(opts.appConfig(), launchConfig, logger, manager, opts.store, publisher)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return application, cleanup, nil
}

// newHandler registers the REST and browser routes and wraps them in the shared
// middleware chain. The returned stop function ends the rate limiter's cleanup.
func newHandler(application *app.Application) (http.Handler, func(), error) {
	router := httprouter.New()

	api := restapi.NewRestAPI(application)
	api.SetRoutes(router)

	ui, err := webui.New(application)
	if err != nil {
		api.Close()
		return nil, nil, err
	}
	ui.SetWebUIRoutes(router)

	var handler http.Handler = router
	handler = api.WithSecurityHeaders(handler)
	handler = restapi.NewRequestLoggingMiddleware(application.Logger)(handler)
	handler = restapi.CompressionMiddleware(handler)

	return handler, api.Close, nil
}
