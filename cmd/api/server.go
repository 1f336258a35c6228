package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"wayfinder.app/internal/app"
	"wayfinder.app/internal/appconf"
	"wayfinder.app/internal/catalog"
	"wayfinder.app/internal/restapi"
	"wayfinder.app/internal/tracker"
)

const shutdownTimeout = 10 * time.Second

// buildApplication wires configuration into the shared dependencies. The
// catalog is loaded only when a GTFS source is configured.
func buildApplication(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*app.Application, error) {
	application := &app.Application{
		Config: cfg,
		Logger: logger,
		Sessions: tracker.NewManager(tracker.Config{
			FOV:           cfg.Projection.FOV,
			Hysteresis:    cfg.Projection.Hysteresis,
			TTL:           cfg.Sessions.TTL,
			SweepInterval: cfg.Sessions.SweepInterval,
		}, logger),
	}

	if cfg.Catalog.GtfsSource != "" {
		c, err := catalog.Load(ctx, cfg.Catalog.GtfsSource, logger)
		if err != nil {
			application.Sessions.Shutdown()
			return nil, fmt.Errorf("loading target catalog: %w", err)
		}
		application.SetCatalog(c)
	}

	return application, nil
}

func newServer(cfg appconf.Config, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

// run serves the API until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg appconf.Config, logger *slog.Logger) error {
	application, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Sessions.Shutdown()

	refresher := catalog.NewRefresher(cfg.Catalog.GtfsSource, cfg.Catalog.RefreshInterval, application.SetCatalog, logger)
	refresher.Start()
	defer refresher.Shutdown()

	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	srv := newServer(cfg, api.Routes(), logger)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env().String())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
