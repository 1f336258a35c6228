package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wayfinder.app/internal/logging"
)

const refreshTimeout = 60 * time.Second

type loadFunc func(ctx context.Context, source string, logger *slog.Logger) (*Catalog, error)

// Refresher periodically reloads a remote feed and publishes each new catalog.
// Local files are never refreshed.
type Refresher struct {
	source   string
	interval time.Duration
	publish  func(*Catalog)
	logger   *slog.Logger
	load     loadFunc

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	startOnce    sync.Once
	shutdownOnce sync.Once
}

// NewRefresher creates a Refresher for source. publish receives every
// successfully loaded catalog.
func NewRefresher(source string, interval time.Duration, publish func(*Catalog), logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		source:       source,
		interval:     interval,
		publish:      publish,
		logger:       logger.With(slog.String("component", "catalog_refresher")),
		load:         Load,
		shutdownChan: make(chan struct{}),
	}
}

// Enabled reports whether Start will schedule periodic reloads.
func (r *Refresher) Enabled() bool {
	return r.source != "" && !IsLocalSource(r.source) && r.interval > 0
}

// Start launches the background reload loop when Enabled.
func (r *Refresher) Start() {
	if !r.Enabled() {
		return
	}
	r.startOnce.Do(func() {
		r.wg.Add(1)
		go r.refreshPeriodically()
	})
}

// Refresh reloads the feed once. On failure the previous catalog stays published.
func (r *Refresher) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	c, err := r.load(ctx, r.source, r.logger)
	if err != nil {
		logging.LogError(r.logger, "catalog refresh failed", err,
			slog.String("source", r.source))
		return err
	}
	r.publish(c)
	return nil
}

func (r *Refresher) refreshPeriodically() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-r.shutdownChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case <-ticker.C:
			_ = r.Refresh(ctx)
		case <-r.shutdownChan:
			logging.LogOperation(r.logger, "catalog_refresh_stopped")
			return
		}
	}
}

// Shutdown stops the reload loop and waits for an in-flight reload to finish.
func (r *Refresher) Shutdown() {
	r.shutdownOnce.Do(func() {
		close(r.shutdownChan)
		r.wg.Wait()
	})
}
