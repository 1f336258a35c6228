package app

import (
	"log/slog"
	"sync"

	"wayfinder.app/internal/appconf"
	"wayfinder.app/internal/catalog"
	"wayfinder.app/internal/projection"
	"wayfinder.app/internal/tracker"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Sessions *tracker.Manager

	catalogMu sync.RWMutex
	catalog   *catalog.Catalog
}

// Catalog returns the loaded target catalog, or nil when none is configured.
func (app *Application) Catalog() *catalog.Catalog {
	app.catalogMu.RLock()
	defer app.catalogMu.RUnlock()
	return app.catalog
}

// SetCatalog swaps in a freshly loaded catalog.
func (app *Application) SetCatalog(c *catalog.Catalog) {
	app.catalogMu.Lock()
	defer app.catalogMu.Unlock()
	app.catalog = c
}

// DefaultViewport is used for overlay requests that do not name a viewport.
func (app *Application) DefaultViewport() projection.Viewport {
	return projection.Viewport{
		Width:  app.Config.Projection.ViewportWidth,
		Height: app.Config.Projection.ViewportHeight,
	}
}

// FOV returns the configured horizontal field of view.
func (app *Application) FOV() float64 {
	return app.Config.Projection.FOV
}
