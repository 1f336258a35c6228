package app

import (
	"testing"

	"github.com/jamespfennell/gtfs"
	"github.com/stretchr/testify/assert"

	"wayfinder.app/internal/appconf"
	"wayfinder.app/internal/catalog"
)

func TestCatalogSwap(t *testing.T) {
	app := &Application{}
	assert.Nil(t, app.Catalog())

	lat, lon := 47.6, -122.3
	c := catalog.NewCatalog("memory", []gtfs.Stop{{Id: "1", Name: "One", Latitude: &lat, Longitude: &lon}})
	app.SetCatalog(c)
	assert.Same(t, c, app.Catalog())
}

func TestDefaultViewport(t *testing.T) {
	app := &Application{Config: appconf.Config{}}
	app.Config.Projection.ViewportWidth = 390
	app.Config.Projection.ViewportHeight = 844
	app.Config.Projection.FOV = 60

	vp := app.DefaultViewport()
	assert.Equal(t, 390.0, vp.Width)
	assert.Equal(t, 844.0, vp.Height)
	assert.Equal(t, 60.0, app.FOV())
}
