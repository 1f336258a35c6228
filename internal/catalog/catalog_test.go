package catalog

import (
	"errors"
	"testing"

	"github.com/jamespfennell/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfinder.app/internal/geodesy"
)

func ptr(f float64) *float64 {
	return &f
}

func testStops() []gtfs.Stop {
	return []gtfs.Stop{
		{Id: "1", Code: "C1", Name: "Central", Latitude: ptr(47.6097), Longitude: ptr(-122.3331)},
		{Id: "2", Code: "C2", Name: "Pioneer Square", Latitude: ptr(47.6015), Longitude: ptr(-122.3343)},
		{Id: "3", Code: "C3", Name: "Capitol Hill", Latitude: ptr(47.6195), Longitude: ptr(-122.3205)},
		{Id: "4", Name: "No Coordinates"},
		{Id: "5", Name: "Out Of Range", Latitude: ptr(123), Longitude: ptr(0)},
		{Id: "1", Name: "Duplicate", Latitude: ptr(0), Longitude: ptr(0)},
	}
}

func TestNewCatalog(t *testing.T) {
	c := NewCatalog("test.zip", testStops())

	assert.Equal(t, "test.zip", c.Source())
	assert.False(t, c.LoadedAt().IsZero())
	assert.Equal(t, 3, c.Len())

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Central", list[0].Name)
	assert.Equal(t, "C2", list[1].Code)

	list[0].Name = "mutated"
	target, err := c.Target("1")
	require.NoError(t, err)
	assert.Equal(t, "Central", target.Name, "List returns a copy")
}

func TestCatalogTarget(t *testing.T) {
	c := NewCatalog("test.zip", testStops())

	target, err := c.Target("3")
	require.NoError(t, err)
	assert.Equal(t, geodesy.GeoPoint{Lat: 47.6195, Lon: -122.3205}, target.Point())

	_, err = c.Target("4")
	assert.True(t, errors.Is(err, ErrTargetNotFound))

	_, err = c.Target("missing")
	assert.True(t, errors.Is(err, ErrTargetNotFound))
}

func TestCatalogNearby(t *testing.T) {
	c := NewCatalog("test.zip", testStops())
	origin := geodesy.GeoPoint{Lat: 47.6062, Lon: -122.3321}

	t.Run("sorted by distance within radius", func(t *testing.T) {
		results := c.Nearby(origin, 5000, 0)
		require.Len(t, results, 3)
		assert.Equal(t, "1", results[0].ID)
		assert.Equal(t, "2", results[1].ID)
		assert.Equal(t, "3", results[2].ID)
		for i := 1; i < len(results); i++ {
			assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
		}
	})

	t.Run("radius filters", func(t *testing.T) {
		results := c.Nearby(origin, 600, 0)
		for _, r := range results {
			assert.LessOrEqual(t, r.Distance, 600.0)
		}
		assert.Len(t, results, 2)
	})

	t.Run("max count limits", func(t *testing.T) {
		results := c.Nearby(origin, 5000, 1)
		require.Len(t, results, 1)
		assert.Equal(t, "1", results[0].ID)
	})

	t.Run("default radius", func(t *testing.T) {
		far := geodesy.GeoPoint{Lat: 0, Lon: 0}
		assert.Empty(t, c.Nearby(far, 0, 10))
	})
}
