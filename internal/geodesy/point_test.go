package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoPointValid(t *testing.T) {
	tests := []struct {
		name  string
		point GeoPoint
		valid bool
	}{
		{"origin", GeoPoint{0, 0}, true},
		{"corners", GeoPoint{-90, 180}, true},
		{"latitude too large", GeoPoint{90.1, 0}, false},
		{"longitude too small", GeoPoint{0, -180.1}, false},
		{"NaN latitude", GeoPoint{math.NaN(), 0}, false},
		{"infinite longitude", GeoPoint{0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.point.Valid())
		})
	}
}

func TestGeoPointBearingAndDistance(t *testing.T) {
	origin := GeoPoint{0, 0}
	east := GeoPoint{0, 1}

	assert.InDelta(t, 90.0, origin.BearingTo(east), 1e-9)
	assert.InDelta(t, Distance(0, 0, 0, 1), origin.DistanceTo(east), 1e-9)
}

func TestGeoPointMercator(t *testing.T) {
	x, y := GeoPoint{0, 0}.Mercator()
	assert.InDelta(t, 0.0, x, 1e-6)
	assert.InDelta(t, 0.0, y, 1e-6)

	// the Web Mercator x extent is half the equatorial circumference of the WGS84 ellipsoid
	x, _ = GeoPoint{0, 180}.Mercator()
	assert.InDelta(t, 20037508.34, x, 1)

	_, y = GeoPoint{45, 0}.Mercator()
	assert.InDelta(t, 5621521.49, y, 1)
}
