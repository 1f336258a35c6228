package geodesy

import (
	"math"

	"github.com/wroge/wgs84"
)

// GeoPoint is a WGS84 coordinate in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point is finite and within latitude/longitude ranges.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// BearingTo returns the initial bearing from p to other.
func (p GeoPoint) BearingTo(other GeoPoint) float64 {
	return Bearing(p.Lat, p.Lon, other.Lat, other.Lon)
}

// DistanceTo returns the great-circle distance in meters from p to other.
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	return Distance(p.Lat, p.Lon, other.Lat, other.Lon)
}

// Mercator projects the point to Web Mercator (EPSG:3857) meters, the space
// slippy-map tiles are drawn in.
func (p GeoPoint) Mercator() (x, y float64) {
	transform := wgs84.EPSG().Transform(4326, 3857)
	x, y, _ = transform(p.Lon, p.Lat, 0)
	return x, y
}
