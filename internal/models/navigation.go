package models

import (
	"encoding/json"

	"wayfinder.app/internal/geodesy"
	"wayfinder.app/internal/projection"
)

// MercatorPoint is a Web Mercator (EPSG:3857) coordinate in meters.
type MercatorPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewMercatorPoint projects a geographic point.
func NewMercatorPoint(p geodesy.GeoPoint) MercatorPoint {
	x, y := p.Mercator()
	return MercatorPoint{X: x, Y: y}
}

// NavigationEntry describes the way from one point to another.
type NavigationEntry struct {
	From         geodesy.GeoPoint `json:"from"`
	To           geodesy.GeoPoint `json:"to"`
	ToMercator   MercatorPoint    `json:"toMercator"`
	Bearing      float64          `json:"bearing"`
	BearingText  string           `json:"bearingText"`
	Compass      string           `json:"compass"`
	Distance     float64          `json:"distance"`
	DistanceText string           `json:"distanceText"`
}

// NewNavigationEntry computes bearing and distance between two points.
func NewNavigationEntry(from, to geodesy.GeoPoint) NavigationEntry {
	bearing := from.BearingTo(to)
	distance := from.DistanceTo(to)

	return NavigationEntry{
		From:         from,
		To:           to,
		ToMercator:   NewMercatorPoint(to),
		Bearing:      bearing,
		BearingText:  geodesy.FormatBearing(bearing),
		Compass:      geodesy.BearingToCompass(bearing),
		Distance:     distance,
		DistanceText: geodesy.FormatDistance(distance),
	}
}

// ProjectionEntry is the screen placement for one heading/bearing pair.
type ProjectionEntry struct {
	Heading    float64                     `json:"heading"`
	Bearing    float64                     `json:"bearing"`
	FOV        float64                     `json:"fov"`
	Offset     float64                     `json:"offset"`
	InView     bool                        `json:"inView"`
	Viewport   projection.Viewport         `json:"viewport"`
	Projection projection.ScreenProjection `json:"projection"`
	TurnHint   string                      `json:"turnHint"`
}

// NewProjectionEntry projects bearing onto a viewport for a device facing heading.
func NewProjectionEntry(heading, bearing, fov float64, vp projection.Viewport) ProjectionEntry {
	heading = geodesy.NormalizeAngle(heading)
	bearing = geodesy.NormalizeAngle(bearing)
	offset := projection.AngularOffset(heading, bearing)

	return ProjectionEntry{
		Heading:    heading,
		Bearing:    bearing,
		FOV:        fov,
		Offset:     offset,
		InView:     geodesy.IsInView(heading, bearing, fov),
		Viewport:   vp,
		Projection: projection.Project(heading, bearing, fov, vp),
		TurnHint:   projection.TurnHint(offset, fov),
	}
}

// PathEntry is a great-circle path in the requested encoding.
type PathEntry struct {
	Format   string             `json:"format"`
	Length   float64            `json:"length"`
	Points   []geodesy.GeoPoint `json:"points,omitempty"`
	Polyline string             `json:"polyline,omitempty"`
	GeoJSON  json.RawMessage    `json:"geojson,omitempty"`
}
