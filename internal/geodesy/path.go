package geodesy

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/twpayne/go-polyline"
)

// GreatCirclePath returns segments+1 points along the great circle from a to b,
// endpoints included. Identical or antipodal endpoints have no unique great
// circle, so only the two endpoints are returned.
func GreatCirclePath(a, b GeoPoint, segments int) []GeoPoint {
	d := centralAngle(a.Lat, a.Lon, b.Lat, b.Lon)
	sinD := math.Sin(d)
	if segments < 1 || math.IsNaN(d) || math.Abs(sinD) < 1e-12 {
		return []GeoPoint{a, b}
	}

	phi1, lambda1 := ToRadians(a.Lat), ToRadians(a.Lon)
	phi2, lambda2 := ToRadians(b.Lat), ToRadians(b.Lon)

	points := make([]GeoPoint, 0, segments+1)
	points = append(points, a)
	for i := 1; i < segments; i++ {
		f := float64(i) / float64(segments)
		wa := math.Sin((1-f)*d) / sinD
		wb := math.Sin(f*d) / sinD

		x := wa*math.Cos(phi1)*math.Cos(lambda1) + wb*math.Cos(phi2)*math.Cos(lambda2)
		y := wa*math.Cos(phi1)*math.Sin(lambda1) + wb*math.Cos(phi2)*math.Sin(lambda2)
		z := wa*math.Sin(phi1) + wb*math.Sin(phi2)

		points = append(points, GeoPoint{
			Lat: ToDegrees(math.Atan2(z, math.Sqrt(x*x+y*y))),
			Lon: ToDegrees(math.Atan2(y, x)),
		})
	}
	return append(points, b)
}

// EncodePolyline encodes points with the Google encoded polyline algorithm.
func EncodePolyline(points []GeoPoint) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

// PathGeoJSON renders points as a GeoJSON LineString geometry.
func PathGeoJSON(points []GeoPoint) (json.RawMessage, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("path must have at least 2 points, got %d", len(points))
	}

	flatCoords := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flatCoords = append(flatCoords, p.Lon, p.Lat)
	}
	ls := geom.NewLineString(geom.NewSequence(flatCoords, geom.DimXY))

	b, err := ls.AsGeometry().MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal path GeoJSON: %w", err)
	}
	return b, nil
}
