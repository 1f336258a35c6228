// Package catalog offers pickable navigation targets, loaded from the stops of
// a GTFS static feed.
package catalog

import (
	"errors"
	"sort"
	"time"

	"github.com/jamespfennell/gtfs"

	"wayfinder.app/internal/geodesy"
)

// ErrTargetNotFound is returned when no target has the requested ID.
var ErrTargetNotFound = errors.New("target not found")

// DefaultRadius is the search radius used by Nearby when none is given.
const DefaultRadius = 1000.0

// Target is a named location a user can navigate to.
type Target struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Point returns the target's coordinate.
func (t Target) Point() geodesy.GeoPoint {
	return geodesy.GeoPoint{Lat: t.Lat, Lon: t.Lon}
}

// TargetWithDistance is a search result.
type TargetWithDistance struct {
	Target
	Distance float64 `json:"distance"`
}

// Catalog is an immutable set of targets, safe for concurrent reads.
type Catalog struct {
	source   string
	loadedAt time.Time
	targets  []Target
	byID     map[string]int
}

// NewCatalog builds a catalog from GTFS stops. Stops without coordinates are skipped.
func NewCatalog(source string, stops []gtfs.Stop) *Catalog {
	c := &Catalog{
		source:   source,
		loadedAt: time.Now(),
		targets:  make([]Target, 0, len(stops)),
		byID:     make(map[string]int, len(stops)),
	}

	for _, stop := range stops {
		if stop.Latitude == nil || stop.Longitude == nil {
			continue
		}
		point := geodesy.GeoPoint{Lat: *stop.Latitude, Lon: *stop.Longitude}
		if !point.Valid() {
			continue
		}
		if _, dup := c.byID[stop.Id]; dup {
			continue
		}

		c.byID[stop.Id] = len(c.targets)
		c.targets = append(c.targets, Target{
			ID:          stop.Id,
			Code:        stop.Code,
			Name:        stop.Name,
			Description: stop.Description,
			Lat:         point.Lat,
			Lon:         point.Lon,
		})
	}

	return c
}

// Source is where the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// LoadedAt is when the catalog was built.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// Len returns the number of targets.
func (c *Catalog) Len() int {
	return len(c.targets)
}

// Target looks a target up by ID.
func (c *Catalog) Target(id string) (Target, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Target{}, ErrTargetNotFound
	}
	return c.targets[idx], nil
}

// List returns all targets in feed order.
func (c *Catalog) List() []Target {
	out := make([]Target, len(c.targets))
	copy(out, c.targets)
	return out
}

// Nearby returns up to maxCount targets within radius meters of point, closest first.
// A zero radius means DefaultRadius; a non-positive maxCount means no limit.
func (c *Catalog) Nearby(point geodesy.GeoPoint, radius float64, maxCount int) []TargetWithDistance {
	if radius <= 0 {
		radius = DefaultRadius
	}

	candidates := make([]TargetWithDistance, 0)
	for _, target := range c.targets {
		distance := point.DistanceTo(target.Point())
		if distance <= radius {
			candidates = append(candidates, TargetWithDistance{Target: target, Distance: distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	if maxCount > 0 && len(candidates) > maxCount {
		candidates = candidates[:maxCount]
	}
	return candidates
}
