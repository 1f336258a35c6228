package tracker

import (
	"math"
	"sync"
	"time"

	"wayfinder.app/internal/geodesy"
	"wayfinder.app/internal/projection"
)

// Overlay is everything the camera view needs to draw for one frame.
type Overlay struct {
	SessionID    string                      `json:"sessionId"`
	TargetID     string                      `json:"targetId,omitempty"`
	Target       geodesy.GeoPoint            `json:"target"`
	Location     *geodesy.GeoPoint           `json:"location"`
	Heading      float64                     `json:"heading"`
	HeadingText  string                      `json:"headingText"`
	Ready        bool                        `json:"ready"`
	Bearing      float64                     `json:"bearing"`
	BearingText  string                      `json:"bearingText"`
	Compass      string                      `json:"compass"`
	Distance     float64                     `json:"distance"`
	DistanceText string                      `json:"distanceText"`
	Offset       float64                     `json:"offset"`
	FOV          float64                     `json:"fov"`
	Viewport     projection.Viewport         `json:"viewport"`
	Projection   projection.ScreenProjection `json:"projection"`
	TurnHint     string                      `json:"turnHint,omitempty"`
	Prompt       string                      `json:"prompt,omitempty"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// Session tracks one user navigating to one target. Samples overwrite each
// other: the most recent location and heading win.
type Session struct {
	id  string
	now func() time.Time

	mu          sync.Mutex
	targetID    string
	target      geodesy.GeoPoint
	location    geodesy.GeoPoint
	hasLocation bool
	heading     float64
	filter      *projection.VisibilityFilter
	createdAt   time.Time
	updatedAt   time.Time
}

func newSession(id string, target geodesy.GeoPoint, targetID string, fov, band float64, now func() time.Time) *Session {
	t := now()
	return &Session{
		id:        id,
		now:       now,
		targetID:  targetID,
		target:    target,
		filter:    projection.NewVisibilityFilter(fov, band),
		createdAt: t,
		updatedAt: t,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns when the session started.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastActive returns the time of the most recent update.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SetTarget replaces the navigation target.
func (s *Session) SetTarget(target geodesy.GeoPoint, targetID string) error {
	if !target.Valid() {
		return ErrInvalidPoint
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = target
	s.targetID = targetID
	s.filter.Reset()
	s.updatedAt = s.now()
	return nil
}

// UpdateLocation records a location fix.
func (s *Session) UpdateLocation(location geodesy.GeoPoint) error {
	if !location.Valid() {
		return ErrInvalidPoint
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = location
	s.hasLocation = true
	s.updatedAt = s.now()
	return nil
}

// UpdateHeading records a compass heading in degrees.
func (s *Session) UpdateHeading(heading float64) error {
	if math.IsNaN(heading) || math.IsInf(heading, 0) {
		return ErrInvalidHeading
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.heading = geodesy.NormalizeAngle(heading)
	s.updatedAt = s.now()
	return nil
}

// UpdateMagnetometer records a heading derived from a raw magnetometer reading.
func (s *Session) UpdateMagnetometer(x, y float64) error {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return ErrInvalidHeading
	}
	return s.UpdateHeading(geodesy.HeadingFromMagnetometer(x, y))
}

// Overlay computes the current overlay for a viewport. Until the first
// location fix arrives the overlay is not ready and nothing should be drawn.
func (s *Session) Overlay(vp projection.Viewport) Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()

	overlay := Overlay{
		SessionID:   s.id,
		TargetID:    s.targetID,
		Target:      s.target,
		Heading:     s.heading,
		HeadingText: geodesy.FormatBearing(s.heading),
		FOV:         s.filter.FOV,
		Viewport:    vp,
		UpdatedAt:   s.updatedAt,
	}
	if !s.hasLocation {
		return overlay
	}

	location := s.location
	bearing := location.BearingTo(s.target)
	distance := location.DistanceTo(s.target)
	offset := projection.AngularOffset(s.heading, bearing)

	overlay.Location = &location
	overlay.Ready = true
	overlay.Bearing = bearing
	overlay.BearingText = geodesy.FormatBearing(bearing)
	overlay.Compass = geodesy.BearingToCompass(bearing)
	overlay.Distance = distance
	overlay.DistanceText = geodesy.FormatDistance(distance)
	overlay.Offset = offset
	overlay.Projection = s.filter.Project(s.heading, bearing, vp)

	if !overlay.Projection.Visible {
		overlay.TurnHint = projection.TurnHint(offset, s.filter.FOV)
		overlay.Prompt = "Turn around to see the target. Target is " + overlay.BearingText + " from north"
	}

	return overlay
}
