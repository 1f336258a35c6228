// Package projection places a target marker on screen from the device heading
// and the bearing to the target.
package projection

import (
	"math"

	"wayfinder.app/internal/geodesy"
)

// Viewport is the camera preview size in screen units.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ScreenProjection is where the marker should be drawn. X and Y are zero and
// meaningless when the target is not visible.
type ScreenProjection struct {
	Visible bool    `json:"visible"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Turn hints for the directional prompt shown when the marker is off screen.
const (
	TurnAhead = "ahead"
	TurnLeft  = "left"
	TurnRight = "right"
)

// AngularOffset returns the signed shortest-path difference bearing - heading
// in (-180, 180]. Positive means the target is clockwise of the facing direction.
func AngularOffset(heading, bearing float64) float64 {
	diff := geodesy.NormalizeAngle(bearing) - geodesy.NormalizeAngle(heading)
	if diff > 180 {
		diff -= 360
	} else if diff <= -180 {
		diff += 360
	}
	return diff
}

// InView reports whether an angular offset falls inside the field of view.
// The boundary is inclusive.
func InView(offset, fov float64) bool {
	return fov > 0 && math.Abs(offset) <= fov/2
}

// Project maps heading and bearing to a screen position for a camera with the
// given horizontal field of view. Only yaw is modelled, so Y is always the
// vertical centre.
func Project(heading, bearing, fov float64, vp Viewport) ScreenProjection {
	offset := AngularOffset(heading, bearing)
	if !InView(offset, fov) {
		return ScreenProjection{}
	}
	return place(offset, fov, vp)
}

// TurnHint tells the user which way to rotate to bring the target into view.
func TurnHint(offset, fov float64) string {
	switch {
	case InView(offset, fov):
		return TurnAhead
	case offset > 0:
		return TurnRight
	default:
		return TurnLeft
	}
}

func place(offset, fov float64, vp Viewport) ScreenProjection {
	halfFOV := fov / 2
	normalized := offset / halfFOV
	// a hysteresis band can keep a target visible slightly past the edge
	normalized = math.Max(-1, math.Min(1, normalized))

	return ScreenProjection{
		Visible: true,
		X:       vp.Width/2 + normalized*(vp.Width/2),
		Y:       vp.Height / 2,
	}
}
