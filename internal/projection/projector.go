package projection

import (
	"math"

	"wayfinder.app/internal/geodesy"
)

// Projector projects with a fixed field of view.
type Projector struct {
	FOV float64
}

// NewProjector returns a Projector, falling back to geodesy.DefaultFOV for a
// non-positive fov.
func NewProjector(fov float64) Projector {
	if fov <= 0 || math.IsNaN(fov) {
		fov = geodesy.DefaultFOV
	}
	return Projector{FOV: fov}
}

// Project is Project with the projector's field of view.
func (p Projector) Project(heading, bearing float64, vp Viewport) ScreenProjection {
	return Project(heading, bearing, p.FOV, vp)
}

// VisibilityFilter adds a hysteresis band around the field-of-view edge so that
// heading noise does not toggle visibility on every sample. Once visible, a
// target stays visible until its offset exceeds FOV/2 + Band; once hidden it
// reappears only within FOV/2. A zero Band is the plain threshold.
//
// A VisibilityFilter is not safe for concurrent use.
type VisibilityFilter struct {
	Projector
	Band float64

	visible bool
}

// NewVisibilityFilter returns a filter for the given field of view and band.
func NewVisibilityFilter(fov, band float64) *VisibilityFilter {
	if band < 0 || math.IsNaN(band) {
		band = 0
	}
	return &VisibilityFilter{Projector: NewProjector(fov), Band: band}
}

// Project updates the filter with a new sample and returns the projection.
func (f *VisibilityFilter) Project(heading, bearing float64, vp Viewport) ScreenProjection {
	offset := AngularOffset(heading, bearing)

	limit := f.FOV / 2
	if f.visible {
		limit += f.Band
	}
	f.visible = math.Abs(offset) <= limit

	if !f.visible {
		return ScreenProjection{}
	}
	return place(offset, f.FOV, vp)
}

// Reset forgets the previous visibility, e.g. after the target changes.
func (f *VisibilityFilter) Reset() {
	f.visible = false
}
