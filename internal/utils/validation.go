package utils

import (
	"errors"
	"math"
	"regexp"
)

// Compiled regular expressions for validation
var (
	// Allow alphanumeric, underscore, hyphen, dot - common in stop and session IDs
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

const (
	// MaxRadius caps nearby-target searches.
	MaxRadius = 10000.0
	// MaxViewportSide caps viewport dimensions in pixels.
	MaxViewportSide = 10000.0
	// MaxPathSegments caps great-circle path interpolation.
	MaxPathSegments = 1000
)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateFinite rejects NaN and infinities.
func ValidateFinite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("value must be a finite number")
	}
	return nil
}

// ValidateLatitude validates latitude values
func ValidateLatitude(lat float64) error {
	if err := ValidateFinite(lat); err != nil {
		return err
	}
	if lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lon float64) error {
	if err := ValidateFinite(lon); err != nil {
		return err
	}
	if lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateRadius validates radius values for location searches
func ValidateRadius(radius float64) error {
	if err := ValidateFinite(radius); err != nil {
		return err
	}

	if radius < 0 {
		return errors.New("radius must be non-negative")
	}

	if radius > MaxRadius {
		return errors.New("radius too large (max 10000 meters)")
	}

	return nil
}

// ValidateFOV accepts a field of view in (0, 360].
func ValidateFOV(fov float64) error {
	if err := ValidateFinite(fov); err != nil {
		return err
	}
	if fov <= 0 || fov > 360 {
		return errors.New("fov must be greater than 0 and at most 360")
	}
	return nil
}

// ValidateViewportSide accepts a positive pixel dimension.
func ValidateViewportSide(side float64) error {
	if err := ValidateFinite(side); err != nil {
		return err
	}
	if side <= 0 {
		return errors.New("viewport dimension must be positive")
	}
	if side > MaxViewportSide {
		return errors.New("viewport dimension too large (max 10000)")
	}
	return nil
}

// ValidateSegments validates the number of path segments.
func ValidateSegments(segments int) error {
	if segments < 1 {
		return errors.New("segments must be at least 1")
	}
	if segments > MaxPathSegments {
		return errors.New("segments too large (max 1000)")
	}
	return nil
}

// ValidateLocationParams validates a complete set of location parameters
func ValidateLocationParams(lat, lon, radius float64) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateLatitude(lat); err != nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], err.Error())
	}

	if err := ValidateLongitude(lon); err != nil {
		fieldErrors["lon"] = append(fieldErrors["lon"], err.Error())
	}

	if radius != 0 {
		if err := ValidateRadius(radius); err != nil {
			fieldErrors["radius"] = append(fieldErrors["radius"], err.Error())
		}
	}

	return fieldErrors
}

// ValidatePointParams validates a lat/lon pair, keying errors by the given field names.
func ValidatePointParams(latKey, lonKey string, lat, lon float64, fieldErrors map[string][]string) map[string][]string {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}
	if err := ValidateLatitude(lat); err != nil {
		fieldErrors[latKey] = append(fieldErrors[latKey], err.Error())
	}
	if err := ValidateLongitude(lon); err != nil {
		fieldErrors[lonKey] = append(fieldErrors[lonKey], err.Error())
	}
	return fieldErrors
}

// ValidateViewportParams validates viewport width and height.
func ValidateViewportParams(width, height float64, fieldErrors map[string][]string) map[string][]string {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}
	if err := ValidateViewportSide(width); err != nil {
		fieldErrors["width"] = append(fieldErrors["width"], err.Error())
	}
	if err := ValidateViewportSide(height); err != nil {
		fieldErrors["height"] = append(fieldErrors["height"], err.Error())
	}
	return fieldErrors
}
