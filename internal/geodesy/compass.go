package geodesy

import (
	"math"
)

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// BearingToCompass converts a bearing (0-360°) to 8-point compass direction
func BearingToCompass(bearing float64) string {
	index := int(math.Floor((NormalizeAngle(bearing)+22.5)/45.0)) % 8
	return compassPoints[index]
}

// CompassDirection calculates compass direction from lat1,lon1 to lat2,lon2
func CompassDirection(lat1, lon1, lat2, lon2 float64) string {
	return BearingToCompass(Bearing(lat1, lon1, lat2, lon2))
}

// HeadingFromMagnetometer converts a raw magnetometer reading in the device
// plane into a heading in [0, 360).
func HeadingFromMagnetometer(x, y float64) float64 {
	return NormalizeAngle(ToDegrees(math.Atan2(y, x)))
}
