package geodesy

import (
	"math"
	"math/big"
	"strconv"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371e3

// DefaultFOV is the horizontal camera field of view in degrees.
const DefaultFOV = 60.0

// ToRadians converts degrees to radians
func ToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// ToDegrees converts radians to degrees
func ToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Bearing calculates the initial great-circle bearing in degrees from point1 to point2.
// The result is in [0, 360), 0 being true north and increasing clockwise.
// Identical points yield 0.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := ToRadians(lat1)
	phi2 := ToRadians(lat2)
	deltaLon := ToRadians(lon2 - lon1)

	y := math.Sin(deltaLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLon)

	bearing := math.Mod(math.Mod(ToDegrees(math.Atan2(y, x)), 360)+360, 360)
	return finiteOrZero(bearing)
}

// Distance calculates the haversine great-circle distance in meters between two points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	return finiteOrZero(EarthRadiusMeters * centralAngle(lat1, lon1, lat2, lon2))
}

// centralAngle returns the angle in radians subtended at the Earth's centre by the two points.
func centralAngle(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := ToRadians(lat1)
	phi2 := ToRadians(lat2)
	deltaPhi := ToRadians(lat2 - lat1)
	deltaLambda := ToRadians(lon2 - lon1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	// rounding can push a a hair past 1 for near-antipodal points
	a = math.Min(math.Max(a, 0), 1)

	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// NormalizeAngle maps any angle in degrees into [0, 360).
func NormalizeAngle(angle float64) float64 {
	normalized := math.Mod(angle, 360)
	if normalized < 0 {
		normalized += 360
	}
	// -1e-20 + 360 rounds to exactly 360
	if normalized >= 360 {
		normalized = 0
	}
	return finiteOrZero(normalized)
}

// IsInView reports whether targetBearing lies within fov degrees centred on userHeading,
// measured along the shorter arc. The boundary is inclusive.
func IsInView(userHeading, targetBearing, fov float64) bool {
	diff := math.Abs(NormalizeAngle(userHeading) - NormalizeAngle(targetBearing))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff <= fov/2
}

// FormatDistance renders a distance for display: whole meters below one kilometer,
// kilometers with one decimal otherwise.
func FormatDistance(meters float64) string {
	if math.IsNaN(meters) || math.IsInf(meters, 0) {
		return "0m"
	}
	if meters < 1000 {
		m := math.Floor(meters + 0.5)
		if m == 0 {
			m = 0 // drop the sign of -0
		}
		return strconv.FormatFloat(m, 'f', 0, 64) + "m"
	}
	return formatTenthsHalfUp(meters/1000) + "km"
}

// formatTenthsHalfUp renders v with one decimal, rounding the exact binary
// value half up. strconv rounds exact ties to even, so 1.25 would become "1.2".
func formatTenthsHalfUp(v float64) string {
	x := new(big.Float).SetPrec(256).SetFloat64(v)
	x.Mul(x, big.NewFloat(10))
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil)

	s := n.String()
	for len(s) < 2 {
		s = "0" + s
	}
	return s[:len(s)-1] + "." + s[len(s)-1:]
}

// FormatBearing renders a bearing as whole degrees, e.g. "273°".
func FormatBearing(bearing float64) string {
	return strconv.FormatFloat(math.Round(bearing), 'f', 0, 64) + "°"
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
