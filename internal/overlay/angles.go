package overlay

import "math"

// Headings follow the map convention: 0 = north (+Y), increasing
// clockwise, degrees. Drawing surfaces usually want 0 = east,
// counterclockwise, radians; CanvasAngle converts between the two.

// IsInCone reports whether the target lies inside a vision cone rooted
// at (originX, originY) facing headingDeg. coneAngleDeg is the total
// arc, not the half-angle. Both boundaries are inclusive: a target
// exactly at coneRange, or exactly on the half-angle edge, is in.
func IsInCone(originX, originY, headingDeg, coneAngleDeg, coneRange, targetX, targetY float64) bool {
	dx := targetX - originX
	dy := targetY - originY
	if math.Sqrt(dx*dx+dy*dy) > coneRange {
		return false
	}
	bearing := BearingDeg(originX, originY, targetX, targetY)
	diff := SignedDeltaDeg(bearing - headingDeg)
	return math.Abs(diff) <= coneAngleDeg/2
}

// UpdateSweepAngle advances a sweeping cone's centerline by rpm
// revolutions per minute over dt seconds. The result is always in
// [0, 360); Go's math.Mod keeps the sign of the dividend, so negative
// results are folded back up.
func UpdateSweepAngle(currentAngleDeg, rpm, dtSeconds float64) float64 {
	a := math.Mod(currentAngleDeg+rpm*360*dtSeconds/60, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// BearingDeg returns the bearing from (ox, oy) toward (tx, ty) in the
// heading convention, normalized to [0, 360).
func BearingDeg(ox, oy, tx, ty float64) float64 {
	// atan2(dx, dy): 0 at +Y, growing clockwise — same frame as headings.
	return NormalizeDeg(math.Atan2(tx-ox, ty-oy) * 180 / math.Pi)
}

// NormalizeDeg wraps an angle to [0, 360).
func NormalizeDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// SignedDeltaDeg wraps an angular difference to [-180, 180].
func SignedDeltaDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	}
	if a < -180 {
		a += 360
	}
	return a
}

// CanvasAngle converts a map heading to drawing-surface radians
// (0 = east, counterclockwise-positive in the math sense; note canvas Y
// grows downward, which this sign flip accounts for).
func CanvasAngle(headingDeg float64) float64 {
	return -(headingDeg - 90) * math.Pi / 180
}
