package geo

import "math"

// SegmentClear returns true if the straight segment from (ax,ay) to
// (bx,by) crosses no edge of any occluder polygon. A segment starting
// or ending inside a footprint is treated as blocked.
func SegmentClear(ax, ay, bx, by float64, occluders []Polygon) bool {
	for _, occ := range occluders {
		if !occ.Valid() {
			continue
		}
		if occ.Contains(ax, ay) || occ.Contains(bx, by) {
			return false
		}
		if _, hit := segmentHitT(ax, ay, bx, by, occ); hit {
			return false
		}
	}
	return true
}

// ClipRay casts a ray from (ox,oy) at canvas angle angleRad (radians,
// 0 = +X, counterclockwise from the caller's perspective) out to
// maxLen, clipping it against the nearest occluder edge. Returns the
// clipped endpoint. Used to stop cone-edge strokes at walls.
func ClipRay(ox, oy, angleRad, maxLen float64, occluders []Polygon) (float64, float64) {
	ex := ox + math.Cos(angleRad)*maxLen
	ey := oy + math.Sin(angleRad)*maxLen

	bestT := 1.0
	hitAny := false
	for _, occ := range occluders {
		if !occ.Valid() {
			continue
		}
		if t, hit := segmentHitT(ox, oy, ex, ey, occ); hit && t < bestT {
			bestT = t
			hitAny = true
		}
	}
	if hitAny {
		// Pull the endpoint slightly short of the wall so strokes do
		// not z-fight with the occluder fill.
		clipT := math.Max(0, bestT-0.01)
		ex = ox + (ex-ox)*clipT
		ey = oy + (ey-oy)*clipT
	}
	return ex, ey
}

// segmentHitT returns the smallest parameter t in [0,1] at which the
// segment (ax,ay)->(bx,by) crosses an edge of the polygon. The bool is
// false when the segment misses every edge.
func segmentHitT(ax, ay, bx, by float64, poly Polygon) (float64, bool) {
	bestT := math.MaxFloat64
	hit := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		t, ok := segSegHitT(ax, ay, bx, by, poly[j].X, poly[j].Y, poly[i].X, poly[i].Y)
		if ok && t < bestT {
			bestT = t
			hit = true
		}
		j = i
	}
	if !hit {
		return 0, false
	}
	return bestT, true
}

// segSegHitT intersects segment P (p1->p2) with segment Q (q1->q2) and
// returns P's parameter at the crossing. Parallel and degenerate pairs
// report no hit.
func segSegHitT(p1x, p1y, p2x, p2y, q1x, q1y, q2x, q2y float64) (float64, bool) {
	rx := p2x - p1x
	ry := p2y - p1y
	sx := q2x - q1x
	sy := q2y - q1y

	denom := rx*sy - ry*sx
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	qpx := q1x - p1x
	qpy := q1y - p1y
	t := (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
