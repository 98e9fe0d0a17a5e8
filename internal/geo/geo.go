package geo

import "math"

// Point is a 2D world coordinate in meters.
type Point struct {
	X float64
	Y float64
}

// Polygon is an ordered ring of world points describing a building
// footprint. The ring is treated as closed; the last point does not
// need to repeat the first.
type Polygon []Point

// Rect returns an axis-aligned rectangular footprint, the common case
// for generated scenarios.
func Rect(x, y, w, h float64) Polygon {
	return Polygon{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}

// Bounds returns the axis-aligned bounding box of the polygon.
// Degenerate polygons (fewer than 3 points) return a zero box.
func (p Polygon) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p) < 3 {
		return 0, 0, 0, 0
	}
	minX, minY = p[0].X, p[0].Y
	maxX, maxY = p[0].X, p[0].Y
	for _, pt := range p[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY
}

// Centroid returns the vertex average of the polygon.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, pt := range p {
		sx += pt.X
		sy += pt.Y
	}
	n := float64(len(p))
	return Point{X: sx / n, Y: sy / n}
}

// Contains reports whether the point (x, y) lies inside the polygon,
// using the even-odd crossing rule. Points exactly on an edge may land
// on either side; callers must not rely on edge behaviour.
func (p Polygon) Contains(x, y float64) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		pi, pj := p[i], p[j]
		if (pi.Y > y) != (pj.Y > y) {
			cross := (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if x < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Valid reports whether the polygon has at least 3 finite vertices.
func (p Polygon) Valid() bool {
	if len(p) < 3 {
		return false
	}
	for _, pt := range p {
		if !finite(pt.X) || !finite(pt.Y) {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
