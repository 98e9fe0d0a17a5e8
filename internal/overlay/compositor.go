package overlay

import (
	"math"

	"github.com/tarnwald/tacmap/internal/geo"
)

// fogAlpha is the base opacity of the fog covering unperceived ground.
const fogAlpha = 0.45

// CutoutKind distinguishes the two hole shapes cut into the fog.
type CutoutKind int

const (
	CutoutCircle CutoutKind = iota
	CutoutSector
)

// Cutout is one transparent hole in the fog mask. Circles use only
// Radius; sectors additionally carry a centerline and half-angle in
// the heading convention.
type Cutout struct {
	Kind      CutoutKind
	X, Y      float64
	Radius    float64
	CenterDeg float64
	HalfDeg   float64
}

// ConeOutline describes the boundary strokes (two radii plus the arc)
// of an active vision cone, for the renderer's edge-highlight pass.
type ConeOutline struct {
	X, Y      float64
	Range     float64
	CenterDeg float64
	HalfDeg   float64
}

// MaskFrame is one frame's visibility description: start from uniform
// fog at FogAlpha, make Cutouts transparent, then restore fog over
// every Occluder footprint. Outlines are rendered separately. The
// frame is plain data; no drawing surface is touched here.
type MaskFrame struct {
	FogAlpha  float64
	Cutouts   []Cutout
	Occluders []geo.Polygon
	Outlines  []ConeOutline
}

// Compositor builds per-frame visibility masks. Its only persistent
// state is the sweep-angle accumulator per sweeping emitter.
type Compositor struct {
	sweep map[string]float64
}

// NewCompositor creates a compositor with no sweep state.
func NewCompositor() *Compositor {
	return &Compositor{sweep: make(map[string]float64)}
}

// Compose produces the visibility mask and cone outlines for this
// frame. Only friendly units emit perception; units with malformed
// positions are skipped. dt advances sweeping cones.
func (c *Compositor) Compose(units []Unit, occluders []geo.Polygon, dt float64) MaskFrame {
	frame := MaskFrame{
		FogAlpha:  fogAlpha,
		Occluders: occluders,
	}

	active := make(map[string]struct{}, len(c.sweep))
	for i := range units {
		u := &units[i]
		if u.Alliance != AllianceFriendly || !u.hasFinitePosition() {
			continue
		}
		p := u.Vision.normalized()

		// The ambient circle is cut unconditionally.
		frame.Cutouts = append(frame.Cutouts, Cutout{
			Kind:   CutoutCircle,
			X:      u.X,
			Y:      u.Y,
			Radius: p.AmbientRadius,
		})

		if p.hasCone() {
			center := u.HeadingDeg
			if p.ConeSweeps {
				cur, ok := c.sweep[u.ID]
				if !ok {
					cur = u.HeadingDeg
				}
				center = UpdateSweepAngle(cur, p.ConeSweepRPM, dt)
				c.sweep[u.ID] = center
				active[u.ID] = struct{}{}
			}
			frame.Cutouts = append(frame.Cutouts, Cutout{
				Kind:      CutoutSector,
				X:         u.X,
				Y:         u.Y,
				Radius:    p.ConeRange,
				CenterDeg: center,
				HalfDeg:   p.ConeAngle / 2,
			})
			frame.Outlines = append(frame.Outlines, ConeOutline{
				X:         u.X,
				Y:         u.Y,
				Range:     p.ConeRange,
				CenterDeg: center,
				HalfDeg:   p.ConeAngle / 2,
			})
		} else if p.VisionRadius > 0 {
			// No cone configured: omni-directional fallback circle.
			frame.Cutouts = append(frame.Cutouts, Cutout{
				Kind:   CutoutCircle,
				X:      u.X,
				Y:      u.Y,
				Radius: p.VisionRadius,
			})
		}
	}

	// Drop sweep state for emitters that left the feed or stopped
	// sweeping, so a returning unit restarts from its heading.
	for id := range c.sweep {
		if _, ok := active[id]; !ok {
			delete(c.sweep, id)
		}
	}

	return frame
}

// ConeCenterDeg returns the current centerline for a unit's cone: the
// tracked sweep angle while sweeping, the heading otherwise. Used by
// the perception pass so cone tests agree with what is drawn.
func (c *Compositor) ConeCenterDeg(u Unit) float64 {
	if a, ok := c.sweep[u.ID]; ok {
		return a
	}
	return u.HeadingDeg
}

// SectorAngles converts a cutout or outline centerline to drawing
// angles: start and end in canvas radians. The canvas convention runs
// opposite to headings, so the start edge is the clockwise-most one.
func SectorAngles(centerDeg, halfDeg float64) (start, end float64) {
	center := CanvasAngle(centerDeg)
	half := halfDeg * math.Pi / 180
	return center - half, center + half
}
