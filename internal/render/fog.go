package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tarnwald/tacmap/internal/geo"
	"github.com/tarnwald/tacmap/internal/overlay"
)

var whiteImage = ebiten.NewImage(1, 1)

func init() {
	whiteImage.Fill(color.White)
}

const arcSteps = 36

// FogLayer composites the fog-of-war mask into an offscreen buffer,
// then draws that buffer over the scene in one pass. Punching the
// cutouts in a buffer keeps overlapping vision volumes from stacking.
type FogLayer struct {
	buf *ebiten.Image
}

// NewFogLayer creates an empty fog layer; the buffer is sized lazily.
func NewFogLayer() *FogLayer {
	return &FogLayer{}
}

// Draw renders the mask frame over the screen using the camera's
// projection: a flat darkening fill, holes for every vision cutout,
// occluder footprints re-darkened, and cone edge outlines on top.
func (f *FogLayer) Draw(screen *ebiten.Image, mask overlay.MaskFrame, cam *Camera) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if f.buf == nil || f.buf.Bounds().Dx() != w || f.buf.Bounds().Dy() != h {
		f.buf = ebiten.NewImage(w, h)
	}

	a := mask.FogAlpha
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	fog := color.RGBA{A: uint8(a * 255)}

	f.buf.Clear()
	f.buf.Fill(fog)

	for _, c := range mask.Cutouts {
		cx, cy := cam.WorldToScreen(c.X, c.Y)
		r := c.Radius * cam.Zoom
		var path vector.Path
		switch c.Kind {
		case overlay.CutoutSector:
			start, end := overlay.SectorAngles(c.CenterDeg, c.HalfDeg)
			path.MoveTo(float32(cx), float32(cy))
			path.Arc(float32(cx), float32(cy), float32(r), float32(start), float32(end), vector.Clockwise)
			path.Close()
		default:
			path.MoveTo(float32(cx+r), float32(cy))
			path.Arc(float32(cx), float32(cy), float32(r), 0, 2*math.Pi, vector.Clockwise)
			path.Close()
		}
		f.punch(&path)
	}

	// Buildings stay dark even inside a vision volume.
	for _, p := range mask.Occluders {
		if path, ok := polygonPath(p, cam); ok {
			fillPath(f.buf, path, fog)
		}
	}

	screen.DrawImage(f.buf, nil)

	for _, o := range mask.Outlines {
		f.drawOutline(screen, o, mask.Occluders, cam)
	}
}

// punch erases the path's area from the fog buffer.
func (f *FogLayer) punch(path *vector.Path) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 0
		vs[i].SrcY = 0
		vs[i].ColorR = 1
		vs[i].ColorG = 1
		vs[i].ColorB = 1
		vs[i].ColorA = 1
	}
	op := &ebiten.DrawTrianglesOptions{
		Blend:     ebiten.BlendClear,
		AntiAlias: true,
	}
	f.buf.DrawTriangles(vs, is, whiteImage, op)
}

// drawOutline strokes a cone's bounding rays and arc edge, clipping
// every ray at the first building it hits.
func (f *FogLayer) drawOutline(screen *ebiten.Image, o overlay.ConeOutline, occluders []geo.Polygon, cam *Camera) {
	edgeCol := color.RGBA{R: 255, G: 255, B: 255, A: 80}
	start, end := overlay.SectorAngles(o.CenterDeg, o.HalfDeg)

	ox, oy := cam.WorldToScreen(o.X, o.Y)
	sx, sy := float32(ox), float32(oy)
	edge := func(a float64) (float32, float32) {
		wx, wy := geo.ClipRay(o.X, o.Y, a, o.Range, occluders)
		px, py := cam.WorldToScreen(wx, wy)
		return float32(px), float32(py)
	}

	p0x, p0y := edge(start)
	p1x, p1y := edge(end)
	vector.StrokeLine(screen, sx, sy, p0x, p0y, 1.0, edgeCol, false)
	vector.StrokeLine(screen, sx, sy, p1x, p1y, 1.0, edgeCol, false)

	var prevX, prevY float32
	for i := 0; i <= arcSteps; i++ {
		a := start + (end-start)*float64(i)/arcSteps
		px, py := edge(a)
		if i > 0 {
			vector.StrokeLine(screen, prevX, prevY, px, py, 1.0, edgeCol, false)
		}
		prevX, prevY = px, py
	}
}

// polygonPath builds a screen-space path for a footprint. ok is false
// for degenerate polygons.
func polygonPath(p geo.Polygon, cam *Camera) (*vector.Path, bool) {
	if len(p) < 3 {
		return nil, false
	}
	var path vector.Path
	for i, pt := range p {
		sx, sy := cam.WorldToScreen(pt.X, pt.Y)
		if i == 0 {
			path.MoveTo(float32(sx), float32(sy))
		} else {
			path.LineTo(float32(sx), float32(sy))
		}
	}
	path.Close()
	return &path, true
}

// fillPath fills a path with a flat color using explicit vertex colors.
func fillPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255
	ca := float32(clr.A) / 255
	for i := range vs {
		vs[i].SrcX = 0
		vs[i].SrcY = 0
		vs[i].ColorR = cr
		vs[i].ColorG = cg
		vs[i].ColorB = cb
		vs[i].ColorA = ca
	}
	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
	}
	dst.DrawTriangles(vs, is, whiteImage, op)
}
