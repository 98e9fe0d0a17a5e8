package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tarnwald/tacmap/internal/geo"
	"github.com/tarnwald/tacmap/internal/overlay"
)

const unitRadius = 5.0

var (
	colFriendly    = color.RGBA{R: 90, G: 200, B: 120, A: 255}
	colHostile     = color.RGBA{R: 230, G: 80, B: 70, A: 255}
	colNeutral     = color.RGBA{R: 210, G: 190, B: 90, A: 255}
	colNeutralized = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	colSelection   = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	colLabelBox    = color.RGBA{R: 10, G: 14, B: 10, A: 200}
	colLeader      = color.RGBA{R: 255, G: 255, B: 255, A: 60}
)

// FaceMeasure measures label text with the render font so the engine's
// boxes match what DrawLabels actually paints.
func FaceMeasure(s string, fontSize float64) float64 {
	adv := font.MeasureString(basicfont.Face7x13, s)
	return float64(adv.Ceil()) * fontSize / 13
}

func allianceColor(a overlay.Alliance, st overlay.Status) color.RGBA {
	if st == overlay.StatusNeutralized {
		return colNeutralized
	}
	switch a {
	case overlay.AllianceFriendly:
		return colFriendly
	case overlay.AllianceHostile:
		return colHostile
	default:
		return colNeutral
	}
}

// DrawUnits paints unit icons: a filled disc with a heading tick,
// plus a selection ring around the selected unit. Hidden non-friendly
// units are skipped; their ghosts stand in for them.
func DrawUnits(screen *ebiten.Image, units []overlay.Unit, selectedID string, cam *Camera) {
	for _, u := range units {
		if u.Alliance != overlay.AllianceFriendly && u.Visibility == overlay.VisibilityHidden {
			continue
		}
		sx, sy := cam.WorldToScreen(u.X, u.Y)
		fx, fy := float32(sx), float32(sy)
		r := float32(unitRadius * cam.Zoom)
		c := allianceColor(u.Alliance, u.Status)

		vector.FillCircle(screen, fx, fy, r, c, false)
		dx, dy := headingDir(u.HeadingDeg)
		vector.StrokeLine(screen, fx, fy,
			fx+float32(dx)*r*1.8, fy+float32(dy)*r*1.8, 1.5, c, false)

		if u.ID == selectedID {
			vector.StrokeCircle(screen, fx, fy, r+3, 1.5, colSelection, false)
		}
	}
}

// headingDir converts a compass heading into a screen-space unit vector.
func headingDir(headingDeg float64) (float64, float64) {
	a := overlay.CanvasAngle(headingDeg)
	return math.Cos(a), math.Sin(a)
}

// DrawGhosts paints last-known-position markers as fading hollow rings
// with a cross, hostile-tinted and scaled by remaining opacity.
func DrawGhosts(screen *ebiten.Image, ghosts []overlay.Ghost, cam *Camera) {
	for _, g := range ghosts {
		sx, sy := cam.WorldToScreen(g.X, g.Y)
		fx, fy := float32(sx), float32(sy)
		r := float32(unitRadius * cam.Zoom)
		a := g.Opacity
		if a <= 0 {
			continue
		}
		ring := color.RGBA{R: colHostile.R, G: colHostile.G, B: colHostile.B, A: uint8(180 * a)}
		mark := color.RGBA{R: colHostile.R, G: colHostile.G, B: colHostile.B, A: uint8(120 * a)}
		vector.StrokeCircle(screen, fx, fy, r, 1.0, ring, false)
		vector.StrokeLine(screen, fx-r*0.6, fy-r*0.6, fx+r*0.6, fy+r*0.6, 1.0, mark, false)
		vector.StrokeLine(screen, fx-r*0.6, fy+r*0.6, fx+r*0.6, fy-r*0.6, 1.0, mark, false)
	}
}

// DrawLabels paints resolved label boxes with their text, drawing a
// faint leader line back to the anchor for displaced labels.
func DrawLabels(screen *ebiten.Image, labels []overlay.LabelResult) {
	for _, l := range labels {
		x, y := float32(l.X), float32(l.Y)
		w, h := float32(l.W), float32(l.H)
		border := allianceColor(l.Alliance, l.Status)

		if l.Displaced {
			vector.StrokeLine(screen, float32(l.AnchorX), float32(l.AnchorY),
				x+w/2, y+h/2, 1.0, colLeader, false)
		}
		vector.FillRect(screen, x, y, w, h, colLabelBox, false)
		vector.StrokeRect(screen, x, y, w, h, 1.0, border, false)

		// Face7x13 baseline sits 11px under the glyph top.
		tx := int(l.X) + 3
		ty := int(l.Y+l.H/2) + 5
		text.Draw(screen, l.Text, basicfont.Face7x13, tx, ty, color.White)
	}
}

// DrawFootprints paints building footprints under the fog layer.
// Footprints wholly outside the view are skipped.
func DrawFootprints(screen *ebiten.Image, polys []geo.Polygon, cam *Camera) {
	body := color.RGBA{R: 38, G: 36, B: 32, A: 255}
	edge := color.RGBA{R: 70, G: 66, B: 58, A: 255}
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	for _, p := range polys {
		minX, minY, maxX, maxY := p.Bounds()
		sx0, sy0 := cam.WorldToScreen(minX, minY)
		sx1, sy1 := cam.WorldToScreen(maxX, maxY)
		if sx1 < 0 || sy1 < 0 || sx0 > w || sy0 > h {
			continue
		}
		path, ok := polygonPath(p, cam)
		if !ok {
			continue
		}
		fillPath(screen, path, body)
		for i := range p {
			a := p[i]
			b := p[(i+1)%len(p)]
			ax, ay := cam.WorldToScreen(a.X, a.Y)
			bx, by := cam.WorldToScreen(b.X, b.Y)
			vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1.0, edge, false)
		}
	}
}
