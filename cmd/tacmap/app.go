package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"github.com/tarnwald/tacmap/internal/overlay"
	"github.com/tarnwald/tacmap/internal/render"
	"github.com/tarnwald/tacmap/internal/scenario"
)

const (
	panSpeed  = 8.0 // screen px per tick while a pan key is held
	selectPad = 12.0
	tickDt    = 1.0 / 60.0
)

// App is the interactive viewer: a generated battlefield running the
// full overlay pipeline with pan, zoom, selection, and a copyable
// debug report.
type App struct {
	log   zerolog.Logger
	world *scenario.Scenario
	scene *overlay.Scene
	cam   *render.Camera
	fog   *render.FogLayer

	width  int
	height int

	prevMouseLeft bool
	prevCopyKey   bool
	paused        bool
	prevPauseKey  bool
}

// NewApp wires the scenario into the overlay pipeline.
func NewApp(log zerolog.Logger, world *scenario.Scenario, w, h int) *App {
	a := &App{
		log:    log,
		world:  world,
		cam:    render.NewCamera(),
		fog:    render.NewFogLayer(),
		width:  w,
		height: h,
	}
	a.scene = overlay.NewScene(
		overlay.WithFrameSize(w, h),
		overlay.WithProjection(a.cam.WorldToScreen),
	)
	a.scene.Labels.Measure = render.FaceMeasure
	a.scene.Occluders = world.Occluders
	return a
}

// Update advances the world one tick and runs the overlay pipeline.
func (a *App) Update() error {
	a.handleInput()

	if !a.paused {
		a.world.Step(tickDt)
	}
	a.scene.Units = a.world.Units
	a.scene.Zoom = a.cam.Zoom
	a.scene.Advance(tickDt)
	return nil
}

func (a *App) handleInput() {
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		a.cam.Pan(-panSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		a.cam.Pan(panSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		a.cam.Pan(0, -panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		a.cam.Pan(0, panSpeed)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		mx, my := ebiten.CursorPosition()
		factor := 1.1
		if wy < 0 {
			factor = 1 / 1.1
		}
		a.cam.ZoomAt(float64(mx), float64(my), factor)
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !a.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		a.selectAt(float64(mx), float64(my))
	}
	a.prevMouseLeft = left

	copyKey := ebiten.IsKeyPressed(ebiten.KeyC)
	if copyKey && !a.prevCopyKey {
		if err := a.scene.CopyDebugReport(); err != nil {
			a.log.Warn().Err(err).Msg("clipboard copy failed")
		} else {
			a.log.Info().Msg("overlay report copied to clipboard")
		}
	}
	a.prevCopyKey = copyKey

	pauseKey := ebiten.IsKeyPressed(ebiten.KeySpace)
	if pauseKey && !a.prevPauseKey {
		a.paused = !a.paused
	}
	a.prevPauseKey = pauseKey
}

// selectAt picks the closest labelled unit within reach of the click,
// or clears the selection.
func (a *App) selectAt(mx, my float64) {
	bestID := ""
	bestDist := selectPad * a.cam.Zoom
	for _, u := range a.scene.Units {
		if u.Alliance != overlay.AllianceFriendly && u.Visibility == overlay.VisibilityHidden {
			continue
		}
		sx, sy := a.cam.WorldToScreen(u.X, u.Y)
		d := math.Hypot(sx-mx, sy-my)
		if d < bestDist {
			bestDist = d
			bestID = u.ID
		}
	}
	a.scene.Selected = bestID
	if bestID != "" {
		a.log.Debug().Str("unit", bestID).Msg("selected")
	}
}

// Draw paints the frame: terrain, buildings, live units, the fog mask
// with its cutouts, then ghosts and labels above the fog.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 30, B: 24, A: 255})

	render.DrawFootprints(screen, a.scene.Occluders, a.cam)
	render.DrawUnits(screen, a.scene.Units, a.scene.Selected, a.cam)
	a.fog.Draw(screen, a.scene.Mask(), a.cam)
	render.DrawGhosts(screen, a.scene.Ghosts.All(), a.cam)
	render.DrawLabels(screen, a.scene.LabelResults())

	hud := fmt.Sprintf("zoom: %.2fx  ghosts: %d  labels: %d  [C] copy report  [Space] pause",
		a.cam.Zoom, a.scene.Ghosts.Count(), len(a.scene.LabelResults()))
	ebitenutil.DebugPrintAt(screen, hud, 6, 6)
	if sel := a.scene.Selected; sel != "" {
		if u := a.scene.Unit(sel); u != nil {
			info := fmt.Sprintf("%s  %s/%s  (%.0f,%.0f) hdg %.0f",
				u.Label(), u.Alliance, u.Status, u.X, u.Y, u.HeadingDeg)
			ebitenutil.DebugPrintAt(screen, info, 6, 22)
		}
	}
}

// Layout reports the fixed logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}
