package overlay

import (
	"math"
	"sort"
)

const (
	labelPad    = 3.0  // box padding around the text, px
	labelVGap   = 14.0 // vertical gap between anchor and box, px
	labelHGap   = 12.0 // horizontal gap between anchor and box, px
	cullMargin  = 100.0
	gridDiv     = 4 // occupancy grid is 1/gridDiv of frame resolution
	bodyStampR  = 2 // unit body reservation radius, grid cells
	candidCount = 8
)

// Label boxes anchor their top-left corner; every candidate offset is
// arranged so the box clears the anchor point itself.

// LabelEntry is one entity the host wants labelled this frame.
type LabelEntry struct {
	ID       string
	Text     string
	X, Y     float64 // world position
	Alliance Alliance
	Status   Status
	Selected bool
}

// LabelResult is a resolved, collision-free label placement. X/Y is
// the box's top-left corner in screen space; AnchorX/AnchorY is the
// entity's own screen position (leader-line origin when Displaced).
type LabelResult struct {
	ID        string
	Text      string
	X, Y      float64
	AnchorX   float64
	AnchorY   float64
	W, H      float64
	Displaced bool
	Alliance  Alliance
	Status    Status
}

// MeasureFunc returns the pixel width of text at the given font size.
type MeasureFunc func(text string, fontSize float64) float64

// approxTextWidth is the default measurer: a fixed advance per rune at
// roughly 7/12 of the font size, close enough to the render fonts that
// box sizes stay honest without a font dependency in the core.
func approxTextWidth(text string, fontSize float64) float64 {
	n := 0
	for range text {
		n++
	}
	return float64(n) * fontSize * 7 / 12
}

// LabelEngine resolves non-overlapping screen labels. Stateless apart
// from the injected measurer; the occupancy grid is rebuilt per call.
type LabelEngine struct {
	Measure MeasureFunc
}

// NewLabelEngine creates an engine using the approximate measurer.
func NewLabelEngine() *LabelEngine {
	return &LabelEngine{Measure: approxTextWidth}
}

// placement is a projected entry awaiting a slot.
type placement struct {
	entry    LabelEntry
	sx, sy   float64
	w, h     float64
	priority int
}

// ResolveLabels computes one placed label per on-screen entry. Higher
// priority entries are placed first and win contested space; losers
// are displaced to one of seven alternate slots, or forced into the
// preferred slot when everything collides.
func (le *LabelEngine) ResolveLabels(entries []LabelEntry, frameW, frameH int, zoom float64, selectedID string, worldToScreen func(x, y float64) (float64, float64)) []LabelResult {
	if len(entries) == 0 || frameW <= 0 || frameH <= 0 || worldToScreen == nil {
		return nil
	}
	measure := le.Measure
	if measure == nil {
		measure = approxTextWidth
	}
	fontSize := math.Max(9, 11*math.Min(zoom, 2))

	// Project, then cull anything malformed or far off-frame.
	candidates := make([]placement, 0, len(entries))
	for _, e := range entries {
		if e.Text == "" || !finite(e.X) || !finite(e.Y) {
			continue
		}
		sx, sy := worldToScreen(e.X, e.Y)
		if !finite(sx) || !finite(sy) {
			continue
		}
		if sx < -cullMargin || sx > float64(frameW)+cullMargin ||
			sy < -cullMargin || sy > float64(frameH)+cullMargin {
			continue
		}
		candidates = append(candidates, placement{
			entry:    e,
			sx:       sx,
			sy:       sy,
			w:        measure(e.Text, fontSize) + labelPad*2,
			h:        fontSize + labelPad*2,
			priority: labelPriority(e, selectedID),
		})
	}
	if len(candidates) == 0 {
		return nil
	}

	// Stable sort keeps feed order among equals, so contested space
	// resolves the same way every frame.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority < candidates[j].priority
	})

	grid := newOccupancyGrid(frameW, frameH)

	// Reserve every unit's body first so no label sits on an icon.
	for _, p := range candidates {
		grid.stampBody(p.sx, p.sy)
	}

	results := make([]LabelResult, 0, len(candidates))
	for _, p := range candidates {
		x, y, displaced := placeOne(grid, p)
		results = append(results, LabelResult{
			ID:        p.entry.ID,
			Text:      p.entry.Text,
			X:         x,
			Y:         y,
			AnchorX:   p.sx,
			AnchorY:   p.sy,
			W:         p.w,
			H:         p.h,
			Displaced: displaced,
			Alliance:  p.entry.Alliance,
			Status:    p.entry.Status,
		})
	}
	return results
}

// labelPriority orders contestants: selection first, then hostiles,
// friendlies, neutrals, with neutralized units last.
func labelPriority(e LabelEntry, selectedID string) int {
	if e.Selected || (selectedID != "" && e.ID == selectedID) {
		return 0
	}
	if e.Status == StatusNeutralized {
		return 4
	}
	switch e.Alliance {
	case AllianceHostile:
		return 1
	case AllianceFriendly:
		return 2
	default:
		return 3
	}
}

// candidateOffsets returns the 8 box top-left positions to try, in
// preference order: below, above, right, left, bottom-right,
// bottom-left, top-right, top-left.
func candidateOffsets(sx, sy, w, h float64) [candidCount][2]float64 {
	return [candidCount][2]float64{
		{sx - w/2, sy + labelVGap},               // below
		{sx - w/2, sy - labelVGap - h},           // above
		{sx + labelHGap, sy - h/2},               // right
		{sx - labelHGap - w, sy - h/2},           // left
		{sx + labelHGap, sy + labelVGap},         // bottom-right
		{sx - labelHGap - w, sy + labelVGap},     // bottom-left
		{sx + labelHGap, sy - labelVGap - h},     // top-right
		{sx - labelHGap - w, sy - labelVGap - h}, // top-left
	}
}

// placeOne tries the 8 slots in order and returns the winning box
// top-left plus the displaced flag. When all 8 collide the preferred
// slot is reused anyway — an overlapping label beats a missing one —
// and the flag stays false, matching long-standing renderer behaviour.
func placeOne(grid *occupancyGrid, p placement) (x, y float64, displaced bool) {
	offs := candidateOffsets(p.sx, p.sy, p.w, p.h)
	for i, off := range offs {
		if grid.boxFree(off[0], off[1], p.w, p.h) {
			grid.stampBox(off[0], off[1], p.w, p.h)
			return off[0], off[1], i != 0
		}
	}
	grid.stampBox(offs[0][0], offs[0][1], p.w, p.h)
	return offs[0][0], offs[0][1], false
}

// occupancyGrid is a flat boolean grid at 1/gridDiv of frame
// resolution, rebuilt every frame. Flat indexing (row*cols + col)
// keeps the clear-and-rebuild a single allocation.
type occupancyGrid struct {
	cols  int
	rows  int
	cells []bool
}

func newOccupancyGrid(frameW, frameH int) *occupancyGrid {
	cols := (frameW + gridDiv - 1) / gridDiv
	rows := (frameH + gridDiv - 1) / gridDiv
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &occupancyGrid{cols: cols, rows: rows, cells: make([]bool, cols*rows)}
}

// stampBody reserves a small square around a unit's screen position.
func (g *occupancyGrid) stampBody(sx, sy float64) {
	cx := int(sx) / gridDiv
	cy := int(sy) / gridDiv
	for r := cy - bodyStampR; r <= cy+bodyStampR; r++ {
		for c := cx - bodyStampR; c <= cx+bodyStampR; c++ {
			g.set(r, c)
		}
	}
}

// cellSpan maps a pixel-space box to inclusive grid cell ranges,
// clipped to the grid. ok is false when the box lies entirely outside.
func (g *occupancyGrid) cellSpan(x, y, w, h float64) (c0, r0, c1, r1 int, ok bool) {
	c0 = int(math.Floor(x / gridDiv))
	r0 = int(math.Floor(y / gridDiv))
	c1 = int(math.Floor((x + w) / gridDiv))
	r1 = int(math.Floor((y + h) / gridDiv))
	if c1 < 0 || r1 < 0 || c0 >= g.cols || r0 >= g.rows {
		return 0, 0, 0, 0, false
	}
	if c0 < 0 {
		c0 = 0
	}
	if r0 < 0 {
		r0 = 0
	}
	if c1 >= g.cols {
		c1 = g.cols - 1
	}
	if r1 >= g.rows {
		r1 = g.rows - 1
	}
	return c0, r0, c1, r1, true
}

func (g *occupancyGrid) boxFree(x, y, w, h float64) bool {
	c0, r0, c1, r1, ok := g.cellSpan(x, y, w, h)
	if !ok {
		return true // fully off-grid boxes contest nothing
	}
	for r := r0; r <= r1; r++ {
		base := r * g.cols
		for c := c0; c <= c1; c++ {
			if g.cells[base+c] {
				return false
			}
		}
	}
	return true
}

func (g *occupancyGrid) stampBox(x, y, w, h float64) {
	c0, r0, c1, r1, ok := g.cellSpan(x, y, w, h)
	if !ok {
		return
	}
	for r := r0; r <= r1; r++ {
		base := r * g.cols
		for c := c0; c <= c1; c++ {
			g.cells[base+c] = true
		}
	}
}

func (g *occupancyGrid) set(r, c int) {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return
	}
	g.cells[r*g.cols+c] = true
}
