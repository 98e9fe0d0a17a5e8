package overlay

import (
	"fmt"

	"github.com/tarnwald/tacmap/internal/geo"
)

// Scene is a headless harness driving the full per-frame overlay
// pipeline: perception, ghost tracking, mask composition, and label
// placement. It mirrors what a host render loop does each frame, with
// no drawing surface, and is used by package tests and the bench tool.
type Scene struct {
	FrameW    int
	FrameH    int
	Zoom      float64
	Selected  string
	Units     []Unit
	Occluders []geo.Polygon
	Project   func(x, y float64) (float64, float64)

	Ghosts     *GhostTracker
	Compositor *Compositor
	Labels     *LabelEngine
	Log        *FrameLog

	// Host-managed visibility: when true, Advance leaves the units'
	// Visibility flags alone instead of running the perception pass.
	ExternalVisibility bool

	frame      int
	lastMask   MaskFrame
	lastLabels []LabelResult
}

// SceneOption is a builder function applied during construction.
type SceneOption func(*Scene)

// WithFrameSize sets the output frame dimensions in pixels.
func WithFrameSize(w, h int) SceneOption {
	return func(s *Scene) {
		s.FrameW = w
		s.FrameH = h
	}
}

// WithZoom sets the camera zoom used for label sizing.
func WithZoom(zoom float64) SceneOption {
	return func(s *Scene) { s.Zoom = zoom }
}

// WithSelected marks one unit id as selected.
func WithSelected(id string) SceneOption {
	return func(s *Scene) { s.Selected = id }
}

// WithUnit adds a unit snapshot to the feed.
func WithUnit(u Unit) SceneOption {
	return func(s *Scene) { s.Units = append(s.Units, u) }
}

// WithOccluder adds a building footprint.
func WithOccluder(p geo.Polygon) SceneOption {
	return func(s *Scene) { s.Occluders = append(s.Occluders, p) }
}

// WithProjection overrides the world-to-screen projection. The default
// is the identity (world units are screen pixels).
func WithProjection(fn func(x, y float64) (float64, float64)) SceneOption {
	return func(s *Scene) { s.Project = fn }
}

// WithExternalVisibility disables the built-in perception pass; the
// caller owns each unit's Visibility flag.
func WithExternalVisibility() SceneOption {
	return func(s *Scene) { s.ExternalVisibility = true }
}

// WithVerboseLog enables per-frame bulk logging.
func WithVerboseLog() SceneOption {
	return func(s *Scene) { s.Log = NewFrameLog(true) }
}

// NewScene builds a scene with the given options.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{
		FrameW:     800,
		FrameH:     600,
		Zoom:       1.0,
		Ghosts:     NewGhostTracker(),
		Compositor: NewCompositor(),
		Labels:     NewLabelEngine(),
		Log:        NewFrameLog(false),
		Project:    func(x, y float64) (float64, float64) { return x, y },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Unit returns a pointer to the unit with the given id, or nil.
func (s *Scene) Unit(id string) *Unit {
	for i := range s.Units {
		if s.Units[i].ID == id {
			return &s.Units[i]
		}
	}
	return nil
}

// Advance runs one frame of the overlay pipeline with the given frame
// delta in seconds, recording state transitions into the log.
func (s *Scene) Advance(dt float64) {
	s.frame++

	before := make(map[string]struct{}, s.Ghosts.Count())
	for _, g := range s.Ghosts.All() {
		before[g.ID] = struct{}{}
	}

	s.lastMask = s.Compositor.Compose(s.Units, s.Occluders, dt)
	if !s.ExternalVisibility {
		UpdateVisibility(s.Units, s.Occluders, s.Compositor.ConeCenterDeg)
	}
	s.Ghosts.Update(s.Units, dt)

	for _, g := range s.Ghosts.All() {
		if _, ok := before[g.ID]; !ok {
			s.Log.Add(s.frame, g.ID, "ghost", "created",
				fmt.Sprintf("at (%.0f,%.0f)", g.X, g.Y), g.Opacity)
		}
		delete(before, g.ID)
	}
	for id := range before {
		s.Log.Add(s.frame, id, "ghost", "removed", "faded or reacquired", 0)
	}

	entries := make([]LabelEntry, 0, len(s.Units))
	for _, u := range s.Units {
		// Hidden hostiles are not rendered live, so they get no label.
		if u.Alliance != AllianceFriendly && u.Visibility == VisibilityHidden {
			continue
		}
		entries = append(entries, LabelEntry{
			ID:       u.ID,
			Text:     u.Label(),
			X:        u.X,
			Y:        u.Y,
			Alliance: u.Alliance,
			Status:   u.Status,
			Selected: u.ID == s.Selected,
		})
	}
	s.lastLabels = s.Labels.ResolveLabels(entries, s.FrameW, s.FrameH, s.Zoom, s.Selected, s.Project)

	displaced := 0
	for _, r := range s.lastLabels {
		if r.Displaced {
			displaced++
			s.Log.AddVerbose(s.frame, r.ID, "label", "displaced",
				fmt.Sprintf("box at (%.0f,%.0f)", r.X, r.Y), 0)
		}
	}
	s.Log.AddVerbose(s.frame, "--", "mask", "composed",
		fmt.Sprintf("%d cutouts, %d outlines", len(s.lastMask.Cutouts), len(s.lastMask.Outlines)),
		float64(len(s.lastMask.Cutouts)))
	s.Log.AddVerbose(s.frame, "--", "label", "resolved",
		fmt.Sprintf("%d placed, %d displaced", len(s.lastLabels), displaced),
		float64(len(s.lastLabels)))
}

// RunFrames advances the scene n frames at a fixed dt.
func (s *Scene) RunFrames(n int, dt float64) {
	for i := 0; i < n; i++ {
		s.Advance(dt)
	}
}

// RunUntil advances up to maxFrames, stopping early when the predicate
// holds. Returns the frame number where it held, or -1.
func (s *Scene) RunUntil(pred func(*Scene) bool, maxFrames int, dt float64) int {
	for i := 0; i < maxFrames; i++ {
		s.Advance(dt)
		if pred(s) {
			return s.frame
		}
	}
	return -1
}

// Frame returns the current frame number.
func (s *Scene) Frame() int { return s.frame }

// Mask returns the most recently composed mask frame.
func (s *Scene) Mask() MaskFrame { return s.lastMask }

// LabelResults returns the most recently resolved labels.
func (s *Scene) LabelResults() []LabelResult { return s.lastLabels }
