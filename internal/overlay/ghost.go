package overlay

import "sort"

// ghostFadeSeconds is the window over which a lost contact's marker
// fades from full opacity to gone.
const ghostFadeSeconds = 30.0

// Ghost is the frozen last-known-position marker for a hostile that
// left perception. Position never updates after creation; only age and
// opacity move.
type Ghost struct {
	ID      string
	X, Y    float64
	Age     float64 // seconds since last seen
	Opacity float64 // 1.0 at loss of contact, linear to 0
}

// GhostTracker owns the per-hostile contact-memory state machine.
// Each tracked id is in exactly one of three states: visible (no
// ghost), ghosted (fading marker), or faded (blacklisted until it is
// seen again, so a fully-faded contact cannot flicker back as a fresh
// ghost).
type GhostTracker struct {
	ghosts map[string]*Ghost
	faded  map[string]struct{}
}

// NewGhostTracker creates an empty tracker.
func NewGhostTracker() *GhostTracker {
	return &GhostTracker{
		ghosts: make(map[string]*Ghost),
		faded:  make(map[string]struct{}),
	}
}

// Update advances the tracker by one frame. Visibility transitions are
// applied before fade logic so a contact that is reacquired and lost
// again within one frame starts from a clean slate.
func (gt *GhostTracker) Update(units []Unit, dt float64) {
	visible := make(map[string]struct{})
	invisible := make(map[string]*Unit)
	for i := range units {
		u := &units[i]
		if u.Alliance != AllianceHostile {
			continue
		}
		switch u.Visibility {
		case VisibilitySeen:
			visible[u.ID] = struct{}{}
		case VisibilityHidden:
			invisible[u.ID] = u
		}
		// VisibilityUnknown rows carry no perception signal; skip.
	}

	// Seen contacts drop any ghost and come off the faded blacklist.
	for id := range visible {
		delete(gt.ghosts, id)
		delete(gt.faded, id)
	}

	// Fresh losses spawn a ghost frozen at the last observed position.
	created := make(map[string]struct{}, len(invisible))
	for id, u := range invisible {
		if _, ok := gt.ghosts[id]; ok {
			continue
		}
		if _, ok := gt.faded[id]; ok {
			continue
		}
		if !u.hasFinitePosition() {
			continue
		}
		gt.ghosts[id] = &Ghost{ID: id, X: u.X, Y: u.Y, Opacity: 1.0}
		created[id] = struct{}{}
	}

	// Age every ghost that was not just created. This covers both
	// contacts still reported as hidden and contacts that vanished from
	// the feed entirely.
	for id, g := range gt.ghosts {
		if _, ok := created[id]; ok {
			continue
		}
		g.Age += dt
		g.Opacity = 1 - g.Age/ghostFadeSeconds
		if g.Opacity <= 0 {
			g.Opacity = 0
			delete(gt.ghosts, id)
			gt.faded[id] = struct{}{}
		}
	}
}

// Ghost returns the active ghost for id, if any.
func (gt *GhostTracker) Ghost(id string) (Ghost, bool) {
	g, ok := gt.ghosts[id]
	if !ok {
		return Ghost{}, false
	}
	return *g, true
}

// All returns every active ghost, sorted by id for deterministic
// rendering and test output.
func (gt *GhostTracker) All() []Ghost {
	out := make([]Ghost, 0, len(gt.ghosts))
	for _, g := range gt.ghosts {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of active ghosts.
func (gt *GhostTracker) Count() int {
	return len(gt.ghosts)
}
