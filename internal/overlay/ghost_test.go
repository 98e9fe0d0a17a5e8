package overlay

import (
	"math"
	"testing"
)

func hostileAt(id string, x, y float64, vis Visibility) Unit {
	return Unit{ID: id, X: x, Y: y, Alliance: AllianceHostile, Visibility: vis}
}

func TestGhostTracker_CreatedOnLossOfContact(t *testing.T) {
	gt := NewGhostTracker()
	gt.Update([]Unit{hostileAt("h1", 100, 50, VisibilitySeen)}, 0.016)
	if gt.Count() != 0 {
		t.Fatal("visible hostile should not be ghosted")
	}
	gt.Update([]Unit{hostileAt("h1", 110, 55, VisibilityHidden)}, 0.016)
	g, ok := gt.Ghost("h1")
	if !ok {
		t.Fatal("ghost should exist after visible→invisible transition")
	}
	if g.X != 110 || g.Y != 55 {
		t.Fatalf("ghost should freeze at last position, got (%.0f,%.0f)", g.X, g.Y)
	}
	if g.Age != 0 || g.Opacity != 1.0 {
		t.Fatalf("fresh ghost should be age 0 opacity 1, got age=%.3f op=%.3f", g.Age, g.Opacity)
	}
}

func TestGhostTracker_PositionFrozenWhileUnitMoves(t *testing.T) {
	gt := NewGhostTracker()
	gt.Update([]Unit{hostileAt("h1", 100, 50, VisibilityHidden)}, 0.016)
	// The (unseen) unit keeps moving in the feed; the ghost must not follow.
	gt.Update([]Unit{hostileAt("h1", 300, 400, VisibilityHidden)}, 1.0)
	g, _ := gt.Ghost("h1")
	if g.X != 100 || g.Y != 50 {
		t.Fatalf("ghost position should stay frozen, got (%.0f,%.0f)", g.X, g.Y)
	}
}

func TestGhostTracker_FadeMonotonicAndExactZero(t *testing.T) {
	gt := NewGhostTracker()
	units := []Unit{hostileAt("h1", 10, 10, VisibilityHidden)}
	gt.Update(units, 1.0)

	prev := 1.0
	// 29 further seconds: opacity strictly decreasing and positive.
	for i := 0; i < 29; i++ {
		gt.Update(units, 1.0)
		g, ok := gt.Ghost("h1")
		if !ok {
			t.Fatalf("ghost should still exist at age %d", i+1)
		}
		if g.Opacity >= prev {
			t.Fatalf("opacity should strictly decrease: %.4f → %.4f", prev, g.Opacity)
		}
		want := 1 - g.Age/30
		if math.Abs(g.Opacity-want) > 1e-9 {
			t.Fatalf("opacity should decay linearly, got %.4f want %.4f", g.Opacity, want)
		}
		prev = g.Opacity
	}
	// The 30th second lands exactly on zero; the ghost is gone.
	gt.Update(units, 1.0)
	if _, ok := gt.Ghost("h1"); ok {
		t.Fatal("ghost should be removed when opacity reaches 0")
	}
	if len(gt.All()) != 0 {
		t.Fatal("All() should be empty after full fade")
	}
}

func TestGhostTracker_NoReghostAfterFade(t *testing.T) {
	gt := NewGhostTracker()
	units := []Unit{hostileAt("h1", 10, 10, VisibilityHidden)}
	gt.Update(units, 1.0)
	for i := 0; i < 30; i++ {
		gt.Update(units, 1.0)
	}
	if gt.Count() != 0 {
		t.Fatal("ghost should have fully faded")
	}
	// Unit stays invisible: the faded id must not spawn a fresh ghost.
	for i := 0; i < 10; i++ {
		gt.Update(units, 1.0)
		if gt.Count() != 0 {
			t.Fatal("faded id must not re-ghost while still unseen")
		}
	}
}

func TestGhostTracker_ReacquisitionClearsAndRearms(t *testing.T) {
	gt := NewGhostTracker()
	gt.Update([]Unit{hostileAt("h1", 10, 10, VisibilityHidden)}, 1.0)
	gt.Update([]Unit{hostileAt("h1", 10, 10, VisibilityHidden)}, 5.0)
	if _, ok := gt.Ghost("h1"); !ok {
		t.Fatal("ghost should exist mid-fade")
	}

	// Reacquired: ghost clears the same frame.
	gt.Update([]Unit{hostileAt("h1", 20, 20, VisibilitySeen)}, 1.0)
	if _, ok := gt.Ghost("h1"); ok {
		t.Fatal("ghost should be removed the frame its unit becomes visible")
	}

	// Lost again later: eligible for a brand-new ghost at the new spot.
	gt.Update([]Unit{hostileAt("h1", 42, 24, VisibilityHidden)}, 1.0)
	g, ok := gt.Ghost("h1")
	if !ok {
		t.Fatal("unit should be eligible to ghost again after reacquisition")
	}
	if g.X != 42 || g.Y != 24 || g.Opacity != 1.0 {
		t.Fatalf("new ghost should start fresh at the new position, got %+v", g)
	}
}

func TestGhostTracker_FadedSetClearedBySighting(t *testing.T) {
	gt := NewGhostTracker()
	units := []Unit{hostileAt("h1", 10, 10, VisibilityHidden)}
	gt.Update(units, 1.0)
	for i := 0; i < 30; i++ {
		gt.Update(units, 1.0)
	}
	// Seen once — blacklist entry drops.
	gt.Update([]Unit{hostileAt("h1", 50, 50, VisibilitySeen)}, 1.0)
	// Lost again — ghosting works again.
	gt.Update([]Unit{hostileAt("h1", 50, 50, VisibilityHidden)}, 1.0)
	if _, ok := gt.Ghost("h1"); !ok {
		t.Fatal("sighting should clear the faded blacklist")
	}
}

func TestGhostTracker_UnitVanishesFromFeed(t *testing.T) {
	gt := NewGhostTracker()
	gt.Update([]Unit{hostileAt("h1", 10, 10, VisibilityHidden)}, 1.0)
	// Unit drops out of the feed entirely: ghost keeps aging.
	gt.Update(nil, 10.0)
	g, ok := gt.Ghost("h1")
	if !ok {
		t.Fatal("ghost should survive its unit leaving the feed")
	}
	if math.Abs(g.Age-10) > 1e-9 {
		t.Fatalf("ghost should age while unit is absent, age=%.2f", g.Age)
	}
	gt.Update(nil, 25.0)
	if gt.Count() != 0 {
		t.Fatal("ghost of an absent unit should still fade out fully")
	}
}

func TestGhostTracker_IgnoresUnknownAndNonHostiles(t *testing.T) {
	gt := NewGhostTracker()
	gt.Update([]Unit{
		{ID: "f1", X: 1, Y: 1, Alliance: AllianceFriendly, Visibility: VisibilityHidden},
		{ID: "n1", X: 2, Y: 2, Alliance: AllianceNeutral, Visibility: VisibilityHidden},
		hostileAt("h1", 3, 3, VisibilityUnknown),
	}, 1.0)
	if gt.Count() != 0 {
		t.Fatalf("only hidden hostiles ghost; got %d ghosts", gt.Count())
	}
}

func TestGhostTracker_AllSortedByID(t *testing.T) {
	gt := NewGhostTracker()
	gt.Update([]Unit{
		hostileAt("h3", 3, 3, VisibilityHidden),
		hostileAt("h1", 1, 1, VisibilityHidden),
		hostileAt("h2", 2, 2, VisibilityHidden),
	}, 1.0)
	all := gt.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 ghosts, got %d", len(all))
	}
	if all[0].ID != "h1" || all[1].ID != "h2" || all[2].ID != "h3" {
		t.Fatalf("ghosts should be sorted by id, got %s,%s,%s", all[0].ID, all[1].ID, all[2].ID)
	}
}
