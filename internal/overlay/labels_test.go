package overlay

import (
	"math"
	"testing"
)

func identity(x, y float64) (float64, float64) { return x, y }

func entryAt(id, text string, x, y float64, a Alliance) LabelEntry {
	return LabelEntry{ID: id, Text: text, X: x, Y: y, Alliance: a}
}

func resultByID(results []LabelResult, id string) (LabelResult, bool) {
	for _, r := range results {
		if r.ID == id {
			return r, true
		}
	}
	return LabelResult{}, false
}

func TestResolveLabels_SingleLabelBelowAnchor(t *testing.T) {
	le := NewLabelEngine()
	results := le.ResolveLabels([]LabelEntry{
		entryAt("u1", "Alpha", 400, 300, AllianceFriendly),
	}, 800, 600, 1.0, "", identity)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Displaced {
		t.Fatal("lone label should take the preferred slot")
	}
	// Preferred slot: centered below the anchor with the vertical gap.
	if math.Abs(r.X-(400-r.W/2)) > 1e-9 || math.Abs(r.Y-314) > 1e-9 {
		t.Fatalf("expected box at (%.1f,314), got (%.1f,%.1f)", 400-r.W/2, r.X, r.Y)
	}
	if r.AnchorX != 400 || r.AnchorY != 300 {
		t.Fatalf("anchor should be the screen position, got (%.0f,%.0f)", r.AnchorX, r.AnchorY)
	}
}

func TestResolveLabels_FontSizeClamps(t *testing.T) {
	le := NewLabelEngine()
	// Box height is fontSize plus padding on both sides.
	cases := []struct {
		zoom  float64
		wantH float64
	}{
		{0.1, 9 + 6},  // floor at 9
		{1.0, 11 + 6}, // 11 * zoom
		{1.5, 16.5 + 6},
		{5.0, 22 + 6}, // zoom capped at 2
	}
	for _, c := range cases {
		results := le.ResolveLabels([]LabelEntry{
			entryAt("u1", "Alpha", 400, 300, AllianceFriendly),
		}, 800, 600, c.zoom, "", identity)
		if len(results) != 1 {
			t.Fatalf("zoom %.1f: expected 1 result", c.zoom)
		}
		if math.Abs(results[0].H-c.wantH) > 1e-9 {
			t.Fatalf("zoom %.1f: expected box height %.1f, got %.1f", c.zoom, c.wantH, results[0].H)
		}
	}
}

func TestResolveLabels_ContestedSpaceDisplacesSecond(t *testing.T) {
	le := NewLabelEngine()
	results := le.ResolveLabels([]LabelEntry{
		entryAt("u1", "Alpha", 400, 300, AllianceFriendly),
		entryAt("u2", "Bravo", 400, 300, AllianceFriendly),
	}, 800, 600, 1.0, "", identity)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	first, _ := resultByID(results, "u1")
	second, _ := resultByID(results, "u2")
	if first.Displaced {
		t.Fatal("first of two equal-priority entries keeps the preferred slot")
	}
	if !second.Displaced {
		t.Fatal("second entry at the same anchor should be displaced")
	}
	// Displaced to the next candidate: above the anchor.
	if math.Abs(second.Y-(300-labelVGap-second.H)) > 1e-9 {
		t.Fatalf("expected the above slot at y=%.1f, got %.1f", 300-labelVGap-second.H, second.Y)
	}
}

func TestResolveLabels_HostileWinsContestedSlot(t *testing.T) {
	le := NewLabelEngine()
	// Friendly first in feed order, but the hostile outranks it.
	results := le.ResolveLabels([]LabelEntry{
		entryAt("f1", "Alpha", 400, 300, AllianceFriendly),
		entryAt("h1", "Bandit", 400, 300, AllianceHostile),
	}, 800, 600, 1.0, "", identity)

	hostile, _ := resultByID(results, "h1")
	friendly, _ := resultByID(results, "f1")
	if hostile.Displaced {
		t.Fatal("hostile should win the contested preferred slot")
	}
	if !friendly.Displaced {
		t.Fatal("friendly should be displaced by the hostile")
	}
}

func TestResolveLabels_SelectionOutranksEverything(t *testing.T) {
	le := NewLabelEngine()
	results := le.ResolveLabels([]LabelEntry{
		entryAt("h1", "Bandit", 400, 300, AllianceHostile),
		{ID: "n1", Text: "Civ-3", X: 400, Y: 300, Alliance: AllianceNeutral, Selected: true},
	}, 800, 600, 1.0, "n1", identity)

	selected, _ := resultByID(results, "n1")
	hostile, _ := resultByID(results, "h1")
	if selected.Displaced {
		t.Fatal("selected unit should always win contested space")
	}
	if !hostile.Displaced {
		t.Fatal("hostile should yield to the selection")
	}
}

func TestResolveLabels_NeutralizedPlacedLast(t *testing.T) {
	le := NewLabelEngine()
	results := le.ResolveLabels([]LabelEntry{
		{ID: "h1", Text: "Bandit", X: 400, Y: 300, Alliance: AllianceHostile, Status: StatusNeutralized},
		entryAt("n1", "Civ-3", 400, 300, AllianceNeutral),
	}, 800, 600, 1.0, "", identity)

	neutral, _ := resultByID(results, "n1")
	downed, _ := resultByID(results, "h1")
	if neutral.Displaced {
		t.Fatal("live neutral outranks a neutralized hostile")
	}
	if !downed.Displaced {
		t.Fatal("neutralized unit should be displaced")
	}
}

func TestResolveLabels_ForcedFallbackNotFlaggedDisplaced(t *testing.T) {
	le := NewLabelEngine()
	// Five same-priority entries on one anchor exhaust the candidate
	// slots: below, above, right, left, then the four diagonals all
	// collide with the boxes already placed.
	entries := make([]LabelEntry, 5)
	for i := range entries {
		entries[i] = entryAt(string(rune('a'+i)), "Crowded", 400, 300, AllianceFriendly)
	}
	results := le.ResolveLabels(entries, 800, 600, 1.0, "", identity)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}

	first := results[0]
	last := results[4]
	if last.X != first.X || last.Y != first.Y {
		t.Fatalf("overflow entry should be forced into the preferred slot, got (%.1f,%.1f) want (%.1f,%.1f)",
			last.X, last.Y, first.X, first.Y)
	}
	if last.Displaced {
		t.Fatal("forced fallback reports displaced=false")
	}
	for _, r := range results[1:4] {
		if !r.Displaced {
			t.Fatalf("entry %s landed in an alternate slot and should be flagged", r.ID)
		}
	}
}

func TestResolveLabels_OffscreenCulled(t *testing.T) {
	le := NewLabelEngine()
	results := le.ResolveLabels([]LabelEntry{
		entryAt("far", "Gone", -500, -500, AllianceHostile),
		entryAt("edge", "Near", -99, 300, AllianceHostile), // inside the margin
		entryAt("mid", "Here", 400, 300, AllianceFriendly),
	}, 800, 600, 1.0, "", identity)

	if _, ok := resultByID(results, "far"); ok {
		t.Fatal("entry far beyond the cull margin should produce no label")
	}
	if _, ok := resultByID(results, "edge"); !ok {
		t.Fatal("entry within the off-screen margin should still be placed")
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestResolveLabels_MalformedEntriesSkipped(t *testing.T) {
	le := NewLabelEngine()
	results := le.ResolveLabels([]LabelEntry{
		entryAt("nan", "Bad", math.NaN(), 300, AllianceHostile),
		entryAt("inf", "Bad", 400, math.Inf(1), AllianceHostile),
		entryAt("blank", "", 400, 300, AllianceHostile),
		entryAt("ok", "Good", 200, 200, AllianceFriendly),
	}, 800, 600, 1.0, "", identity)

	if len(results) != 1 || results[0].ID != "ok" {
		t.Fatalf("only the well-formed entry should survive, got %d results", len(results))
	}
}

func TestResolveLabels_ProjectionBlowupSkipped(t *testing.T) {
	le := NewLabelEngine()
	blowup := func(x, y float64) (float64, float64) { return math.NaN(), math.NaN() }
	results := le.ResolveLabels([]LabelEntry{
		entryAt("u1", "Alpha", 400, 300, AllianceFriendly),
	}, 800, 600, 1.0, "", blowup)
	if results != nil {
		t.Fatal("entries whose projection is non-finite should be dropped")
	}
}

func TestResolveLabels_EmptyAndDegenerateInputs(t *testing.T) {
	le := NewLabelEngine()
	if le.ResolveLabels(nil, 800, 600, 1.0, "", identity) != nil {
		t.Fatal("nil entries should yield nil")
	}
	if le.ResolveLabels([]LabelEntry{entryAt("u1", "A", 1, 1, AllianceFriendly)}, 0, 0, 1.0, "", identity) != nil {
		t.Fatal("zero frame size should yield nil")
	}
	if le.ResolveLabels([]LabelEntry{entryAt("u1", "A", 1, 1, AllianceFriendly)}, 800, 600, 1.0, "", nil) != nil {
		t.Fatal("nil projection should yield nil")
	}
}

func TestResolveLabels_StableAcrossFrames(t *testing.T) {
	le := NewLabelEngine()
	entries := []LabelEntry{
		entryAt("u1", "Alpha", 400, 300, AllianceFriendly),
		entryAt("u2", "Bravo", 405, 302, AllianceFriendly),
		entryAt("u3", "Charlie", 398, 297, AllianceFriendly),
	}
	first := le.ResolveLabels(entries, 800, 600, 1.0, "", identity)
	second := le.ResolveLabels(entries, 800, 600, 1.0, "", identity)
	if len(first) != len(second) {
		t.Fatalf("result counts differ across frames: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("placement %d not reproducible: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func BenchmarkResolveLabels50(b *testing.B) {
	le := NewLabelEngine()
	entries := make([]LabelEntry, 50)
	for i := range entries {
		a := AllianceFriendly
		if i%3 == 0 {
			a = AllianceHostile
		}
		entries[i] = entryAt(
			string(rune('A'+i%26))+string(rune('0'+i%10)),
			"Unit-00", float64(50+(i*157)%700), float64(50+(i*211)%500), a)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		le.ResolveLabels(entries, 800, 600, 1.0, "", identity)
	}
}
