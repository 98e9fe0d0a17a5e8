package render

import (
	"math"
	"testing"
)

func TestCamera_RoundTrip(t *testing.T) {
	cam := NewCamera()
	cam.OffX, cam.OffY, cam.Zoom = 120, -40, 1.75

	wx, wy := 312.5, 88.25
	sx, sy := cam.WorldToScreen(wx, wy)
	bx, by := cam.ScreenToWorld(sx, sy)
	if math.Abs(bx-wx) > 1e-9 || math.Abs(by-wy) > 1e-9 {
		t.Fatalf("round trip drifted: (%.4f,%.4f)", bx, by)
	}
}

func TestCamera_ZoomAtKeepsAnchor(t *testing.T) {
	cam := NewCamera()
	cam.OffX, cam.OffY = 50, 50

	// The world point under the cursor must stay under the cursor.
	sx, sy := 400.0, 300.0
	wx, wy := cam.ScreenToWorld(sx, sy)
	cam.ZoomAt(sx, sy, 2.0)
	ax, ay := cam.ScreenToWorld(sx, sy)
	if math.Abs(ax-wx) > 1e-9 || math.Abs(ay-wy) > 1e-9 {
		t.Fatalf("zoom anchor drifted: (%.4f,%.4f) vs (%.4f,%.4f)", ax, ay, wx, wy)
	}
}

func TestCamera_ZoomClamped(t *testing.T) {
	cam := NewCamera()
	cam.ZoomAt(0, 0, 1000)
	if cam.Zoom > 8.0 {
		t.Fatalf("zoom should clamp at 8, got %.2f", cam.Zoom)
	}
	cam.ZoomAt(0, 0, 1e-6)
	if cam.Zoom < 0.25 {
		t.Fatalf("zoom should clamp at 0.25, got %.2f", cam.Zoom)
	}
}

func TestCamera_Pan(t *testing.T) {
	cam := NewCamera()
	cam.Zoom = 2.0
	cam.Pan(100, -50)
	if cam.OffX != 50 || cam.OffY != -25 {
		t.Fatalf("pan should be zoom-relative, got (%.1f,%.1f)", cam.OffX, cam.OffY)
	}
}

func TestFaceMeasure_ScalesWithFontSize(t *testing.T) {
	small := FaceMeasure("Bandit", 9)
	big := FaceMeasure("Bandit", 22)
	if small <= 0 {
		t.Fatal("measure should be positive")
	}
	if math.Abs(big/small-22.0/9.0) > 1e-9 {
		t.Fatalf("measure should scale linearly with font size: %.2f vs %.2f", small, big)
	}
	if FaceMeasure("Bandit!", 13) <= FaceMeasure("Bandit", 13) {
		t.Fatal("longer text should measure wider")
	}
}
