package overlay

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// DebugReport renders the scene's current overlay state as text: the
// mask composition, active ghosts, and label placements. Used by the
// viewer's copy-report key and the bench tool's failure dumps.
func (s *Scene) DebugReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- tacmap overlay report ---\n")
	fmt.Fprintf(&b, "frame=%d frame_size=%dx%d zoom=%.2f selected=%q\n\n",
		s.frame, s.FrameW, s.FrameH, s.Zoom, s.Selected)

	fmt.Fprintf(&b, "== mask ==\n")
	fmt.Fprintf(&b, "fog_alpha=%.2f cutouts=%d outlines=%d occluders=%d\n",
		s.lastMask.FogAlpha, len(s.lastMask.Cutouts), len(s.lastMask.Outlines), len(s.lastMask.Occluders))
	for _, cut := range s.lastMask.Cutouts {
		switch cut.Kind {
		case CutoutSector:
			fmt.Fprintf(&b, "  sector  (%.0f,%.0f) r=%.0f center=%.1f° half=%.1f°\n",
				cut.X, cut.Y, cut.Radius, cut.CenterDeg, cut.HalfDeg)
		default:
			fmt.Fprintf(&b, "  circle  (%.0f,%.0f) r=%.0f\n", cut.X, cut.Y, cut.Radius)
		}
	}
	for _, occ := range s.lastMask.Occluders {
		c := occ.Centroid()
		minX, minY, maxX, maxY := occ.Bounds()
		fmt.Fprintf(&b, "  block   (%.0f,%.0f) %.0fx%.0f\n", c.X, c.Y, maxX-minX, maxY-minY)
	}

	ghosts := s.Ghosts.All()
	fmt.Fprintf(&b, "\n== ghosts (%d) ==\n", len(ghosts))
	for _, g := range ghosts {
		fmt.Fprintf(&b, "  %-6s (%.0f,%.0f) age=%.1fs opacity=%.2f\n",
			g.ID, g.X, g.Y, g.Age, g.Opacity)
	}

	fmt.Fprintf(&b, "\n== labels (%d) ==\n", len(s.lastLabels))
	for _, r := range s.lastLabels {
		flag := " "
		if r.Displaced {
			flag = "D"
		}
		fmt.Fprintf(&b, "  [%s] %-6s %-12q box=(%.0f,%.0f %.0fx%.0f) anchor=(%.0f,%.0f) %s/%s\n",
			flag, r.ID, r.Text, r.X, r.Y, r.W, r.H, r.AnchorX, r.AnchorY, r.Alliance, r.Status)
	}

	return b.String()
}

// CopyDebugReport places the report on the system clipboard.
func (s *Scene) CopyDebugReport() error {
	if err := clipboard.WriteAll(s.DebugReport()); err != nil {
		return fmt.Errorf("copying overlay report: %w", err)
	}
	return nil
}
