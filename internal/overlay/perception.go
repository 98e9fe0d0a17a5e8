package overlay

import "github.com/tarnwald/tacmap/internal/geo"

// UpdateVisibility runs the cone test for every friendly emitter and
// fills in the Visibility flag on non-friendly units. A unit is seen
// when at least one emitter has it inside the ambient circle, inside
// the cone (at its current centerline), or inside the omni fallback —
// and a straight sightline to it clears every building footprint.
//
// centerDeg supplies the cone centerline per emitter so that sweeping
// cones perceive along the same angle the compositor draws; pass nil
// to test against raw headings.
func UpdateVisibility(units []Unit, occluders []geo.Polygon, centerDeg func(Unit) float64) {
	emitters := make([]Unit, 0, len(units))
	for _, u := range units {
		if u.Alliance == AllianceFriendly && u.hasFinitePosition() {
			emitters = append(emitters, u)
		}
	}

	for i := range units {
		u := &units[i]
		if u.Alliance == AllianceFriendly {
			continue
		}
		if !u.hasFinitePosition() {
			u.Visibility = VisibilityUnknown
			continue
		}
		if perceived(*u, emitters, occluders, centerDeg) {
			u.Visibility = VisibilitySeen
		} else {
			u.Visibility = VisibilityHidden
		}
	}
}

func perceived(target Unit, emitters []Unit, occluders []geo.Polygon, centerDeg func(Unit) float64) bool {
	for _, e := range emitters {
		p := e.Vision.normalized()

		inVolume := IsInCone(e.X, e.Y, 0, 360, p.AmbientRadius, target.X, target.Y)
		if !inVolume && p.hasCone() {
			center := e.HeadingDeg
			if centerDeg != nil {
				center = centerDeg(e)
			}
			inVolume = IsInCone(e.X, e.Y, center, p.ConeAngle, p.ConeRange, target.X, target.Y)
		}
		if !inVolume && !p.hasCone() && p.VisionRadius > 0 {
			inVolume = IsInCone(e.X, e.Y, 0, 360, p.VisionRadius, target.X, target.Y)
		}
		if !inVolume {
			continue
		}
		// Volume check passed — now hard LOS against footprints.
		if geo.SegmentClear(e.X, e.Y, target.X, target.Y, occluders) {
			return true
		}
	}
	return false
}
