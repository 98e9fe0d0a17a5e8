package overlay

import "math"

// Alliance classifies a unit relative to the viewer's side.
type Alliance int

const (
	AllianceFriendly Alliance = iota
	AllianceHostile
	AllianceNeutral
)

func (a Alliance) String() string {
	switch a {
	case AllianceFriendly:
		return "friendly"
	case AllianceHostile:
		return "hostile"
	case AllianceNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Status marks whether a unit is still in the fight.
type Status int

const (
	StatusActive Status = iota
	StatusNeutralized
)

func (s Status) String() string {
	if s == StatusNeutralized {
		return "neutralized"
	}
	return "active"
}

// Visibility is the tri-state perception flag carried on each unit.
// The zero value means the upstream feed said nothing; such units are
// ignored by the ghost tracker.
type Visibility int

const (
	VisibilityUnknown Visibility = iota
	VisibilitySeen
	VisibilityHidden
)

// Default vision parameters, applied when the feed omits profile fields.
const (
	defaultAmbientRadius = 10.0
)

// VisionProfile describes a friendly emitter's perception volume:
// an always-on ambient circle, an optional directional cone (possibly
// sweeping), and a generic omni radius used when no cone is configured.
type VisionProfile struct {
	AmbientRadius float64
	VisionRadius  float64 // omni fallback, used only when no cone is set
	ConeRange     float64
	ConeAngle     float64 // total arc in degrees, not the half-angle
	ConeSweeps    bool
	ConeSweepRPM  float64
}

// normalized fills in defaults and collapses degenerate cones
// (zero range or zero angle) to "no cone".
func (p VisionProfile) normalized() VisionProfile {
	if p.AmbientRadius <= 0 {
		p.AmbientRadius = defaultAmbientRadius
	}
	if p.ConeRange <= 0 || p.ConeAngle <= 0 {
		p.ConeRange = 0
		p.ConeAngle = 0
		p.ConeSweeps = false
		p.ConeSweepRPM = 0
	}
	if !p.ConeSweeps {
		p.ConeSweepRPM = 0
	}
	return p
}

// hasCone reports whether the normalized profile carries a usable cone.
func (p VisionProfile) hasCone() bool {
	return p.ConeRange > 0 && p.ConeAngle > 0
}

// Unit is one snapshot row from the host's per-frame feed. The core
// treats it as read-only except for the Visibility flag, which the
// perception pass may fill in.
type Unit struct {
	ID         string
	Name       string // display label; falls back to ID when empty
	X, Y       float64
	HeadingDeg float64
	Alliance   Alliance
	Status     Status
	Visibility Visibility
	Vision     VisionProfile
}

// Label returns the unit's display text.
func (u Unit) Label() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// hasFinitePosition filters malformed feed rows before they can reach
// spatial structures.
func (u Unit) hasFinitePosition() bool {
	return finite(u.X) && finite(u.Y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
