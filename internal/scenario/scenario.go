// Package scenario generates deterministic demo battlefields: a spread
// of friendly observers, hostiles, and neutrals wandering between
// waypoints among randomly placed building footprints.
package scenario

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tarnwald/tacmap/internal/geo"
	"github.com/tarnwald/tacmap/internal/overlay"
)

const (
	worldW = 1600.0
	worldH = 1200.0

	walkSpeed   = 28.0 // world units per second
	arriveDist  = 6.0
	numBuild    = 10
	minBuildDim = 40.0
	maxBuildDim = 140.0
)

// Params controls generation.
type Params struct {
	Seed       int64
	Friendlies int
	Hostiles   int
	Neutrals   int
}

// Scenario holds the generated battlefield and its movement state.
type Scenario struct {
	Units     []overlay.Unit
	Occluders []geo.Polygon

	rng       *rand.Rand
	waypoints map[string]geo.Point
}

// Generate builds a battlefield from the given parameters. The same
// seed always produces the same layout and the same movement.
func Generate(p Params) *Scenario {
	rng := rand.New(rand.NewSource(p.Seed))
	s := &Scenario{
		rng:       rng,
		waypoints: make(map[string]geo.Point),
	}

	for i := 0; i < numBuild; i++ {
		w := minBuildDim + rng.Float64()*(maxBuildDim-minBuildDim)
		h := minBuildDim + rng.Float64()*(maxBuildDim-minBuildDim)
		x := rng.Float64() * (worldW - w)
		y := rng.Float64() * (worldH - h)
		s.Occluders = append(s.Occluders, geo.Rect(x, y, w, h))
	}

	for i := 0; i < p.Friendlies; i++ {
		id := fmt.Sprintf("f%d", i+1)
		u := s.spawn(id, overlay.AllianceFriendly)
		u.Name = fmt.Sprintf("Alpha-%d", i+1)
		u.Vision = overlay.VisionProfile{
			AmbientRadius: 40,
			ConeRange:     260,
			ConeAngle:     70,
		}
		// Every third observer runs a sweeping sensor instead of a
		// fixed forward cone.
		if i%3 == 2 {
			u.Vision.ConeSweeps = true
			u.Vision.ConeSweepRPM = 4 + rng.Float64()*4
		}
		s.Units = append(s.Units, u)
	}
	for i := 0; i < p.Hostiles; i++ {
		id := fmt.Sprintf("h%d", i+1)
		u := s.spawn(id, overlay.AllianceHostile)
		u.Name = fmt.Sprintf("Bandit-%d", i+1)
		s.Units = append(s.Units, u)
	}
	for i := 0; i < p.Neutrals; i++ {
		id := fmt.Sprintf("n%d", i+1)
		u := s.spawn(id, overlay.AllianceNeutral)
		u.Name = fmt.Sprintf("Civ-%d", i+1)
		s.Units = append(s.Units, u)
	}

	return s
}

func (s *Scenario) spawn(id string, a overlay.Alliance) overlay.Unit {
	x, y := s.openPosition()
	s.waypoints[id] = s.nextWaypoint()
	return overlay.Unit{
		ID:         id,
		X:          x,
		Y:          y,
		HeadingDeg: s.rng.Float64() * 360,
		Alliance:   a,
	}
}

// openPosition picks a spawn point outside every building.
func (s *Scenario) openPosition() (float64, float64) {
	for tries := 0; tries < 50; tries++ {
		x := s.rng.Float64() * worldW
		y := s.rng.Float64() * worldH
		blocked := false
		for _, b := range s.Occluders {
			if b.Contains(x, y) {
				blocked = true
				break
			}
		}
		if !blocked {
			return x, y
		}
	}
	return worldW / 2, worldH / 2
}

func (s *Scenario) nextWaypoint() geo.Point {
	return geo.Point{
		X: s.rng.Float64() * worldW,
		Y: s.rng.Float64() * worldH,
	}
}

// Step advances every live unit toward its waypoint, turning its
// heading to match the direction of travel. Arrived units draw a new
// waypoint; neutralized units stay put.
func (s *Scenario) Step(dt float64) {
	for i := range s.Units {
		u := &s.Units[i]
		if u.Status == overlay.StatusNeutralized {
			continue
		}
		wp := s.waypoints[u.ID]
		dx := wp.X - u.X
		dy := wp.Y - u.Y
		dist := dx*dx + dy*dy
		if dist < arriveDist*arriveDist {
			s.waypoints[u.ID] = s.nextWaypoint()
			continue
		}
		u.HeadingDeg = overlay.BearingDeg(u.X, u.Y, wp.X, wp.Y)
		step := walkSpeed * dt
		d := math.Sqrt(dist)
		u.X += dx / d * step
		u.Y += dy / d * step
	}
}
