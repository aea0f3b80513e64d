package flow

import (
	"fmt"
	"math"

	"github.com/anand-ps/reverie/internal/engine"
)

// Boundary selects what happens to a particle crossing the simulation
// extent.
type Boundary int

const (
	// WrapBoundary reduces positions modulo the extent; velocity is
	// untouched.
	WrapBoundary Boundary = iota
	// BounceBoundary clamps to the extent and reflects the crossing
	// velocity component, attenuated by the restitution factor.
	BounceBoundary
	// RemoveBoundary kills particles once they exceed the extent by more
	// than the margin.
	RemoveBoundary
)

// ParseBoundary maps a config name to a Boundary.
func ParseBoundary(name string) (Boundary, error) {
	switch name {
	case "wrap":
		return WrapBoundary, nil
	case "bounce":
		return BounceBoundary, nil
	case "remove":
		return RemoveBoundary, nil
	default:
		return 0, fmt.Errorf("%w: %q", engine.ErrUnknownBoundary, name)
	}
}

// Particle is one gradient-following particle with a bounded position trail.
type Particle struct {
	Pos   engine.Vec2
	Vel   engine.Vec2
	Trail []engine.Vec2
	Alive bool
}

// Swarm integrates a set of particles with semi-implicit Euler. Velocity is
// updated before position within the same step; explicit Euler diverges
// noticeably faster on orbit-like trajectories at these step sizes.
type Swarm struct {
	particles   []Particle
	w, h        float64
	boundary    Boundary
	restitution float64
	margin      float64
	trailLen    int
}

// NewSwarm returns an empty swarm over a w x h extent.
func NewSwarm(w, h float64, boundary Boundary, restitution, margin float64, trailLen int) (*Swarm, error) {
	if w <= 0 || h <= 0 {
		return nil, engine.ErrExtent
	}
	if trailLen < 0 {
		trailLen = 0
	}
	return &Swarm{
		w:           w,
		h:           h,
		boundary:    boundary,
		restitution: restitution,
		margin:      margin,
		trailLen:    trailLen,
	}, nil
}

// Spawn adds a live particle.
func (s *Swarm) Spawn(pos, vel engine.Vec2) {
	s.particles = append(s.particles, Particle{Pos: pos, Vel: vel, Alive: true})
}

// Step advances every particle by dt. accel samples the acceleration at a
// position; damping is the per-step velocity retention complement.
func (s *Swarm) Step(dt float64, accel func(engine.Vec2) engine.Vec2, damping float64) {
	keep := 1 - damping
	for i := range s.particles {
		p := &s.particles[i]
		if !p.Alive {
			continue
		}
		a := accel(p.Pos)
		p.Vel = p.Vel.Scale(keep).Add(a.Scale(dt))
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		s.applyBoundary(p)
		if p.Alive {
			p.Trail = pushTrail(p.Trail, p.Pos, s.trailLen)
		}
	}
	s.purge()
}

func pushTrail(trail []engine.Vec2, pos engine.Vec2, max int) []engine.Vec2 {
	if max == 0 {
		return trail
	}
	trail = append(trail, pos)
	if len(trail) > max {
		copy(trail, trail[len(trail)-max:])
		trail = trail[:max]
	}
	return trail
}

func (s *Swarm) applyBoundary(p *Particle) {
	switch s.boundary {
	case WrapBoundary:
		p.Pos.X = wrap(p.Pos.X, s.w)
		p.Pos.Y = wrap(p.Pos.Y, s.h)
	case BounceBoundary:
		if p.Pos.X < 0 {
			p.Pos.X = 0
			p.Vel.X = -p.Vel.X * s.restitution
		} else if p.Pos.X > s.w {
			p.Pos.X = s.w
			p.Vel.X = -p.Vel.X * s.restitution
		}
		if p.Pos.Y < 0 {
			p.Pos.Y = 0
			p.Vel.Y = -p.Vel.Y * s.restitution
		} else if p.Pos.Y > s.h {
			p.Pos.Y = s.h
			p.Vel.Y = -p.Vel.Y * s.restitution
		}
	case RemoveBoundary:
		if p.Pos.X < -s.margin || p.Pos.X > s.w+s.margin ||
			p.Pos.Y < -s.margin || p.Pos.Y > s.h+s.margin {
			p.Alive = false
		}
	}
}

func wrap(v, extent float64) float64 {
	v = math.Mod(v, extent)
	if v < 0 {
		v += extent
	}
	return v
}

// purge removes dead particles in place.
func (s *Swarm) purge() {
	live := s.particles[:0]
	for _, p := range s.particles {
		if p.Alive {
			live = append(live, p)
		}
	}
	s.particles = live
}

// Particles exposes the live particle slice.
func (s *Swarm) Particles() []Particle { return s.particles }

// NearestWithin returns the live particle closest to p within radius, or
// nil when none is in range.
func (s *Swarm) NearestWithin(p engine.Vec2, radius float64) *Particle {
	idx := -1
	best := radius * radius
	for i := range s.particles {
		if d := s.particles[i].Pos.Sub(p).LenSq(); d <= best {
			best = d
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	return &s.particles[idx]
}

// Len returns the live particle count.
func (s *Swarm) Len() int { return len(s.particles) }

// Resize updates the extent. Positions are not rescaled; particles now
// outside the new bounds are handled by the boundary policy on the next
// step.
func (s *Swarm) Resize(w, h float64) {
	if w > 0 {
		s.w = w
	}
	if h > 0 {
		s.h = h
	}
}

// Clear removes all particles.
func (s *Swarm) Clear() { s.particles = s.particles[:0] }
