package flow

import (
	"math"

	"github.com/anand-ps/reverie/internal/engine"
)

// Drag classification thresholds. A release whose net drag is below
// nearZeroDrag is treated as a plain tap and gets an exact orbital
// insertion; a drag mostly perpendicular to the radial direction gets its
// speed clamped around the orbital speed, trading gesture fidelity for
// visually stable orbits.
const (
	nearZeroDrag  = 1e-3
	tangentialCos = 0.7
	orbitClampLo  = 0.8
	orbitClampHi  = 1.2
)

// OrbitSpeed returns the circular-orbit speed at radial distance r from a
// source of the given strength under the softened force law
// a_r = scale*|M|*r / (r^2+eps)^1.5. As eps goes to zero this reduces to
// the familiar sqrt(scale*|M|/r).
func OrbitSpeed(scale, strength, r, epsilon float64) float64 {
	if r <= 0 {
		return 0
	}
	m := math.Abs(strength)
	r2 := r * r
	return math.Sqrt(scale * m * r2 / math.Pow(r2+epsilon, 1.5))
}

// ResolveLaunch turns a raw drag gesture at a point into a launch velocity.
//
// With no source in the field the drag maps directly to a velocity through
// gain. Otherwise the drag is classified against the nearest source:
// near-zero drags launch tangentially at exactly the circular-orbit speed,
// tangential drags keep their direction but have their speed clamped to
// [0.8v, 1.2v] around the orbital speed v, and everything else passes
// through proportionally.
func ResolveLaunch(f *Field, scale, gain float64, at, drag engine.Vec2) engine.Vec2 {
	src, ok := f.Nearest(at)
	if !ok {
		return drag.Scale(gain)
	}

	radial := at.Sub(src.Pos)
	r := radial.Len()
	if r < 1e-9 {
		return drag.Scale(gain)
	}
	rhat := radial.Scale(1 / r)
	v := OrbitSpeed(scale, src.Strength, r, f.Epsilon())

	if drag.Len() < nearZeroDrag {
		return rhat.Perp().Scale(v)
	}

	dhat := drag.Unit()
	// |cosine with the tangent| > 0.7 means the drag is mostly
	// perpendicular to the radial direction.
	if math.Abs(dhat.Dot(rhat.Perp())) > tangentialCos {
		speed := drag.Len() * gain
		if speed < orbitClampLo*v {
			speed = orbitClampLo * v
		} else if speed > orbitClampHi*v {
			speed = orbitClampHi * v
		}
		return dhat.Scale(speed)
	}

	return drag.Scale(gain)
}
