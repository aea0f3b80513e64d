// Package flow implements the continuous model family: a point-source
// scalar field with gradient-following particles integrated by
// semi-implicit Euler.
package flow

import (
	"github.com/anand-ps/reverie/internal/engine"
)

// Options configures a flow model.
type Options struct {
	Width, Height  float64
	Epsilon        float64 // softening constant, > 0
	AccelScale     float64 // gradient-to-acceleration scale
	Damping        float64 // per-step velocity loss, in [0, 1)
	Beta           float64 // time-warp coupling; 0 disables the phase channel
	SourceStrength float64 // magnitude for newly added sources
	PickRadius     float64 // remove-source search radius
	LaunchGain     float64 // drag-vector-to-velocity scale
	Restitution    float64 // bounce attenuation
	Margin         float64 // removal margin beyond the extent
	TrailLen       int
	Boundary       Boundary
	Repel          bool // insert hills instead of wells
}

// DefaultOptions mirrors the tuning the interactive simulations ship with.
func DefaultOptions() Options {
	return Options{
		Width:          100,
		Height:         100,
		Epsilon:        0.05,
		AccelScale:     400,
		Damping:        0.002,
		SourceStrength: 1.0,
		PickRadius:     5.0,
		LaunchGain:     3.0,
		Restitution:    0.7,
		Margin:         20,
		TrailLen:       40,
		Boundary:       RemoveBoundary,
	}
}

// Model is the field-plus-particles simulation. Particles accelerate down
// the field gradient (a = -scale * grad F), so wells attract and hills
// repel.
type Model struct {
	field *Field
	swarm *Swarm

	opts      Options
	polarity  float64
	warpPhase float64
	w, h      float64
}

// NewModel validates opts and builds the model.
func NewModel(opts Options) (*Model, error) {
	if opts.Damping < 0 || opts.Damping >= 1 {
		return nil, engine.ErrDamping
	}
	field, err := NewField(opts.Epsilon)
	if err != nil {
		return nil, err
	}
	swarm, err := NewSwarm(opts.Width, opts.Height, opts.Boundary, opts.Restitution, opts.Margin, opts.TrailLen)
	if err != nil {
		return nil, err
	}
	polarity := -1.0 // wells by default
	if opts.Repel {
		polarity = 1.0
	}
	return &Model{
		field:    field,
		swarm:    swarm,
		opts:     opts,
		polarity: polarity,
		w:        opts.Width,
		h:        opts.Height,
	}, nil
}

// Step advances particles by one fixed step and the time-warp phase
// alongside them. The warp factor is sampled at the extent center and
// never feeds back into the particle dynamics.
func (m *Model) Step(dt float64) {
	m.swarm.Step(dt, m.accelAt, m.opts.Damping)
	if m.opts.Beta != 0 {
		center := engine.Vec2{X: m.w / 2, Y: m.h / 2}
		m.warpPhase += dt * m.field.TimeWarp(m.opts.Beta, center)
	}
}

func (m *Model) accelAt(p engine.Vec2) engine.Vec2 {
	return m.field.GradientAt(p).Scale(-m.opts.AccelScale)
}

// Apply handles the continuous-family interaction events. Grid events are
// silently ignored.
func (m *Model) Apply(ev engine.Event) {
	switch e := ev.(type) {
	case engine.AddSource:
		m.field.Add(e.At, m.polarity*m.opts.SourceStrength)
	case engine.RemoveSource:
		m.field.RemoveNearest(e.At, m.opts.PickRadius)
	case engine.LaunchParticle:
		// A launch near a live particle re-launches that particle instead
		// of spawning a new one.
		if p := m.swarm.NearestWithin(e.At, m.opts.PickRadius); p != nil {
			p.Vel = ResolveLaunch(m.field, m.opts.AccelScale, m.opts.LaunchGain, p.Pos, e.Drag)
			p.Trail = p.Trail[:0]
			return
		}
		vel := ResolveLaunch(m.field, m.opts.AccelScale, m.opts.LaunchGain, e.At, e.Drag)
		m.swarm.Spawn(e.At, vel)
	}
}

// Snapshot deep-copies the current state.
func (m *Model) Snapshot() engine.Snapshot {
	particles := make([]engine.ParticleView, 0, m.swarm.Len())
	for _, p := range m.swarm.Particles() {
		trail := make([]engine.Vec2, len(p.Trail))
		copy(trail, p.Trail)
		particles = append(particles, engine.ParticleView{Pos: p.Pos, Vel: p.Vel, Trail: trail})
	}
	sources := make([]engine.SourceView, 0, len(m.field.Sources()))
	for _, s := range m.field.Sources() {
		sources = append(sources, engine.SourceView{Pos: s.Pos, Strength: s.Strength})
	}
	return engine.Snapshot{
		Width:     m.w,
		Height:    m.h,
		Particles: particles,
		Sources:   sources,
		WarpPhase: m.warpPhase,
	}
}

// Resize updates the extent. Sources and particles keep their absolute
// coordinates; no proportional remap.
func (m *Model) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	m.w, m.h = w, h
	m.swarm.Resize(w, h)
}

// Reset clears sources, particles and the warp phase.
func (m *Model) Reset(seed int64) {
	_ = seed // the flow family has no stochastic state
	m.field.Clear()
	m.swarm.Clear()
	m.warpPhase = 0
}

// SetRepel switches the sign of subsequently added sources. Existing
// sources are unaffected.
func (m *Model) SetRepel(repel bool) {
	if repel {
		m.polarity = 1
	} else {
		m.polarity = -1
	}
}

// Repelling reports the current insertion polarity.
func (m *Model) Repelling() bool { return m.polarity > 0 }

// Field exposes the underlying field for launch resolution and tests.
func (m *Model) Field() *Field { return m.field }

// GetParams returns the tunable parameters.
func (m *Model) GetParams() map[string]float64 {
	return map[string]float64{
		"accel":    m.opts.AccelScale,
		"damping":  m.opts.Damping,
		"beta":     m.opts.Beta,
		"strength": m.opts.SourceStrength,
		"gain":     m.opts.LaunchGain,
	}
}

// SetParam adjusts a tunable parameter at runtime.
func (m *Model) SetParam(name string, v float64) error {
	switch name {
	case "accel":
		m.opts.AccelScale = v
	case "damping":
		if v < 0 || v >= 1 {
			return engine.ErrDamping
		}
		m.opts.Damping = v
	case "beta":
		m.opts.Beta = v
	case "strength":
		m.opts.SourceStrength = v
	case "gain":
		m.opts.LaunchGain = v
	}
	return nil
}
