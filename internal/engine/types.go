package engine

import "math"

// Vec2 is a point or direction in simulation space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float64       { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64         { return math.Sqrt(v.LenSq()) }

// Unit returns the direction of v, or the zero vector when v is too short
// to normalize.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Perp returns v rotated 90 degrees counterclockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Event is a resolved interaction event. Raw pointer input never reaches a
// model; the gesture layer translates it into one of the concrete event
// types below. Models silently ignore event kinds they do not understand.
type Event interface {
	isEvent()
}

// AddSource inserts a point source at the interaction position.
type AddSource struct {
	At Vec2
}

// RemoveSource deletes the nearest source within the pick radius. A no-op
// when no source is in range.
type RemoveSource struct {
	At Vec2
}

// LaunchParticle spawns a particle at At. Drag is the raw gesture vector;
// the receiving model classifies it and may substitute an orbital-insertion
// velocity.
type LaunchParticle struct {
	At   Vec2
	Drag Vec2
}

// ToggleCell flips one cell of a life-like automaton.
type ToggleCell struct {
	Row, Col int
}

// DropCell adds one grain at a sandpile cell and settles the cascade.
type DropCell struct {
	Row, Col int
}

func (AddSource) isEvent()      {}
func (RemoveSource) isEvent()   {}
func (LaunchParticle) isEvent() {}
func (ToggleCell) isEvent()     {}
func (DropCell) isEvent()       {}

// Model is one simulation. Step advances the state by exactly dt simulated
// seconds; Apply mutates state immediately in response to an interaction
// event; Snapshot returns a deep copy safe to hand to a presentation layer.
type Model interface {
	Step(dt float64)
	Apply(ev Event)
	Snapshot() Snapshot
	Resize(w, h float64)
	Reset(seed int64)
}
