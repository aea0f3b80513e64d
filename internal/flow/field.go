package flow

import (
	"math"

	"github.com/anand-ps/reverie/internal/engine"
)

// Source is one point source of the scalar field. Strength is signed:
// negative is a well (particles fall toward it), positive a hill.
type Source struct {
	Pos      engine.Vec2
	Strength float64
}

// Field is a softened inverse-distance scalar field over a set of point
// sources. Every sample sums over the full source list; there is no
// caching, an accepted O(sources x samples) cost at the source counts this
// engine is used with.
type Field struct {
	epsilon float64
	sources []Source
}

// NewField returns an empty field with softening epsilon.
func NewField(epsilon float64) (*Field, error) {
	if epsilon <= 0 {
		return nil, engine.ErrSoftening
	}
	return &Field{epsilon: epsilon}, nil
}

// ValueAt samples F(p) = sum s / sqrt(|p-s|^2 + eps).
func (f *Field) ValueAt(p engine.Vec2) float64 {
	total := 0.0
	for _, s := range f.sources {
		d := p.Sub(s.Pos)
		total += s.Strength / math.Sqrt(d.LenSq()+f.epsilon)
	}
	return total
}

// GradientAt samples the analytic gradient of ValueAt:
// sum -s (p-q) / (|p-q|^2 + eps)^1.5. The softening keeps it finite as p
// approaches a source.
func (f *Field) GradientAt(p engine.Vec2) engine.Vec2 {
	var g engine.Vec2
	for _, s := range f.sources {
		d := p.Sub(s.Pos)
		r2 := d.LenSq() + f.epsilon
		inv := -s.Strength / (r2 * math.Sqrt(r2))
		g.X += inv * d.X
		g.Y += inv * d.Y
	}
	return g
}

// TimeWarp samples the local time-speed factor tau(p) = 1 / (1 + beta*F(p)).
// The denominator is floored so a deep well cannot invert or blow up the
// factor; tau only feeds a secondary phase animation, never the dynamics.
func (f *Field) TimeWarp(beta float64, p engine.Vec2) float64 {
	den := 1 + beta*f.ValueAt(p)
	if den < 0.1 {
		den = 0.1
	}
	return 1 / den
}

// Add inserts a source at pos.
func (f *Field) Add(pos engine.Vec2, strength float64) {
	f.sources = append(f.sources, Source{Pos: pos, Strength: strength})
}

// RemoveNearest deletes the source closest to p if it lies within radius.
// It reports whether a source was removed; a miss is a no-op.
func (f *Field) RemoveNearest(p engine.Vec2, radius float64) bool {
	idx := -1
	best := radius * radius
	for i, s := range f.sources {
		if d := s.Pos.Sub(p).LenSq(); d <= best {
			best = d
			idx = i
		}
	}
	if idx < 0 {
		return false
	}
	f.sources = append(f.sources[:idx], f.sources[idx+1:]...)
	return true
}

// Nearest returns the source closest to p and whether any source exists.
func (f *Field) Nearest(p engine.Vec2) (Source, bool) {
	if len(f.sources) == 0 {
		return Source{}, false
	}
	bestIdx := 0
	best := math.MaxFloat64
	for i, s := range f.sources {
		if d := s.Pos.Sub(p).LenSq(); d < best {
			best = d
			bestIdx = i
		}
	}
	return f.sources[bestIdx], true
}

// Sources exposes the live source list for stepping and snapshots.
func (f *Field) Sources() []Source { return f.sources }

// Epsilon returns the softening constant.
func (f *Field) Epsilon() float64 { return f.epsilon }

// Clear removes every source.
func (f *Field) Clear() { f.sources = f.sources[:0] }
