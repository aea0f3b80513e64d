package flow

import (
	"math"
	"testing"

	"github.com/anand-ps/reverie/internal/engine"
)

func TestNewFieldRejectsBadEpsilon(t *testing.T) {
	if _, err := NewField(0); err != engine.ErrSoftening {
		t.Errorf("expected ErrSoftening, got %v", err)
	}
	if _, err := NewField(-1); err != engine.ErrSoftening {
		t.Errorf("expected ErrSoftening, got %v", err)
	}
}

func TestFieldValueFiniteAtSource(t *testing.T) {
	f, _ := NewField(0.05)
	f.Add(engine.Vec2{X: 10, Y: 10}, 1.0)

	v := f.ValueAt(engine.Vec2{X: 10, Y: 10})
	if math.IsInf(v, 0) || math.IsNaN(v) {
		t.Fatalf("field not softened at source: %f", v)
	}
	expected := 1.0 / math.Sqrt(0.05)
	if math.Abs(v-expected) > 1e-12 {
		t.Errorf("expected %.6f, got %.6f", expected, v)
	}
}

func TestFieldGradientPointsAlongStrength(t *testing.T) {
	f, _ := NewField(0.01)
	f.Add(engine.Vec2{}, 1.0)

	// Positive strength: F grows toward the source, so the gradient at a
	// point to the right points left (toward it).
	g := f.GradientAt(engine.Vec2{X: 5, Y: 0})
	if g.X >= 0 {
		t.Errorf("gradient should point toward positive source, got %+v", g)
	}
	if math.Abs(g.Y) > 1e-12 {
		t.Errorf("expected no lateral component, got %+v", g)
	}

	f.Clear()
	f.Add(engine.Vec2{}, -1.0)
	g = f.GradientAt(engine.Vec2{X: 5, Y: 0})
	if g.X <= 0 {
		t.Errorf("gradient should point away from negative source, got %+v", g)
	}
}

func TestFieldGradientMatchesFiniteDifference(t *testing.T) {
	f, _ := NewField(0.05)
	f.Add(engine.Vec2{X: 3, Y: -2}, 1.5)
	f.Add(engine.Vec2{X: -1, Y: 4}, -0.7)

	p := engine.Vec2{X: 1, Y: 1}
	g := f.GradientAt(p)

	const h = 1e-6
	gx := (f.ValueAt(engine.Vec2{X: p.X + h, Y: p.Y}) - f.ValueAt(engine.Vec2{X: p.X - h, Y: p.Y})) / (2 * h)
	gy := (f.ValueAt(engine.Vec2{X: p.X, Y: p.Y + h}) - f.ValueAt(engine.Vec2{X: p.X, Y: p.Y - h})) / (2 * h)

	if math.Abs(g.X-gx) > 1e-5 || math.Abs(g.Y-gy) > 1e-5 {
		t.Errorf("analytic gradient %+v disagrees with numeric (%.6f, %.6f)", g, gx, gy)
	}
}

func TestFieldRemoveNearest(t *testing.T) {
	f, _ := NewField(0.05)
	f.Add(engine.Vec2{X: 10, Y: 10}, 1)
	f.Add(engine.Vec2{X: 50, Y: 50}, 1)

	// Outside the pick radius: no-op.
	if f.RemoveNearest(engine.Vec2{X: 30, Y: 30}, 5) {
		t.Error("removed a source outside the pick radius")
	}
	if len(f.Sources()) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(f.Sources()))
	}

	if !f.RemoveNearest(engine.Vec2{X: 12, Y: 10}, 5) {
		t.Error("failed to remove source within pick radius")
	}
	if len(f.Sources()) != 1 {
		t.Fatalf("expected 1 source, got %d", len(f.Sources()))
	}
	if f.Sources()[0].Pos.X != 50 {
		t.Error("removed the wrong source")
	}
}

func TestFieldTimeWarp(t *testing.T) {
	f, _ := NewField(0.05)
	if tau := f.TimeWarp(0.5, engine.Vec2{}); tau != 1 {
		t.Errorf("empty field should not warp time, got %f", tau)
	}

	f.Add(engine.Vec2{}, 1.0)
	tau := f.TimeWarp(0.5, engine.Vec2{X: 1, Y: 0})
	if tau >= 1 || tau <= 0 {
		t.Errorf("positive field should slow time into (0,1), got %f", tau)
	}

	// A deep well cannot invert the factor.
	f.Clear()
	f.Add(engine.Vec2{}, -100)
	tau = f.TimeWarp(1.0, engine.Vec2{X: 0.1, Y: 0})
	if tau <= 0 || tau > 10 {
		t.Errorf("warp factor not floored: %f", tau)
	}
}
