package gesture

import "github.com/anand-ps/reverie/internal/engine"

// Family selects the event vocabulary a controller emits.
type Family int

const (
	// ContinuousFamily maps taps to sources and drags to particle
	// launches.
	ContinuousFamily Family = iota
	// LifeFamily maps taps to cell toggles; drags have no meaning.
	LifeFamily
	// SandpileFamily maps taps to grain drops; drags have no meaning.
	SandpileFamily
)

// Controller owns gesture classification for one model instance and
// translates resolved gestures into domain events.
type Controller struct {
	classifier *Classifier
	family     Family

	w, h       float64
	rows, cols int
}

// NewController builds a controller over a w x h extent. rows and cols are
// only consulted for the discrete families.
func NewController(family Family, w, h float64, rows, cols int) *Controller {
	return &Controller{
		classifier: NewClassifier(),
		family:     family,
		w:          w,
		h:          h,
		rows:       rows,
		cols:       cols,
	}
}

// Press forwards a pointer press.
func (c *Controller) Press(p engine.Vec2, t float64) { c.classifier.Press(p, t) }

// Move forwards pointer motion.
func (c *Controller) Move(p engine.Vec2, t float64) { c.classifier.Move(p, t) }

// Poll fires a held long-press as soon as its threshold elapses, so the
// gesture takes effect without waiting for pointer-up. Call it once per
// frame with the current time.
func (c *Controller) Poll(t float64) (engine.Event, bool) {
	g := c.classifier.Poll(t)
	if g.Kind != KindLongPress {
		return nil, false
	}
	if c.family == ContinuousFamily {
		return engine.RemoveSource{At: g.Start}, true
	}
	return nil, false
}

// Release classifies the finished gesture and returns the resulting domain
// event, or ok=false when the gesture resolves to nothing (discrete drags,
// stray releases).
func (c *Controller) Release(p engine.Vec2, t float64) (engine.Event, bool) {
	g := c.classifier.Release(p, t)
	if g.Kind == KindNone {
		return nil, false
	}

	switch c.family {
	case ContinuousFamily:
		return c.continuousEvent(g)
	case LifeFamily:
		if g.Kind == KindTap {
			row, col := c.cellAt(g.Start)
			return engine.ToggleCell{Row: row, Col: col}, true
		}
	case SandpileFamily:
		if g.Kind == KindTap {
			row, col := c.cellAt(g.Start)
			return engine.DropCell{Row: row, Col: col}, true
		}
	}
	return nil, false
}

func (c *Controller) continuousEvent(g Gesture) (engine.Event, bool) {
	switch g.Kind {
	case KindTap:
		return engine.AddSource{At: g.Start}, true
	case KindLongPress:
		return engine.RemoveSource{At: g.Start}, true
	case KindDrag:
		return engine.LaunchParticle{At: g.Start, Drag: g.Drag()}, true
	}
	return nil, false
}

// cellAt maps a simulation-space position onto grid coordinates. Positions
// outside the extent map to out-of-range cells, which the models silently
// ignore.
func (c *Controller) cellAt(p engine.Vec2) (row, col int) {
	if c.w <= 0 || c.h <= 0 || c.rows <= 0 || c.cols <= 0 {
		return -1, -1
	}
	col = int(p.X / c.w * float64(c.cols))
	row = int(p.Y / c.h * float64(c.rows))
	if p.X < 0 {
		col = -1
	}
	if p.Y < 0 {
		row = -1
	}
	return row, col
}

// SetExtent updates the pointer-to-simulation mapping after a resize.
func (c *Controller) SetExtent(w, h float64) {
	c.w = w
	c.h = h
}
