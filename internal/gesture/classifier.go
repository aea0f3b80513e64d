// Package gesture turns raw pointer sequences into resolved domain events.
// Models never see pointer input; the one classifier here replaces the
// per-simulation tap/drag/long-press disambiguation the engine families
// used to duplicate.
package gesture

import "github.com/anand-ps/reverie/internal/engine"

// Kind is the resolved gesture class.
type Kind int

const (
	KindNone Kind = iota
	// KindTap is a short press with no movement beyond the jitter
	// tolerance.
	KindTap
	// KindDrag is a press that moved beyond the jitter tolerance before
	// release.
	KindDrag
	// KindLongPress is a hold past the time threshold with no movement;
	// any move beyond the jitter tolerance cancels it back to a drag.
	KindLongPress
)

// Gesture is one classified pointer sequence.
type Gesture struct {
	Kind  Kind
	Start engine.Vec2
	End   engine.Vec2
}

// Drag returns the net displacement of the gesture.
func (g Gesture) Drag() engine.Vec2 { return g.End.Sub(g.Start) }

// Classifier defaults.
const (
	DefaultLongPressSec = 0.5
	DefaultJitter       = 1.0
)

// Classifier accumulates one press/move/release sequence at a time.
// Timestamps are wall-clock seconds from any monotonic origin.
type Classifier struct {
	LongPressSec float64
	Jitter       float64

	active bool
	moved  bool
	start  engine.Vec2
	last   engine.Vec2
	startT float64
}

// NewClassifier returns a classifier with the standard thresholds.
func NewClassifier() *Classifier {
	return &Classifier{
		LongPressSec: DefaultLongPressSec,
		Jitter:       DefaultJitter,
	}
}

// Press begins a gesture. A press while another gesture is active
// abandons the old one.
func (c *Classifier) Press(p engine.Vec2, t float64) {
	c.active = true
	c.moved = false
	c.start = p
	c.last = p
	c.startT = t
}

// Move updates the gesture in progress. Movement beyond the jitter
// tolerance commits the gesture to a drag and cancels any pending
// long-press.
func (c *Classifier) Move(p engine.Vec2, t float64) {
	_ = t
	if !c.active {
		return
	}
	c.last = p
	if p.Sub(c.start).Len() > c.Jitter {
		c.moved = true
	}
}

// Poll fires a pending long-press the moment the hold crosses the time
// threshold, without waiting for release. After a poll fires, the release
// that eventually follows classifies as nothing.
func (c *Classifier) Poll(t float64) Gesture {
	if !c.active || c.moved || t-c.startT < c.LongPressSec {
		return Gesture{Kind: KindNone}
	}
	c.active = false
	return Gesture{Kind: KindLongPress, Start: c.start, End: c.last}
}

// Release ends the gesture and classifies it.
func (c *Classifier) Release(p engine.Vec2, t float64) Gesture {
	if !c.active {
		return Gesture{Kind: KindNone}
	}
	c.active = false
	c.last = p

	g := Gesture{Start: c.start, End: p}
	switch {
	case c.moved || p.Sub(c.start).Len() > c.Jitter:
		g.Kind = KindDrag
	case t-c.startT >= c.LongPressSec:
		g.Kind = KindLongPress
	default:
		g.Kind = KindTap
	}
	return g
}

// Active reports whether a press is in progress.
func (c *Classifier) Active() bool { return c.active }
