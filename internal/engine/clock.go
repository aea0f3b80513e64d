package engine

// DefaultMaxDelta caps the wall-clock delta fed into a single Tick. A stall
// longer than this (debugger pause, window drag, suspended laptop) would
// otherwise queue an unbounded number of catch-up steps.
const DefaultMaxDelta = 0.1

// Clock banks variable wall-clock time and drains it in fixed-size
// simulation steps. Invariant: after Tick returns, the banked remainder is
// strictly below the step size.
type Clock struct {
	stepSize    float64
	accumulated float64
	maxDelta    float64
	running     bool
}

// NewClock returns a running clock with the given fixed step in seconds.
func NewClock(stepSize float64) (*Clock, error) {
	if stepSize <= 0 {
		return nil, ErrStepSize
	}
	return &Clock{
		stepSize: stepSize,
		maxDelta: DefaultMaxDelta,
		running:  true,
	}, nil
}

// Tick banks the wall delta and reports how many whole fixed steps to run.
// Negative deltas are ignored; deltas above the cap are clamped. A paused
// clock banks nothing and returns zero.
func (c *Clock) Tick(wallDelta float64) int {
	if !c.running {
		return 0
	}
	if wallDelta < 0 {
		wallDelta = 0
	}
	if wallDelta > c.maxDelta {
		wallDelta = c.maxDelta
	}
	c.accumulated += wallDelta

	steps := 0
	for c.accumulated >= c.stepSize {
		c.accumulated -= c.stepSize
		steps++
	}
	return steps
}

// StepSize returns the fixed step in seconds.
func (c *Clock) StepSize() float64 { return c.stepSize }

// Accumulated returns the banked remainder, always below StepSize.
func (c *Clock) Accumulated() float64 { return c.accumulated }

// Running reports whether Tick will advance the simulation.
func (c *Clock) Running() bool { return c.running }

// SetRunning pauses or resumes stepping. Pausing does not discard the
// banked remainder.
func (c *Clock) SetRunning(running bool) { c.running = running }

// Reset clears the banked remainder and resumes the clock.
func (c *Clock) Reset() {
	c.accumulated = 0
	c.running = true
}
