package engine

// Engine drives one Model from per-frame wall-clock deltas. It owns the
// fixed-step clock and guarantees that all queued steps complete before the
// render snapshot for that frame is produced.
type Engine struct {
	model Model
	clock *Clock
	time  float64
}

// New wraps model with a fixed-step clock ticking at stepSize seconds.
func New(model Model, stepSize float64) (*Engine, error) {
	clock, err := NewClock(stepSize)
	if err != nil {
		return nil, err
	}
	return &Engine{model: model, clock: clock}, nil
}

// Tick feeds one frame's wall delta to the clock, runs the drained fixed
// steps against the model, and returns the snapshot for this frame. Exactly
// one snapshot is produced per call, whether zero or many steps ran; a
// paused engine still snapshots its static state.
func (e *Engine) Tick(wallDelta float64) Snapshot {
	dt := e.clock.StepSize()
	for i := e.clock.Tick(wallDelta); i > 0; i-- {
		e.model.Step(dt)
		e.time += dt
	}
	snap := e.model.Snapshot()
	snap.Time = e.time
	return snap
}

// Apply delivers an interaction event to the model immediately. The
// mutation is visible to the very next step or snapshot.
func (e *Engine) Apply(ev Event) { e.model.Apply(ev) }

// Resize forwards new bounds to the model. Dependent state reinitializes;
// no proportional remap is attempted.
func (e *Engine) Resize(w, h float64) { e.model.Resize(w, h) }

// Reset rewinds simulated time to zero and reseeds the model. The clock is
// reset, not replaced.
func (e *Engine) Reset(seed int64) {
	e.clock.Reset()
	e.time = 0
	e.model.Reset(seed)
}

// SetRunning pauses or resumes stepping. While paused, Tick still produces
// snapshots so the presentation layer shows a static, still-correct state.
func (e *Engine) SetRunning(running bool) { e.clock.SetRunning(running) }

// Running reports whether the engine is stepping.
func (e *Engine) Running() bool { return e.clock.Running() }

// Time returns total elapsed simulated seconds.
func (e *Engine) Time() float64 { return e.time }

// Model exposes the wrapped model, mainly for telemetry observers.
func (e *Engine) Model() Model { return e.model }
