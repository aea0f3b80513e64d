package engine

// ParticleView is one particle as seen by the presentation layer.
type ParticleView struct {
	Pos   Vec2
	Vel   Vec2
	Trail []Vec2
}

// SourceView is one point source. Negative strength is a well (attracts),
// positive a hill (repels).
type SourceView struct {
	Pos      Vec2
	Strength float64
}

// CellView is one life-automaton cell with its presentation derivatives.
type CellView struct {
	Alive bool
	Age   int
	Fade  float64
}

// GridView is the full cell state of a discrete model. Exactly one of
// Cells (life) or Heights (sandpile) is populated, in row-major order.
type GridView struct {
	Rows, Cols int
	Cells      []CellView
	Heights    []int
}

// Snapshot is the immutable render contract produced once per Tick. Every
// slice is a deep copy; mutating a snapshot never affects the live model.
type Snapshot struct {
	Time   float64
	Width  float64
	Height float64

	// Continuous family.
	Particles []ParticleView
	Sources   []SourceView
	WarpPhase float64

	// Discrete family.
	Grid       *GridView
	Avalanches []int
	GrainsLost int
}
