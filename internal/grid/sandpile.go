package grid

import (
	"math/rand"

	"github.com/anand-ps/reverie/internal/engine"
)

// DropMode selects where automatic drops land.
type DropMode int

const (
	// FixedDrop always drops at the center cell.
	FixedDrop DropMode = iota
	// RandomDrop picks a uniform random cell per drop.
	RandomDrop
)

// DefaultHistoryLen bounds the rolling avalanche-size history.
const DefaultHistoryLen = 256

// Sandpile is an abelian sandpile: integer heights, a topple threshold
// matching the 4-neighbor connectivity, and boundary dissipation. A drop
// and its settle cascade are one atomic operation; no observer ever sees a
// cell at or above the threshold.
type Sandpile struct {
	rows, cols int
	threshold  int
	heights    []int

	mode     DropMode
	dropRate float64 // automatic drops per simulated second; 0 = interactive only
	dropAcc  float64
	rng      *rand.Rand

	history    []int
	historyLen int
	grainsLost int

	queue []int // settle worklist, reused across drops
}

// NewSandpile allocates an all-zero pile.
func NewSandpile(rows, cols, threshold int, mode DropMode, dropRate float64, historyLen int, seed int64) (*Sandpile, error) {
	if rows <= 0 || cols <= 0 {
		return nil, engine.ErrGridSize
	}
	if threshold <= 0 {
		return nil, engine.ErrThreshold
	}
	if historyLen <= 0 {
		historyLen = DefaultHistoryLen
	}
	return &Sandpile{
		rows:       rows,
		cols:       cols,
		threshold:  threshold,
		heights:    make([]int, rows*cols),
		mode:       mode,
		dropRate:   dropRate,
		rng:        rand.New(rand.NewSource(seed)),
		historyLen: historyLen,
	}, nil
}

// Step performs the automatic drops owed for dt simulated seconds. Each
// drop settles fully before the next lands.
func (s *Sandpile) Step(dt float64) {
	if s.dropRate <= 0 {
		return
	}
	s.dropAcc += dt * s.dropRate
	for s.dropAcc >= 1 {
		s.dropAcc--
		r, c := s.nextDropCell()
		s.Drop(r, c)
	}
}

func (s *Sandpile) nextDropCell() (int, int) {
	if s.mode == RandomDrop {
		return s.rng.Intn(s.rows), s.rng.Intn(s.cols)
	}
	return s.rows / 2, s.cols / 2
}

// Drop adds one grain at (r, c), settles the cascade, and returns the
// avalanche size: the number of toppling events the grain triggered.
func (s *Sandpile) Drop(r, c int) int {
	if r < 0 || r >= s.rows || c < 0 || c >= s.cols {
		return 0
	}
	idx := r*s.cols + c
	s.heights[idx]++

	size := s.settle(idx)
	s.record(size)
	return size
}

// settle drains the worklist seeded with the dropped cell. Each dequeued
// cell is re-checked: a prior topple in the same cascade may have left it
// stable again. Total height never increases, so the cascade is finite.
func (s *Sandpile) settle(seed int) int {
	if s.heights[seed] < s.threshold {
		return 0
	}
	s.queue = append(s.queue[:0], seed)

	topples := 0
	for len(s.queue) > 0 {
		idx := s.queue[0]
		s.queue = s.queue[1:]

		if s.heights[idx] < s.threshold {
			continue
		}
		s.heights[idx] -= s.threshold
		topples++
		if s.heights[idx] >= s.threshold {
			s.queue = append(s.queue, idx)
		}

		r, c := idx/s.cols, idx%s.cols
		s.spill(r-1, c)
		s.spill(r+1, c)
		s.spill(r, c-1)
		s.spill(r, c+1)
	}
	return topples
}

// spill hands one grain to a neighbor; off-grid grains dissipate.
func (s *Sandpile) spill(r, c int) {
	if r < 0 || r >= s.rows || c < 0 || c >= s.cols {
		s.grainsLost++
		return
	}
	idx := r*s.cols + c
	s.heights[idx]++
	if s.heights[idx] == s.threshold {
		s.queue = append(s.queue, idx)
	}
}

func (s *Sandpile) record(size int) {
	s.history = append(s.history, size)
	if len(s.history) > s.historyLen {
		copy(s.history, s.history[len(s.history)-s.historyLen:])
		s.history = s.history[:s.historyLen]
	}
}

// Apply handles DropCell; gestures landing outside the grid are silently
// dropped.
func (s *Sandpile) Apply(ev engine.Event) {
	d, ok := ev.(engine.DropCell)
	if !ok {
		return
	}
	s.Drop(d.Row, d.Col)
}

// Snapshot copies heights and the avalanche history.
func (s *Sandpile) Snapshot() engine.Snapshot {
	heights := make([]int, len(s.heights))
	copy(heights, s.heights)
	history := make([]int, len(s.history))
	copy(history, s.history)
	return engine.Snapshot{
		Grid:       &engine.GridView{Rows: s.rows, Cols: s.cols, Heights: heights},
		Avalanches: history,
		GrainsLost: s.grainsLost,
	}
}

// Resize reinitializes the pile; dimensions stay fixed.
func (s *Sandpile) Resize(w, h float64) {
	_ = w
	_ = h
	s.clear()
}

// Reset zeroes the pile and reseeds the drop generator.
func (s *Sandpile) Reset(seed int64) {
	s.clear()
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *Sandpile) clear() {
	for i := range s.heights {
		s.heights[i] = 0
	}
	s.history = s.history[:0]
	s.grainsLost = 0
	s.dropAcc = 0
}

// HeightAt returns the height at (r, c), or 0 off-grid.
func (s *Sandpile) HeightAt(r, c int) int {
	if r < 0 || r >= s.rows || c < 0 || c >= s.cols {
		return 0
	}
	return s.heights[r*s.cols+c]
}

// TotalHeight sums all cell heights.
func (s *Sandpile) TotalHeight() int {
	total := 0
	for _, h := range s.heights {
		total += h
	}
	return total
}

// GrainsLost returns the cumulative boundary dissipation.
func (s *Sandpile) GrainsLost() int { return s.grainsLost }

// History returns the live avalanche-size ring.
func (s *Sandpile) History() []int { return s.history }
