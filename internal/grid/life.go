// Package grid implements the discrete model family: a life-like neighbor
// automaton and a conservative sandpile automaton, both over fixed-size
// row-major grids.
package grid

import (
	"math/rand"

	"github.com/anand-ps/reverie/internal/engine"
)

// DefaultFadeStep is the per-generation decay applied to dead cells'
// presentation fade.
const DefaultFadeStep = 0.08

// Life is a B3/S23 automaton with Moore neighborhoods. The two cell
// buffers are allocated once and swapped by index each generation, so a
// generation never reads a neighbor that was already updated in the same
// pass.
type Life struct {
	rows, cols int
	wrap       bool

	cur, nxt []uint8
	age      []int
	fade     []float64
	fadeStep float64

	generation int
}

// NewLife allocates an empty board. wrap selects toroidal neighbor
// counting; bounded boards treat off-grid neighbors as dead.
func NewLife(rows, cols int, wrap bool, fadeStep float64) (*Life, error) {
	if rows <= 0 || cols <= 0 {
		return nil, engine.ErrGridSize
	}
	if fadeStep <= 0 {
		fadeStep = DefaultFadeStep
	}
	n := rows * cols
	return &Life{
		rows:     rows,
		cols:     cols,
		wrap:     wrap,
		cur:      make([]uint8, n),
		nxt:      make([]uint8, n),
		age:      make([]int, n),
		fade:     make([]float64, n),
		fadeStep: fadeStep,
	}, nil
}

// Step advances one generation per fixed step.
func (l *Life) Step(dt float64) {
	_ = dt // generation cadence is the fixed step rate
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			idx := r*l.cols + c
			n := l.neighbors(r, c)
			alive := l.cur[idx] == 1
			next := uint8(0)
			if (alive && (n == 2 || n == 3)) || (!alive && n == 3) {
				next = 1
			}
			l.nxt[idx] = next
			l.updateDerived(idx, alive, next == 1)
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
	l.generation++
}

// updateDerived maintains age and fade. Both are presentation outputs;
// the rule above never reads them.
func (l *Life) updateDerived(idx int, wasAlive, nowAlive bool) {
	switch {
	case nowAlive && wasAlive:
		l.age[idx]++
	case nowAlive:
		l.age[idx] = 0
		l.fade[idx] = 1.0
	default:
		l.age[idx] = 0
		l.fade[idx] -= l.fadeStep
		if l.fade[idx] < 0 {
			l.fade[idx] = 0
		}
	}
}

func (l *Life) neighbors(r, c int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := r+dr, c+dc
			if l.wrap {
				nr = (nr + l.rows) % l.rows
				nc = (nc + l.cols) % l.cols
			} else if nr < 0 || nr >= l.rows || nc < 0 || nc >= l.cols {
				continue
			}
			count += int(l.cur[nr*l.cols+nc])
		}
	}
	return count
}

// Apply handles ToggleCell; out-of-bounds coordinates are gestures outside
// the board and are silently dropped.
func (l *Life) Apply(ev engine.Event) {
	t, ok := ev.(engine.ToggleCell)
	if !ok {
		return
	}
	if t.Row < 0 || t.Row >= l.rows || t.Col < 0 || t.Col >= l.cols {
		return
	}
	idx := t.Row*l.cols + t.Col
	if l.cur[idx] == 1 {
		l.cur[idx] = 0
		l.age[idx] = 0
	} else {
		l.cur[idx] = 1
		l.age[idx] = 0
		l.fade[idx] = 1.0
	}
}

// Snapshot copies the full board.
func (l *Life) Snapshot() engine.Snapshot {
	cells := make([]engine.CellView, len(l.cur))
	for i, v := range l.cur {
		cells[i] = engine.CellView{
			Alive: v == 1,
			Age:   l.age[i],
			Fade:  l.fade[i],
		}
	}
	return engine.Snapshot{
		Grid: &engine.GridView{Rows: l.rows, Cols: l.cols, Cells: cells},
	}
}

// Resize reinitializes the board contents. Dimensions are fixed at
// construction; new bounds only clear state.
func (l *Life) Resize(w, h float64) {
	_ = w
	_ = h
	l.clear()
}

// Reset seeds a random soup at roughly 30% density.
func (l *Life) Reset(seed int64) {
	l.clear()
	rng := rand.New(rand.NewSource(seed))
	for i := range l.cur {
		if rng.Float64() < 0.3 {
			l.cur[i] = 1
			l.fade[i] = 1.0
		}
	}
}

func (l *Life) clear() {
	for i := range l.cur {
		l.cur[i] = 0
		l.nxt[i] = 0
		l.age[i] = 0
		l.fade[i] = 0
	}
	l.generation = 0
}

// Set places a live cell directly, for tests and pattern seeding.
func (l *Life) Set(r, c int) {
	if r < 0 || r >= l.rows || c < 0 || c >= l.cols {
		return
	}
	idx := r*l.cols + c
	l.cur[idx] = 1
	l.fade[idx] = 1.0
}

// AliveAt reports whether the cell is live.
func (l *Life) AliveAt(r, c int) bool {
	return r >= 0 && r < l.rows && c >= 0 && c < l.cols && l.cur[r*l.cols+c] == 1
}

// Population returns the live cell count.
func (l *Life) Population() int {
	n := 0
	for _, v := range l.cur {
		n += int(v)
	}
	return n
}

// Generation returns the number of completed generations.
func (l *Life) Generation() int { return l.generation }
