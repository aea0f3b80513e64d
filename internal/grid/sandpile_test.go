package grid

import (
	"testing"

	"github.com/onsi/gomega"

	"github.com/anand-ps/reverie/internal/engine"
)

func TestNewSandpileValidation(t *testing.T) {
	if _, err := NewSandpile(0, 10, 4, FixedDrop, 0, 0, 1); err != engine.ErrGridSize {
		t.Errorf("expected ErrGridSize, got %v", err)
	}
	if _, err := NewSandpile(10, 10, 0, FixedDrop, 0, 0, 1); err != engine.ErrThreshold {
		t.Errorf("expected ErrThreshold, got %v", err)
	}
}

func TestSandpileFourthGrainTopples(t *testing.T) {
	s, _ := NewSandpile(10, 10, 4, FixedDrop, 0, 0, 1)

	for i := 1; i <= 3; i++ {
		if size := s.Drop(5, 5); size != 0 {
			t.Errorf("drop %d: avalanche size %d, want 0", i, size)
		}
		if h := s.HeightAt(5, 5); h != i {
			t.Errorf("drop %d: height %d, want %d", i, h, i)
		}
	}

	size := s.Drop(5, 5)
	if size < 1 {
		t.Fatalf("fourth grain should topple, size %d", size)
	}
	if s.HeightAt(5, 5) != 0 {
		t.Errorf("toppled cell height %d, want 0", s.HeightAt(5, 5))
	}
	for _, rc := range [][2]int{{4, 5}, {6, 5}, {5, 4}, {5, 6}} {
		if s.HeightAt(rc[0], rc[1]) != 1 {
			t.Errorf("neighbor (%d,%d) height %d, want 1", rc[0], rc[1], s.HeightAt(rc[0], rc[1]))
		}
	}
}

// Grains are conserved: on-grid total plus boundary dissipation always
// equals the number dropped.
func TestSandpileConservation(t *testing.T) {
	g := gomega.NewWithT(t)
	s, _ := NewSandpile(8, 8, 4, FixedDrop, 0, 0, 1)

	for n := 1; n <= 500; n++ {
		s.Drop(4, 4)
		g.Expect(s.TotalHeight() + s.GrainsLost()).To(gomega.Equal(n))
	}
	// A long run on a small grid must have shed grains off the edge.
	g.Expect(s.GrainsLost()).To(gomega.BeNumerically(">", 0))
}

func TestSandpileSettlesBelowThreshold(t *testing.T) {
	g := gomega.NewWithT(t)
	s, _ := NewSandpile(10, 10, 4, RandomDrop, 0, 0, 7)

	for n := 0; n < 1000; n++ {
		r, c := s.rng.Intn(10), s.rng.Intn(10)
		s.Drop(r, c)
	}
	snap := s.Snapshot()
	for _, h := range snap.Grid.Heights {
		g.Expect(h).To(gomega.BeNumerically("<", 4))
	}
}

func TestSandpileOffGridDropIgnored(t *testing.T) {
	s, _ := NewSandpile(5, 5, 4, FixedDrop, 0, 0, 1)
	s.Apply(engine.DropCell{Row: -1, Col: 2})
	s.Apply(engine.DropCell{Row: 2, Col: 17})
	if s.TotalHeight() != 0 {
		t.Error("off-grid drop added grains")
	}

	s.Apply(engine.DropCell{Row: 2, Col: 2})
	if s.HeightAt(2, 2) != 1 {
		t.Error("in-grid drop event did not land")
	}
}

func TestSandpileAutoDrop(t *testing.T) {
	s, _ := NewSandpile(10, 10, 4, FixedDrop, 2.0, 0, 1) // 2 drops/s

	// 0.4 s owes no whole drop yet; the fraction banks.
	s.Step(0.4)
	if s.TotalHeight() != 0 {
		t.Fatalf("early drop: total %d", s.TotalHeight())
	}
	s.Step(0.1)
	if s.TotalHeight() != 1 {
		t.Fatalf("expected 1 grain after 0.5s, got %d", s.TotalHeight())
	}
	s.Step(1.0)
	if got := s.TotalHeight() + s.GrainsLost(); got != 3 {
		t.Fatalf("expected 3 grains after 1.5s, got %d", got)
	}
}

func TestSandpileHistoryBounded(t *testing.T) {
	s, _ := NewSandpile(6, 6, 4, FixedDrop, 0, 16, 1)
	for i := 0; i < 200; i++ {
		s.Drop(3, 3)
	}
	if len(s.History()) != 16 {
		t.Errorf("history length %d, want 16", len(s.History()))
	}
	snap := s.Snapshot()
	if len(snap.Avalanches) != 16 {
		t.Errorf("snapshot history length %d, want 16", len(snap.Avalanches))
	}
}

func TestSandpileReset(t *testing.T) {
	s, _ := NewSandpile(6, 6, 4, FixedDrop, 0, 0, 1)
	for i := 0; i < 50; i++ {
		s.Drop(3, 3)
	}
	s.Reset(9)
	if s.TotalHeight() != 0 || s.GrainsLost() != 0 || len(s.History()) != 0 {
		t.Error("reset left state behind")
	}
}

func BenchmarkSandpileDrop(b *testing.B) {
	s, _ := NewSandpile(64, 64, 4, FixedDrop, 0, 0, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Drop(32, 32)
	}
}
