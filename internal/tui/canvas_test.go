package tui

import (
	"strings"
	"testing"
)

func TestCanvasResolution(t *testing.T) {
	c := NewCanvas(10, 5)
	if c.DotWidth() != 20 || c.DotHeight() != 20 {
		t.Errorf("dot resolution %dx%d, want 20x20", c.DotWidth(), c.DotHeight())
	}
}

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	s := c.String()
	if []rune(s)[0] != 0x2801 {
		t.Errorf("top-left dot not set: %U", []rune(s)[0])
	}

	// Dots in the same cell accumulate.
	c.Set(1, 3)
	if []rune(c.String())[0] != 0x2801|0x80 {
		t.Errorf("dots did not accumulate: %U", []rune(c.String())[0])
	}

	c.Clear()
	for _, r := range c.String() {
		if r != 0x2800 {
			t.Errorf("clear left dot %U", r)
		}
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0)
	c.Set(0, 8)
	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			t.Errorf("out-of-range set lit a dot: %U", r)
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 3)
	s := c.String()
	lines := strings.Split(s, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 4 {
			t.Errorf("row width %d, want 4", len([]rune(line)))
		}
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(8, 4)
	c.Line(0, 0, 15, 15)

	// Both endpoints lit.
	if r := []rune(c.String())[0]; r&0x01 == 0 {
		t.Errorf("line start missing: %U", r)
	}
	lit := 0
	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			lit++
		}
	}
	// A 16-dot diagonal crosses 8 cells.
	if lit != 8 {
		t.Errorf("expected 8 lit cells along the diagonal, got %d", lit)
	}
}

func TestCanvasFillRect(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillRect(0, 0, 1, 3)
	// The full first cell is 0x28FF.
	if r := []rune(c.String())[0]; r != 0x28FF {
		t.Errorf("filled cell %U, want U+28FF", r)
	}
}
