package tui

// Braille cells pack a 2x4 dot matrix per terminal cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// offset from U+2800.
var brailleDot = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a dot-addressable terminal drawing surface. Dot coordinates
// run over (cols*2) x (rows*4).
type Canvas struct {
	cols, rows int
	cells      []rune
}

// NewCanvas allocates a cols x rows cell canvas.
func NewCanvas(cols, rows int) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c := &Canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

// DotWidth returns the horizontal dot resolution.
func (c *Canvas) DotWidth() int { return c.cols * 2 }

// DotHeight returns the vertical dot resolution.
func (c *Canvas) DotHeight() int { return c.rows * 4 }

// Clear blanks the canvas.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

// Set lights the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] |= brailleDot[y%4][x%2]
}

// FillRect lights every dot in the inclusive rectangle.
func (c *Canvas) FillRect(x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.Set(x, y)
		}
	}
}

// Line draws a dot line with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas as rows of braille runes.
func (c *Canvas) String() string {
	out := make([]rune, 0, (c.cols+1)*c.rows)
	for row := 0; row < c.rows; row++ {
		out = append(out, c.cells[row*c.cols:(row+1)*c.cols]...)
		if row < c.rows-1 {
			out = append(out, '\n')
		}
	}
	return string(out)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
