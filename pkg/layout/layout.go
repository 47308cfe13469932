// Package layout places page content on a cell grid. Geometry is computed
// in content coordinates (row 0 is the top of the scrollable page), which
// is what spatial navigation measures distances in.
package layout

// Rect represents a rectangular area in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Empty returns true if this rectangle has zero area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the X coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Constraint sizes one slot of a Split.
type Constraint interface {
	constraint() // sealed marker
}

// Length allocates exactly Value cells.
type Length struct{ Value int }

func (Length) constraint() {}

// Fill distributes remaining space proportional to Weight.
type Fill struct{ Weight int }

func (Fill) constraint() {}

// SplitVertical splits area top-to-bottom. Fixed lengths are allocated
// first and clamped to the area; Fill slots share what is left, with any
// rounding remainder going to the last Fill.
func SplitVertical(area Rect, constraints ...Constraint) []Rect {
	sizes := solve(area.Height, constraints)
	out := make([]Rect, len(sizes))
	y := area.Y
	for i, h := range sizes {
		out[i] = Rect{X: area.X, Y: y, Width: area.Width, Height: h}
		y += h
	}
	return out
}

// SplitHorizontal splits area left-to-right.
func SplitHorizontal(area Rect, constraints ...Constraint) []Rect {
	sizes := solve(area.Width, constraints)
	out := make([]Rect, len(sizes))
	x := area.X
	for i, w := range sizes {
		out[i] = Rect{X: x, Y: area.Y, Width: w, Height: area.Height}
		x += w
	}
	return out
}

func solve(total int, constraints []Constraint) []int {
	sizes := make([]int, len(constraints))
	remaining := total
	weights, lastFill := 0, -1
	for i, c := range constraints {
		switch c := c.(type) {
		case Length:
			n := minInt(maxInt(c.Value, 0), maxInt(remaining, 0))
			sizes[i] = n
			remaining -= n
		case Fill:
			weights += maxInt(c.Weight, 1)
			lastFill = i
		}
	}
	if weights == 0 || remaining <= 0 {
		return sizes
	}
	left := remaining
	for i, c := range constraints {
		f, ok := c.(Fill)
		if !ok {
			continue
		}
		if i == lastFill {
			sizes[i] = left
			break
		}
		n := remaining * maxInt(f.Weight, 1) / weights
		sizes[i] = n
		left -= n
	}
	return sizes
}

// Grid lays out equally sized cells in rows of Columns.
type Grid struct {
	Columns    int
	CellHeight int
	GapX, GapY int
}

// Place returns n cell rects inside a region of the given width whose top
// edge is at y. Cell widths are derived from width; the last column absorbs
// the rounding remainder so rows are flush on both sides.
func (g Grid) Place(x, y, width, n int) []Rect {
	cols := maxInt(g.Columns, 1)
	if n < cols {
		cols = maxInt(n, 1)
	}
	usable := width - g.GapX*(cols-1)
	cw := maxInt(usable/cols, 1)
	h := maxInt(g.CellHeight, 1)

	out := make([]Rect, n)
	for i := range out {
		row, col := i/cols, i%cols
		w := cw
		if col == cols-1 {
			w = maxInt(usable-cw*(cols-1), 1)
		}
		out[i] = Rect{
			X:      x + col*(cw+g.GapX),
			Y:      y + row*(h+g.GapY),
			Width:  w,
			Height: h,
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
