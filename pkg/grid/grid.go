package grid

import (
	"github.com/matzehuels/dockyard/pkg/errors"
)

// Offset records a cell's relation to a merge region.
//
// (0,0) marks an unmerged cell. A merge origin records the span minus one
// along each merged axis. Trailing members record their negative position
// relative to the origin, so (Offset.X, Offset.Y) added to their own
// coordinates points back at the origin.
type Offset struct {
	X, Y int
}

// IsZero reports whether the cell is not part of any merge region.
func (o Offset) IsZero() bool { return o.X == 0 && o.Y == 0 }

// Cell is one grid position.
type Cell[T any] struct {
	// Content is the cell's own renderable surface. It is the zero value once
	// the cell has been absorbed into a merge region.
	Content T

	// Live is false for cells absorbed by a merge.
	Live bool

	Offset Offset
}

// Absorbed reports whether the cell belongs to a merge region without being
// its origin.
func (c Cell[T]) Absorbed() bool { return !c.Live }

// Span returns the number of columns and rows covered by the cell. Absorbed
// cells span nothing.
func (c Cell[T]) Span() (cols, rows int) {
	if !c.Live {
		return 0, 0
	}
	return c.Offset.X + 1, c.Offset.Y + 1
}

// Region is a rectangular block of cells.
type Region struct {
	X, Y int
	W, H int
}

// Grid is a rectangular, grow-only 2-D array of cells indexed [row][col].
//
// Every row always has the same length. A Grid is not safe for concurrent
// use; it is owned by exactly one layout surface.
type Grid[T any] struct {
	rows    [][]Cell[T]
	width   int
	newCell func(x, y int) T
}

// New creates an empty grid. newCell produces the content of every cell the
// grid grows into; it may be nil when T's zero value is a usable content.
func New[T any](newCell func(x, y int) T) *Grid[T] {
	return &Grid[T]{newCell: newCell}
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return len(g.rows) }

// InBounds reports whether (x, y) addresses an existing cell.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && y < len(g.rows) && x < g.width
}

func (g *Grid[T]) fresh(x, y int) Cell[T] {
	var content T
	if g.newCell != nil {
		content = g.newCell(x, y)
	}
	return Cell[T]{Content: content, Live: true}
}

// Resize grows the grid so that column maxCol and row maxRow both exist.
// Rows are grown first, then every row is widened to the common width, so
// the array stays rectangular even when a later call asks for more rows but
// fewer columns than an earlier one. Resize never shrinks the grid and
// reports whether anything was added.
func (g *Grid[T]) Resize(maxCol, maxRow int) bool {
	grew := false
	for y := len(g.rows); y <= maxRow; y++ {
		g.rows = append(g.rows, make([]Cell[T], 0, g.width))
		grew = true
	}

	width := max(g.width, maxCol+1)
	if len(g.rows) == 0 {
		// Columns cannot exist without a row to hold them.
		return grew
	}
	for y := range g.rows {
		for x := len(g.rows[y]); x < width; x++ {
			g.rows[y] = append(g.rows[y], g.fresh(x, y))
			grew = true
		}
	}
	g.width = width
	return grew
}

// At returns the cell at column x, row y.
func (g *Grid[T]) At(x, y int) (Cell[T], bool) {
	if !g.InBounds(x, y) {
		return Cell[T]{}, false
	}
	return g.rows[y][x], true
}

// Content returns the live content at (x, y). Absorbed and out-of-range
// positions report false.
func (g *Grid[T]) Content(x, y int) (T, bool) {
	c, ok := g.At(x, y)
	if !ok || !c.Live {
		var zero T
		return zero, false
	}
	return c.Content, true
}

// Origin returns the coordinates of the cell that renders position (x, y):
// the position itself for unmerged cells and origins, the merge origin for
// absorbed cells.
func (g *Grid[T]) Origin(x, y int) (ox, oy int, ok bool) {
	c, ok := g.At(x, y)
	if !ok {
		return 0, 0, false
	}
	if c.Live {
		return x, y, true
	}
	return x + c.Offset.X, y + c.Offset.Y, true
}

// Merge collapses the w x h block at (x, y) under the origin cell.
//
// Every target cell must exist, be live and not already belong to a merge
// region. Validation completes before anything is mutated, so a failed merge
// leaves the grid exactly as it was.
func (g *Grid[T]) Merge(x, y, w, h int) (Region, error) {
	if w < 1 || h < 1 {
		return Region{}, errors.New(errors.ErrCodeInvalidInput, "merge size %dx%d must be positive", w, h)
	}
	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			c, ok := g.At(x+xx, y+yy)
			if !ok {
				return Region{}, errors.New(errors.ErrCodeOutOfRange,
					"cell (%d,%d) outside %dx%d grid", x+xx, y+yy, g.width, len(g.rows))
			}
			if !c.Live || !c.Offset.IsZero() {
				return Region{}, errors.New(errors.ErrCodeMergeConflict,
					"cell (%d,%d) already belongs to a merge region", x+xx, y+yy)
			}
		}
	}

	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			c := &g.rows[y+yy][x+xx]
			if xx == 0 && yy == 0 {
				c.Offset = Offset{X: w - 1, Y: h - 1}
				continue
			}
			var zero T
			c.Content = zero
			c.Live = false
			c.Offset = Offset{X: -xx, Y: -yy}
		}
	}
	return Region{X: x, Y: y, W: w, H: h}, nil
}

// Unmerge splits the merge region whose origin is at (x, y) back into
// independent cells. Absorbed cells receive fresh content. The origin keeps
// its content.
func (g *Grid[T]) Unmerge(x, y int) (Region, error) {
	c, ok := g.At(x, y)
	if !ok {
		return Region{}, errors.New(errors.ErrCodeOutOfRange, "cell (%d,%d) outside %dx%d grid", x, y, g.width, len(g.rows))
	}
	if !c.Live {
		return Region{}, errors.New(errors.ErrCodeInvalidInput, "cell (%d,%d) is not a merge origin", x, y)
	}
	if c.Offset.IsZero() {
		return Region{X: x, Y: y, W: 1, H: 1}, nil
	}

	r := Region{X: x, Y: y, W: c.Offset.X + 1, H: c.Offset.Y + 1}
	for yy := 0; yy < r.H; yy++ {
		for xx := 0; xx < r.W; xx++ {
			if xx == 0 && yy == 0 {
				g.rows[y][x].Offset = Offset{}
				continue
			}
			g.rows[y+yy][x+xx] = g.fresh(x+xx, y+yy)
		}
	}
	return r, nil
}

// Walk visits every cell in row-major order. Returning false from fn stops
// the walk.
func (g *Grid[T]) Walk(fn func(x, y int, c Cell[T]) bool) {
	for y, row := range g.rows {
		for x, c := range row {
			if !fn(x, y, c) {
				return
			}
		}
	}
}

// Row returns a copy of row y.
func (g *Grid[T]) Row(y int) []Cell[T] {
	if y < 0 || y >= len(g.rows) {
		return nil
	}
	out := make([]Cell[T], len(g.rows[y]))
	copy(out, g.rows[y])
	return out
}
