// Package scene is the rendered representation of a layout surface: a
// table-like tree of rows and cells that output sinks walk to draw.
//
// Cells are long-lived handles. A layout surface regenerates the rows that
// hold them (a new [Body]) whenever its grid changes, but a given grid
// position keeps the same *Cell for its whole life, so a handle returned to a
// host stays valid across rebuilds.
package scene

import (
	"strings"
)

// Renderable is any content that can be placed into a cell.
type Renderable interface {
	View() string
}

// Text is a plain string renderable.
type Text string

// View implements Renderable.
func (t Text) View() string { return string(t) }

// Cell is one rendered grid position. Merge origins carry spans greater
// than one; cells absorbed by a merge never appear in a [Body].
type Cell struct {
	X, Y    int
	ColSpan int
	RowSpan int
	Items   []Renderable

	body *Body
}

// NewCell creates an unattached 1x1 cell for grid position (x, y).
func NewCell(x, y int) *Cell {
	return &Cell{X: x, Y: y, ColSpan: 1, RowSpan: 1}
}

// Append adds r to the cell's content.
func (c *Cell) Append(r Renderable) {
	c.Items = append(c.Items, r)
}

// Contains reports whether r was appended to this cell. Renderables are
// compared with ==, so they must be comparable values or pointers.
func (c *Cell) Contains(r Renderable) bool {
	for _, it := range c.Items {
		if it == r {
			return true
		}
	}
	return false
}

// Empty reports whether the cell holds no content.
func (c *Cell) Empty() bool { return len(c.Items) == 0 }

// View stacks the views of all items vertically.
func (c *Cell) View() string {
	views := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		views = append(views, it.View())
	}
	return strings.Join(views, "\n")
}

// Attached reports whether the cell is part of a body.
func (c *Cell) Attached() bool { return c.body != nil }

// Row is one rendered row of cells.
type Row struct {
	Y     int
	Cells []*Cell
}

// Body is the set of rows generated from a grid in one rebuild pass.
type Body struct {
	Rows []Row

	// Columns is the grid width the body was generated from. Spanning cells
	// mean a row may hold fewer cells than this.
	Columns int

	// Generation increases with every rebuild of the owning surface.
	Generation int
}

// Cells returns every cell in the body in row-major order.
func (b *Body) Cells() []*Cell {
	if b == nil {
		return nil
	}
	var out []*Cell
	for _, r := range b.Rows {
		out = append(out, r.Cells...)
	}
	return out
}

// Len returns the number of cells in the body.
func (b *Body) Len() int {
	n := 0
	if b != nil {
		for _, r := range b.Rows {
			n += len(r.Cells)
		}
	}
	return n
}

// attach claims every cell for b.
func (b *Body) attach() {
	for _, r := range b.Rows {
		for _, c := range r.Cells {
			c.body = b
		}
	}
}

// release detaches cells that still belong to b. Cells already claimed by a
// newer body are left alone.
func (b *Body) release() {
	for _, r := range b.Rows {
		for _, c := range r.Cells {
			if c.body == b {
				c.body = nil
			}
		}
	}
}

// Table is the root rendered node mounted into a host container.
type Table struct {
	ShowGrid  bool
	Spacing   int
	Alternate bool

	body *Body
}

// NewTable creates a table with an empty body.
func NewTable() *Table {
	return &Table{body: &Body{}}
}

// Body returns the current body.
func (t *Table) Body() *Body { return t.body }

// Rows returns the current body's rows.
func (t *Table) Rows() []Row { return t.body.Rows }

// Swap installs b as the table's body and returns the patch between the old
// and the new body. The new body claims its cells before the old one lets go
// of them, so a cell carried over between bodies is never detached.
func (t *Table) Swap(b *Body) Patch {
	old := t.body
	if old != nil {
		b.Generation = old.Generation + 1
	}
	b.attach()
	t.body = b
	if old != nil {
		old.release()
	}
	return Diff(old, b)
}

// Release detaches every cell of the current body. The table must not be
// used afterwards.
func (t *Table) Release() {
	if t.body != nil {
		t.body.release()
	}
}
