package render

import (
	"github.com/matzehuels/dockyard/pkg/geom"
	"github.com/matzehuels/dockyard/pkg/scene"
)

// Metrics are the nominal cell dimensions used by the geometric sinks.
type Metrics struct {
	CellWidth  float64
	CellHeight float64

	// Unit scales the table's integer spacing into output units.
	Unit float64
}

// DefaultMetrics suit a browser-like preview in pixels.
var DefaultMetrics = Metrics{CellWidth: 160, CellHeight: 48, Unit: 4}

// Box is one rendered cell positioned in output space.
type Box struct {
	Cell *scene.Cell
	geom.Rect

	Col, Row         int
	ColSpan, RowSpan int

	// Shaded is set on odd rows when alternate shading is on.
	Shaded bool
}

// Layout is a table measured for output.
type Layout struct {
	Width, Height float64
	Columns, Rows int
	Spacing       float64

	ShowGrid  bool
	Alternate bool

	Boxes []Box
}

// Measure positions every cell of t on a uniform grid. Spanning cells cover
// the gutters between the columns and rows they absorb.
func Measure(t *scene.Table, m Metrics) Layout {
	if m.CellWidth <= 0 || m.CellHeight <= 0 {
		m = DefaultMetrics
	}
	body := t.Body()
	gap := float64(t.Spacing) * m.Unit

	l := Layout{
		Columns:   body.Columns,
		Rows:      len(body.Rows),
		Spacing:   gap,
		ShowGrid:  t.ShowGrid,
		Alternate: t.Alternate,
	}
	l.Width = extent(l.Columns, m.CellWidth, gap)
	l.Height = extent(l.Rows, m.CellHeight, gap)

	for _, c := range body.Cells() {
		cs, rs := max(c.ColSpan, 1), max(c.RowSpan, 1)
		l.Boxes = append(l.Boxes, Box{
			Cell: c,
			Rect: geom.R(
				gap+float64(c.X)*(m.CellWidth+gap),
				gap+float64(c.Y)*(m.CellHeight+gap),
				float64(cs)*m.CellWidth+float64(cs-1)*gap,
				float64(rs)*m.CellHeight+float64(rs-1)*gap,
			),
			Col:     c.X,
			Row:     c.Y,
			ColSpan: cs,
			RowSpan: rs,
			Shaded:  t.Alternate && c.Y%2 == 1,
		})
	}
	return l
}

func extent(n int, size, gap float64) float64 {
	if n == 0 {
		return 0
	}
	return float64(n)*size + float64(n+1)*gap
}
