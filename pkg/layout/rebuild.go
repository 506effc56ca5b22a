package layout

import (
	"time"

	"github.com/matzehuels/dockyard/pkg/grid"
	"github.com/matzehuels/dockyard/pkg/observability"
	"github.com/matzehuels/dockyard/pkg/scene"
)

// rebuild regenerates the table body from the grid, row by row, skipping
// cells absorbed by a merge. The new body is attached before the old one is
// released so no cell is ever left without a parent.
func (s *Surface) rebuild() {
	start := time.Now()

	body := &scene.Body{
		Rows:    make([]scene.Row, 0, s.grid.Height()),
		Columns: s.grid.Width(),
	}
	for y := 0; y < s.grid.Height(); y++ {
		row := scene.Row{Y: y}
		for _, c := range s.grid.Row(y) {
			if c.Absorbed() {
				continue
			}
			row.Cells = append(row.Cells, c.Content)
		}
		body.Rows = append(body.Rows, row)
	}

	patch := s.table.Swap(body)
	s.rebuilds++

	elapsed := time.Since(start)
	observability.Layout().OnRebuild(s.ID(), len(body.Rows), body.Len(), elapsed)
	s.logger.Debug("rebuilt surface",
		"surface", s.ID(),
		"rows", len(body.Rows),
		"cells", body.Len(),
		"added", len(patch.Added),
		"removed", len(patch.Removed),
		"duration", elapsed)
}

// Region returns the grid region rendered by the cell covering (x, y).
func (s *Surface) Region(x, y int) (grid.Region, bool) {
	ox, oy, ok := s.grid.Origin(x, y)
	if !ok {
		return grid.Region{}, false
	}
	c, _ := s.grid.At(ox, oy)
	cols, rows := c.Span()
	return grid.Region{X: ox, Y: oy, W: cols, H: rows}, true
}
