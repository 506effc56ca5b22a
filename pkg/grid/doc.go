// Package grid implements the logical cell grid behind a layout surface.
//
// A [Grid] is a rectangular, grow-only 2-D array of [Cell] values. It knows
// nothing about rendering: cell content is a type parameter, so the grid's
// invariants (rectangularity, monotonic growth, merge atomicity) can be tested
// without any view tree.
//
// # Merge Regions
//
// [Grid.Merge] collapses a rectangular block under its top-left origin cell:
//
//	g := grid.New(func(x, y int) string { return fmt.Sprintf("%d,%d", x, y) })
//	g.Resize(2, 2)
//	g.Merge(0, 0, 2, 2)          // origin (0,0) spans 2x2
//	g.Content(1, 1)              // "", false: absorbed
//	g.Origin(1, 1)               // 0, 0, true
//	g.Merge(1, 1, 2, 2)          // MERGE_CONFLICT, grid unchanged
//
// Offsets follow the layout engine's bookkeeping: the origin records
// span-1 per axis and trailing members record their negative position within
// the region. Any non-zero offset makes a cell ineligible for another merge.
package grid
