// Package layout implements the grid layout manager behind every panel.
//
// A [Surface] pairs a logical [grid.Grid] with a rendered [scene.Table] and
// keeps the two consistent: each mutating call outside a batch regenerates
// the table's rows from the grid.
//
// # Placement
//
//	s := layout.New(&layout.Slot{}, panel)
//	s.AddItem(scene.Text("Name"), 0, 0, 1, 1)
//	s.AddItem(scene.Text("Description"), 0, 1, 2, 1) // spans two columns
//	cell, ok := s.Item(1, 1)                          // nil, false: absorbed
//
// Placement never panics: negative origins clamp to zero, non-positive sizes
// become one, and a rejected merge comes back as a MERGE_CONFLICT or
// OUT_OF_RANGE error with nothing placed.
//
// # Batching
//
// Populating many items one by one rebuilds the rows after every call. Wrap
// the calls in [Surface.StartBatch] and [Surface.FinishBatch] (or use
// [Surface.Batch]) to collapse them into a single rebuild:
//
//	s.Batch(func(s *layout.Surface) {
//	    for i, field := range fields {
//	        s.Add(field, 0, i)
//	    }
//	})
//
// [grid.Grid]: github.com/matzehuels/dockyard/pkg/grid
// [scene.Table]: github.com/matzehuels/dockyard/pkg/scene
package layout
