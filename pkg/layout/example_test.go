package layout_test

import (
	"fmt"

	"github.com/matzehuels/dockyard/pkg/layout"
	"github.com/matzehuels/dockyard/pkg/scene"
)

func ExampleSurface_AddItem() {
	s := layout.New(&layout.Slot{}, nil)

	s.AddItem(scene.Text("Name"), 0, 0, 1, 1)
	s.AddItem(scene.Text("Value"), 1, 0, 1, 1)
	s.AddItem(scene.Text("Description"), 0, 1, 2, 1)

	for _, row := range s.Scene().Rows() {
		for _, c := range row.Cells {
			fmt.Printf("(%d,%d) span=%d %s\n", c.X, c.Y, c.ColSpan, c.View())
		}
	}

	_, ok := s.Item(1, 1)
	fmt.Println("item at (1,1):", ok)
	// Output:
	// (0,0) span=1 Name
	// (1,0) span=1 Value
	// (0,1) span=2 Description
	// item at (1,1): false
}

func ExampleSurface_Batch() {
	s := layout.New(&layout.Slot{}, nil)

	s.Batch(func(s *layout.Surface) {
		for i, label := range []string{"host", "port", "user"} {
			s.Add(scene.Text(label), 0, i)
		}
	})

	cols, rows := s.Extent()
	fmt.Printf("%dx%d grid, %d rebuild\n", cols, rows, s.Rebuilds())
	// Output:
	// 1x3 grid, 1 rebuild
}
