package grid

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/dockyard/pkg/errors"
)

func label(x, y int) string { return fmt.Sprintf("%d,%d", x, y) }

func assertRectangular[T any](t *testing.T, g *Grid[T]) {
	t.Helper()
	for y := 0; y < g.Height(); y++ {
		if got := len(g.Row(y)); got != g.Width() {
			t.Fatalf("row %d has %d cells, want %d", y, got, g.Width())
		}
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name       string
		calls      [][2]int
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "single cell",
			calls:      [][2]int{{0, 0}},
			wantWidth:  1,
			wantHeight: 1,
		},
		{
			name:       "more rows fewer columns",
			calls:      [][2]int{{2, 1}, {0, 3}},
			wantWidth:  3,
			wantHeight: 4,
		},
		{
			name:       "never shrinks",
			calls:      [][2]int{{4, 4}, {1, 1}},
			wantWidth:  5,
			wantHeight: 5,
		},
		{
			name:       "negative request is a no-op",
			calls:      [][2]int{{-1, -1}},
			wantWidth:  0,
			wantHeight: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(label)
			for _, c := range tt.calls {
				g.Resize(c[0], c[1])
			}
			if g.Width() != tt.wantWidth || g.Height() != tt.wantHeight {
				t.Errorf("extent = %dx%d, want %dx%d", g.Width(), g.Height(), tt.wantWidth, tt.wantHeight)
			}
			assertRectangular(t, g)
		})
	}
}

func TestResizeReportsGrowth(t *testing.T) {
	g := New[int](nil)
	if !g.Resize(1, 1) {
		t.Error("first Resize should report growth")
	}
	if g.Resize(1, 1) {
		t.Error("repeated Resize should not report growth")
	}
	if g.Resize(0, 0) {
		t.Error("smaller Resize should not report growth")
	}
}

func TestResizeRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		g := New(label)
		maxW, maxH := 0, 0
		for j := 0; j < 10; j++ {
			w, h := rng.Intn(8), rng.Intn(8)
			g.Resize(w, h)
			maxW, maxH = max(maxW, w+1), max(maxH, h+1)

			assertRectangular(t, g)
			if g.Width() != maxW || g.Height() != maxH {
				t.Fatalf("after Resize(%d,%d): extent %dx%d, want %dx%d", w, h, g.Width(), g.Height(), maxW, maxH)
			}
		}
	}
}

func TestResizeKeepsContent(t *testing.T) {
	g := New(label)
	g.Resize(1, 1)
	if _, err := g.Merge(0, 0, 2, 1); err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	g.Resize(3, 3)

	c, _ := g.At(0, 0)
	if c.Content != "0,0" || c.Offset != (Offset{X: 1}) {
		t.Errorf("origin after resize = %+v", c)
	}
	if got, ok := g.Content(3, 3); !ok || got != "3,3" {
		t.Errorf("Content(3,3) = %q, %v", got, ok)
	}
}

func TestMerge(t *testing.T) {
	g := New(label)
	g.Resize(2, 2)

	r, err := g.Merge(0, 0, 2, 2)
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if diff := cmp.Diff(Region{X: 0, Y: 0, W: 2, H: 2}, r); diff != "" {
		t.Errorf("region mismatch (-want +got):\n%s", diff)
	}

	want := map[[2]int]Offset{
		{0, 0}: {X: 1, Y: 1},
		{1, 0}: {X: -1, Y: 0},
		{0, 1}: {X: 0, Y: -1},
		{1, 1}: {X: -1, Y: -1},
		{2, 2}: {},
	}
	for pos, off := range want {
		c, _ := g.At(pos[0], pos[1])
		if c.Offset != off {
			t.Errorf("offset at %v = %+v, want %+v", pos, c.Offset, off)
		}
	}

	if _, ok := g.Content(1, 1); ok {
		t.Error("absorbed cell should have no content")
	}
	if got, ok := g.Content(0, 0); !ok || got != "0,0" {
		t.Errorf("origin content = %q, %v", got, ok)
	}
	if cols, rows := mustAt(t, g, 0, 0).Span(); cols != 2 || rows != 2 {
		t.Errorf("origin span = %dx%d, want 2x2", cols, rows)
	}
}

func mustAt[T any](t *testing.T, g *Grid[T], x, y int) Cell[T] {
	t.Helper()
	c, ok := g.At(x, y)
	if !ok {
		t.Fatalf("At(%d,%d) out of range", x, y)
	}
	return c
}

func TestMergeAtomicity(t *testing.T) {
	g := New(label)
	g.Resize(2, 2)

	if _, err := g.Merge(0, 0, 2, 2); err != nil {
		t.Fatalf("first Merge() error: %v", err)
	}

	var before [][]Cell[string]
	for y := 0; y < g.Height(); y++ {
		before = append(before, g.Row(y))
	}

	_, err := g.Merge(1, 1, 2, 2)
	if !errors.Is(err, errors.ErrCodeMergeConflict) {
		t.Fatalf("overlapping Merge() error = %v, want MERGE_CONFLICT", err)
	}

	var after [][]Cell[string]
	for y := 0; y < g.Height(); y++ {
		after = append(after, g.Row(y))
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("failed merge mutated the grid (-before +after):\n%s", diff)
	}

	ox, oy, ok := g.Origin(1, 1)
	if !ok || ox != 0 || oy != 0 {
		t.Errorf("Origin(1,1) = (%d,%d,%v), want (0,0,true)", ox, oy, ok)
	}
}

func TestMergeFailures(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
		code       errors.Code
	}{
		{"beyond extent", 1, 1, 3, 1, errors.ErrCodeOutOfRange},
		{"negative origin", -1, 0, 2, 1, errors.ErrCodeOutOfRange},
		{"zero width", 0, 0, 0, 2, errors.ErrCodeInvalidInput},
		{"overlaps existing origin", 0, 0, 2, 1, errors.ErrCodeMergeConflict},
		{"overlaps absorbed cell", 2, 0, 1, 2, errors.ErrCodeMergeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(label)
			g.Resize(2, 2)
			if _, err := g.Merge(1, 0, 2, 1); err != nil {
				t.Fatalf("setup Merge() error: %v", err)
			}

			_, err := g.Merge(tt.x, tt.y, tt.w, tt.h)
			if !errors.Is(err, tt.code) {
				t.Errorf("Merge(%d,%d,%d,%d) error = %v, want %s", tt.x, tt.y, tt.w, tt.h, err, tt.code)
			}
		})
	}
}

func TestMergeSingleCell(t *testing.T) {
	g := New(label)
	g.Resize(0, 0)

	if _, err := g.Merge(0, 0, 1, 1); err != nil {
		t.Fatalf("1x1 Merge() error: %v", err)
	}
	if c := mustAt(t, g, 0, 0); !c.Offset.IsZero() || !c.Live {
		t.Errorf("1x1 merge should leave the cell untouched, got %+v", c)
	}
}

func TestUnmerge(t *testing.T) {
	g := New(label)
	g.Resize(2, 2)
	if _, err := g.Merge(1, 1, 2, 2); err != nil {
		t.Fatalf("Merge() error: %v", err)
	}

	r, err := g.Unmerge(1, 1)
	if err != nil {
		t.Fatalf("Unmerge() error: %v", err)
	}
	if r != (Region{X: 1, Y: 1, W: 2, H: 2}) {
		t.Errorf("region = %+v", r)
	}

	g.Walk(func(x, y int, c Cell[string]) bool {
		if !c.Live || !c.Offset.IsZero() {
			t.Errorf("cell (%d,%d) still merged: %+v", x, y, c)
		}
		if c.Content != label(x, y) {
			t.Errorf("cell (%d,%d) content = %q", x, y, c.Content)
		}
		return true
	})

	if _, err := g.Merge(0, 0, 3, 3); err != nil {
		t.Errorf("region should be mergeable again: %v", err)
	}
}

func TestUnmergeRejectsAbsorbed(t *testing.T) {
	g := New(label)
	g.Resize(1, 0)
	if _, err := g.Merge(0, 0, 2, 1); err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if _, err := g.Unmerge(1, 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Unmerge(absorbed) error = %v, want INVALID_INPUT", err)
	}
	if _, err := g.Unmerge(5, 5); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("Unmerge(out of range) error = %v, want OUT_OF_RANGE", err)
	}
}

func TestWalkStops(t *testing.T) {
	g := New(label)
	g.Resize(2, 2)

	visited := 0
	g.Walk(func(x, y int, c Cell[string]) bool {
		visited++
		return visited < 4
	})
	if visited != 4 {
		t.Errorf("visited = %d, want 4", visited)
	}
}
