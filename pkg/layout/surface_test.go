package layout

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/grid"
	"github.com/matzehuels/dockyard/pkg/observability"
	"github.com/matzehuels/dockyard/pkg/scene"
)

func newTestSurface(t *testing.T, opts ...Option) (*Surface, *Slot) {
	t.Helper()
	slot := &Slot{}
	var buf bytes.Buffer
	opts = append([]Option{WithLogger(log.New(&buf))}, opts...)
	return New(slot, "panel", opts...), slot
}

// rowShape returns the grid positions of the cells in each rendered row.
func rowShape(tbl *scene.Table) [][][2]int {
	var out [][][2]int
	for _, r := range tbl.Rows() {
		var row [][2]int
		for _, c := range r.Cells {
			row = append(row, [2]int{c.X, c.Y})
		}
		out = append(out, row)
	}
	return out
}

func TestNewMountsTable(t *testing.T) {
	s, slot := newTestSurface(t)

	if slot.Table() != s.Scene() {
		t.Fatal("New should mount the table into the container")
	}
	if s.Parent() != "panel" {
		t.Errorf("Parent() = %v, want panel", s.Parent())
	}
	if _, err := uuid.Parse(s.ID()); err != nil {
		t.Errorf("ID() = %q is not a uuid: %v", s.ID(), err)
	}
	if cols, rows := s.Extent(); cols != 0 || rows != 0 {
		t.Errorf("Extent() = %dx%d, want empty", cols, rows)
	}
}

func TestWithID(t *testing.T) {
	id := uuid.MustParse("6f1c2a4e-0000-4000-8000-000000000001")
	s, _ := newTestSurface(t, WithID(id))
	if s.ID() != id.String() {
		t.Errorf("ID() = %s, want %s", s.ID(), id)
	}
}

func TestAddItemRoundTrip(t *testing.T) {
	s, _ := newTestSurface(t)
	r := scene.Text("renderable")

	cell, err := s.AddItem(r, 1, 1, 1, 1)
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}

	got, ok := s.Item(1, 1)
	if !ok {
		t.Fatal("Item(1,1) should exist")
	}
	if got != cell {
		t.Error("Item should return the handle AddItem returned")
	}
	if !got.Contains(r) {
		t.Error("handle should contain the renderable")
	}

	if _, ok := s.Item(5, 5); ok {
		t.Error("Item(5,5) beyond the grid should report none")
	}
	if cols, rows := s.Extent(); cols != 2 || rows != 2 {
		t.Errorf("Item lookups must not grow the grid, extent = %dx%d", cols, rows)
	}
}

func TestAddItemNormalizesCoordinates(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
		wantCols   int
		wantRows   int
		wantSpan   [2]int
	}{
		{"negative origin", -4, -1, 1, 1, 1, 1, [2]int{1, 1}},
		{"zero size", 0, 0, 0, 0, 1, 1, [2]int{1, 1}},
		{"negative size", 2, 0, -3, -1, 3, 1, [2]int{1, 1}},
		{"span", 0, 0, 3, 2, 3, 2, [2]int{3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSurface(t)
			cell, err := s.AddItem(scene.Text("x"), tt.x, tt.y, tt.w, tt.h)
			if err != nil {
				t.Fatalf("AddItem() error: %v", err)
			}
			if cols, rows := s.Extent(); cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("extent = %dx%d, want %dx%d", cols, rows, tt.wantCols, tt.wantRows)
			}
			if cell.ColSpan != tt.wantSpan[0] || cell.RowSpan != tt.wantSpan[1] {
				t.Errorf("span = %dx%d, want %dx%d", cell.ColSpan, cell.RowSpan, tt.wantSpan[0], tt.wantSpan[1])
			}
		})
	}
}

func TestAddItemMergedRegion(t *testing.T) {
	s, _ := newTestSurface(t)

	cell, err := s.AddItem(scene.Text("wide"), 0, 0, 2, 2)
	if err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}
	if got, ok := s.Item(0, 0); !ok || got != cell {
		t.Error("origin lookup should return the merged cell")
	}
	for _, pos := range [][2]int{{1, 0}, {0, 1}, {1, 1}} {
		if _, ok := s.Item(pos[0], pos[1]); ok {
			t.Errorf("Item%v inside the region should report none", pos)
		}
	}

	if _, err := s.AddItem(scene.Text("x"), 1, 1, 1, 1); !errors.Is(err, errors.ErrCodeMergeConflict) {
		t.Errorf("placing into an absorbed cell: error = %v, want MERGE_CONFLICT", err)
	}

	r, ok := s.Region(1, 1)
	if !ok || r != (grid.Region{X: 0, Y: 0, W: 2, H: 2}) {
		t.Errorf("Region(1,1) = %+v, %v", r, ok)
	}
}

func TestAddItemFailedMergePlacesNothing(t *testing.T) {
	s, _ := newTestSurface(t)
	s.SetGridSpacing(2)

	if _, err := s.AddItem(scene.Text("first"), 0, 0, 2, 2); err != nil {
		t.Fatalf("first AddItem() error: %v", err)
	}

	second := scene.Text("second")
	_, err := s.AddItem(second, 1, 1, 2, 2)
	if !errors.Is(err, errors.ErrCodeMergeConflict) {
		t.Fatalf("overlapping AddItem() error = %v, want MERGE_CONFLICT", err)
	}

	for _, c := range s.Scene().Body().Cells() {
		if c.Contains(second) {
			t.Errorf("failed placement left content in cell (%d,%d)", c.X, c.Y)
		}
	}
	first, _ := s.Item(0, 0)
	if first.ColSpan != 2 || first.RowSpan != 2 {
		t.Errorf("first region changed: span %dx%d", first.ColSpan, first.RowSpan)
	}
	if r, _ := s.Region(1, 1); r.X != 0 || r.Y != 0 {
		t.Errorf("cell (1,1) should still belong to origin (0,0), got %+v", r)
	}
}

func TestRebuildSkipsAbsorbedCells(t *testing.T) {
	s, _ := newTestSurface(t)
	if _, err := s.AddItem(scene.Text("a"), 0, 0, 2, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddItem(scene.Text("b"), 2, 0, 1, 2); err != nil {
		t.Fatal(err)
	}

	want := [][][2]int{
		{{0, 0}, {2, 0}},
		{{0, 1}, {1, 1}},
	}
	if diff := cmp.Diff(want, rowShape(s.Scene())); diff != "" {
		t.Errorf("rendered rows mismatch (-want +got):\n%s", diff)
	}
	if got := s.Scene().Body().Columns; got != 3 {
		t.Errorf("Columns = %d, want 3", got)
	}
}

func TestEveryMutationRebuilds(t *testing.T) {
	s, _ := newTestSurface(t)
	for i := 0; i < 5; i++ {
		if _, err := s.Add(scene.Text("x"), 0, i); err != nil {
			t.Fatal(err)
		}
	}
	if s.Rebuilds() != 5 {
		t.Errorf("Rebuilds() = %d, want 5", s.Rebuilds())
	}
}

func TestBatchCollapsesRebuilds(t *testing.T) {
	s, _ := newTestSurface(t)

	s.StartBatch()
	for i := 0; i < 10; i++ {
		if _, err := s.Add(scene.Text("x"), i%3, i/3); err != nil {
			t.Fatal(err)
		}
	}
	if s.Rebuilds() != 0 {
		t.Fatalf("Rebuilds() during batch = %d, want 0", s.Rebuilds())
	}
	if got := len(s.Scene().Rows()); got != 0 {
		t.Fatalf("rendered rows during batch = %d, want 0", got)
	}

	s.FinishBatch()
	if s.Rebuilds() != 1 {
		t.Errorf("Rebuilds() after batch = %d, want 1", s.Rebuilds())
	}
	if got := s.Scene().Body().Len(); got != 12 {
		t.Errorf("rendered cells = %d, want 12", got)
	}

	s.FinishBatch()
	if s.Rebuilds() != 1 {
		t.Errorf("FinishBatch outside a batch should not rebuild, got %d", s.Rebuilds())
	}
}

func TestBatchHelper(t *testing.T) {
	s, _ := newTestSurface(t)
	s.Batch(func(s *Surface) {
		if !s.Batching() {
			t.Error("Batching() should be true inside Batch")
		}
		s.Add(scene.Text("a"), 0, 0)
		s.Add(scene.Text("b"), 1, 0)
	})
	if s.Batching() {
		t.Error("Batching() should be false after Batch")
	}
	if s.Rebuilds() != 1 {
		t.Errorf("Rebuilds() = %d, want 1", s.Rebuilds())
	}
}

func TestToggles(t *testing.T) {
	s, _ := newTestSurface(t)

	if got := s.SetShowGrid(true); !got {
		t.Error("SetShowGrid(true) should return true")
	}
	if !s.ShowGrid() {
		t.Error("ShowGrid() should report true")
	}
	if got := s.SetGridSpacing(3); got != 3 {
		t.Errorf("SetGridSpacing(3) = %d", got)
	}
	if got := s.SetGridSpacing(-2); got != 0 {
		t.Errorf("SetGridSpacing(-2) = %d, want 0", got)
	}
	if got := s.SetGridAlternate(true); !got {
		t.Error("SetGridAlternate(true) should return true")
	}
	if !s.Scene().Alternate || !s.Scene().ShowGrid {
		t.Error("toggles should be reflected on the scene table")
	}
}

func TestWithToggles(t *testing.T) {
	s, _ := newTestSurface(t, WithToggles(Toggles{ShowGrid: true, Spacing: 4}))
	if got := s.Toggles(); got != (Toggles{ShowGrid: true, Spacing: 4}) {
		t.Errorf("Toggles() = %+v", got)
	}
}

func TestClear(t *testing.T) {
	s, slot := newTestSurface(t)
	s.SetShowGrid(true)
	s.SetGridSpacing(5)
	s.SetGridAlternate(true)
	before := s.Toggles()

	old, _ := s.AddItem(scene.Text("x"), 2, 2, 1, 1)
	oldTable := s.Scene()

	s.Clear()
	if cols, rows := s.Extent(); cols != 0 || rows != 0 {
		t.Errorf("extent after Clear = %dx%d", cols, rows)
	}
	if s.Scene() == oldTable {
		t.Error("Clear should replace the table")
	}
	if slot.Table() != s.Scene() {
		t.Error("Clear should mount the new table")
	}
	if old.Attached() {
		t.Error("cells of the discarded table should be detached")
	}
	if _, ok := s.Item(2, 2); ok {
		t.Error("content should be gone after Clear")
	}

	s.Clear()
	if cols, rows := s.Extent(); cols != 0 || rows != 0 {
		t.Errorf("extent after second Clear = %dx%d", cols, rows)
	}
	if diff := cmp.Diff(before, s.Toggles()); diff != "" {
		t.Errorf("toggles changed across Clear (-before +after):\n%s", diff)
	}
}

func TestSetContainer(t *testing.T) {
	s, first := newTestSurface(t)
	cell, _ := s.Add(scene.Text("kept"), 0, 0)

	second := &Slot{}
	s.SetContainer(second)

	if first.Table() != nil {
		t.Error("old container should be empty")
	}
	if second.Table() != s.Scene() {
		t.Error("new container should hold the table")
	}
	if got, ok := s.Item(0, 0); !ok || got != cell || !got.Contains(scene.Text("kept")) {
		t.Error("content should survive a container swap")
	}
	if s.Container() != second {
		t.Error("Container() should report the new container")
	}

	s.SetContainer(nil)
	if second.Table() != nil {
		t.Error("SetContainer(nil) should unmount")
	}
}

func TestMergeAndUnmerge(t *testing.T) {
	s, _ := newTestSurface(t)
	s.Batch(func(s *Surface) {
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				s.Add(scene.Text("."), x, y)
			}
		}
	})

	if err := s.Merge(0, 0, 2, 2); err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if err := s.Merge(1, 1, 2, 2); !errors.Is(err, errors.ErrCodeMergeConflict) {
		t.Errorf("overlapping Merge() error = %v, want MERGE_CONFLICT", err)
	}
	if err := s.Merge(2, 2, 2, 2); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("Merge beyond extent error = %v, want OUT_OF_RANGE", err)
	}
	if got := s.Scene().Body().Len(); got != 6 {
		t.Errorf("rendered cells after merge = %d, want 6", got)
	}

	if err := s.Unmerge(0, 0); err != nil {
		t.Fatalf("Unmerge() error: %v", err)
	}
	origin, _ := s.Item(0, 0)
	if origin.ColSpan != 1 || origin.RowSpan != 1 {
		t.Errorf("origin span after Unmerge = %dx%d", origin.ColSpan, origin.RowSpan)
	}
	if got := s.Scene().Body().Len(); got != 9 {
		t.Errorf("rendered cells after unmerge = %d, want 9", got)
	}
	if c, ok := s.Item(1, 1); !ok || !c.Empty() {
		t.Error("restored cells should be live and empty")
	}
}

func TestMergeRejectedIsLoggedAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := New(&Slot{}, nil, WithLogger(logger))

	s.AddItem(scene.Text("a"), 0, 0, 2, 2)
	s.AddItem(scene.Text("b"), 1, 1, 2, 2)

	if !strings.Contains(buf.String(), "merge rejected") {
		t.Errorf("expected debug log for rejected merge, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "ERRO") {
		t.Error("rejected merges must not be logged as errors")
	}
}

type recordingHooks struct {
	rebuilds int
	rejected int
	clears   int
}

func (h *recordingHooks) OnRebuild(string, int, int, time.Duration)         { h.rebuilds++ }
func (h *recordingHooks) OnMergeRejected(string, int, int, int, int, error) { h.rejected++ }
func (h *recordingHooks) OnClear(string)                                    { h.clears++ }

func TestLayoutHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetLayoutHooks(h)
	defer observability.Reset()

	s, _ := newTestSurface(t)
	s.AddItem(scene.Text("a"), 0, 0, 2, 2)
	s.AddItem(scene.Text("b"), 1, 1, 2, 2)
	s.Clear()

	if h.rebuilds != 2 || h.rejected != 1 || h.clears != 1 {
		t.Errorf("hooks = %+v, want 2 rebuilds, 1 rejected, 1 clear", *h)
	}
}
