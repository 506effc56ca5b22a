package layout

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/grid"
	"github.com/matzehuels/dockyard/pkg/observability"
	"github.com/matzehuels/dockyard/pkg/scene"
)

// Surface owns one logical grid and its rendered table.
//
// Every mutating call outside a batch ends with a full rebuild of the
// table's rows, so the rendered state always matches the grid when the call
// returns. A Surface is not safe for concurrent use.
type Surface struct {
	id        uuid.UUID
	container Container
	parent    any

	grid  *grid.Grid[*scene.Cell]
	table *scene.Table

	initial  Toggles
	batching bool
	rebuilds int

	logger *log.Logger
}

// New creates an empty surface mounted into container. parent is an opaque
// back-reference to the owning panel; the surface only reports it through
// [Surface.Parent]. container may be nil and attached later with
// [Surface.SetContainer].
func New(container Container, parent any, opts ...Option) *Surface {
	s := &Surface{
		id:     uuid.New(),
		parent: parent,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.init()
	s.applyToggles(s.initial)
	s.SetContainer(container)
	return s
}

func (s *Surface) init() {
	s.grid = grid.New(scene.NewCell)
	s.table = scene.NewTable()
}

// ID returns the surface's identifier.
func (s *Surface) ID() string { return s.id.String() }

// Parent returns the back-reference recorded at construction.
func (s *Surface) Parent() any { return s.parent }

// Scene returns the root rendered node for the host to mount.
func (s *Surface) Scene() *scene.Table { return s.table }

// Extent returns the grid's column and row count.
func (s *Surface) Extent() (cols, rows int) { return s.grid.Width(), s.grid.Height() }

// Rebuilds returns how many times the rendered rows were regenerated.
func (s *Surface) Rebuilds() int { return s.rebuilds }

// Container returns the container the table is mounted into.
func (s *Surface) Container() Container { return s.container }

// SetContainer moves the rendered table from the current container to c.
// The grid and all placed content are kept.
func (s *Surface) SetContainer(c Container) {
	if s.container != nil {
		s.container.Unmount(s.table)
	}
	s.container = c
	if c != nil {
		c.Mount(s.table)
	}
}

// normalize applies the placement defaults: negative origins clamp to 0 and
// non-positive sizes become 1.
func normalize(x, y, w, h int) (int, int, int, int) {
	return max(x, 0), max(y, 0), max(w, 1), max(h, 1)
}

// AddItem places r into the cell at (x, y), merging a w x h block first when
// either size exceeds one. The grid always grows to fit the block. If the
// merge is rejected nothing is placed and the merge error is returned.
func (s *Surface) AddItem(r scene.Renderable, x, y, w, h int) (*scene.Cell, error) {
	x, y, w, h = normalize(x, y, w, h)
	defer s.flush()

	s.resizeGrid(x+w-1, y+h-1)

	if w > 1 || h > 1 {
		if err := s.mergeGrid(x, y, w, h); err != nil {
			return nil, err
		}
	}

	cell, ok := s.grid.Content(x, y)
	if !ok {
		ox, oy, _ := s.grid.Origin(x, y)
		return nil, errors.New(errors.ErrCodeMergeConflict,
			"cell (%d,%d) is covered by the region at (%d,%d)", x, y, ox, oy)
	}
	cell.Append(r)
	return cell, nil
}

// Add places r at (x, y) with a 1x1 footprint.
func (s *Surface) Add(r scene.Renderable, x, y int) (*scene.Cell, error) {
	return s.AddItem(r, x, y, 1, 1)
}

// Item returns the rendered cell at (x, y). Positions outside the grid and
// positions absorbed by a merge report false; only a region's origin exposes
// the merged cell.
func (s *Surface) Item(x, y int) (*scene.Cell, bool) {
	return s.grid.Content(x, y)
}

// Merge collapses the w x h block at (x, y) into one cell without placing
// anything. The grid is not grown; every target cell must already exist.
func (s *Surface) Merge(x, y, w, h int) error {
	defer s.flush()
	return s.mergeGrid(x, y, w, h)
}

// Unmerge splits the region whose origin is (x, y) back into 1x1 cells.
// Content placed in the origin stays there.
func (s *Surface) Unmerge(x, y int) error {
	defer s.flush()

	r, err := s.grid.Unmerge(x, y)
	if err != nil {
		return err
	}
	cell, _ := s.grid.Content(x, y)
	cell.ColSpan, cell.RowSpan = 1, 1
	s.logger.Debug("unmerged region", "surface", s.ID(), "x", r.X, "y", r.Y, "w", r.W, "h", r.H)
	return nil
}

// Clear removes all content. The three visual toggles survive.
func (s *Surface) Clear() {
	saved := s.Toggles()

	if s.container != nil {
		s.container.Unmount(s.table)
	}
	s.table.Release()
	s.init()
	if s.container != nil {
		s.container.Mount(s.table)
	}

	s.applyToggles(saved)
	observability.Layout().OnClear(s.ID())
	s.logger.Debug("cleared surface", "surface", s.ID())
}

// StartBatch suspends rebuilds. Grid changes still apply immediately but the
// rendered rows are only regenerated by [Surface.FinishBatch].
func (s *Surface) StartBatch() {
	s.batching = true
}

// FinishBatch ends a batch with exactly one rebuild. Calling it outside a
// batch does nothing.
func (s *Surface) FinishBatch() {
	if !s.batching {
		return
	}
	s.batching = false
	s.rebuild()
}

// Batching reports whether a batch is in progress.
func (s *Surface) Batching() bool { return s.batching }

// Batch runs fn between StartBatch and FinishBatch.
func (s *Surface) Batch(fn func(*Surface)) {
	s.StartBatch()
	defer s.FinishBatch()
	fn(s)
}

// Toggles returns the current visual settings.
func (s *Surface) Toggles() Toggles {
	return Toggles{
		ShowGrid:  s.table.ShowGrid,
		Spacing:   s.table.Spacing,
		Alternate: s.table.Alternate,
	}
}

func (s *Surface) applyToggles(t Toggles) {
	s.SetShowGrid(t.ShowGrid)
	s.SetGridSpacing(t.Spacing)
	s.SetGridAlternate(t.Alternate)
}

// ShowGrid reports whether grid lines are drawn.
func (s *Surface) ShowGrid() bool { return s.table.ShowGrid }

// SetShowGrid sets grid line visibility and returns the resulting value.
func (s *Surface) SetShowGrid(v bool) bool {
	s.table.ShowGrid = v
	return s.table.ShowGrid
}

// GridSpacing returns the spacing between cells.
func (s *Surface) GridSpacing() int { return s.table.Spacing }

// SetGridSpacing sets the spacing between cells and returns the resulting
// value. Negative spacing clamps to zero.
func (s *Surface) SetGridSpacing(n int) int {
	s.table.Spacing = max(n, 0)
	return s.table.Spacing
}

// GridAlternate reports whether alternating rows are shaded.
func (s *Surface) GridAlternate() bool { return s.table.Alternate }

// SetGridAlternate sets alternating row shading and returns the resulting
// value.
func (s *Surface) SetGridAlternate(v bool) bool {
	s.table.Alternate = v
	return s.table.Alternate
}

// flush rebuilds unless a batch is in progress.
func (s *Surface) flush() {
	if !s.batching {
		s.rebuild()
	}
}

// resizeGrid grows the logical grid to include (maxCol, maxRow).
func (s *Surface) resizeGrid(maxCol, maxRow int) {
	s.grid.Resize(maxCol, maxRow)
}

// mergeGrid merges the block in the logical grid and mirrors the spans onto
// the origin's rendered cell.
func (s *Surface) mergeGrid(x, y, w, h int) error {
	r, err := s.grid.Merge(x, y, w, h)
	if err != nil {
		observability.Layout().OnMergeRejected(s.ID(), x, y, w, h, err)
		s.logger.Debug("merge rejected", "surface", s.ID(), "x", x, "y", y, "w", w, "h", h, "err", err)
		return err
	}
	origin, _ := s.grid.Content(r.X, r.Y)
	origin.ColSpan, origin.RowSpan = r.W, r.H
	return nil
}
