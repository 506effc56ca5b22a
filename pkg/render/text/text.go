// Package text renders a scene table for the terminal.
//
// Column widths and row heights are sized to the cell contents, measured in
// terminal cells with go-runewidth so wide runes line up. A cell spanning
// several columns or rows that does not fit spreads the missing room evenly
// over the tracks it covers.
package text

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/dockyard/pkg/scene"
)

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	shade   lipgloss.Style
	minimum int
}

// WithShade sets the style applied to lines of odd rows when alternate
// shading is on.
func WithShade(s lipgloss.Style) Option { return func(r *renderer) { r.shade = s } }

// WithMinWidth sets the narrowest a column may get.
func WithMinWidth(n int) Option {
	return func(r *renderer) { r.minimum = max(n, 1) }
}

var defaultShade = lipgloss.NewStyle().Faint(true)

// Render draws t. Grid lines use plain ASCII so the output survives any
// terminal and copies cleanly into text files.
func Render(t *scene.Table, opts ...Option) string {
	r := &renderer{shade: defaultShade, minimum: 1}
	for _, opt := range opts {
		opt(r)
	}

	body := t.Body()
	if body == nil || body.Len() == 0 {
		return ""
	}

	border := 0
	if t.ShowGrid {
		border = 1
	}
	gutter := t.Spacing + border

	cells := body.Cells()
	cols := fit(cells, body.Columns, r.minimum, gutter, func(c *scene.Cell) (int, int, int) {
		return c.X, max(c.ColSpan, 1), width(c)
	})
	rows := fit(cells, len(body.Rows), 1, gutter, func(c *scene.Cell) (int, int, int) {
		return c.Y, max(c.RowSpan, 1), height(c)
	})

	xs := starts(cols, border, gutter)
	ys := starts(rows, border, gutter)
	cv := newCanvas(xs[len(cols)]-gutter+border, ys[len(rows)]-gutter+border)

	if t.ShowGrid {
		cv.grid(xs, ys, cols, rows, t.Spacing)
	}
	for _, c := range cells {
		cs, rs := max(c.ColSpan, 1), max(c.RowSpan, 1)
		x0, y0 := xs[c.X], ys[c.Y]
		x1 := xs[c.X+cs-1] + cols[c.X+cs-1]
		y1 := ys[c.Y+rs-1] + rows[c.Y+rs-1]
		cv.clear(x0, y0, x1, y1)
		for i, line := range lines(c) {
			cv.write(x0, y0+i, line)
		}
	}

	out := cv.lines()
	if t.Alternate {
		for y, line := range out {
			if row, ok := rowAt(ys, rows, y); ok && row%2 == 1 {
				out[y] = r.shade.Render(line)
			}
		}
	}
	return strings.Join(out, "\n")
}

func lines(c *scene.Cell) []string {
	v := c.View()
	if v == "" {
		return nil
	}
	return strings.Split(v, "\n")
}

func width(c *scene.Cell) int {
	w := 0
	for _, l := range lines(c) {
		w = max(w, runewidth.StringWidth(l))
	}
	return w
}

func height(c *scene.Cell) int { return len(lines(c)) }

// fit sizes n tracks so every cell's content fits. Single-track cells are
// applied first so spanning cells only add what is still missing.
func fit(cells []*scene.Cell, n, minimum, gutter int, measure func(*scene.Cell) (start, span, need int)) []int {
	size := make([]int, n)
	for i := range size {
		size[i] = minimum
	}

	ordered := slices.Clone(cells)
	slices.SortStableFunc(ordered, func(a, b *scene.Cell) int {
		_, sa, _ := measure(a)
		_, sb, _ := measure(b)
		return sa - sb
	})

	for _, c := range ordered {
		start, span, need := measure(c)
		end := min(start+span, n)
		have := (end - start - 1) * gutter
		for i := start; i < end; i++ {
			have += size[i]
		}
		missing := need - have
		if missing <= 0 {
			continue
		}
		tracks := end - start
		for i := start; i < end; i++ {
			size[i] += missing / tracks
			if i-start < missing%tracks {
				size[i]++
			}
		}
	}
	return size
}

// starts returns the first content position of every track plus one past
// the end, so starts[n] - gutter is where the last track's gutter would
// begin.
func starts(size []int, border, gutter int) []int {
	out := make([]int, len(size)+1)
	out[0] = border
	for i, s := range size {
		out[i+1] = out[i] + s + gutter
	}
	return out
}

func rowAt(ys, rows []int, y int) (int, bool) {
	for i := range rows {
		if y >= ys[i] && y < ys[i]+rows[i] {
			return i, true
		}
	}
	return 0, false
}
