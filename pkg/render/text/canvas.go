package text

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wide marks the second terminal cell occupied by a double-width rune.
const wide rune = 0

type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cv := &canvas{w: max(w, 0), h: max(h, 0)}
	cv.cells = make([][]rune, cv.h)
	for y := range cv.cells {
		cv.cells[y] = []rune(strings.Repeat(" ", cv.w))
	}
	return cv
}

func (cv *canvas) set(x, y int, r rune) {
	if x >= 0 && y >= 0 && x < cv.w && y < cv.h {
		cv.cells[y][x] = r
	}
}

// write places s starting at (x, y). Runes that would straddle the right
// edge are dropped.
func (cv *canvas) write(x, y int, s string) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > cv.w {
			return
		}
		cv.set(x, y, r)
		if w == 2 {
			cv.set(x+1, y, wide)
		}
		x += w
	}
}

func (cv *canvas) clear(x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cv.set(x, y, ' ')
		}
	}
}

// grid draws the outer frame and one line through the middle of every
// gutter.
func (cv *canvas) grid(xs, ys, cols, rows []int, spacing int) {
	if cv.w == 0 || cv.h == 0 {
		return
	}
	vertical := []int{0, cv.w - 1}
	for i := 0; i < len(cols)-1; i++ {
		vertical = append(vertical, xs[i]+cols[i]+spacing/2)
	}
	horizontal := []int{0, cv.h - 1}
	for i := 0; i < len(rows)-1; i++ {
		horizontal = append(horizontal, ys[i]+rows[i]+spacing/2)
	}

	for _, y := range horizontal {
		for x := 0; x < cv.w; x++ {
			cv.set(x, y, '-')
		}
	}
	for _, x := range vertical {
		for y := 0; y < cv.h; y++ {
			if cv.cells[y][x] == '-' {
				cv.set(x, y, '+')
			} else {
				cv.set(x, y, '|')
			}
		}
	}
}

func (cv *canvas) lines() []string {
	out := make([]string, cv.h)
	var b strings.Builder
	for y, row := range cv.cells {
		b.Reset()
		for _, r := range row {
			if r != wide {
				b.WriteRune(r)
			}
		}
		out[y] = strings.TrimRight(b.String(), " ")
	}
	return out
}
