package sink

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/dockyard/pkg/render"
)

// Theme holds the colors of the SVG output.
type Theme struct {
	Background string
	Cell       string
	Shade      string
	Grid       string
	Text       string
}

// LightTheme is the default SVG theme.
var LightTheme = Theme{
	Background: "#ffffff",
	Cell:       "#ffffff",
	Shade:      "#f2f4f7",
	Grid:       "#c4c9d1",
	Text:       "#1f2328",
}

const (
	fontSize   = 13.0
	lineHeight = 16.0
	textInset  = 8.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme Theme
	title string
}

func WithTheme(t Theme) SVGOption      { return func(r *svgRenderer) { r.theme = t } }
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG draws every box of l as a rectangle holding its cell's text.
// Grid strokes are drawn only when the surface shows its grid.
func RenderSVG(l render.Layout, opts ...SVGOption) []byte {
	r := &svgRenderer{theme: LightTheme}
	for _, opt := range opts {
		opt(r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.theme.Background)

	for _, b := range l.Boxes {
		r.renderBox(&buf, b, l.ShowGrid)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderBox(buf *bytes.Buffer, b render.Box, grid bool) {
	fill := r.theme.Cell
	if b.Shaded {
		fill = r.theme.Shade
	}
	stroke := "none"
	if grid {
		stroke = r.theme.Grid
	}

	fmt.Fprintf(buf, `  <g class="cell" data-col="%d" data-row="%d" data-colspan="%d" data-rowspan="%d">`+"\n",
		b.Col, b.Row, b.ColSpan, b.RowSpan)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
		b.X, b.Y, b.W, b.H, fill, stroke)

	if b.Cell != nil {
		if text := b.Cell.View(); text != "" {
			r.renderText(buf, b, strings.Split(text, "\n"))
		}
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderText(buf *bytes.Buffer, b render.Box, lines []string) {
	x := b.X + textInset
	y := b.Y + textInset + fontSize
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.0f" fill="%s">`,
		x, y, fontSize, r.theme.Text)
	for i, line := range lines {
		dy := 0.0
		if i > 0 {
			dy = lineHeight
		}
		fmt.Fprintf(buf, `<tspan x="%.1f" dy="%.1f">%s</tspan>`, x, dy, html.EscapeString(line))
	}
	buf.WriteString("</text>\n")
}
