package sink

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dockyard/pkg/scene"
)

// DOTOptions configures Graphviz table rendering.
type DOTOptions struct {
	// Theme supplies the shading and grid colors. The zero value uses
	// [LightTheme].
	Theme Theme

	// CellPadding is the CELLPADDING of the table in points.
	CellPadding int
}

// ToDOT converts a scene table to a Graphviz graph holding a single
// HTML-like table node. Spans map to COLSPAN and ROWSPAN, spacing to
// CELLSPACING and alternate shading to BGCOLOR.
//
// Graphviz rejects rows without cells, so rows entirely covered by cells
// spanning down from above are left out and those spans shortened to match.
func ToDOT(t *scene.Table, opts DOTOptions) string {
	theme := opts.Theme
	if theme == (Theme{}) {
		theme = LightTheme
	}
	padding := opts.CellPadding
	if padding <= 0 {
		padding = 6
	}

	border := 0
	if t.ShowGrid {
		border = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=plaintext, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  surface [label=<<TABLE BORDER=\"%d\" CELLBORDER=\"%d\" CELLSPACING=\"%d\" CELLPADDING=\"%d\" COLOR=%q>\n",
		border, border, t.Spacing, padding, theme.Grid)

	rows := t.Rows()
	emitted := make([]bool, len(rows))
	nonEmpty := false
	for i, r := range rows {
		emitted[i] = len(r.Cells) > 0
		nonEmpty = nonEmpty || emitted[i]
	}
	if !nonEmpty {
		buf.WriteString("    <TR><TD> </TD></TR>\n")
	}

	for i, r := range rows {
		if !emitted[i] {
			continue
		}
		buf.WriteString("    <TR>")
		for _, c := range r.Cells {
			attrs := []string{fmt.Sprintf("ALIGN=%q", "LEFT"), fmt.Sprintf("BALIGN=%q", "LEFT")}
			if c.ColSpan > 1 {
				attrs = append(attrs, fmt.Sprintf("COLSPAN=\"%d\"", c.ColSpan))
			}
			if span := visibleSpan(emitted, i, c.RowSpan); span > 1 {
				attrs = append(attrs, fmt.Sprintf("ROWSPAN=\"%d\"", span))
			}
			if t.Alternate && c.Y%2 == 1 {
				attrs = append(attrs, fmt.Sprintf("BGCOLOR=%q", theme.Shade))
			}
			fmt.Fprintf(&buf, "<TD %s>%s</TD>", strings.Join(attrs, " "), fmtCellLabel(c))
		}
		buf.WriteString("</TR>\n")
	}

	buf.WriteString("  </TABLE>>];\n")
	buf.WriteString("}\n")
	return buf.String()
}

// visibleSpan counts the emitted rows among the span rows starting at y.
func visibleSpan(emitted []bool, y, span int) int {
	n := 0
	for i := y; i < y+max(span, 1) && i < len(emitted); i++ {
		if emitted[i] {
			n++
		}
	}
	return n
}

func fmtCellLabel(c *scene.Cell) string {
	v := c.View()
	if v == "" {
		return " "
	}
	lines := strings.Split(v, "\n")
	for i, l := range lines {
		lines[i] = html.EscapeString(l)
	}
	return strings.Join(lines, "<BR/>")
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's point-based svg header to a plain
// viewBox starting at the origin, matching the header of [RenderSVG].
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
