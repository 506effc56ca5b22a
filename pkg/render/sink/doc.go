// Package sink provides output format renderers for measured scenes.
//
// # Overview
//
// A "sink" transforms a [render.Layout] (or, for Graphviz, the scene table
// itself) into a final output format:
//
//   - SVG: boxes and labels drawn at the measured positions
//   - JSON: layout geometry for external tools
//   - DOT: a Graphviz HTML-like table, rendered to SVG by Graphviz
//
// Basic usage:
//
//	l := render.Measure(surface.Scene(), render.DefaultMetrics)
//	svg := sink.RenderSVG(l, sink.WithTheme(sink.LightTheme))
//	data, err := sink.RenderJSON(l, sink.WithJSONSurface(surface.ID()))
//
// The Graphviz path skips [render.Measure]: Graphviz sizes the table cells
// itself from their labels.
//
//	dot := sink.ToDOT(surface.Scene(), sink.DOTOptions{})
//	svg, err := sink.RenderDOTSVG(ctx, dot)
//
// [render.Layout]: github.com/matzehuels/dockyard/pkg/render.Layout
// [render.Measure]: github.com/matzehuels/dockyard/pkg/render.Measure
package sink
