// Package render turns a layout surface's scene into output.
//
// # Overview
//
// The sinks share one measuring step, [Measure], which positions every
// rendered cell on a uniform grid and records spans, spacing and shading:
//
//	l := render.Measure(surface.Scene(), render.DefaultMetrics)
//	svg := sink.RenderSVG(l)
//	data, err := sink.RenderJSON(l)
//
// Subpackages:
//   - [text]: terminal rendering sized to the cell contents
//   - [sink]: SVG, JSON and Graphviz output
//
// [text]: github.com/matzehuels/dockyard/pkg/render/text
// [sink]: github.com/matzehuels/dockyard/pkg/render/sink
package render
