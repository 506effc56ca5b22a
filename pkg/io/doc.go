// Package io reads and writes scene documents: the description of a layout
// surface as toggles plus a list of placed items.
//
// # Formats
//
// Documents can be written as JSON, TOML or YAML. The format is chosen from
// the file extension by [ImportScene] or passed explicitly to [ReadScene]:
//
//	title = "Connection"
//
//	[toggles]
//	show_grid = true
//	spacing = 1
//
//	[[items]]
//	text = "Host"
//	x = 0
//	y = 0
//
//	[[items]]
//	text = "Comments"
//	x = 0
//	y = 1
//	w = 2
//
// Item sizes default to 1x1. Coordinates follow the layout's placement
// rules: negative origins clamp to zero.
//
// # Building
//
// [Build] populates a surface from a document inside a single batch.
// Placements the surface rejects (overlapping merges) do not stop the build;
// they come back as [Warning] values so a partly valid document still
// renders.
//
// # Export
//
// [WriteScene] exports a built surface as JSON. Re-importing the output
// places the same content with the same spans; merged cells that hold no
// content are not exported.
package io
