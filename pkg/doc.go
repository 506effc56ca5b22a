// Package pkg provides the core libraries for Dockyard panel layouts.
//
// # Overview
//
// Dockyard arranges panel content on a logical grid, renders the result as a
// table, and decides where a dragged panel would dock. The pkg directory is
// organized into these areas:
//
//  1. [grid], [scene], [layout] - the layout engine (merged regions, rendered
//     rows, batching)
//  2. [dock] - drop zone resolution and the drag state machine
//  3. [render] - text, SVG, JSON and Graphviz output
//  4. [io], [pipeline] - scene documents and the build → render flow
//  5. [cache], [config], [server], [watch] - infrastructure
//
// # Architecture
//
// The typical data flow through Dockyard:
//
//	Scene document (TOML/YAML/JSON)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [layout] package (place items on a surface, one batch)
//	         ↓
//	    [render] package (text, svg, json, dot, graphviz)
//
// Drag-to-dock runs alongside: hosts feed pointer positions and frame boxes
// to [dock.Drag], which asks [dock.Resolver] for the anchor of each move.
//
// # Quick Start
//
//	s := layout.New(nil, nil)
//	s.Batch(func(s *layout.Surface) {
//	    s.AddItem(scene.Text("editor"), 0, 0, 2, 2)
//	    s.Add(scene.Text("files"), 2, 0)
//	})
//	fmt.Println(text.Render(s.Scene()))
//
//	r := dock.NewResolver(0)
//	a, ok := r.Resolve(geom.Pt(20, 100), false, true,
//	    dock.Target{ID: "files", Box: geom.R(0, 0, 400, 200)}, true)
package pkg
