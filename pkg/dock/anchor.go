package dock

import (
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Anchor describes a proposed drop: the preview rectangle, the zone and the
// target it belongs to. An anchor is valid for exactly one pointer
// evaluation.
type Anchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`

	Zone   Zone   `json:"zone"`
	Target string `json:"target"`

	// Self is set when the drag started in the target frame itself and the
	// drop would only reorder its tabs.
	Self bool `json:"self"`
}

// Rect returns the preview rectangle.
func (a Anchor) Rect() geom.Rect { return geom.R(a.X, a.Y, a.W, a.H) }

func anchorAt(r geom.Rect, zone Zone, target string, self bool) Anchor {
	return Anchor{X: r.X, Y: r.Y, W: r.W, H: r.H, Zone: zone, Target: target, Self: self}
}

// Ghost receives the anchor chosen for a pointer position, typically to draw
// a drop preview.
type Ghost interface {
	Anchor(pointer geom.Point, a Anchor)
}

// GhostFunc adapts a function to the Ghost interface.
type GhostFunc func(pointer geom.Point, a Anchor)

// Anchor implements Ghost.
func (f GhostFunc) Anchor(pointer geom.Point, a Anchor) { f(pointer, a) }

// Target is a candidate drop target: a frame identity and its bounding box
// in screen space.
type Target struct {
	ID  string    `json:"id"`
	Box geom.Rect `json:"box"`
}
