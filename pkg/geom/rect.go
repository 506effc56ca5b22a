// Package geom holds the screen-space value types shared by the layout
// surface, the dock resolver and the output sinks.
//
// Coordinates are float64 in user units: pixels for browser-like hosts, cells
// for terminal hosts. The y axis grows downwards.
package geom

import "fmt"

// Point is a pointer position in screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center point of the box.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center point of the box.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Empty reports whether the box has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Tall reports whether the box is taller than it is wide.
func (r Rect) Tall() bool { return r.W < r.H }

// Contains reports whether p lies inside r. Both edges are inclusive so a
// pointer resting exactly on a border still counts as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// InBand reports whether p.Y lies within [top, bottom] and p.X within the
// horizontal extent of r.
func (r Rect) InBand(p Point, top, bottom float64) bool {
	return p.Y >= top && p.Y <= bottom && p.X >= r.X && p.X <= r.Right()
}

// InColumn reports whether p.X lies within [left, right] and p.Y within the
// vertical extent of r.
func (r Rect) InColumn(p Point, left, right float64) bool {
	return p.X >= left && p.X <= right && p.Y >= r.Y && p.Y <= r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.W, r.H)
}
