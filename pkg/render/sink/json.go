package sink

import (
	"encoding/json"

	"github.com/matzehuels/dockyard/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	surface string
}

// WithJSONSurface records the surface ID in the output.
func WithJSONSurface(id string) JSONOption { return func(r *jsonRenderer) { r.surface = id } }

type jsonOutput struct {
	Surface   string     `json:"surface,omitempty"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Columns   int        `json:"columns"`
	Rows      int        `json:"rows"`
	Spacing   float64    `json:"spacing"`
	ShowGrid  bool       `json:"show_grid"`
	Alternate bool       `json:"alternate"`
	Cells     []jsonCell `json:"cells"`
}

type jsonCell struct {
	Col     int      `json:"col"`
	Row     int      `json:"row"`
	ColSpan int      `json:"colspan"`
	RowSpan int      `json:"rowspan"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Shaded  bool     `json:"shaded,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// RenderJSON exports the measured geometry of l.
func RenderJSON(l render.Layout, opts ...JSONOption) ([]byte, error) {
	r := &jsonRenderer{}
	for _, opt := range opts {
		opt(r)
	}

	out := jsonOutput{
		Surface:   r.surface,
		Width:     l.Width,
		Height:    l.Height,
		Columns:   l.Columns,
		Rows:      l.Rows,
		Spacing:   l.Spacing,
		ShowGrid:  l.ShowGrid,
		Alternate: l.Alternate,
		Cells:     make([]jsonCell, 0, len(l.Boxes)),
	}
	for _, b := range l.Boxes {
		c := jsonCell{
			Col:     b.Col,
			Row:     b.Row,
			ColSpan: b.ColSpan,
			RowSpan: b.RowSpan,
			X:       b.X,
			Y:       b.Y,
			Width:   b.W,
			Height:  b.H,
			Shaded:  b.Shaded,
		}
		if b.Cell != nil {
			for _, it := range b.Cell.Items {
				c.Items = append(c.Items, it.View())
			}
		}
		out.Cells = append(out.Cells, c)
	}
	return json.MarshalIndent(out, "", "  ")
}
