package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/layout"
	"github.com/matzehuels/dockyard/pkg/render"
	"github.com/matzehuels/dockyard/pkg/render/sink"
	"github.com/matzehuels/dockyard/pkg/render/text"
)

// Render produces one output format from the surface's current scene. The
// title is only used by the svg sink. Artifacts depend on the scene content
// alone, so the surface id is left out of them; callers report it beside
// the artifact.
func Render(ctx context.Context, s *layout.Surface, format, title string, m render.Metrics) ([]byte, error) {
	tbl := s.Scene()

	switch format {
	case FormatText:
		return []byte(text.Render(tbl) + "\n"), nil
	case FormatSVG:
		return sink.RenderSVG(render.Measure(tbl, m), sink.WithTitle(title)), nil
	case FormatJSON:
		return sink.RenderJSON(render.Measure(tbl, m))
	case FormatDOT:
		return []byte(sink.ToDOT(tbl, sink.DOTOptions{})), nil
	case FormatGraphviz:
		data, err := sink.RenderDOTSVG(ctx, sink.ToDOT(tbl, sink.DOTOptions{}))
		if err != nil {
			return nil, fmt.Errorf("graphviz: %w", err)
		}
		return data, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}
