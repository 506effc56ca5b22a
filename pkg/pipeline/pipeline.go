// Package pipeline provides the scene → surface → artifacts pipeline shared
// by the CLI and the preview server.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: place every item of a scene document onto a fresh layout surface
//     in one batch
//  2. Render: produce every requested output format from the surface's
//     scene, in parallel, through the artifact cache
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   doc,
//	    Formats: []string{pipeline.FormatText, pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.Artifacts[pipeline.FormatText]))
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockyard/pkg/errors"
	sceneio "github.com/matzehuels/dockyard/pkg/io"
	"github.com/matzehuels/dockyard/pkg/layout"
	"github.com/matzehuels/dockyard/pkg/render"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"

	// FormatGraphviz is the DOT table rendered to SVG by Graphviz.
	FormatGraphviz = "graphviz"
)

// DefaultArtifactTTL is how long rendered artifacts stay cached.
const DefaultArtifactTTL = 24 * time.Hour

// DefaultConcurrency bounds the formats rendered at once.
const DefaultConcurrency = 4

// Options configures one pipeline run.
type Options struct {
	// Scene is the document to build.
	Scene *sceneio.Document

	// Formats lists the outputs to produce. Empty means text.
	Formats []string

	// Metrics sizes cells for the svg and json sinks.
	Metrics render.Metrics

	// SurfaceOptions are passed to the layout surface, after the runner's
	// logger.
	SurfaceOptions []layout.Option

	// Refresh skips cache reads; fresh results are still written.
	Refresh bool

	Logger *log.Logger
}

// ValidateAndSetDefaults fills defaults and checks the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Scene == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no scene to build")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if err := errors.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Metrics.CellWidth <= 0 || o.Metrics.CellHeight <= 0 {
		o.Metrics = render.DefaultMetrics
	}
	return nil
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	Surface   *layout.Surface
	Artifacts map[string][]byte

	// Warnings lists the items the surface refused to place.
	Warnings []sceneio.Warning

	// SceneHash identifies the built scene in cache keys.
	SceneHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats are per-stage timings.
type Stats struct {
	BuildTime  time.Duration
	RenderTime time.Duration
	Cells      int
}

// CacheInfo records which formats came from the cache.
type CacheInfo struct {
	Hits   []string
	Misses []string
}
