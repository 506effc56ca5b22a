package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dockyard/pkg/cache"
	sceneio "github.com/matzehuels/dockyard/pkg/io"
	"github.com/matzehuels/dockyard/pkg/layout"
	"github.com/matzehuels/dockyard/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultArtifactTTL,
	}
}

// Execute builds the scene and renders every requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{Artifacts: make(map[string][]byte)}

	buildStart := time.Now()
	s := r.Build(opts)
	result.Surface = s
	result.Warnings = sceneio.Build(opts.Scene, s)
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Cells = s.Scene().Body().Len()

	for _, w := range result.Warnings {
		opts.Logger.Warn("item not placed", "item", w.Index, "text", w.Item.Text, "err", w.Err)
	}
	cols, rows := s.Extent()
	opts.Logger.Info("built surface",
		"surface", s.ID(),
		"grid", fmt.Sprintf("%dx%d", cols, rows),
		"cells", result.Stats.Cells,
		"duration", result.Stats.BuildTime)

	hash, err := SceneHash(s, opts.Scene.Title)
	if err != nil {
		return nil, fmt.Errorf("hash scene: %w", err)
	}
	result.SceneHash = hash

	renderStart := time.Now()
	if err := r.renderAll(ctx, s, hash, opts, result); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Build creates the empty surface a run places its items onto.
func (r *Runner) Build(opts Options) *layout.Surface {
	surfaceOpts := append([]layout.Option{layout.WithLogger(opts.Logger)}, opts.SurfaceOptions...)
	return layout.New(nil, nil, surfaceOpts...)
}

// SceneHash identifies the rendered content of s: title, toggles, placements
// and spans. Two surfaces built from equivalent documents hash the same.
func SceneHash(s *layout.Surface, title string) (string, error) {
	snap := sceneio.Snapshot(s)
	snap.Title = title
	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

func (r *Runner) renderAll(ctx context.Context, s *layout.Surface, hash string, opts Options, result *Result) error {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)

	for _, format := range opts.Formats {
		g.Go(func() error {
			data, hit, err := r.renderCached(gctx, s, hash, format, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			mu.Lock()
			defer mu.Unlock()
			result.Artifacts[format] = data
			if hit {
				result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
			} else {
				result.CacheInfo.Misses = append(result.CacheInfo.Misses, format)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	slices.Sort(result.CacheInfo.Hits)
	slices.Sort(result.CacheInfo.Misses)
	return nil
}

func (r *Runner) renderCached(ctx context.Context, s *layout.Surface, hash, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Format:     format,
		CellWidth:  opts.Metrics.CellWidth,
		CellHeight: opts.Metrics.CellHeight,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, format)
			return data, true, nil
		} else if err != nil {
			opts.Logger.Debug("cache read failed", "format", format, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, format)
	}

	data, err := Render(ctx, s, format, opts.Scene.Title, opts.Metrics)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		opts.Logger.Debug("cache write failed", "format", format, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
