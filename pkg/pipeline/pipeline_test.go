package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/dockyard/pkg/cache"
	"github.com/matzehuels/dockyard/pkg/errors"
	sceneio "github.com/matzehuels/dockyard/pkg/io"
	"github.com/matzehuels/dockyard/pkg/layout"
	"github.com/matzehuels/dockyard/pkg/render"
)

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.ErrorLevel})
}

func sampleDoc() *sceneio.Document {
	return &sceneio.Document{
		Title:   "sample",
		Toggles: layout.Toggles{ShowGrid: true},
		Items: []sceneio.Item{
			{Text: "ab", X: 0, Y: 0},
			{Text: "c", X: 1, Y: 0},
			{Text: "wide", X: 0, Y: 1, W: 2},
		},
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	o := Options{Scene: sampleDoc()}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if diff := cmp.Diff([]string{FormatText}, o.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if o.Metrics != render.DefaultMetrics {
		t.Errorf("Metrics = %+v, want defaults", o.Metrics)
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no scene", Options{}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Scene: sampleDoc(), Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
		{"case sensitive", Options{Scene: sampleDoc(), Formats: []string{"SVG"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{
		Scene:   sampleDoc(),
		Formats: []string{FormatText, FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wantText := "+--+-+\n|ab|c|\n+--+-+\n|wide|\n+--+-+\n"
	if got := string(res.Artifacts[FormatText]); got != wantText {
		t.Errorf("text artifact = %q, want %q", got, wantText)
	}
	if svg := string(res.Artifacts[FormatSVG]); !strings.Contains(svg, "<title>sample</title>") {
		t.Errorf("svg artifact lacks title:\n%s", svg)
	}
	if bytes.Contains(res.Artifacts[FormatJSON], []byte(res.Surface.ID())) {
		t.Error("json artifact should not carry the per-build surface id")
	}
	if !bytes.Contains(res.Artifacts[FormatDOT], []byte(`COLSPAN="2"`)) {
		t.Error("dot artifact should carry the span")
	}

	if res.Stats.Cells != 3 {
		t.Errorf("Cells = %d, want 3", res.Stats.Cells)
	}
	if got := res.Surface.Rebuilds(); got != 1 {
		t.Errorf("Rebuilds() = %d, want 1 (single batch)", got)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if res.SceneHash == "" {
		t.Error("SceneHash should be set")
	}
}

func TestExecuteWarnings(t *testing.T) {
	doc := sampleDoc()
	doc.Items = append(doc.Items, sceneio.Item{Text: "clash", X: 1, Y: 1})

	res, err := NewRunner(nil, nil, quietLogger()).Execute(context.Background(), Options{Scene: doc})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one", res.Warnings)
	}
	if w := res.Warnings[0]; w.Index != 3 || !errors.Is(w, errors.ErrCodeMergeConflict) {
		t.Errorf("warning = %v", w)
	}
}

func TestExecuteCaches(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	formats := []string{FormatText, FormatJSON}

	first, err := r.Execute(context.Background(), Options{Scene: sampleDoc(), Formats: formats})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff(formats, first.CacheInfo.Misses); diff != "" {
		t.Errorf("first run misses mismatch (-want +got):\n%s", diff)
	}

	second, err := r.Execute(context.Background(), Options{Scene: sampleDoc(), Formats: formats})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff(formats, second.CacheInfo.Hits); diff != "" {
		t.Errorf("second run hits mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Equal(first.Artifacts[FormatText], second.Artifacts[FormatText]) {
		t.Error("cached text differs from rendered text")
	}
	if first.Surface.ID() == second.Surface.ID() {
		t.Fatal("each run should build a fresh surface")
	}
	if bytes.Contains(second.Artifacts[FormatJSON], []byte(first.Surface.ID())) {
		t.Error("cached json carries the surface id of an earlier build")
	}
	fresh, err := Render(context.Background(), second.Surface, FormatJSON, "", render.DefaultMetrics)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(fresh, second.Artifacts[FormatJSON]) {
		t.Error("cached json differs from a fresh render of the same scene")
	}

	third, err := r.Execute(context.Background(), Options{Scene: sampleDoc(), Formats: formats, Refresh: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(third.CacheInfo.Hits) != 0 {
		t.Errorf("refresh run hits = %v, want none", third.CacheInfo.Hits)
	}
	if c.sets != 4 {
		t.Errorf("cache sets = %d, want 4", c.sets)
	}
}

func TestSceneHash(t *testing.T) {
	build := func(doc *sceneio.Document) *layout.Surface {
		s := layout.New(nil, nil)
		sceneio.Build(doc, s)
		return s
	}

	a, err := SceneHash(build(sampleDoc()), "sample")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := SceneHash(build(sampleDoc()), "sample")
	if a != b {
		t.Error("equivalent scenes should hash the same")
	}
	if c, _ := SceneHash(build(sampleDoc()), "other"); c == a {
		t.Error("title should change the hash")
	}

	moved := sampleDoc()
	moved.Items[1].Y = 2
	if d, _ := SceneHash(build(moved), "sample"); d == a {
		t.Error("moving an item should change the hash")
	}
}

func TestRenderUnsupported(t *testing.T) {
	_, err := Render(context.Background(), layout.New(nil, nil), "png", "", render.DefaultMetrics)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(png) error = %v", err)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, ok := r.Cache.(*cache.NullCache); !ok {
		t.Errorf("Cache = %T, want *cache.NullCache", r.Cache)
	}
	if r.Keyer == nil || r.Logger == nil {
		t.Error("keyer and logger should default")
	}
	if r.TTL != DefaultArtifactTTL {
		t.Errorf("TTL = %v", r.TTL)
	}
}
