package io

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/layout"
	"github.com/matzehuels/dockyard/pkg/scene"
)

// ReadOption configures [ReadScene] and [ImportScene].
type ReadOption func(*Document)

// WithDefaultToggles sets the toggles a document gets for every key it
// leaves out.
func WithDefaultToggles(t layout.Toggles) ReadOption {
	return func(d *Document) { d.Toggles = t }
}

// ReadScene decodes and validates a document from r. An empty YAML stream
// is an empty document. ReadScene does not close r.
func ReadScene(r io.Reader, format Format, opts ...ReadOption) (*Document, error) {
	var doc Document
	for _, opt := range opts {
		opt(&doc)
	}
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
		if stderrors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode %s scene", format)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ImportScene reads the document at path, choosing the format from its
// extension.
func ImportScene(path string, opts ...ReadOption) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadScene(f, format, opts...)
}

// Warning records an item the surface refused to place.
type Warning struct {
	Index int
	Item  Item
	Err   error
}

func (w Warning) Error() string {
	return fmt.Sprintf("item %d (%q at %d,%d): %v", w.Index, w.Item.Text, w.Item.X, w.Item.Y, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Build applies the document's toggles to s and places every item in one
// batch.
func Build(doc *Document, s *layout.Surface) []Warning {
	s.SetShowGrid(doc.Toggles.ShowGrid)
	s.SetGridSpacing(doc.Toggles.Spacing)
	s.SetGridAlternate(doc.Toggles.Alternate)

	var warnings []Warning
	s.Batch(func(s *layout.Surface) {
		for i, it := range doc.Items {
			if _, err := s.AddItem(scene.Text(it.Text), it.X, it.Y, it.W, it.H); err != nil {
				warnings = append(warnings, Warning{Index: i, Item: it, Err: err})
			}
		}
	})
	return warnings
}
