package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/layout"
)

// Format is a scene document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell scene format of %s (want .json, .toml, .yaml or .yml)", path)
}

// Document describes one surface.
type Document struct {
	Title   string         `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
	Toggles layout.Toggles `json:"toggles" toml:"toggles" yaml:"toggles"`
	Items   []Item         `json:"items" toml:"items" yaml:"items"`
}

// Item is one placement.
type Item struct {
	Text string `json:"text" toml:"text" yaml:"text"`
	X    int    `json:"x" toml:"x" yaml:"x"`
	Y    int    `json:"y" toml:"y" yaml:"y"`
	W    int    `json:"w,omitempty" toml:"w,omitempty" yaml:"w,omitempty"`
	H    int    `json:"h,omitempty" toml:"h,omitempty" yaml:"h,omitempty"`
}

// Validate checks the toggles and every item's label and rectangle, and
// bounds the grid the items span together.
func (d *Document) Validate() error {
	if err := errors.ValidateSpacing(d.Toggles.Spacing); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "toggles")
	}
	if len(d.Items) > errors.MaxItems {
		return errors.New(errors.ErrCodeInvalidScene, "%d items, at most %d allowed", len(d.Items), errors.MaxItems)
	}
	cols, rows := 0, 0
	for i, it := range d.Items {
		if err := errors.ValidateLabel(it.Text); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "item %d", i)
		}
		if err := errors.ValidateRect(it.X, it.Y, it.W, it.H); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "item %d", i)
		}
		c, r := errors.Extent(it.X, it.Y, it.W, it.H)
		cols, rows = max(cols, c), max(rows, r)
	}
	if err := errors.ValidateGrid(cols, rows); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "items")
	}
	return nil
}
