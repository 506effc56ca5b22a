package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/dockyard/pkg/layout"
)

// Snapshot describes the current content of s as a document. A cell holding
// several renderables yields one item per renderable; the first carries the
// cell's span.
func Snapshot(s *layout.Surface) *Document {
	doc := &Document{Toggles: s.Toggles(), Items: []Item{}}
	for _, c := range s.Scene().Body().Cells() {
		for i, r := range c.Items {
			it := Item{Text: r.View(), X: c.X, Y: c.Y}
			if i == 0 && c.ColSpan > 1 {
				it.W = c.ColSpan
			}
			if i == 0 && c.RowSpan > 1 {
				it.H = c.RowSpan
			}
			doc.Items = append(doc.Items, it)
		}
	}
	return doc
}

// WriteScene encodes s as an indented JSON document and writes it to w.
func WriteScene(s *layout.Surface, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Snapshot(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportScene writes s to path as JSON.
func ExportScene(s *layout.Surface, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteScene(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
