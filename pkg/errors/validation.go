package errors

import (
	"slices"
	"strings"
	"unicode"
)

// Formats accepted by the render pipeline and the HTTP API.
var Formats = []string{"text", "svg", "json", "dot", "graphviz"}

// ValidateFormat checks that f is one of [Formats].
func ValidateFormat(f string) error {
	if f == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(Formats, f) {
		return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks every entry with [ValidateFormat].
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Limits on scene documents. A grid is allocated cell by cell, so the
// extent is bounded on each axis and in total.
const (
	MaxGridExtent = 256
	MaxGridCells  = 16384
	MaxItems      = 4096
	MaxSpacing    = 16
)

// ValidateRect rejects item rectangles whose normalized far edge lies
// beyond [MaxGridExtent]. Negative origins and non-positive sizes are fine;
// the layout clamps them to 0 and 1.
func ValidateRect(x, y, w, h int) error {
	cols, rows := Extent(x, y, w, h)
	if cols > MaxGridExtent || rows > MaxGridExtent {
		return New(ErrCodeOutOfRange, "item at (%d,%d) size %dx%d reaches %dx%d, beyond %d per axis",
			x, y, w, h, cols, rows, MaxGridExtent)
	}
	return nil
}

// Extent returns the grid size an item needs once normalized. Values are
// saturated so huge inputs cannot overflow.
func Extent(x, y, w, h int) (cols, rows int) {
	return span(x, w), span(y, h)
}

func span(origin, size int) int {
	const limit = 1 << 30
	origin = min(max(origin, 0), limit)
	size = min(max(size, 1), limit)
	return origin + size
}

// ValidateGrid rejects a grid of cols x rows above [MaxGridCells].
func ValidateGrid(cols, rows int) error {
	if cols > MaxGridExtent || rows > MaxGridExtent || cols*rows > MaxGridCells {
		return New(ErrCodeOutOfRange, "grid %dx%d exceeds %d cells", cols, rows, MaxGridCells)
	}
	return nil
}

// ValidateSpacing rejects gutter widths outside 0..[MaxSpacing].
func ValidateSpacing(n int) error {
	if n < 0 || n > MaxSpacing {
		return New(ErrCodeOutOfRange, "spacing %d outside 0..%d", n, MaxSpacing)
	}
	return nil
}

// ValidateLabel rejects item labels carrying control characters other than
// newlines and tabs.
func ValidateLabel(label string) error {
	const maxLabelLength = 4096
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidScene, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if r == '\n' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "label contains invalid control characters")
		}
	}
	return nil
}
