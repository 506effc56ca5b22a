package layout

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Option configures a [Surface].
type Option func(*Surface)

// WithLogger sets the logger used for rebuild and merge diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithID overrides the generated surface identifier.
func WithID(id uuid.UUID) Option { return func(s *Surface) { s.id = id } }

// Toggles are the three visual settings a surface carries across Clear.
type Toggles struct {
	ShowGrid  bool `toml:"show_grid" yaml:"show_grid" json:"show_grid"`
	Spacing   int  `toml:"spacing" yaml:"spacing" json:"spacing"`
	Alternate bool `toml:"alternate" yaml:"alternate" json:"alternate"`
}

// WithToggles sets the initial visual settings.
func WithToggles(t Toggles) Option {
	return func(s *Surface) { s.initial = t }
}
