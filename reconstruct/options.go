// SPDX-License-Identifier: MIT
// Package: circuijts/reconstruct
//
// options.go: functional options and defaults for Reconstruct.
//
// Defaults:
//   • db         = components.Default()
//   • knownRails = netreg.DefaultRails()   (GND, VDD)
//   • logger     = silent

package reconstruct

import (
	"log/slog"

	"github.com/Kreijstal/circuijts/components"
	"github.com/Kreijstal/circuijts/netreg"
)

// Option configures Reconstruct.
type Option func(*config)

type config struct {
	db         components.Database
	knownRails []string
	logger     *slog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		db:         components.Default(),
		knownRails: netreg.DefaultRails(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithComponentDB sets the metadata deciding which types render as blocks.
// Panics on nil.
func WithComponentDB(db components.Database) Option {
	if db == nil {
		panic("reconstruct: WithComponentDB(nil)")
	}
	return func(c *config) { c.db = db }
}

// WithKnownRails sets the rail names used for net naming and alias targets.
// Panics on an empty name.
func WithKnownRails(rails ...string) Option {
	for _, r := range rails {
		if r == "" {
			panic("reconstruct: WithKnownRails(\"\")")
		}
	}
	rails = append([]string{}, rails...)
	return func(c *config) { c.knownRails = rails }
}

// WithLogger routes reconstruction summaries to l; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
