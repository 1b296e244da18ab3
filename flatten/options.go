// SPDX-License-Identifier: MIT
// Package: circuijts/flatten
//
// options.go: functional options and defaults.
//
// Defaults:
//   • db        = components.Default()
//   • regOpts   = none   (GND, VDD preferred; GND first)
//   • reconOpts = none
//   • logger    = silent

package flatten

import (
	"log/slog"

	"github.com/Kreijstal/circuijts/builder"
	"github.com/Kreijstal/circuijts/components"
	"github.com/Kreijstal/circuijts/netreg"
	"github.com/Kreijstal/circuijts/reconstruct"
)

// Option configures the conversions of this package.
type Option func(*config)

type config struct {
	db        components.Database
	regOpts   []netreg.Option
	reconOpts []reconstruct.Option
	logger    *slog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		db:     components.Default(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// builderOptions carries the shared knobs over to builder.Build.
func (c config) builderOptions() []builder.Option {
	return []builder.Option{
		builder.WithComponentDB(c.db),
		builder.WithLogger(c.logger),
		builder.WithRegistryOptions(c.regOpts...),
	}
}

// reconstructOptions carries the shared knobs over to reconstruct.Reconstruct;
// options given through WithReconstructOptions come last and win.
func (c config) reconstructOptions() []reconstruct.Option {
	out := []reconstruct.Option{
		reconstruct.WithComponentDB(c.db),
		reconstruct.WithLogger(c.logger),
	}
	return append(out, c.reconOpts...)
}

// WithComponentDB sets the metadata used to flag unknown types and to pick
// block rendering. Panics on nil.
func WithComponentDB(db components.Database) Option {
	if db == nil {
		panic("flatten: WithComponentDB(nil)")
	}
	return func(c *config) { c.db = db }
}

// WithRegistryOptions forwards options to every netreg.Registry this
// package creates.
func WithRegistryOptions(opts ...netreg.Option) Option {
	for _, o := range opts {
		if o == nil {
			panic("flatten: WithRegistryOptions(nil)")
		}
	}
	return func(c *config) { c.regOpts = append(c.regOpts, opts...) }
}

// WithReconstructOptions forwards options to the reconstruction Unflatten runs.
func WithReconstructOptions(opts ...reconstruct.Option) Option {
	for _, o := range opts {
		if o == nil {
			panic("flatten: WithReconstructOptions(nil)")
		}
	}
	return func(c *config) { c.reconOpts = append(c.reconOpts, opts...) }
}

// WithLogger routes diagnostics and summaries to l; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
