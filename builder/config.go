// SPDX-License-Identifier: MIT
// Package: circuijts/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults (no surprises):
//   • db      = components.Default()      (embedded catalog)
//   • logger  = slog over DiscardHandler  (silent library)
//   • regOpts = none                      (GND, VDD preferred; GND first)

package builder

import (
	"log/slog"

	"github.com/Kreijstal/circuijts/components"
	"github.com/Kreijstal/circuijts/netreg"
)

// builderConfig aggregates all knobs used by Build.
type builderConfig struct {
	db      components.Database
	logger  *slog.Logger
	regOpts []netreg.Option
}

// newBuilderConfig constructs a config with defaults and applies opts in order.
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		db:     components.Default(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
