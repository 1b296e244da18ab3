// SPDX-License-Identifier: MIT
// Package: circuijts/validate
//
// options.go: functional options shared by Statements and Graph.

package validate

import "github.com/Kreijstal/circuijts/components"

// Option configures a validation run.
type Option func(*config)

type config struct {
	db components.Database
}

func newConfig(opts ...Option) config {
	cfg := config{db: components.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithComponentDB sets the type metadata checked against. Panics on nil.
func WithComponentDB(db components.Database) Option {
	if db == nil {
		panic("validate: WithComponentDB(nil)")
	}
	return func(c *config) { c.db = db }
}
