// SPDX-License-Identifier: MIT
// Package: circuijts/builder
//
// options.go: functional options for Build.
//
// Contract (strict):
//   • Options are functional (type Option func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs;
//     Build itself never panics and never fails on bad statements.
//   • No hidden globals; everything flows through builderConfig.

package builder

import (
	"log/slog"

	"github.com/Kreijstal/circuijts/components"
	"github.com/Kreijstal/circuijts/netreg"
)

// Option customizes a Build call by mutating a builderConfig before the
// first statement is read.
// Complexity: applying N options costs O(N) time, O(1) space.
type Option func(*builderConfig)

// WithComponentDB sets the component metadata used to flag unknown types.
// Panics on nil.
func WithComponentDB(db components.Database) Option {
	if db == nil {
		panic("builder: WithComponentDB(nil)")
	}
	return func(c *builderConfig) { c.db = db }
}

// WithLogger routes build diagnostics and summaries to l.
// A nil logger keeps the default silent logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *builderConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRegistryOptions forwards options to the netreg.Registry created by Build.
func WithRegistryOptions(opts ...netreg.Option) Option {
	for _, o := range opts {
		if o == nil {
			panic("builder: WithRegistryOptions(nil)")
		}
	}
	return func(c *builderConfig) { c.regOpts = append(c.regOpts, opts...) }
}
