// SPDX-License-Identifier: MIT
// Package: circuijts/netreg
//
// options.go: functional options and deterministic defaults for Registry.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors validate and panic on meaningless inputs;
//     Registry methods themselves never panic.
//   • Later options override earlier ones.
//
// Defaults:
//   • preferred rails = {GND, VDD}
//   • rail priority   = [GND, VDD]   (GND wins when both are unified)

package netreg

// Default rail names.
const (
	RailGND = "GND"
	RailVDD = "VDD"
)

// DefaultRails returns the default preferred rails in priority order.
func DefaultRails() []string { return []string{RailGND, RailVDD} }

// Option customizes a Registry at construction time.
type Option func(*config)

type config struct {
	// preferred holds rail names that always win a union against non-rails.
	preferred map[string]struct{}
	// rank maps a rail name to its priority; lower wins. Rails missing
	// from rank tie-break lexicographically after all ranked rails.
	rank map[string]int
}

func newConfig(opts ...Option) config {
	cfg := config{}
	WithPreferredRails(DefaultRails()...)(&cfg)
	WithRailPriority(DefaultRails()...)(&cfg)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithPreferredRails replaces the set of preferred rail names.
// Passing no names disables rail preference entirely.
// Panics on an empty name.
func WithPreferredRails(names ...string) Option {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			panic("netreg: WithPreferredRails(\"\")")
		}
		set[n] = struct{}{}
	}
	return func(c *config) { c.preferred = set }
}

// WithRailPriority sets the tie-break order among preferred rails,
// highest priority first. Panics on an empty or repeated name.
func WithRailPriority(order ...string) Option {
	rank := make(map[string]int, len(order))
	for i, n := range order {
		if n == "" {
			panic("netreg: WithRailPriority(\"\")")
		}
		if _, dup := rank[n]; dup {
			panic("netreg: WithRailPriority duplicate " + n)
		}
		rank[n] = i
	}
	return func(c *config) { c.rank = rank }
}
