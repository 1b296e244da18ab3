// SPDX-License-Identifier: MIT
// Package: circuijts/shorts
//
// options.go: functional options for Detect.
//
// Defaults:
//   • keyRails   = VDD, GND, VSS, VCC   (checked pairwise, in this order)
//   • knownRails = netreg.DefaultRails() (used for display names)

package shorts

import "github.com/Kreijstal/circuijts/netreg"

// DefaultKeyRails are the rail names checked for global shorts.
func DefaultKeyRails() []string { return []string{"VDD", "GND", "VSS", "VCC"} }

// Option configures Detect.
type Option func(*config)

type config struct {
	keyRails   []string
	knownRails []string
}

func newConfig(opts ...Option) config {
	cfg := config{
		keyRails:   DefaultKeyRails(),
		knownRails: netreg.DefaultRails(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithKeyRails replaces the rails checked pairwise for global shorts.
// Panics on an empty or repeated name.
func WithKeyRails(rails ...string) Option {
	seen := make(map[string]struct{}, len(rails))
	for _, r := range rails {
		if r == "" {
			panic("shorts: WithKeyRails(\"\")")
		}
		if _, dup := seen[r]; dup {
			panic("shorts: WithKeyRails duplicate " + r)
		}
		seen[r] = struct{}{}
	}
	rails = append([]string{}, rails...)
	return func(c *config) { c.keyRails = rails }
}

// WithKnownRails sets the rails netreg.Registry.PreferredName ranks below
// plain user names when naming a self-shorted net. Panics on an empty name.
func WithKnownRails(rails ...string) Option {
	for _, r := range rails {
		if r == "" {
			panic("shorts: WithKnownRails(\"\")")
		}
	}
	rails = append([]string{}, rails...)
	return func(c *config) { c.knownRails = rails }
}
