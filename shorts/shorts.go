// SPDX-License-Identifier: MIT
// Package: circuijts/shorts
//
// shorts.go: topological short-circuit detection.
//
// Two kinds of short are reported:
//   • ComponentSelfShort: two or more terminals of one component sit on the
//     same canonical net.
//   • GlobalShort: two key rails present in the registry ended up in the
//     same net class.
//
// Order: self-shorts by component ID, nets within a component by
// netkey.Compare; then global shorts in key-rail pair order.

package shorts

import (
	"slices"

	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/netkey"
	"github.com/Kreijstal/circuijts/netreg"
)

// Short is a detected short circuit: ComponentSelfShort or GlobalShort.
type Short interface {
	short()
}

// ComponentSelfShort is a component whose Terminals all land on Net.
type ComponentSelfShort struct {
	Component string
	Type      string
	Terminals []string   // sorted, without repeats
	Net       netkey.Key // display name
	Canonical netkey.Key
}

// GlobalShort is a pair of key rails merged into one net.
type GlobalShort struct {
	Nets      [2]string // sorted
	Canonical netkey.Key
}

func (ComponentSelfShort) short() {}
func (GlobalShort) short()        {}

// Detect returns every short in g and reg. The graph is only read and no
// keys are added to the registry.
//
// Complexity: O(E + C·t log t + R²) for E edges, C components with at most
// t terminals each and R key rails.
func Detect(g *core.Graph, reg *netreg.Registry, opts ...Option) []Short {
	if g == nil || reg == nil {
		return nil
	}
	cfg := newConfig(opts...)
	var out []Short
	for _, c := range g.Components() {
		out = append(out, selfShorts(g, reg, cfg, c)...)
	}
	return append(out, globalShorts(reg, cfg)...)
}

func selfShorts(g *core.Graph, reg *netreg.Registry, cfg config, c core.Component) []Short {
	terms, _ := g.Connectivity(c.ID)
	byNet := make(map[netkey.Key][]string, len(terms))
	for t, n := range terms {
		byNet[n] = append(byNet[n], t)
	}
	nets := make([]netkey.Key, 0, len(byNet))
	for n, ts := range byNet {
		if len(ts) > 1 {
			nets = append(nets, n)
		}
	}
	netkey.Sort(nets)

	out := make([]Short, 0, len(nets))
	for _, n := range nets {
		ts := byNet[n]
		slices.Sort(ts)
		out = append(out, ComponentSelfShort{
			Component: c.Label(),
			Type:      c.Type,
			Terminals: slices.Compact(ts),
			Net:       reg.PreferredName(n, cfg.knownRails, true),
			Canonical: n,
		})
	}
	return out
}

func globalShorts(reg *netreg.Registry, cfg config) []Short {
	var present []netkey.Key
	for _, name := range cfg.keyRails {
		if k := netkey.Named(name); reg.Contains(k) {
			present = append(present, k)
		}
	}
	var out []Short
	for i := range present {
		for j := i + 1; j < len(present); j++ {
			a, b := present[i], present[j]
			root := reg.Find(a)
			if root != reg.Find(b) {
				continue
			}
			nets := [2]string{a.Name(), b.Name()}
			if nets[1] < nets[0] {
				nets[0], nets[1] = nets[1], nets[0]
			}
			out = append(out, GlobalShort{Nets: nets, Canonical: root})
		}
	}
	return out
}
