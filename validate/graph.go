// SPDX-License-Identifier: MIT
// Package: circuijts/validate
//
// graph.go: arity checks over built connectivity.

package validate

import (
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/diag"
)

// Graph compares each named component's distinct connected terminals with
// its type's arity. More terminals than the arity is ErrArityExceeded;
// fewer, on a component that is connected at all, is ErrUnderConnected.
// Internal components and unknown types are skipped. Diagnostics carry no
// line number.
func Graph(g *core.Graph, opts ...Option) diag.List {
	if g == nil {
		return nil
	}
	cfg := newConfig(opts...)
	var out diag.List
	for _, c := range g.Components() {
		if c.Kind.Internal() {
			continue
		}
		arity, ok := cfg.db.Arity(c.Type)
		if !ok {
			continue
		}
		terms, _ := g.Connectivity(c.ID)
		switch n := len(terms); {
		case n > arity:
			out = append(out, diag.New(0, diag.ErrArityExceeded,
				"%q (%s) has %d distinct terminals connected, arity is %d", c.Name, c.Type, n, arity))
		case n > 0 && n < arity:
			out = append(out, diag.New(0, diag.ErrUnderConnected,
				"%q (%s) has %d of %d terminals connected", c.Name, c.Type, n, arity))
		}
	}
	return out
}
