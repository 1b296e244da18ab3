// SPDX-License-Identifier: MIT
// Package: circuijts/reconstruct
//
// paths.go: stage 3, series and parallel structure.
//
// A component qualifies when its edges are exactly one path pair
// (core.PathPairs). Qualifying components are grouped by the unordered pair
// of canonical nets they span. Per group, in sorted pair order:
//   • non-source members become one statement: a lone declared component on
//     series terminals is placed directly, anything else goes into a
//     ParallelBlock (so a lone element keeps the terminal labels it had);
//   • each source becomes its own statement, nodes ordered so its polarity
//     reproduces which net sits on pos and which on neg.

package reconstruct

import (
	"cmp"
	"slices"

	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/netkey"
)

// member is a qualifying component with its nets in pair order.
type member struct {
	comp   core.Component
	first  netkey.Key // net on the pair's first terminal
	second netkey.Key
	source bool
	// parallel is set when the pair is par_t1/par_t2.
	parallel bool
}

type netPair [2]netkey.Key

func orderedPair(a, b netkey.Key) netPair {
	if netkey.Compare(a, b) <= 0 {
		return netPair{a, b}
	}
	return netPair{b, a}
}

// pathMember reports whether c's edges form exactly one path pair. The
// source pair only counts for source types.
func (r *run) pathMember(c core.Component) (member, bool) {
	_, list := r.g.Connectivity(c.ID)
	entries := dedupe(list)
	if len(entries) != 2 {
		return member{}, false
	}
	terms := map[string]netkey.Key{entries[0].Terminal: entries[0].Net, entries[1].Terminal: entries[1].Net}
	for _, p := range core.PathPairs {
		if p[0] == core.TerminalNeg && !r.cfg.db.IsSource(c.Type) {
			continue
		}
		a, okA := terms[p[0]]
		b, okB := terms[p[1]]
		if okA && okB {
			return member{
				comp:     c,
				first:    a,
				second:   b,
				source:   p[0] == core.TerminalNeg,
				parallel: p[0] == core.TerminalParallel1,
			}, true
		}
	}
	return member{}, false
}

func (r *run) paths() {
	groups := make(map[netPair][]member)
	for _, c := range r.g.Components() {
		if r.represented[c.ID] {
			continue
		}
		m, ok := r.pathMember(c)
		if !ok {
			continue
		}
		p := orderedPair(m.first, m.second)
		groups[p] = append(groups[p], m)
	}

	pairs := make([]netPair, 0, len(groups))
	for p := range groups {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(a, b netPair) int {
		if c := netkey.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return netkey.Compare(a[1], b[1])
	})

	for _, p := range pairs {
		var plain, sources []member
		for _, m := range groups[p] {
			if m.source {
				sources = append(sources, m)
			} else {
				plain = append(plain, m)
			}
		}
		slices.SortFunc(plain, compareMembers)
		slices.SortFunc(sources, compareMembers)

		if len(plain) > 0 {
			r.emitPlain(plain)
		}
		for _, m := range sources {
			r.emitSource(m)
		}
	}
}

// emitPlain spans the statement in the direction of its first member, so a
// lone element keeps its terminal-to-net mapping exactly.
func (r *run) emitPlain(plain []member) {
	head := plain[0]
	if len(plain) == 1 && !head.comp.Kind.Internal() && !head.parallel {
		r.emitPath(head.first, ast.Component{Name: head.comp.Name}, head.second)
		r.represented[head.comp.ID] = true
		return
	}
	elems := make([]ast.ParallelElement, len(plain))
	for i, m := range plain {
		elems[i] = parallelElement(m.comp)
		r.represented[m.comp.ID] = true
	}
	r.emitPath(head.first, ast.ParallelBlock{Elements: elems}, head.second)
}

// emitSource orients a source so that rebuilding puts the same nets on its
// pos and neg terminals. Sources without a stored polarity use "-+".
func (r *run) emitSource(m member) {
	neg, pos := m.first, m.second
	pol := m.comp.Polarity
	if !pol.Valid() {
		pol = ast.PolarityNegPos
	}
	from, to := neg, pos
	if pol == ast.PolarityPosNeg {
		from, to = pos, neg
	}
	r.emitPath(from, ast.Source{Name: m.comp.Name, Polarity: pol}, to)
	r.represented[m.comp.ID] = true
}

func (r *run) emitPath(from netkey.Key, el ast.PathElement, to netkey.Key) {
	r.out = append(r.out, ast.SeriesConnection{Path: []ast.PathElement{
		ast.Node{Key: r.netName(from)},
		el,
		ast.Node{Key: r.netName(to)},
	}})
}

func parallelElement(c core.Component) ast.ParallelElement {
	dir := c.Direction
	if dir == "" {
		dir = ast.Forward
	}
	switch c.Kind {
	case core.KindControlledSource:
		return ast.ControlledSource{Expression: c.Expression, Direction: dir}
	case core.KindNoiseSource:
		return ast.NoiseSource{ID: c.NoiseID, Direction: dir}
	default:
		return ast.ParallelComponent{Name: c.Name}
	}
}

// compareMembers orders by kind, then name/expression/noise id, then ID.
func compareMembers(a, b member) int {
	if c := cmp.Compare(a.comp.Kind, b.comp.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(identity(a.comp), identity(b.comp)); c != 0 {
		return c
	}
	return cmp.Compare(a.comp.ID, b.comp.ID)
}

func identity(c core.Component) string {
	switch c.Kind {
	case core.KindControlledSource:
		return c.Expression
	case core.KindNoiseSource:
		return c.NoiseID
	default:
		return c.Name
	}
}
