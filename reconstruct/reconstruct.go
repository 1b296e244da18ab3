// SPDX-License-Identifier: MIT
// Package: circuijts/reconstruct
//
// reconstruct.go: stage driver, declarations and connection blocks.
//
// Stages, each appending to one output slice:
//  1. declarations of named components, sorted by name
//  2. connection blocks for multi-terminal or >2-net components, with
//     repeated path pairs split out as series statements
//  3. series statements for two-terminal elements grouped by net pair
//  4. fallback blocks for anything the stages above could not express
//  5. aliases for every multi-member net class
//
// Determinism:
//   - Every stage iterates in a sorted order, never over a map directly.

package reconstruct

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/netkey"
	"github.com/Kreijstal/circuijts/netreg"
)

// run holds per-call state. The graph is never mutated; represented tracks
// which components have been emitted so far.
type run struct {
	cfg         config
	g           *core.Graph
	reg         *netreg.Registry
	represented map[core.ComponentID]bool
	out         []ast.Statement
}

// Reconstruct derives statements that rebuild an equivalent graph.
//
// The result declares every named component, wires multi-terminal devices
// with connection blocks, re-derives series and parallel structure for
// two-terminal elements and re-states net aliases. Two calls on the same
// graph and registry return identical statements.
//
// Complexity: O(C·deg + N log N + K²) for C components, N registered keys
// and K components sharing one net pair.
func Reconstruct(g *core.Graph, reg *netreg.Registry, opts ...Option) []ast.Statement {
	r := &run{
		cfg:         newConfig(opts...),
		g:           g,
		reg:         reg,
		represented: make(map[core.ComponentID]bool),
	}
	if g == nil || reg == nil {
		return nil
	}

	declared := r.declarations()
	nDecl := len(r.out)
	r.blocks(declared)
	nBlocks := len(r.out) - nDecl
	r.paths()
	nPaths := len(r.out) - nDecl - nBlocks
	r.fallback(declared)
	nFallback := len(r.out) - nDecl - nBlocks - nPaths
	r.aliases()

	r.cfg.logger.Debug("graph reconstructed",
		slog.Int("declarations", nDecl),
		slog.Int("blocks", nBlocks),
		slog.Int("paths", nPaths),
		slog.Int("fallback_blocks", nFallback),
		slog.Int("aliases", len(r.out)-nDecl-nBlocks-nPaths-nFallback),
	)
	return r.out
}

// netName renders a canonical net for output.
func (r *run) netName(k netkey.Key) netkey.Key {
	return r.reg.PreferredName(k, r.cfg.knownRails, true)
}

// declarations is stage 1; it returns the named components sorted by name.
func (r *run) declarations() []core.Component {
	var declared []core.Component
	for _, c := range r.g.Components() {
		if !c.Kind.Internal() {
			declared = append(declared, c)
		}
	}
	slices.SortFunc(declared, func(a, b core.Component) int { return cmp.Compare(a.Name, b.Name) })
	for _, c := range declared {
		r.out = append(r.out, ast.Declaration{Type: c.Type, Name: c.Name})
	}
	return declared
}

// blocks is stage 2.
func (r *run) blocks(declared []core.Component) {
	for _, c := range declared {
		_, list := r.g.Connectivity(c.ID)
		entries := dedupe(list)
		if len(entries) == 0 {
			continue
		}
		if !r.cfg.db.IsMultiTerminal(c.Type) && distinctNets(entries) <= 2 {
			continue
		}
		r.emitComponent(c, entries)
	}
}

// fallback is stage 4: every still unrepresented named component with edges
// becomes a block with its raw terminal labels, so no connection is lost.
func (r *run) fallback(declared []core.Component) {
	for _, c := range declared {
		if r.represented[c.ID] {
			continue
		}
		_, list := r.g.Connectivity(c.ID)
		entries := dedupe(list)
		if len(entries) == 0 {
			continue
		}
		r.emitComponent(c, entries)
		r.cfg.logger.Debug("fallback block", slog.String("component", c.Name))
	}
}

// emitComponent writes every edge of c: repeated path pairs as series
// statements, everything else as one connection block.
func (r *run) emitComponent(c core.Component, entries []core.TerminalNet) {
	rest, pairs := r.splitRepeated(c, entries)
	if len(rest) > 0 {
		r.emitBlock(c, rest)
	}
	for _, p := range pairs {
		r.emitPair(c, p)
	}
	r.represented[c.ID] = true
}

// emitBlock lists entries in the type's terminal order, ties broken by net.
func (r *run) emitBlock(c core.Component, entries []core.TerminalNet) {
	entries = slices.Clone(entries)
	rank := rankOf(r.terminalOrder(c.Type, terminalsOf(entries)))
	slices.SortStableFunc(entries, func(a, b core.TerminalNet) int {
		if d := cmp.Compare(rank[a.Terminal], rank[b.Terminal]); d != 0 {
			return d
		}
		return netkey.Compare(a.Net, b.Net)
	})
	conns := make([]ast.Connection, len(entries))
	for i, e := range entries {
		conns[i] = ast.Connection{Terminal: e.Terminal, Node: r.netName(e.Net)}
	}
	r.out = append(r.out, ast.ConnectionBlock{Component: c.Name, Connections: conns})
}

// edgePair is one edge on each label of a path pair.
type edgePair struct {
	terms         [2]string
	first, second netkey.Key
}

// splitRepeated pulls path-labelled edges out of entries when a label of the
// pair carries more than one net. A block naming one label twice unions the
// nets on rebuild, so such edges are zipped into pairs in list order and
// emitted as separate statements. Edges left without a partner stay in rest;
// edges on the net the label's device-terminal key belongs to are paired
// last, so a leftover is one a block restates faithfully.
func (r *run) splitRepeated(c core.Component, entries []core.TerminalNet) ([]core.TerminalNet, []edgePair) {
	byTerm := make(map[string][]netkey.Key)
	for _, e := range entries {
		byTerm[e.Terminal] = append(byTerm[e.Terminal], e.Net)
	}

	var pairs []edgePair
	paired := make(map[string]bool)
	for _, p := range core.PathPairs {
		a, b := byTerm[p[0]], byTerm[p[1]]
		if len(a) < 2 && len(b) < 2 {
			continue
		}
		if p[0] == core.TerminalNeg && !r.cfg.db.IsSource(c.Type) {
			continue
		}
		a, b = r.anchoredLast(c.Name, p[0], a), r.anchoredLast(c.Name, p[1], b)
		n := min(len(a), len(b))
		for i := range n {
			pairs = append(pairs, edgePair{terms: p, first: a[i], second: b[i]})
		}
		byTerm[p[0]], byTerm[p[1]] = a[n:], b[n:]
		paired[p[0]], paired[p[1]] = true, true
	}
	if len(pairs) == 0 {
		return entries, nil
	}

	var rest []core.TerminalNet
	for _, e := range entries {
		if !paired[e.Terminal] {
			rest = append(rest, e)
		}
	}
	for _, p := range core.PathPairs {
		for _, t := range p {
			if !paired[t] {
				continue
			}
			for _, k := range byTerm[t] {
				rest = append(rest, core.TerminalNet{Terminal: t, Net: k})
			}
		}
	}
	return rest, pairs
}

// anchoredLast moves the net that DeviceTerminal(name, term) resolves to
// behind the others.
func (r *run) anchoredLast(name, term string, nets []netkey.Key) []netkey.Key {
	dt := netkey.DeviceTerminal(name, term)
	if !r.reg.Contains(dt) {
		return nets
	}
	root := r.reg.Find(dt)
	out := make([]netkey.Key, 0, len(nets))
	var anchored []netkey.Key
	for _, k := range nets {
		if k == root {
			anchored = append(anchored, k)
		} else {
			out = append(out, k)
		}
	}
	return append(out, anchored...)
}

func (r *run) emitPair(c core.Component, p edgePair) {
	switch p.terms[0] {
	case core.TerminalNeg:
		r.emitSource(member{comp: c, first: p.first, second: p.second, source: true})
	case core.TerminalParallel1:
		r.emitPath(p.first, ast.ParallelBlock{Elements: []ast.ParallelElement{parallelElement(c)}}, p.second)
	default:
		r.emitPath(p.first, ast.Component{Name: c.Name}, p.second)
	}
}

// terminalOrder puts present terminals in the type's preferred order, then
// the rest alphabetically.
func (r *run) terminalOrder(typ string, present []string) []string {
	have := make(map[string]bool, len(present))
	for _, t := range present {
		have[t] = true
	}
	var out []string
	for _, t := range r.cfg.db.PreferredTerminalOrder(typ) {
		if have[t] {
			out = append(out, t)
			delete(have, t)
		}
	}
	rest := mapKeys(have)
	return append(out, rest...)
}

func distinctNets(entries []core.TerminalNet) int {
	seen := make(map[netkey.Key]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Net] = struct{}{}
	}
	return len(seen)
}

// mapKeys returns the keys of m, sorted.
func mapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// dedupe drops repeated (terminal, net) entries, keeping first occurrences.
func dedupe(list []core.TerminalNet) []core.TerminalNet {
	seen := make(map[core.TerminalNet]struct{}, len(list))
	out := make([]core.TerminalNet, 0, len(list))
	for _, e := range list {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func terminalsOf(entries []core.TerminalNet) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Terminal)
	}
	return slices.Compact(slices.Sorted(slices.Values(out)))
}

func rankOf(order []string) map[string]int {
	rank := make(map[string]int, len(order))
	for i, t := range order {
		rank[t] = i
	}
	return rank
}
