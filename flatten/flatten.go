// SPDX-License-Identifier: MIT
// Package: circuijts/flatten
//
// flatten.go: graph to flat statements and back.
//
// Output order of Flatten:
//  1. declarations: named components by name, then internal ones by ID
//  2. pins: per component in the same order, edges in insertion order
//  3. aliases: classes by representative, members in key order
//
// Graph reads a flat list in three passes (declarations and keys, aliases,
// pins), so a pin may name a net whose alias appears later.

package flatten

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/builder"
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/diag"
	"github.com/Kreijstal/circuijts/netkey"
	"github.com/Kreijstal/circuijts/netreg"
	"github.com/Kreijstal/circuijts/reconstruct"
)

// Flatten lists g and reg as flat statements. Nil inputs yield nil.
// Complexity: O(C log C + E + K log K) for C components, E edges and K keys.
func Flatten(g *core.Graph, reg *netreg.Registry, opts ...Option) []ast.FlatStatement {
	if g == nil || reg == nil {
		return nil
	}
	cfg := newConfig(opts...)

	comps := g.Components()
	slices.SortStableFunc(comps, func(a, b core.Component) int {
		ai, bi := a.Kind.Internal(), b.Kind.Internal()
		switch {
		case ai != bi && ai:
			return 1
		case ai != bi:
			return -1
		case ai:
			return cmp.Compare(a.ID, b.ID)
		default:
			return cmp.Compare(a.Name, b.Name)
		}
	})

	var out []ast.FlatStatement
	for _, c := range comps {
		out = append(out, declaration(c))
	}
	nDecl := len(out)

	type pin struct {
		terminal string
		net      netkey.Key
	}
	for _, c := range comps {
		seen := make(map[pin]struct{})
		_, list := g.Connectivity(c.ID)
		for _, e := range list {
			p := pin{e.Terminal, reg.Find(e.Net)}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, ast.PinConnection{Component: c.Label(), Terminal: p.terminal, Net: p.net})
		}
	}
	nPins := len(out) - nDecl

	for _, members := range reg.Classes() {
		root := reg.Find(members[0])
		for _, k := range members {
			if k != root {
				out = append(out, ast.NetAlias{Source: k, Canonical: root})
			}
		}
	}

	cfg.logger.Debug("graph flattened",
		slog.Int("declarations", nDecl),
		slog.Int("pins", nPins),
		slog.Int("aliases", len(out)-nDecl-nPins),
	)
	return out
}

func declaration(c core.Component) ast.FlatDeclaration {
	d := ast.FlatDeclaration{Type: c.Type, Name: c.Label(), Polarity: c.Polarity}
	if c.Kind.Internal() {
		d.Internal = true
		d.Expression = c.Expression
		d.NoiseID = c.NoiseID
		d.Direction = c.Direction
	}
	return d
}

// Statements builds stmts and flattens the result. Build diagnostics are
// returned alongside; the flat list covers whatever could be built.
func Statements(stmts []ast.Statement, opts ...Option) ([]ast.FlatStatement, diag.List) {
	cfg := newConfig(opts...)
	res := builder.Build(stmts, cfg.builderOptions()...)
	return Flatten(res.Graph, res.Registry, opts...), res.Diagnostics
}

// Unflatten rebuilds structured statements from a flat list. Problems in
// the list are returned as diagnostics and the offending entries skipped.
func Unflatten(flat []ast.FlatStatement, opts ...Option) ([]ast.Statement, diag.List) {
	cfg := newConfig(opts...)
	g, reg, diags := Graph(flat, opts...)
	return reconstruct.Reconstruct(g, reg, cfg.reconstructOptions()...), diags
}

// state is the per-call state of Graph.
type state struct {
	cfg   config
	g     *core.Graph
	reg   *netreg.Registry
	ids   map[string]core.ComponentID
	diags diag.List
}

func (s *state) report(line int, kind error, format string, args ...any) {
	d := diag.New(line, kind, format, args...)
	s.diags = append(s.diags, d)
	s.cfg.logger.Warn("flat diagnostic", slog.Any("diagnostic", d))
}

// Graph rebuilds the graph and net registry a flat list describes.
// Complexity: O(S·α(K)) for S statements and K keys.
func Graph(flat []ast.FlatStatement, opts ...Option) (*core.Graph, *netreg.Registry, diag.List) {
	cfg := newConfig(opts...)
	s := &state{
		cfg: cfg,
		g:   core.NewGraph(),
		reg: netreg.New(cfg.regOpts...),
		ids: make(map[string]core.ComponentID),
	}

	for _, st := range flat {
		switch st := st.(type) {
		case ast.FlatDeclaration:
			s.declare(st)
		case ast.PinConnection:
			if !st.Net.IsZero() {
				s.reg.Add(st.Net)
			}
		case ast.NetAlias:
			if !st.Source.IsZero() {
				s.reg.Add(st.Source)
			}
			if !st.Canonical.IsZero() {
				s.reg.Add(st.Canonical)
			}
		default:
			s.report(0, diag.ErrInvalidStatement, "unsupported flat statement %T", st)
		}
	}
	for _, st := range flat {
		if a, ok := st.(ast.NetAlias); ok {
			s.alias(a)
		}
	}
	for _, st := range flat {
		if p, ok := st.(ast.PinConnection); ok {
			s.pin(p)
		}
	}

	stats := s.g.Stats()
	cfg.logger.Debug("flat graph built",
		slog.Int("components", stats.Components),
		slog.Int("nets", stats.Nets),
		slog.Int("edges", stats.Edges),
		slog.Int("net_classes", s.reg.NumClasses()),
		slog.Int("diagnostics", len(s.diags)),
	)
	return s.g, s.reg, s.diags
}

func (s *state) declare(d ast.FlatDeclaration) {
	if d.Name == "" {
		s.report(d.Line, diag.ErrInvalidStatement, "declaration of type %q without a name", d.Type)
		return
	}
	if _, dup := s.ids[d.Name]; dup {
		s.report(d.Line, diag.ErrDuplicateDeclaration, "component %q already declared", d.Name)
		return
	}

	c := core.Component{Name: d.Name, Type: d.Type, Kind: core.KindDeclared}
	if d.Internal {
		c = core.Component{
			Type:       d.Type,
			Kind:       core.KindControlledSource,
			Expression: d.Expression,
			NoiseID:    d.NoiseID,
			Direction:  d.Direction,
		}
		if d.Type == core.TypeNoiseSource || d.NoiseID != "" {
			c.Kind = core.KindNoiseSource
		}
	} else if _, known := s.cfg.db.Arity(d.Type); !known {
		s.report(d.Line, diag.ErrUnknownComponentType, "component %q has unknown type %q", d.Name, d.Type)
	}

	id, err := s.g.AddComponent(c)
	if err != nil {
		s.report(d.Line, diag.ErrInvalidStatement, "%v", err)
		return
	}
	if d.Polarity != "" {
		if err := s.g.SetPolarity(id, d.Polarity); err != nil {
			s.report(d.Line, diag.ErrInvalidStatement, "%v", err)
		}
	}
	s.ids[d.Name] = id
}

// alias keeps Canonical as the root where the registry's rail rules allow.
func (s *state) alias(a ast.NetAlias) {
	if a.Source.IsZero() || a.Canonical.IsZero() {
		s.report(a.Line, diag.ErrInvalidStatement, "net alias with an empty operand")
		return
	}
	s.reg.Union(a.Source, a.Canonical)
}

func (s *state) pin(p ast.PinConnection) {
	id, ok := s.ids[p.Component]
	switch {
	case !ok:
		s.report(p.Line, diag.ErrUndeclaredComponent, "pin of undeclared component %q", p.Component)
		return
	case p.Terminal == "":
		s.report(p.Line, diag.ErrMissingTerminalLabel, "component %q pin on %s", p.Component, p.Net)
		return
	case p.Net.IsZero():
		s.report(p.Line, diag.ErrInvalidStatement, "component %q terminal %s has no net", p.Component, p.Terminal)
		return
	}
	net, err := s.g.EnsureNet(s.reg.Find(p.Net))
	if err != nil {
		s.report(p.Line, diag.ErrInvalidStatement, "%v", err)
		return
	}
	if _, err := s.g.Connect(id, net, p.Terminal); err != nil {
		s.report(p.Line, diag.ErrInvalidStatement, "%v", err)
	}
}
