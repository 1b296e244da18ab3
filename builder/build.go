// SPDX-License-Identifier: MIT
// Package: circuijts/builder
//
// build.go: two-pass construction of a core.Graph from statements.
//
// Pass 1 registers every declaration and every explicitly written net key,
// so the registry holds the same keys no matter in which order later passes
// touch them. Pass 2 performs unions and adds edges. A final step re-keys
// the graph's nets to their canonical representatives and reports terminals
// that ended up wired to two different nets.
//
// Determinism:
//   - Statements are consumed strictly in order; implicit nets are numbered
//     in the order they are synthesized, starting above any implicit index
//     already present in the input.

package builder

import (
	"log/slog"

	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/diag"
	"github.com/Kreijstal/circuijts/netkey"
	"github.com/Kreijstal/circuijts/netreg"
)

// Result is everything Build produces.
type Result struct {
	Graph       *core.Graph
	Registry    *netreg.Registry
	Diagnostics diag.List
	// NextImplicit is the first implicit net index Build did not use.
	NextImplicit int
}

// state is the per-call builder state; nothing outlives a Build call.
type state struct {
	cfg          builderConfig
	g            *core.Graph
	reg          *netreg.Registry
	diags        diag.List
	declared     map[string]core.ComponentID
	nextImplicit int
	wires        []wire
}

// wire remembers the net key an edge was made for, so terminal conflicts
// can be judged once all unions are known.
type wire struct {
	comp     core.ComponentID
	terminal string
	key      netkey.Key
	line     int
}

// Build converts statements into a graph and net registry.
//
// Malformed input never aborts the build: the offending statement or element
// is skipped and a diagnostic is recorded in Result.Diagnostics.
// Complexity: O(S + E·α(N)) for S statement elements and E edges.
func Build(stmts []ast.Statement, opts ...Option) *Result {
	cfg := newBuilderConfig(opts...)
	s := &state{
		cfg:      cfg,
		g:        core.NewGraph(),
		reg:      netreg.New(cfg.regOpts...),
		declared: make(map[string]core.ComponentID),
	}

	s.register(stmts)
	for _, st := range stmts {
		switch st := st.(type) {
		case ast.Declaration:
			// handled in pass 1
		case ast.ConnectionBlock:
			s.connectBlock(st)
		case ast.DirectAssignment:
			s.assign(st)
		case ast.SeriesConnection:
			s.series(st)
		default:
			s.report(0, diag.ErrInvalidStatement, "unsupported statement %T", st)
		}
	}

	s.g.Canonicalize(s.reg.Find)
	s.checkWiring()

	stats := s.g.Stats()
	s.cfg.logger.Debug("graph built",
		slog.Int("components", stats.Components),
		slog.Int("internal", stats.Internal),
		slog.Int("nets", stats.Nets),
		slog.Int("edges", stats.Edges),
		slog.Int("net_classes", s.reg.NumClasses()),
		slog.Int("diagnostics", len(s.diags)),
	)

	return &Result{
		Graph:        s.g,
		Registry:     s.reg,
		Diagnostics:  s.diags,
		NextImplicit: s.nextImplicit,
	}
}

func (s *state) report(line int, kind error, format string, args ...any) {
	d := diag.New(line, kind, format, args...)
	s.diags = append(s.diags, d)
	s.cfg.logger.Warn("build diagnostic", slog.Any("diagnostic", d))
}

// register is pass 1.
func (s *state) register(stmts []ast.Statement) {
	maxImplicit := -1
	note := func(k netkey.Key) {
		if k.IsZero() {
			return
		}
		s.reg.Add(k)
		if k.IsImplicit() && k.Index() > maxImplicit {
			maxImplicit = k.Index()
		}
	}

	for _, st := range stmts {
		switch st := st.(type) {
		case ast.Declaration:
			s.declare(st)
		case ast.ConnectionBlock:
			for _, c := range st.Connections {
				note(c.Node)
				if c.Terminal != "" {
					note(netkey.DeviceTerminal(st.Component, c.Terminal))
				}
			}
		case ast.DirectAssignment:
			note(st.Source)
			note(st.Target)
		case ast.SeriesConnection:
			for _, el := range st.Path {
				if n, ok := el.(ast.Node); ok {
					note(n.Key)
				}
			}
		}
	}
	s.nextImplicit = maxImplicit + 1
}

func (s *state) declare(st ast.Declaration) {
	if st.Name == "" {
		s.report(st.Line, diag.ErrInvalidStatement, "declaration of type %q without a name", st.Type)
		return
	}
	if _, dup := s.declared[st.Name]; dup {
		s.report(st.Line, diag.ErrDuplicateDeclaration, "component %q already declared", st.Name)
		return
	}
	if _, known := s.cfg.db.Arity(st.Type); !known {
		s.report(st.Line, diag.ErrUnknownComponentType, "component %q has unknown type %q", st.Name, st.Type)
	}
	id, err := s.g.AddComponent(core.Component{Name: st.Name, Type: st.Type, Kind: core.KindDeclared})
	if err != nil {
		s.report(st.Line, diag.ErrInvalidStatement, "%v", err)
		return
	}
	s.declared[st.Name] = id
}

func (s *state) connectBlock(st ast.ConnectionBlock) {
	id, ok := s.declared[st.Component]
	if !ok {
		s.report(st.Line, diag.ErrUndeclaredComponent, "connection block for undeclared component %q", st.Component)
		return
	}
	for _, c := range st.Connections {
		if c.Terminal == "" {
			s.report(st.Line, diag.ErrMissingTerminalLabel, "component %q connection to %s", st.Component, c.Node)
			continue
		}
		if c.Node.IsZero() {
			s.report(st.Line, diag.ErrInvalidStatement, "component %q terminal %s has no net", st.Component, c.Terminal)
			continue
		}
		s.reg.Union(netkey.DeviceTerminal(st.Component, c.Terminal), c.Node)
		s.connect(id, c.Terminal, c.Node, st.Line)
		s.attachDeviceTerminal(c.Node, st.Line)
	}
}

func (s *state) assign(st ast.DirectAssignment) {
	if st.Source.IsZero() || st.Target.IsZero() {
		s.report(st.Line, diag.ErrInvalidStatement, "direct assignment with an empty operand")
		return
	}
	s.reg.Union(st.Source, st.Target)
	s.materialize(st.Source, st.Line)
	s.attachDeviceTerminal(st.Source, st.Line)
	s.attachDeviceTerminal(st.Target, st.Line)
}

// attachDeviceTerminal adds the edge implied by naming a net "Comp.Term".
func (s *state) attachDeviceTerminal(k netkey.Key, line int) {
	if !k.IsDeviceTerminal() {
		return
	}
	id, ok := s.declared[k.Component()]
	if !ok {
		s.report(line, diag.ErrUndeclaredComponent, "net %s refers to undeclared component %q", k, k.Component())
		return
	}
	s.connect(id, k.Terminal(), k, line)
}

// materialize makes sure the canonical net of k exists as a graph vertex.
func (s *state) materialize(k netkey.Key, line int) (core.NetID, bool) {
	net, err := s.g.EnsureNet(s.reg.Find(k))
	if err != nil {
		s.report(line, diag.ErrInvalidStatement, "%v", err)
		return 0, false
	}
	return net, true
}

// connect adds an edge from comp to the current canonical net of k.
func (s *state) connect(comp core.ComponentID, terminal string, k netkey.Key, line int) {
	net, ok := s.materialize(k, line)
	if !ok {
		return
	}
	if _, err := s.g.Connect(comp, net, terminal); err != nil {
		s.report(line, diag.ErrInvalidStatement, "%v", err)
		return
	}
	s.wires = append(s.wires, wire{comp: comp, terminal: terminal, key: k, line: line})
}

// checkWiring reports terminals whose edges landed on different nets.
// Runs after all unions, so two names that turned out to be one net are
// not a conflict.
func (s *state) checkWiring() {
	type slot struct {
		comp     core.ComponentID
		terminal string
	}
	type conflict struct {
		slot
		net netkey.Key
	}
	first := make(map[slot]netkey.Key, len(s.wires))
	reported := make(map[conflict]struct{})
	for _, w := range s.wires {
		net := s.reg.Find(w.key)
		k := slot{w.comp, w.terminal}
		prev, seen := first[k]
		if !seen {
			first[k] = net
			continue
		}
		if prev == net {
			continue
		}
		if _, done := reported[conflict{k, net}]; done {
			continue
		}
		reported[conflict{k, net}] = struct{}{}
		c, _ := s.g.Component(w.comp)
		s.report(w.line, diag.ErrDuplicateTerminalWiring,
			"component %q terminal %s wired to both %s and %s", c.Label(), w.terminal, prev, net)
	}
}
