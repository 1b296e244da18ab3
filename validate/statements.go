// SPDX-License-Identifier: MIT
// Package: circuijts/validate
//
// statements.go: checks on the statement list before building.
//
// Declarations are gathered first so a reference may precede the
// declaration it uses, matching how the builder treats declarations.

package validate

import (
	"regexp"
	"slices"
	"strings"

	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/diag"
	"github.com/Kreijstal/circuijts/netkey"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type stmtCheck struct {
	cfg      config
	declared map[string]ast.Declaration
	out      diag.List
}

func (s *stmtCheck) report(line int, kind error, format string, args ...any) {
	s.out = append(s.out, diag.New(line, kind, format, args...))
}

// Statements reports every problem found in stmts, in statement order.
// An empty result means Build will not report anything either, apart from
// wiring conflicts that only show once nets are merged.
func Statements(stmts []ast.Statement, opts ...Option) diag.List {
	s := &stmtCheck{cfg: newConfig(opts...), declared: make(map[string]ast.Declaration)}
	for _, st := range stmts {
		if d, ok := st.(ast.Declaration); ok {
			s.declaration(d)
		}
	}
	for _, st := range stmts {
		switch st := st.(type) {
		case ast.Declaration:
		case ast.ConnectionBlock:
			s.block(st)
		case ast.SeriesConnection:
			s.series(st)
		case ast.DirectAssignment:
			s.assignment(st)
		default:
			s.report(0, diag.ErrInvalidStatement, "unsupported statement %T", st)
		}
	}
	return s.out
}

func (s *stmtCheck) declaration(d ast.Declaration) {
	if !identifier.MatchString(d.Type) {
		s.report(d.Line, diag.ErrInvalidStatement, "component type %q has an invalid format", d.Type)
	} else if _, ok := s.cfg.db.Arity(d.Type); !ok {
		s.report(d.Line, diag.ErrUnknownComponentType, "unknown type %q for %q, known types: %s",
			d.Type, d.Name, strings.Join(s.cfg.db.Types(), ", "))
	} else if s.cfg.db.IsBehavioral(d.Type) {
		s.report(d.Line, diag.ErrInvalidStatement, "type %q is only created by parallel blocks, %q cannot declare it", d.Type, d.Name)
	}
	if !identifier.MatchString(d.Name) {
		s.report(d.Line, diag.ErrInvalidStatement, "component name %q has an invalid format", d.Name)
	}
	if prev, dup := s.declared[d.Name]; dup {
		s.report(d.Line, diag.ErrDuplicateDeclaration, "%q re-declared, first declared on L%d", d.Name, prev.Line)
		return
	}
	s.declared[d.Name] = d
}

// node checks a net reference; device-terminal keys must name a declared
// component.
func (s *stmtCheck) node(k netkey.Key, line int) {
	switch {
	case k.IsZero():
		s.report(line, diag.ErrInvalidStatement, "empty node name")
	case k.IsDeviceTerminal():
		if _, ok := s.declared[k.Component()]; !ok {
			s.report(line, diag.ErrUndeclaredComponent, "node %s refers to undeclared component %q", k, k.Component())
		}
	}
}

func (s *stmtCheck) block(b ast.ConnectionBlock) {
	d, declared := s.declared[b.Component]
	if !declared {
		s.report(b.Line, diag.ErrUndeclaredComponent, "connection block for %q", b.Component)
	}
	if len(b.Connections) == 0 {
		s.report(b.Line, diag.ErrInvalidStatement, "connection block for %q is empty", b.Component)
		return
	}
	if declared {
		if arity, ok := s.cfg.db.Arity(d.Type); ok && len(b.Connections) > arity {
			s.report(b.Line, diag.ErrArityExceeded, "%q (%s) block defines %d terminals, arity is %d",
				b.Component, d.Type, len(b.Connections), arity)
		}
	}
	for _, c := range b.Connections {
		if c.Terminal == "" {
			s.report(b.Line, diag.ErrMissingTerminalLabel, "%q connection to %s", b.Component, c.Node)
		} else {
			s.terminal(b, d.Type, c.Terminal)
		}
		s.node(c.Node, b.Line)
	}
}

// terminal checks a block label against the terminals typ defines, or
// against the identifier format when typ defines none. Path labels are
// accepted on every type.
func (s *stmtCheck) terminal(b ast.ConnectionBlock, typ, t string) {
	defined := s.cfg.db.Terminals(typ)
	switch {
	case slices.Contains(defined, t), isPathLabel(t):
	case len(defined) > 0:
		s.report(b.Line, diag.ErrInvalidStatement, "%q (%s) has no terminal %q, defined: %s",
			b.Component, typ, t, strings.Join(defined, ", "))
	case !identifier.MatchString(t):
		s.report(b.Line, diag.ErrInvalidStatement, "terminal %q of %q is invalid", t, b.Component)
	}
}

func isPathLabel(t string) bool {
	for _, p := range core.PathPairs {
		if p[0] == t || p[1] == t {
			return true
		}
	}
	return false
}

func (s *stmtCheck) series(sc ast.SeriesConnection) {
	path := sc.Path
	if len(path) == 0 {
		s.report(sc.Line, diag.ErrMalformedSeriesPath, "empty path")
		return
	}
	if _, ok := path[0].(ast.Node); !ok {
		s.report(sc.Line, diag.ErrMalformedSeriesPath, "path does not start with a node")
		return
	}
	if len(path) == 1 {
		s.report(sc.Line, diag.ErrMalformedSeriesPath, "path is only a node; it must connect points or include an element")
	}

	for i, el := range path {
		switch el := el.(type) {
		case ast.Node:
			s.node(el.Key, sc.Line)
		case ast.Component:
			if _, ok := s.declared[el.Name]; !ok {
				s.report(sc.Line, diag.ErrUndeclaredComponent, "series component %q", el.Name)
			}
		case ast.Source:
			if _, ok := s.declared[el.Name]; !ok {
				s.report(sc.Line, diag.ErrUndeclaredComponent, "series source %q", el.Name)
			}
			if !el.Polarity.Valid() {
				s.report(sc.Line, diag.ErrMalformedSeriesPath, "source %q has polarity %q", el.Name, el.Polarity)
			}
		case ast.NamedCurrent:
			s.namedCurrent(path, i, sc.Line)
		case ast.ParallelBlock:
			s.parallel(el, sc.Line)
		case ast.Error:
			s.report(sc.Line, diag.ErrMalformedSeriesPath, "bad path segment: %s", el.Message)
		}
	}
}

// namedCurrent requires a current to sit between two real elements.
func (s *stmtCheck) namedCurrent(path []ast.PathElement, i, line int) {
	nc := path[i].(ast.NamedCurrent)
	label := string(nc.Direction) + nc.Name
	if i == 0 || i == len(path)-1 {
		s.report(line, diag.ErrMalformedSeriesPath, "named current %s must be between two elements", label)
	}
	bad := func(el ast.PathElement) bool {
		switch el.(type) {
		case ast.NamedCurrent, ast.Error:
			return true
		}
		return false
	}
	if i > 0 && bad(path[i-1]) {
		s.report(line, diag.ErrMalformedSeriesPath, "named current %s preceded by %T", label, path[i-1])
	}
	if i < len(path)-1 && bad(path[i+1]) {
		s.report(line, diag.ErrMalformedSeriesPath, "named current %s followed by %T", label, path[i+1])
	}
}

func (s *stmtCheck) parallel(pb ast.ParallelBlock, line int) {
	if len(pb.Elements) == 0 {
		s.report(line, diag.ErrMalformedSeriesPath, "parallel block is empty")
		return
	}
	for _, pe := range pb.Elements {
		switch pe := pe.(type) {
		case ast.ParallelComponent:
			if _, ok := s.declared[pe.Name]; !ok {
				s.report(line, diag.ErrUndeclaredComponent, "parallel component %q", pe.Name)
			}
		case ast.ControlledSource:
			if pe.Expression == "" {
				s.report(line, diag.ErrMalformedSeriesPath, "controlled source without an expression")
			}
		case ast.NoiseSource:
			if pe.ID == "" {
				s.report(line, diag.ErrMalformedSeriesPath, "noise source without an id")
			}
		}
	}
}

func (s *stmtCheck) assignment(a ast.DirectAssignment) {
	if !a.Source.IsZero() && a.Source == a.Target {
		s.report(a.Line, diag.ErrInvalidStatement, "(%s) is assigned to itself", a.Source)
	}
	s.node(a.Source, a.Line)
	s.node(a.Target, a.Line)
}
