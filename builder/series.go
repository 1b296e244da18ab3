// SPDX-License-Identifier: MIT
// Package: circuijts/builder
//
// series.go: walking a series path.
//
// The walk keeps a current attachment point. A Node moves it; a two-terminal
// element (component, source, parallel block, error placeholder) spans from
// the current point to the next one, which is the following Node if there is
// one and a fresh implicit net otherwise. Named currents are annotations:
// they neither move the point nor count when looking ahead.

package builder

import (
	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/diag"
	"github.com/Kreijstal/circuijts/netkey"
)

func (s *state) series(st ast.SeriesConnection) {
	if len(st.Path) == 0 {
		s.report(st.Line, diag.ErrMalformedSeriesPath, "empty path")
		return
	}
	start, ok := st.Path[0].(ast.Node)
	if !ok || start.Key.IsZero() {
		s.report(st.Line, diag.ErrMalformedSeriesPath, "path must start with a node")
		return
	}
	cur := s.node(start.Key, st.Line)

	for i := 1; i < len(st.Path); i++ {
		switch el := st.Path[i].(type) {
		case ast.Node:
			if el.Key.IsZero() {
				s.report(st.Line, diag.ErrMalformedSeriesPath, "node without a name at position %d", i)
				continue
			}
			cur = s.node(el.Key, st.Line)
			continue
		case ast.NamedCurrent:
			continue
		}

		next := s.nextPoint(st.Path, i)
		switch el := st.Path[i].(type) {
		case ast.Component:
			s.seriesComponent(el, cur, next, st.Line)
		case ast.Source:
			s.seriesSource(el, cur, next, st.Line)
		case ast.ParallelBlock:
			s.parallel(el, cur, next, st.Line)
		case ast.Error:
			s.report(st.Line, diag.ErrMalformedSeriesPath, "bad element at position %d: %s", i, el.Message)
		default:
			s.report(st.Line, diag.ErrMalformedSeriesPath, "unsupported element %T at position %d", el, i)
		}
		cur = next
	}
}

// node makes k the attachment point and wires its device, if any.
func (s *state) node(k netkey.Key, line int) netkey.Key {
	s.materialize(k, line)
	s.attachDeviceTerminal(k, line)
	return k
}

// nextPoint returns the key the element at i spans to.
func (s *state) nextPoint(path []ast.PathElement, i int) netkey.Key {
	for _, el := range path[i+1:] {
		if _, skip := el.(ast.NamedCurrent); skip {
			continue
		}
		if n, ok := el.(ast.Node); ok && !n.Key.IsZero() {
			return n.Key
		}
		break
	}
	k := netkey.Implicit(s.nextImplicit)
	s.nextImplicit++
	s.reg.Add(k)
	return k
}

func (s *state) seriesComponent(el ast.Component, cur, next netkey.Key, line int) {
	id, ok := s.declared[el.Name]
	if !ok {
		s.report(line, diag.ErrUndeclaredComponent, "series component %q", el.Name)
		return
	}
	s.connect(id, core.TerminalSeries1, cur, line)
	s.connect(id, core.TerminalSeries2, next, line)
}

func (s *state) seriesSource(el ast.Source, cur, next netkey.Key, line int) {
	id, ok := s.declared[el.Name]
	if !ok {
		s.report(line, diag.ErrUndeclaredComponent, "series source %q", el.Name)
		return
	}
	pol := el.Polarity
	if !pol.Valid() {
		s.report(line, diag.ErrMalformedSeriesPath, "source %q has polarity %q, using %q", el.Name, pol, ast.PolarityNegPos)
		pol = ast.PolarityNegPos
	}
	if err := s.g.SetPolarity(id, pol); err != nil {
		s.report(line, diag.ErrInvalidStatement, "%v", err)
	}

	curTerm, nextTerm := core.TerminalNeg, core.TerminalPos
	if pol == ast.PolarityPosNeg {
		curTerm, nextTerm = core.TerminalPos, core.TerminalNeg
	}
	s.connect(id, curTerm, cur, line)
	s.connect(id, nextTerm, next, line)
}

func (s *state) parallel(el ast.ParallelBlock, cur, next netkey.Key, line int) {
	for _, pe := range el.Elements {
		var id core.ComponentID
		switch pe := pe.(type) {
		case ast.ParallelComponent:
			declared, ok := s.declared[pe.Name]
			if !ok {
				s.report(line, diag.ErrUndeclaredComponent, "parallel component %q", pe.Name)
				continue
			}
			id = declared
		case ast.ControlledSource:
			id = s.internal(core.Component{
				Type:       core.TypeControlledSource,
				Kind:       core.KindControlledSource,
				Expression: pe.Expression,
				Direction:  pe.Direction,
			})
		case ast.NoiseSource:
			id = s.internal(core.Component{
				Type:      core.TypeNoiseSource,
				Kind:      core.KindNoiseSource,
				NoiseID:   pe.ID,
				Direction: pe.Direction,
			})
		default:
			s.report(line, diag.ErrMalformedSeriesPath, "unsupported parallel element %T", pe)
			continue
		}
		s.connect(id, core.TerminalParallel1, cur, line)
		s.connect(id, core.TerminalParallel2, next, line)
	}
}

// internal adds a synthesized behavioral component. Internal components
// carry no name, so AddComponent cannot fail for them.
func (s *state) internal(c core.Component) core.ComponentID {
	id, _ := s.g.AddComponent(c)
	return id
}
