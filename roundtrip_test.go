package circuijts_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kreijstal/circuijts"
	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/netkey"
	"github.com/Kreijstal/circuijts/netreg"
)

// sameWiring reports whether every named component touches the same nets
// after a rebuild. Nets are matched through the rebuilt registry, which
// holds every name the reconstruction emitted.
func sameWiring(g1 *core.Graph, r1 *netreg.Registry, g2 *core.Graph, r2 *netreg.Registry) error {
	if g1.NumComponents() != g2.NumComponents() {
		return fmt.Errorf("components: %d vs %d", g1.NumComponents(), g2.NumComponents())
	}
	if g1.NumNets() != g2.NumNets() || r1.NumClasses() != r2.NumClasses() {
		return fmt.Errorf("nets: %d/%d vs %d/%d", g1.NumNets(), r1.NumClasses(), g2.NumNets(), r2.NumClasses())
	}
	for _, c := range g1.Components() {
		if c.Kind.Internal() {
			continue
		}
		c2, ok := g2.ComponentByName(c.Name)
		if !ok || c2.Type != c.Type {
			return fmt.Errorf("component %s lost", c.Name)
		}
		_, before := g1.Connectivity(c.ID)
		_, after := g2.Connectivity(c2.ID)
		var want, got []netkey.Key
		for _, e := range before {
			if !r2.Contains(e.Net) {
				return fmt.Errorf("net %s not re-emitted", e.Net)
			}
			want = append(want, r2.Find(e.Net))
		}
		for _, e := range after {
			got = append(got, e.Net)
		}
		netkey.Sort(want)
		netkey.Sort(got)
		if !slices.Equal(slices.Compact(want), slices.Compact(got)) {
			return fmt.Errorf("%s: %v vs %v", c.Name, want, got)
		}
	}
	return nil
}

func fullCircuit() []ast.Statement {
	return []ast.Statement{
		ast.Declaration{Line: 1, Type: "Nmos", Name: "M1"},
		ast.Declaration{Line: 2, Type: "Pmos", Name: "M2"},
		ast.Declaration{Line: 3, Type: "R", Name: "RL"},
		ast.Declaration{Line: 4, Type: "C", Name: "CL"},
		ast.Declaration{Line: 5, Type: "V", Name: "Vdd"},
		ast.Declaration{Line: 6, Type: "V", Name: "Vin"},
		ast.Declaration{Line: 7, Type: "Opamp", Name: "U1"},
		ast.ConnectionBlock{Line: 8, Component: "M1", Connections: []ast.Connection{
			{Terminal: "G", Node: netkey.Named("in")},
			{Terminal: "D", Node: netkey.Named("out")},
			{Terminal: "S", Node: netkey.Named("GND")},
			{Terminal: "B", Node: netkey.Named("GND")},
		}},
		ast.ConnectionBlock{Line: 9, Component: "M2", Connections: []ast.Connection{
			{Terminal: "G", Node: netkey.Named("in")},
			{Terminal: "D", Node: netkey.Named("out")},
			{Terminal: "S", Node: netkey.Named("VDD")},
			{Terminal: "B", Node: netkey.Named("VDD")},
		}},
		ast.SeriesConnection{Line: 10, Path: []ast.PathElement{
			node("out"), ast.NamedCurrent{Direction: ast.Forward, Name: "Iload"},
			ast.ParallelBlock{Elements: []ast.ParallelElement{
				ast.ParallelComponent{Name: "CL"},
				ast.ControlledSource{Expression: "gm*v_in", Direction: ast.Forward},
				ast.NoiseSource{ID: "in_load", Direction: ast.Backward},
			}},
			ast.Component{Name: "RL"}, node("GND"),
		}},
		ast.SeriesConnection{Line: 11, Path: []ast.PathElement{
			node("GND"), ast.Source{Name: "Vdd", Polarity: ast.PolarityNegPos}, node("VDD"),
		}},
		ast.SeriesConnection{Line: 12, Path: []ast.PathElement{
			node("in"), ast.Source{Name: "Vin", Polarity: ast.PolarityPosNeg}, node("GND"),
		}},
		ast.ConnectionBlock{Line: 13, Component: "U1", Connections: []ast.Connection{
			{Terminal: "IN+", Node: netkey.Named("ref")},
			{Terminal: "IN-", Node: netkey.Named("fb")},
			{Terminal: "OUT", Node: netkey.Named("fb")},
		}},
		ast.DirectAssignment{Line: 14, Source: netkey.Named("ref"), Target: netkey.Named("in")},
		ast.DirectAssignment{Line: 15, Source: netkey.Named("vss"), Target: netkey.Named("GND")},
	}
}

func TestRoundTrip_FullCircuit(t *testing.T) {
	g, reg, diags := circuijts.AstToGraph(fullCircuit())
	require.Empty(t, diags)

	stmts := circuijts.GraphToStructuredAST(g, reg)
	g2, reg2, diags2 := circuijts.AstToGraph(stmts)
	require.Empty(t, diags2, ast.Format(stmts))
	require.NoError(t, sameWiring(g, reg, g2, reg2), ast.Format(stmts))

	// sources keep their pos/neg nets exactly
	for _, name := range []string{"Vdd", "Vin"} {
		before, _ := circuijts.GetComponentConnectivity(g, name)
		after, _ := circuijts.GetComponentConnectivity(g2, name)
		for term, net := range before {
			assert.Equal(t, reg2.Find(net), after[term], "%s.%s", name, term)
		}
	}
	// multi-terminal blocks keep their labels exactly
	for _, name := range []string{"M1", "M2", "U1"} {
		before, _ := circuijts.GetComponentConnectivity(g, name)
		after, _ := circuijts.GetComponentConnectivity(g2, name)
		require.Len(t, after, len(before), name)
		for term, net := range before {
			assert.Equal(t, reg2.Find(net), after[term], "%s.%s", name, term)
		}
	}
	assert.Len(t, circuijts.DetectShortCircuits(g, reg), len(circuijts.DetectShortCircuits(g2, reg2)))
}

func TestRoundTrip_ThroughFlattenedForm(t *testing.T) {
	g, reg, diags := circuijts.AstToGraph(fullCircuit())
	require.Empty(t, diags)

	flat, diags := circuijts.AstToFlattenedAST(fullCircuit())
	require.Empty(t, diags)
	stmts, diags := circuijts.FlattenedASTToRegularAST(flat)
	require.Empty(t, diags)
	assert.Equal(t, ast.Format(circuijts.GraphToStructuredAST(g, reg)), ast.Format(stmts))

	g2, reg2, diags2 := circuijts.AstToGraph(stmts)
	require.Empty(t, diags2, ast.Format(stmts))
	require.NoError(t, sameWiring(g, reg, g2, reg2), ast.Format(stmts))
}

func TestRoundTrip_Deterministic(t *testing.T) {
	var first string
	for i := 0; i < 25; i++ {
		g, reg, _ := circuijts.AstToGraph(fullCircuit())
		out := ast.Format(circuijts.GraphToStructuredAST(g, reg))
		if i == 0 {
			first = out
			continue
		}
		require.Equal(t, first, out)
	}
}

// randomCircuit wires one resistor per pair code and one alias per alias
// code over a small pool of net names.
func randomCircuit(pairs, aliases []int) []ast.Statement {
	pool := []string{"a", "b", "c", "GND", "VDD"}
	var stmts []ast.Statement
	for i, code := range pairs {
		name := fmt.Sprintf("R%d", i)
		stmts = append(stmts, ast.Declaration{Type: "R", Name: name})
		from, to := pool[code/len(pool)], pool[code%len(pool)]
		path := []ast.PathElement{node(from), ast.Component{Name: name}}
		if i%3 != 2 {
			path = append(path, node(to))
		}
		stmts = append(stmts, ast.SeriesConnection{Path: path})
	}
	for _, code := range aliases {
		a, b := pool[code/len(pool)], pool[code%len(pool)]
		if a == b {
			continue
		}
		stmts = append(stmts, ast.DirectAssignment{Source: netkey.Named(a), Target: netkey.Named(b)})
	}
	return stmts
}

func TestRoundTrip_Property(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("rebuild from reconstruction keeps wiring", prop.ForAll(
		func(pairs, aliases []int) bool {
			g, reg, diags := circuijts.AstToGraph(randomCircuit(pairs, aliases))
			if len(diags) != 0 {
				return false
			}
			stmts := circuijts.GraphToStructuredAST(g, reg)
			g2, reg2, diags2 := circuijts.AstToGraph(stmts)
			if len(diags2) != 0 {
				return false
			}
			return sameWiring(g, reg, g2, reg2) == nil
		},
		gen.SliceOf(gen.IntRange(0, 24)),
		gen.SliceOf(gen.IntRange(0, 24)),
	))

	properties.Property("shorts survive a round trip", prop.ForAll(
		func(pairs, aliases []int) bool {
			g, reg, _ := circuijts.AstToGraph(randomCircuit(pairs, aliases))
			g2, reg2, _ := circuijts.AstToGraph(circuijts.GraphToStructuredAST(g, reg))
			return len(circuijts.DetectShortCircuits(g, reg)) == len(circuijts.DetectShortCircuits(g2, reg2))
		},
		gen.SliceOf(gen.IntRange(0, 24)),
		gen.SliceOf(gen.IntRange(0, 24)),
	))

	properties.TestingRun(t)
}
