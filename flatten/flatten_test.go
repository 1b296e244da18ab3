package flatten_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/builder"
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/diag"
	"github.com/Kreijstal/circuijts/flatten"
	"github.com/Kreijstal/circuijts/netkey"
	"github.com/Kreijstal/circuijts/netreg"
	"github.com/Kreijstal/circuijts/reconstruct"
)

func node(s string) ast.Node { return ast.Node{Key: netkey.Named(s)} }

func decl(typ, name string) ast.Declaration { return ast.Declaration{Type: typ, Name: name} }

func path(els ...ast.PathElement) ast.SeriesConnection { return ast.SeriesConnection{Path: els} }

// split sorts flat statements by variant.
func split(flat []ast.FlatStatement) (decls []ast.FlatDeclaration, pins []ast.PinConnection, aliases []ast.NetAlias) {
	for _, st := range flat {
		switch st := st.(type) {
		case ast.FlatDeclaration:
			decls = append(decls, st)
		case ast.PinConnection:
			pins = append(pins, st)
		case ast.NetAlias:
			aliases = append(aliases, st)
		}
	}
	return decls, pins, aliases
}

// pinsOf maps terminal to net for one component's pins.
func pinsOf(pins []ast.PinConnection, component string) map[string]netkey.Key {
	out := make(map[string]netkey.Key)
	for _, p := range pins {
		if p.Component == component {
			out[p.Terminal] = p.Net
		}
	}
	return out
}

func flat(t *testing.T, stmts ...ast.Statement) []ast.FlatStatement {
	t.Helper()
	out, diags := flatten.Statements(stmts)
	require.Empty(t, diags)
	return out
}

func TestFlatten_NilInputs(t *testing.T) {
	assert.Nil(t, flatten.Flatten(nil, netreg.New()))
	assert.Nil(t, flatten.Flatten(core.NewGraph(), nil))
	assert.Empty(t, flatten.Flatten(core.NewGraph(), netreg.New()))
}

func TestFlatten_SeriesChain(t *testing.T) {
	out := flat(t,
		decl("R", "R1"),
		decl("C", "C1"),
		path(node("in"), ast.Component{Name: "R1"}, node("mid"), ast.Component{Name: "C1"}, node("GND")),
	)
	decls, pins, aliases := split(out)

	assert.Equal(t, []ast.FlatDeclaration{
		{Type: "C", Name: "C1"},
		{Type: "R", Name: "R1"},
	}, decls)
	require.Len(t, pins, 4)
	assert.Equal(t, map[string]netkey.Key{
		core.TerminalSeries1: netkey.Named("in"),
		core.TerminalSeries2: netkey.Named("mid"),
	}, pinsOf(pins, "R1"))
	assert.Equal(t, map[string]netkey.Key{
		core.TerminalSeries1: netkey.Named("mid"),
		core.TerminalSeries2: netkey.Named("GND"),
	}, pinsOf(pins, "C1"))
	assert.Empty(t, aliases)
}

func TestFlatten_AliasTowardsRail(t *testing.T) {
	out := flat(t,
		decl("R", "R1"),
		path(node("node1"), ast.Component{Name: "R1"}, node("node2")),
		ast.DirectAssignment{Source: netkey.Named("node1"), Target: netkey.Named("VDD")},
	)
	_, pins, aliases := split(out)

	assert.Equal(t, []ast.NetAlias{{Source: netkey.Named("node1"), Canonical: netkey.Named("VDD")}}, aliases)
	assert.Equal(t, netkey.Named("VDD"), pinsOf(pins, "R1")[core.TerminalSeries1])
}

func TestFlatten_DeviceTerminals(t *testing.T) {
	out := flat(t,
		decl("Nmos", "M1"),
		ast.ConnectionBlock{Component: "M1", Connections: []ast.Connection{
			{Terminal: "G", Node: netkey.Named("in")},
			{Terminal: "S", Node: netkey.Named("GND")},
			{Terminal: "D", Node: netkey.Named("out")},
			{Terminal: "B", Node: netkey.Named("GND")},
		}},
	)
	_, pins, aliases := split(out)

	assert.Equal(t, map[string]netkey.Key{
		"G": netkey.Named("in"),
		"S": netkey.Named("GND"),
		"D": netkey.Named("out"),
		"B": netkey.Named("GND"),
	}, pinsOf(pins, "M1"))
	assert.ElementsMatch(t, []ast.NetAlias{
		{Source: netkey.DeviceTerminal("M1", "B"), Canonical: netkey.Named("GND")},
		{Source: netkey.DeviceTerminal("M1", "S"), Canonical: netkey.Named("GND")},
		{Source: netkey.DeviceTerminal("M1", "G"), Canonical: netkey.Named("in")},
		{Source: netkey.DeviceTerminal("M1", "D"), Canonical: netkey.Named("out")},
	}, aliases)
}

func TestFlatten_SourcesAndInternalComponents(t *testing.T) {
	out := flat(t,
		decl("V", "V1"),
		decl("R", "R1"),
		path(node("GND"), ast.Source{Name: "V1", Polarity: ast.PolarityNegPos}, ast.Component{Name: "R1"}, node("out")),
		path(node("out"), ast.ParallelBlock{Elements: []ast.ParallelElement{
			ast.ControlledSource{Expression: "gm*vgs", Direction: ast.Forward},
			ast.NoiseSource{ID: "in1", Direction: ast.Backward},
		}}, node("GND")),
	)
	decls, pins, _ := split(out)

	require.Len(t, decls, 4)
	assert.Equal(t, ast.FlatDeclaration{Type: "R", Name: "R1"}, decls[0])
	assert.Equal(t, ast.FlatDeclaration{Type: "V", Name: "V1", Polarity: ast.PolarityNegPos}, decls[1])
	assert.True(t, decls[2].Internal)
	assert.Equal(t, "gm*vgs", decls[2].Expression)
	assert.True(t, decls[3].Internal)
	assert.Equal(t, "in1", decls[3].NoiseID)

	v1 := pinsOf(pins, "V1")
	require.Len(t, v1, 2)
	assert.Equal(t, netkey.Named("GND"), v1[core.TerminalNeg])
	assert.Equal(t, netkey.Implicit(0), v1[core.TerminalPos])

	assert.Equal(t, map[string]netkey.Key{
		core.TerminalParallel1: netkey.Named("out"),
		core.TerminalParallel2: netkey.Named("GND"),
	}, pinsOf(pins, decls[2].Name))
}

func TestFlatten_NoDuplicatePins(t *testing.T) {
	out := flat(t,
		decl("Nmos", "M1"),
		ast.ConnectionBlock{Component: "M1", Connections: []ast.Connection{
			{Terminal: "G", Node: netkey.Named("g")},
		}},
		ast.DirectAssignment{Source: netkey.DeviceTerminal("M1", "G"), Target: netkey.Named("g")},
		path(ast.Node{Key: netkey.DeviceTerminal("M1", "G")}, ast.Component{Name: "M1"}, node("x")),
	)
	_, pins, _ := split(out)

	seen := make(map[ast.PinConnection]bool)
	for _, p := range pins {
		assert.False(t, seen[p], "duplicate %s", ast.FormatFlatStatement(p))
		seen[p] = true
	}
}

func TestUnflatten_KeepsParallelStructure(t *testing.T) {
	out := flat(t,
		decl("R", "R1"),
		decl("C", "C1"),
		path(node("out"), ast.ParallelBlock{Elements: []ast.ParallelElement{
			ast.ParallelComponent{Name: "R1"},
			ast.ParallelComponent{Name: "C1"},
		}}, node("GND")),
	)
	stmts, diags := flatten.Unflatten(out)
	require.Empty(t, diags)
	assert.Equal(t, "C C1\nR R1\n(out) -- [ C1 || R1 ] -- (GND)", ast.Format(stmts))
}

func TestUnflatten_MatchesReconstruct(t *testing.T) {
	stmts := []ast.Statement{
		decl("Nmos", "M1"),
		decl("R", "RD"),
		decl("V", "Vdd"),
		ast.ConnectionBlock{Component: "M1", Connections: []ast.Connection{
			{Terminal: "G", Node: netkey.Named("in")},
			{Terminal: "D", Node: netkey.Named("out")},
			{Terminal: "S", Node: netkey.Named("GND")},
			{Terminal: "B", Node: netkey.Named("GND")},
		}},
		path(node("VDD"), ast.Component{Name: "RD"}, node("out"), ast.ParallelBlock{Elements: []ast.ParallelElement{
			ast.ControlledSource{Expression: "gm*v_in", Direction: ast.Forward},
		}}, node("ground")),
		path(node("GND"), ast.Source{Name: "Vdd", Polarity: ast.PolarityNegPos}, node("VDD")),
		ast.DirectAssignment{Source: netkey.Named("ground"), Target: netkey.Named("GND")},
	}
	res := builder.Build(stmts)
	require.Empty(t, res.Diagnostics)

	back, diags := flatten.Unflatten(flatten.Flatten(res.Graph, res.Registry))
	require.Empty(t, diags)
	assert.Equal(t, ast.Format(reconstruct.Reconstruct(res.Graph, res.Registry)), ast.Format(back))
}

func TestUnflatten_RepeatedTerminalStaysApart(t *testing.T) {
	res := builder.Build([]ast.Statement{
		decl("R", "R1"),
		path(node("a"), ast.Component{Name: "R1"}, node("b")),
		path(node("c"), ast.Component{Name: "R1"}, node("d")),
	})
	require.True(t, res.Diagnostics.Has(diag.ErrDuplicateTerminalWiring))

	out := flatten.Flatten(res.Graph, res.Registry)
	_, pins, _ := split(out)
	assert.Len(t, pins, 4)

	g, reg, diags := flatten.Graph(out)
	require.Empty(t, diags)
	assert.Equal(t, res.Registry.NumClasses(), reg.NumClasses())
	assert.Equal(t, res.Graph.NumEdges(), g.NumEdges())

	back, _ := flatten.Unflatten(out)
	assert.Equal(t, "R R1\n(a) -- R1 -- (b)\n(c) -- R1 -- (d)", ast.Format(back))
}

func TestGraph_Problems(t *testing.T) {
	_, _, diags := flatten.Graph([]ast.FlatStatement{
		ast.FlatDeclaration{Line: 1, Type: "R", Name: "R1"},
		ast.FlatDeclaration{Line: 2, Type: "R", Name: "R1"},
		ast.FlatDeclaration{Line: 3, Type: "Xyz", Name: "X1"},
		ast.FlatDeclaration{Line: 4, Type: "V", Name: "V1", Polarity: "++"},
		ast.FlatDeclaration{Line: 5, Type: "R"},
		ast.PinConnection{Line: 6, Component: "R9", Terminal: "t1_series", Net: netkey.Named("a")},
		ast.PinConnection{Line: 7, Component: "R1", Net: netkey.Named("a")},
		ast.PinConnection{Line: 8, Component: "R1", Terminal: "t2_series"},
		ast.NetAlias{Line: 9, Source: netkey.Named("a")},
	})

	byLine := make(map[int]error)
	for _, d := range diags {
		byLine[d.Line] = d.Err
	}
	assert.Equal(t, map[int]error{
		2: diag.ErrDuplicateDeclaration,
		3: diag.ErrUnknownComponentType,
		4: diag.ErrInvalidStatement,
		5: diag.ErrInvalidStatement,
		6: diag.ErrUndeclaredComponent,
		7: diag.ErrMissingTerminalLabel,
		8: diag.ErrInvalidStatement,
		9: diag.ErrInvalidStatement,
	}, byLine)
	assert.Len(t, diags, 8)
}

func TestOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	out, diags := flatten.Statements([]ast.Statement{
		decl("R", "R1"),
		path(node("a"), ast.Component{Name: "R1"}, node("VSS")),
		ast.DirectAssignment{Source: netkey.Named("VSS"), Target: netkey.Named("vss_pad")},
	}, flatten.WithLogger(logger), flatten.WithRegistryOptions(netreg.WithPreferredRails("VSS")))
	require.Empty(t, diags)
	assert.Contains(t, buf.String(), "graph flattened")
	assert.Contains(t, out, ast.NetAlias{Source: netkey.Named("vss_pad"), Canonical: netkey.Named("VSS")})

	back, _ := flatten.Unflatten(out, flatten.WithReconstructOptions(reconstruct.WithKnownRails("VSS")))
	assert.Contains(t, back, ast.DirectAssignment{Source: netkey.Named("vss_pad"), Target: netkey.Named("VSS")})

	assert.Panics(t, func() { flatten.WithComponentDB(nil) })
	assert.Panics(t, func() { flatten.WithRegistryOptions(nil) })
	assert.Panics(t, func() { flatten.WithReconstructOptions(nil) })
	assert.NotPanics(t, func() { flatten.WithLogger(nil) })
}

func TestFormatFlat(t *testing.T) {
	got := ast.FormatFlat([]ast.FlatStatement{
		ast.FlatDeclaration{Type: "R", Name: "R1"},
		ast.FlatDeclaration{Type: "V", Name: "V1", Polarity: ast.PolarityPosNeg},
		ast.FlatDeclaration{Type: core.TypeControlledSource, Name: "controlled_source#2", Internal: true,
			Expression: "gm*vgs", Direction: ast.Forward},
		ast.FlatDeclaration{Type: core.TypeNoiseSource, Name: "noise_source#3", Internal: true,
			NoiseID: "in1", Direction: ast.Backward},
		ast.PinConnection{Component: "R1", Terminal: core.TerminalSeries1, Net: netkey.Named("in")},
		ast.NetAlias{Source: netkey.Named("ground"), Canonical: netkey.Named("GND")},
		nil,
	})
	assert.Equal(t, `R R1
V V1 (+-)
controlled_source controlled_source#2 = gm*vgs (->)
noise_source noise_source#3 = in1 (<-)
R1.t1_series -> (in)
(ground) => (GND)`, got)
}

// resistorNet wires one resistor per code between two names of a small pool
// and aliases pool names pairwise per alias code.
func resistorNet(codes, aliases []int) []ast.Statement {
	pool := []string{"a", "b", "c", "GND", "VDD"}
	var stmts []ast.Statement
	for i, code := range codes {
		name := fmt.Sprintf("R%d", i)
		stmts = append(stmts, decl("R", name),
			path(node(pool[code/len(pool)]), ast.Component{Name: name}, node(pool[code%len(pool)])))
	}
	for _, code := range aliases {
		a, b := pool[code/len(pool)], pool[code%len(pool)]
		if a != b {
			stmts = append(stmts, ast.DirectAssignment{Source: netkey.Named(a), Target: netkey.Named(b)})
		}
	}
	return stmts
}

func TestGraph_Property(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("flat form keeps classes and edges", prop.ForAll(
		func(codes, aliases []int) bool {
			res := builder.Build(resistorNet(codes, aliases))
			g, reg, diags := flatten.Graph(flatten.Flatten(res.Graph, res.Registry))
			return len(diags) == 0 &&
				reg.NumClasses() == res.Registry.NumClasses() &&
				g.NumEdges() == res.Graph.NumEdges() &&
				g.NumComponents() == res.Graph.NumComponents()
		},
		gen.SliceOf(gen.IntRange(0, 24)),
		gen.SliceOf(gen.IntRange(0, 24)),
	))

	properties.TestingRun(t)
}
