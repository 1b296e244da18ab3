package shorts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/builder"
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/netkey"
	"github.com/Kreijstal/circuijts/netreg"
	"github.com/Kreijstal/circuijts/shorts"
)

func named(s string) netkey.Key { return netkey.Named(s) }

func build(t *testing.T, stmts ...ast.Statement) *builder.Result {
	t.Helper()
	res := builder.Build(stmts)
	require.Empty(t, res.Diagnostics)
	return res
}

func TestDetect_Empty(t *testing.T) {
	res := build(t)
	assert.Empty(t, shorts.Detect(res.Graph, res.Registry))
	assert.Nil(t, shorts.Detect(nil, netreg.New()))
	assert.Nil(t, shorts.Detect(core.NewGraph(), nil))
}

func TestDetect_MosfetGateToDrain(t *testing.T) {
	res := build(t,
		ast.Declaration{Type: "Nmos", Name: "M1"},
		ast.ConnectionBlock{Component: "M1", Connections: []ast.Connection{
			{Terminal: "G", Node: named("g")},
			{Terminal: "D", Node: named("g")},
		}},
	)
	got := shorts.Detect(res.Graph, res.Registry)
	require.Len(t, got, 1)
	s, ok := got[0].(shorts.ComponentSelfShort)
	require.True(t, ok, "%T", got[0])
	assert.Equal(t, "M1", s.Component)
	assert.Equal(t, "Nmos", s.Type)
	assert.Equal(t, []string{"D", "G"}, s.Terminals)
	assert.Equal(t, named("g"), s.Net)
	assert.Equal(t, res.Registry.Find(named("g")), s.Canonical)
}

func TestDetect_ResistorAcrossOneNet(t *testing.T) {
	res := build(t,
		ast.Declaration{Type: "R", Name: "R1"},
		ast.SeriesConnection{Path: []ast.PathElement{
			ast.Node{Key: named("a")}, ast.Component{Name: "R1"}, ast.Node{Key: named("b")},
		}},
		ast.DirectAssignment{Source: named("b"), Target: named("a")},
	)
	got := shorts.Detect(res.Graph, res.Registry)
	require.Len(t, got, 1)
	s := got[0].(shorts.ComponentSelfShort)
	assert.Equal(t, []string{"t1_series", "t2_series"}, s.Terminals)
	assert.Equal(t, named("a"), s.Net)
}

func TestDetect_GlobalShort(t *testing.T) {
	res := build(t, ast.DirectAssignment{Source: named("VDD"), Target: named("GND")})
	got := shorts.Detect(res.Graph, res.Registry)
	require.Equal(t, []shorts.Short{
		shorts.GlobalShort{Nets: [2]string{"GND", "VDD"}, Canonical: named("GND")},
	}, got)
}

func TestDetect_GlobalShortsInPairOrder(t *testing.T) {
	res := build(t,
		ast.DirectAssignment{Source: named("VCC"), Target: named("VDD")},
		ast.DirectAssignment{Source: named("VSS"), Target: named("GND")},
		ast.DirectAssignment{Source: named("GND"), Target: named("VCC")},
	)
	got := shorts.Detect(res.Graph, res.Registry)
	var pairs [][2]string
	for _, s := range got {
		g, ok := s.(shorts.GlobalShort)
		require.True(t, ok)
		assert.Equal(t, named("GND"), g.Canonical)
		pairs = append(pairs, g.Nets)
	}
	// VDD, GND, VSS, VCC checked pairwise in that order.
	assert.Equal(t, [][2]string{
		{"GND", "VDD"}, {"VDD", "VSS"}, {"VCC", "VDD"},
		{"GND", "VSS"}, {"GND", "VCC"}, {"VCC", "VSS"},
	}, pairs)
}

func TestDetect_AbsentRailsIgnored(t *testing.T) {
	res := build(t, ast.DirectAssignment{Source: named("VDD"), Target: named("vdd_core")})
	assert.Empty(t, shorts.Detect(res.Graph, res.Registry))
	assert.False(t, res.Registry.Contains(named("GND")))
	assert.False(t, res.Registry.Contains(named("VSS")))
}

func TestDetect_KeyRailsOption(t *testing.T) {
	res := build(t, ast.DirectAssignment{Source: named("AVDD"), Target: named("DVDD")})
	assert.Empty(t, shorts.Detect(res.Graph, res.Registry))

	got := shorts.Detect(res.Graph, res.Registry, shorts.WithKeyRails("AVDD", "DVDD"))
	require.Len(t, got, 1)
	assert.Equal(t, [2]string{"AVDD", "DVDD"}, got[0].(shorts.GlobalShort).Nets)

	assert.Panics(t, func() { shorts.WithKeyRails("") })
	assert.Panics(t, func() { shorts.WithKeyRails("A", "A") })
	assert.Panics(t, func() { shorts.WithKnownRails("") })
}

func TestFormatReport(t *testing.T) {
	assert.Equal(t, "No topological short circuits detected.", shorts.FormatReport(nil))

	report := shorts.FormatReport([]shorts.Short{
		shorts.ComponentSelfShort{
			Component: "M1", Type: "Nmos", Terminals: []string{"D", "G"},
			Net: named("g"), Canonical: named("g"),
		},
		shorts.GlobalShort{Nets: [2]string{"GND", "VDD"}, Canonical: named("GND")},
	})
	assert.Equal(t, "Detected Topological Short Circuits:\n"+
		"  - Component Short: 'M1' (Type: Nmos) has terminals ['D', 'G'] connected to the same net 'g' (canonical: 'g').\n"+
		"  - Global Short: Key nets ['GND', 'VDD'] are connected together. (Canonical net: 'GND')",
		report)
}
