// SPDX-License-Identifier: MIT
// Package: circuijts
//
// circuijts.go: pipeline entry points.

package circuijts

import (
	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/builder"
	"github.com/Kreijstal/circuijts/core"
	"github.com/Kreijstal/circuijts/diag"
	"github.com/Kreijstal/circuijts/flatten"
	"github.com/Kreijstal/circuijts/netkey"
	"github.com/Kreijstal/circuijts/netreg"
	"github.com/Kreijstal/circuijts/reconstruct"
	"github.com/Kreijstal/circuijts/shorts"
)

// AstToGraph builds the graph and net registry for stmts. Problems in the
// input are returned as diagnostics; the graph holds everything that could
// be built regardless.
func AstToGraph(stmts []ast.Statement, opts ...builder.Option) (*core.Graph, *netreg.Registry, diag.List) {
	res := builder.Build(stmts, opts...)
	return res.Graph, res.Registry, res.Diagnostics
}

// GraphToStructuredAST returns statements that rebuild an equivalent graph.
func GraphToStructuredAST(g *core.Graph, reg *netreg.Registry, opts ...reconstruct.Option) []ast.Statement {
	return reconstruct.Reconstruct(g, reg, opts...)
}

// AstToFlattenedAST builds stmts and lists the result as declarations, pin
// connections and net aliases.
func AstToFlattenedAST(stmts []ast.Statement, opts ...flatten.Option) ([]ast.FlatStatement, diag.List) {
	return flatten.Statements(stmts, opts...)
}

// FlattenedASTToRegularAST derives structured statements from a flat list.
func FlattenedASTToRegularAST(flat []ast.FlatStatement, opts ...flatten.Option) ([]ast.Statement, diag.List) {
	return flatten.Unflatten(flat, opts...)
}

// GetComponentConnectivity returns the terminal→net map of the named
// component and its raw (terminal, net) list in edge order. Both are empty
// when no such component exists.
func GetComponentConnectivity(g *core.Graph, component string) (map[string]netkey.Key, []core.TerminalNet) {
	c, ok := g.ComponentByName(component)
	if !ok {
		return map[string]netkey.Key{}, nil
	}
	return g.Connectivity(c.ID)
}

// GetPreferredNetName picks a display name for the class of canonical.
// See netreg.Registry.PreferredName.
func GetPreferredNetName(canonical netkey.Key, reg *netreg.Registry, knownRails []string, allowImplicit bool) netkey.Key {
	return reg.PreferredName(canonical, knownRails, allowImplicit)
}

// DetectShortCircuits reports self-shorted components and merged key rails.
func DetectShortCircuits(g *core.Graph, reg *netreg.Registry, opts ...shorts.Option) []shorts.Short {
	return shorts.Detect(g, reg, opts...)
}

// FormatShortCircuitReport renders the result of DetectShortCircuits.
func FormatShortCircuitReport(s []shorts.Short) string {
	return shorts.FormatReport(s)
}
