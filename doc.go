// Package circuijts turns circuit descriptions into a canonical topological
// graph and back, and looks for short circuits along the way.
//
// 🚀 What is circuijts?
//
//	A small, deterministic toolkit for circuit netlists written as statements:
//		• Build: declarations, connection blocks, series paths and net aliases
//		  become a bipartite component/net graph
//		• Net equivalence: a rail-aware union-find decides which names are one net
//		• Reconstruct: the graph is turned back into equivalent statements,
//		  re-deriving series and parallel structure
//		• Shorts: self-shorted components and merged supply rails are reported
//		• Validate: statement and arity checks collected as diagnostics
//
// Packages:
//
//	netkey/       typed net names: plain, Comp.Terminal, implicit
//	netreg/       union-find registry with preferred rails and display naming
//	ast/          statement types, rendering and summaries
//	core/         the component/net graph
//	components/   component type catalog (embedded YAML)
//	builder/      statements → graph
//	reconstruct/  graph → statements
//	shorts/       short-circuit detection and reports
//	validate/     pre- and post-build checks
//	diag/         diagnostic kinds
//
// The functions in this package are thin entry points over those packages
// for callers that just want the whole pipeline:
//
//	g, reg, diags := circuijts.AstToGraph(stmts)
//	back := circuijts.GraphToStructuredAST(g, reg)
//	fmt.Println(circuijts.FormatShortCircuitReport(circuijts.DetectShortCircuits(g, reg)))
//
// Nothing here parses text; statements come from an external parser.
package circuijts
