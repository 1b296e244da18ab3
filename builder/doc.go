// SPDX-License-Identifier: MIT

// Package builder turns structural circuit statements into a core.Graph and
// the netreg.Registry describing which net names are the same net.
//
// What it does:
//
//	Declaration        -> component vertex
//	ConnectionBlock    -> union(Comp.Term, node) + edge labelled Term
//	DirectAssignment   -> union(a, b) + edges for declared Comp.Term operands
//	SeriesConnection   -> edges along the path, implicit nets where no node is written
//
// Series elements get fixed terminal labels (core.TerminalSeries1/2), sources
// get core.TerminalNeg/Pos oriented by their polarity ("-+": negative on the
// current side), and parallel block members get core.TerminalParallel1/2.
// Controlled and noise sources inside parallel blocks become unnamed internal
// components, one per occurrence.
//
// Failure policy: Build never returns an error. Anything it cannot use is
// skipped and described by a diag.Diagnostic in Result.Diagnostics.
//
// Options:
//
//	WithComponentDB(db)       metadata used to flag unknown types (default: components.Default())
//	WithLogger(l)             slog logger; silent by default
//	WithRegistryOptions(...)  forwarded to netreg.New
package builder
