// SPDX-License-Identifier: MIT

// Package reconstruct derives circuit statements back from a built graph.
//
// Reconstruct is the inverse of builder.Build up to equivalence: feeding its
// output to Build yields a graph with the same declared components, the same
// terminal-to-net wiring and the same net classes. It does not recover the
// original text. Implicit nets keep their synthesized names, parallel
// elements are regrouped by the net pair they span, and aliases are restated
// towards one target per class.
//
// Sources are never folded into a parallel block: a ParallelElement has no
// room for a polarity, so each source gets its own series statement even
// when it spans the same net pair as a block. A terminal wired to several
// nets through paths is restated as one series statement per pair of edges,
// since a connection block naming the terminal twice would merge those nets.
//
// Output order is fixed: declarations, connection blocks, series statements,
// fallback blocks, aliases. Within each group the order depends only on the
// graph and registry contents, so repeated calls agree byte for byte once
// formatted with ast.Format.
package reconstruct
