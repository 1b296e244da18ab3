// SPDX-License-Identifier: MIT

// Package flatten converts circuits to and from the flattened statement
// form of package ast.
//
// Flatten lists a built graph as declarations, one PinConnection per
// distinct terminal-to-net edge and one NetAlias per non-canonical key. It
// is lossless for edges: a terminal wired to two nets keeps both pins, and
// components synthesized by parallel blocks are declared under their graph
// label. Keys that carry no edge and share their class with no other key
// are not listed.
//
// Graph goes the other way and rebuilds a graph and registry from the flat
// list; Unflatten then runs reconstruct.Reconstruct on the result, so series
// and parallel structure is derived again from the pins rather than
// remembered.
package flatten
