// SPDX-License-Identifier: MIT
// Package: circuijts/ast
//
// summary.go: quick structural census of a statement list, without building
// a graph. Nets are counted by name only; aliasing is not resolved here.

package ast

import (
	"slices"

	"github.com/Kreijstal/circuijts/netkey"
)

// Summary counts what a statement list declares and references.
type Summary struct {
	// Components lists declared instance names, sorted.
	Components []string
	// TypeCounts maps component type to number of declarations.
	TypeCounts map[string]int
	// ExplicitNodes lists every net written out in the statements, sorted.
	ExplicitNodes []netkey.Key
	// ImplicitNodes is how many nets series paths leave unnamed.
	ImplicitNodes int
	// ParallelBlocks is the number of parallel blocks across all paths.
	ParallelBlocks int
}

// TotalNodes is ExplicitNodes plus ImplicitNodes.
func (s Summary) TotalNodes() int { return len(s.ExplicitNodes) + s.ImplicitNodes }

// Summarize walks stmts once and fills a Summary.
// Complexity: O(S + P log P) for S statement elements and P distinct nets.
func Summarize(stmts []Statement) Summary {
	sum := Summary{TypeCounts: make(map[string]int)}
	declared := make(map[string]struct{})
	nodes := make(map[netkey.Key]struct{})

	for _, s := range stmts {
		switch st := s.(type) {
		case Declaration:
			if _, dup := declared[st.Name]; dup {
				continue
			}
			declared[st.Name] = struct{}{}
			sum.Components = append(sum.Components, st.Name)
			sum.TypeCounts[st.Type]++
		case ConnectionBlock:
			for _, c := range st.Connections {
				nodes[c.Node] = struct{}{}
			}
		case DirectAssignment:
			nodes[st.Source] = struct{}{}
			nodes[st.Target] = struct{}{}
		case SeriesConnection:
			for i, el := range st.Path {
				switch e := el.(type) {
				case Node:
					nodes[e.Key] = struct{}{}
				case ParallelBlock:
					sum.ParallelBlocks++
					if !nextIsNode(st.Path, i) {
						sum.ImplicitNodes++
					}
				case Component, Source:
					if !nextIsNode(st.Path, i) {
						sum.ImplicitNodes++
					}
				}
			}
		}
	}

	slices.Sort(sum.Components)
	sum.ExplicitNodes = make([]netkey.Key, 0, len(nodes))
	for k := range nodes {
		sum.ExplicitNodes = append(sum.ExplicitNodes, k)
	}
	netkey.Sort(sum.ExplicitNodes)
	return sum
}

// nextIsNode reports whether the first non-annotation element after i is a Node.
func nextIsNode(path []PathElement, i int) bool {
	for _, el := range path[i+1:] {
		switch el.(type) {
		case NamedCurrent:
			continue
		case Node:
			return true
		default:
			return false
		}
	}
	return false
}
