// SPDX-License-Identifier: MIT
// Package: circuijts/core
//
// query.go: read-only accessors and the connectivity query.
// Slices returned here are fresh copies; callers may keep or modify them.

package core

import "github.com/Kreijstal/circuijts/netkey"

// NumComponents returns the number of components.
func (g *Graph) NumComponents() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.components)
}

// NumNets returns the number of nets.
func (g *Graph) NumNets() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nets)
}

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// Component returns the component with the given ID.
func (g *Graph) Component(id ComponentID) (Component, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.hasComponent(id) {
		return Component{}, false
	}
	return g.components[id], true
}

// ComponentByName returns the declared component called name.
func (g *Graph) ComponentByName(name string) (Component, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	id, ok := g.byName[name]
	if !ok {
		return Component{}, false
	}
	return g.components[id], true
}

// Components returns all components in ID (insertion) order.
func (g *Graph) Components() []Component {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Component(nil), g.components...)
}

// Net returns the net with the given ID.
func (g *Graph) Net(id NetID) (Net, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.hasNet(id) {
		return Net{}, false
	}
	return g.nets[id], true
}

// NetByKey returns the net vertex keyed by key.
func (g *Graph) NetByKey(key netkey.Key) (Net, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	id, ok := g.byKey[key]
	if !ok {
		return Net{}, false
	}
	return g.nets[id], true
}

// Nets returns all nets in ID order.
func (g *Graph) Nets() []Net {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Net(nil), g.nets...)
}

// Edges returns all edges in ID order.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Edge(nil), g.edges...)
}

// IncidentEdges returns the edges of comp in insertion order.
func (g *Graph) IncidentEdges(comp ComponentID) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.hasComponent(comp) {
		return nil
	}
	out := make([]Edge, len(g.compEdges[comp]))
	for i, id := range g.compEdges[comp] {
		out[i] = g.edges[id]
	}
	return out
}

// NetEdges returns the edges landing on net in insertion order.
func (g *Graph) NetEdges(net NetID) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.hasNet(net) {
		return nil
	}
	out := make([]Edge, len(g.netEdges[net]))
	for i, id := range g.netEdges[net] {
		out[i] = g.edges[id]
	}
	return out
}

// HasEdge reports whether comp already reaches net through terminal.
func (g *Graph) HasEdge(comp ComponentID, net NetID, terminal string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.hasComponent(comp) {
		return false
	}
	for _, id := range g.compEdges[comp] {
		if e := g.edges[id]; e.Net == net && e.Terminal == terminal {
			return true
		}
	}
	return false
}

// Connectivity returns the terminal to net mapping of comp.
//
// When a terminal label occurs on more than one edge, the map keeps the first
// one while the list keeps them all, in edge order. An unknown component
// yields an empty map and a nil list.
// Complexity: O(deg(comp)).
func (g *Graph) Connectivity(comp ComponentID) (map[string]netkey.Key, []TerminalNet) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	terms := make(map[string]netkey.Key)
	if !g.hasComponent(comp) {
		return terms, nil
	}
	list := make([]TerminalNet, 0, len(g.compEdges[comp]))
	for _, id := range g.compEdges[comp] {
		e := g.edges[id]
		key := g.nets[e.Net].Key
		if _, seen := terms[e.Terminal]; !seen {
			terms[e.Terminal] = key
		}
		list = append(list, TerminalNet{Terminal: e.Terminal, Net: key})
	}
	return terms, list
}

// Stats summarizes graph size.
type Stats struct {
	Components int
	Internal   int
	Nets       int
	Edges      int
}

// Stats returns component, net and edge counts.
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s := Stats{Components: len(g.components), Nets: len(g.nets), Edges: len(g.edges)}
	for _, c := range g.components {
		if c.Kind.Internal() {
			s.Internal++
		}
	}
	return s
}
