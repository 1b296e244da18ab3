// SPDX-License-Identifier: MIT
// Package: circuijts/core
//
// graph.go: Graph storage and mutation.
//
// Storage layout:
//   • components, nets, edges are arenas indexed by their IDs.
//   • byName and byKey give O(1) lookup of components and nets.
//   • compEdges[c] and netEdges[n] list incident edge IDs in insertion order.
//
// All methods take the graph lock, so concurrent readers are safe; mutation
// is expected to happen from the builder only.

package core

import (
	"fmt"
	"sync"

	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/netkey"
)

// Graph is a bipartite multigraph of components and nets.
type Graph struct {
	mu sync.RWMutex

	components []Component
	byName     map[string]ComponentID

	nets  []Net
	byKey map[netkey.Key]NetID

	edges     []Edge
	compEdges [][]EdgeID
	netEdges  [][]EdgeID
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		byName: make(map[string]ComponentID),
		byKey:  make(map[netkey.Key]NetID),
	}
}

// AddComponent stores c and returns its new ID; c.ID is ignored.
// Declared components must have a unique non-empty name. Internal components
// are never indexed by name.
// Complexity: O(1) amortized.
func (g *Graph) AddComponent(c Component) (ComponentID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !c.Kind.Internal() {
		if c.Name == "" {
			return 0, ErrEmptyName
		}
		if _, dup := g.byName[c.Name]; dup {
			return 0, fmt.Errorf("%w: %q", ErrDuplicateComponent, c.Name)
		}
	}
	c.ID = ComponentID(len(g.components))
	g.components = append(g.components, c)
	g.compEdges = append(g.compEdges, nil)
	if !c.Kind.Internal() {
		g.byName[c.Name] = c.ID
	}
	return c.ID, nil
}

// SetPolarity records the orientation of a source component. The first
// polarity recorded sticks; setting the opposite one later fails with
// ErrPolarityConflict and leaves the stored value alone.
func (g *Graph) SetPolarity(id ComponentID, p ast.Polarity) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPolarity, p)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasComponent(id) {
		return fmt.Errorf("%w: id %d", ErrComponentNotFound, id)
	}
	c := &g.components[id]
	if c.Polarity.Valid() && c.Polarity != p {
		return fmt.Errorf("%w: %s is %q, not %q", ErrPolarityConflict, c.Label(), c.Polarity, p)
	}
	c.Polarity = p
	return nil
}

// EnsureNet returns the net for key, creating it on first use.
// Complexity: O(1) amortized.
func (g *Graph) EnsureNet(key netkey.Key) (NetID, error) {
	if key.IsZero() {
		return 0, ErrEmptyNetKey
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.ensureNet(key), nil
}

func (g *Graph) ensureNet(key netkey.Key) NetID {
	if id, ok := g.byKey[key]; ok {
		return id
	}
	id := NetID(len(g.nets))
	g.nets = append(g.nets, Net{ID: id, Key: key})
	g.netEdges = append(g.netEdges, nil)
	g.byKey[key] = id
	return id
}

// Connect adds an edge from comp to net labelled terminal. Parallel edges
// are allowed; deduplication is the caller's concern.
// Complexity: O(1) amortized.
func (g *Graph) Connect(comp ComponentID, net NetID, terminal string) (EdgeID, error) {
	if terminal == "" {
		return 0, ErrEmptyTerminal
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasComponent(comp) {
		return 0, fmt.Errorf("%w: id %d", ErrComponentNotFound, comp)
	}
	if !g.hasNet(net) {
		return 0, fmt.Errorf("%w: id %d", ErrNetNotFound, net)
	}
	return g.connect(comp, net, terminal), nil
}

func (g *Graph) connect(comp ComponentID, net NetID, terminal string) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{ID: id, Component: comp, Net: net, Terminal: terminal})
	g.compEdges[comp] = append(g.compEdges[comp], id)
	g.netEdges[net] = append(g.netEdges[net], id)
	return id
}

func (g *Graph) hasComponent(id ComponentID) bool {
	return id >= 0 && int(id) < len(g.components)
}

func (g *Graph) hasNet(id NetID) bool {
	return id >= 0 && int(id) < len(g.nets)
}

// Canonicalize re-keys every net with resolve (typically a registry's Find).
// Nets whose keys resolve to the same value collapse into one vertex, and
// edges that become identical (same component, terminal and net) collapse
// into the first of them. IDs are renumbered densely; relative order of
// components is unchanged, nets and edges keep first-seen order.
// Complexity: O(V + E).
func (g *Graph) Canonicalize(resolve func(netkey.Key) netkey.Key) {
	g.mu.Lock()
	defer g.mu.Unlock()

	oldNets, oldEdges := g.nets, g.edges
	g.nets = nil
	g.byKey = make(map[netkey.Key]NetID, len(oldNets))
	g.netEdges = nil
	g.edges = nil
	for i := range g.compEdges {
		g.compEdges[i] = nil
	}

	remap := make([]NetID, len(oldNets))
	for _, n := range oldNets {
		remap[n.ID] = g.ensureNet(resolve(n.Key))
	}

	type edgeKey struct {
		comp     ComponentID
		net      NetID
		terminal string
	}
	seen := make(map[edgeKey]struct{}, len(oldEdges))
	for _, e := range oldEdges {
		k := edgeKey{e.Component, remap[e.Net], e.Terminal}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		g.connect(k.comp, k.net, k.terminal)
	}
}
