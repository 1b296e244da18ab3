// SPDX-License-Identifier: MIT

// Package core provides the circuit Graph: a bipartite multigraph whose two
// vertex kinds are components (device instances) and nets (canonical
// electrical nodes), joined by edges labelled with a terminal name.
//
// Components and nets live in two separate arenas addressed by ComponentID
// and NetID, so a component called "out" can never be confused with a net
// called "out". A component may reach the same net through several edges
// (a diode-connected transistor has G and D on one net), hence multigraph.
//
// Component kinds:
//
//	KindDeclared          introduced by a declaration ("Nmos M1"), named.
//	KindControlledSource  anonymous behavioral source from a parallel block.
//	KindNoiseSource       anonymous noise generator from a parallel block.
//
// Terminal labels: connection blocks use the device's own terminal names
// ("G", "D", ...). Elements placed by series paths use TerminalSeries1/2,
// elements placed inside parallel blocks use TerminalParallel1/2, and sources
// use TerminalNeg/TerminalPos. PathPairs lists these pairs.
//
// Core Methods:
//
//	// Mutation (builder only)
//	AddComponent(c Component) (ComponentID, error)      // O(1)
//	SetPolarity(id ComponentID, p ast.Polarity) error   // O(1)
//	EnsureNet(key netkey.Key) (NetID, error)            // O(1)
//	Connect(comp, net, terminal) (EdgeID, error)        // O(1)
//	Canonicalize(resolve func(netkey.Key) netkey.Key)   // O(V+E)
//
//	// Query
//	Component(id), ComponentByName(name), Components()
//	Net(id), NetByKey(key), Nets()
//	Edges(), IncidentEdges(comp), NetEdges(net), HasEdge(...)
//	Connectivity(comp) (map[string]netkey.Key, []TerminalNet)  // O(deg)
//	Stats(), NumComponents(), NumNets(), NumEdges()
//
// Determinism: every listing is returned in ID order, and IDs are assigned in
// insertion order, so a graph built from the same statements always lists
// the same way.
//
// Errors:
//
//	ErrEmptyName, ErrDuplicateComponent, ErrComponentNotFound,
//	ErrNetNotFound, ErrEmptyNetKey, ErrEmptyTerminal.
package core
