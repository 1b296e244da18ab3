// SPDX-License-Identifier: MIT
// Package: circuijts/ast
//
// ast.go: structural statements of the circuit language.
//
// Statements, path elements and parallel elements are closed sum types:
// each is an interface with an unexported marker method, so only the
// variants declared here can satisfy it. Consumers switch on the concrete
// type; the builder and reconstructor handle every variant explicitly.
//
// Determinism:
//   - All types are plain values; nothing here keeps hidden state.

package ast

import "github.com/Kreijstal/circuijts/netkey"

// Polarity is the orientation token of a voltage/current source in a path.
type Polarity string

const (
	// PolarityNegPos ("-+") attaches the negative terminal to the current
	// point and the positive terminal to the next one.
	PolarityNegPos Polarity = "-+"
	// PolarityPosNeg ("+-") is the reverse orientation.
	PolarityPosNeg Polarity = "+-"
)

// Valid reports whether p is one of the two known tokens.
func (p Polarity) Valid() bool {
	return p == PolarityNegPos || p == PolarityPosNeg
}

// Direction is the arrow attached to named currents and behavioral sources.
type Direction string

const (
	// Forward is "->".
	Forward Direction = "->"
	// Backward is "<-".
	Backward Direction = "<-"
)

// Statement is one top-level statement.
type Statement interface {
	// LineNumber returns the source line the statement came from, 0 if synthesized.
	LineNumber() int
	statement()
}

// Declaration introduces a component instance: "R R1".
type Declaration struct {
	Line int
	Type string
	Name string
}

// Connection is one "Terminal:(node)" entry of a ConnectionBlock.
type Connection struct {
	Terminal string
	Node     netkey.Key
}

// ConnectionBlock wires named terminals of one component: "M1 { G:(in), D:(out) }".
type ConnectionBlock struct {
	Line        int
	Component   string
	Connections []Connection
}

// SeriesConnection is a chain such as "(in) -- R1 -- (out)".
type SeriesConnection struct {
	Line int
	Path []PathElement
}

// DirectAssignment aliases two nets: "(a):(b)".
type DirectAssignment struct {
	Line   int
	Source netkey.Key
	Target netkey.Key
}

func (s Declaration) LineNumber() int      { return s.Line }
func (s ConnectionBlock) LineNumber() int  { return s.Line }
func (s SeriesConnection) LineNumber() int { return s.Line }
func (s DirectAssignment) LineNumber() int { return s.Line }

func (Declaration) statement()      {}
func (ConnectionBlock) statement()  {}
func (SeriesConnection) statement() {}
func (DirectAssignment) statement() {}

// PathElement is one step of a SeriesConnection.
type PathElement interface {
	pathElement()
}

// Node is an explicit net in a path: "(in)".
type Node struct {
	Key netkey.Key
}

// Component is a two-terminal device placed in series: "R1".
type Component struct {
	Name string
}

// Source is an oriented source in series: "V1 (-+)".
type Source struct {
	Name     string
	Polarity Polarity
}

// ParallelBlock holds elements sharing the same pair of nets: "[ R1 || R2 ]".
type ParallelBlock struct {
	Elements []ParallelElement
}

// NamedCurrent labels the branch current at its position: "->I1".
// It annotates the path and does not occupy a position between nets.
type NamedCurrent struct {
	Direction Direction
	Name      string
}

// Error is a parser placeholder for a malformed element.
type Error struct {
	Message string
}

func (Node) pathElement()          {}
func (Component) pathElement()     {}
func (Source) pathElement()        {}
func (ParallelBlock) pathElement() {}
func (NamedCurrent) pathElement()  {}
func (Error) pathElement()         {}

// ParallelElement is one branch of a ParallelBlock.
type ParallelElement interface {
	parallelElement()
}

// ParallelComponent references a declared component inside a block.
type ParallelComponent struct {
	Name string
}

// ControlledSource is an anonymous behavioral source: "gm*vgs (->)".
type ControlledSource struct {
	Expression string
	Direction  Direction
}

// NoiseSource is an anonymous noise generator: "id_noise (<-)".
type NoiseSource struct {
	ID        string
	Direction Direction
}

func (ParallelComponent) parallelElement() {}
func (ControlledSource) parallelElement()  {}
func (NoiseSource) parallelElement()       {}
