// SPDX-License-Identifier: MIT
// Package: circuijts/core
//
// types.go: component, net and edge types, terminal labels, sentinel errors.
//
// Errors:
//
//	ErrEmptyName          - declared component without a name.
//	ErrDuplicateComponent - second component with an existing name.
//	ErrComponentNotFound  - unknown ComponentID or name.
//	ErrNetNotFound        - unknown NetID.
//	ErrEmptyNetKey        - zero netkey.Key used for a net.
//	ErrEmptyTerminal      - edge without a terminal label.
//	ErrInvalidPolarity    - polarity other than "-+" or "+-".
//	ErrPolarityConflict   - source re-placed with the opposite polarity.

package core

import (
	"errors"
	"strconv"

	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/netkey"
)

// Sentinel errors for graph mutation.
var (
	// ErrEmptyName indicates a declared component with an empty name.
	ErrEmptyName = errors.New("core: component name is empty")

	// ErrDuplicateComponent indicates a component name already in the graph.
	ErrDuplicateComponent = errors.New("core: duplicate component")

	// ErrComponentNotFound indicates an operation referenced a missing component.
	ErrComponentNotFound = errors.New("core: component not found")

	// ErrNetNotFound indicates an operation referenced a missing net.
	ErrNetNotFound = errors.New("core: net not found")

	// ErrEmptyNetKey indicates the zero netkey.Key was used for a net.
	ErrEmptyNetKey = errors.New("core: net key is empty")

	// ErrEmptyTerminal indicates an edge without a terminal label.
	ErrEmptyTerminal = errors.New("core: terminal label is empty")

	// ErrInvalidPolarity indicates a polarity that is neither "-+" nor "+-".
	ErrInvalidPolarity = errors.New("core: invalid polarity")

	// ErrPolarityConflict indicates a source already oriented the other way.
	ErrPolarityConflict = errors.New("core: conflicting polarity")
)

// Terminal labels given to edges created from series paths and parallel
// blocks. They never collide with the device terminal names used in
// connection blocks.
const (
	TerminalSeries1   = "t1_series"
	TerminalSeries2   = "t2_series"
	TerminalParallel1 = "par_t1"
	TerminalParallel2 = "par_t2"
	TerminalPos       = "pos"
	TerminalNeg       = "neg"
)

// PathPairs lists the terminal pairs that mark a two-terminal element placed
// by a path: series pair, parallel pair, source pair. The first label of each
// pair is the side attached to the current point of the path.
var PathPairs = [...][2]string{
	{TerminalSeries1, TerminalSeries2},
	{TerminalParallel1, TerminalParallel2},
	{TerminalNeg, TerminalPos},
}

// Types of internal behavioral components.
const (
	TypeControlledSource = "controlled_source"
	TypeNoiseSource      = "noise_source"
)

// ComponentID is a dense handle into the component arena.
type ComponentID int

// NetID is a dense handle into the net arena.
type NetID int

// EdgeID is a dense handle into the edge list.
type EdgeID int

// Kind separates declared devices from synthesized behavioral ones.
type Kind uint8

const (
	// KindDeclared is a component introduced by a declaration.
	KindDeclared Kind = iota
	// KindControlledSource is an anonymous controlled source from a parallel block.
	KindControlledSource
	// KindNoiseSource is an anonymous noise source from a parallel block.
	KindNoiseSource
)

// Internal reports whether components of kind k are synthesized.
func (k Kind) Internal() bool { return k != KindDeclared }

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindDeclared:
		return "declared"
	case KindControlledSource:
		return TypeControlledSource
	case KindNoiseSource:
		return TypeNoiseSource
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Component is a device instance in the graph.
type Component struct {
	ID   ComponentID
	Name string // empty for internal components
	Type string
	Kind Kind

	// Polarity is set for sources placed in a series path.
	Polarity ast.Polarity
	// Expression is set for KindControlledSource.
	Expression string
	// NoiseID is set for KindNoiseSource.
	NoiseID string
	// Direction is set for internal components.
	Direction ast.Direction
}

// Label returns Name, or a stable "<type>#<id>" tag for internal components.
func (c Component) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Type + "#" + strconv.Itoa(int(c.ID))
}

// Net is a canonical net vertex.
type Net struct {
	ID  NetID
	Key netkey.Key
}

// Edge attaches one terminal of a component to a net.
type Edge struct {
	ID        EdgeID
	Component ComponentID
	Net       NetID
	Terminal  string
}

// TerminalNet is one (terminal, net) entry of a component's connectivity.
type TerminalNet struct {
	Terminal string
	Net      netkey.Key
}
