// SPDX-License-Identifier: MIT
// Package: circuijts/ast
//
// flat.go: the flattened statement form.
//
// A flattened circuit has no paths and no blocks. It lists components,
// then every terminal-to-net edge as its own PinConnection, then every
// non-canonical net key with the key it resolves to. Components synthesized
// by parallel blocks appear as internal declarations named by their graph
// label ("controlled_source#3"), so pins can refer to them.

package ast

import (
	"fmt"
	"strings"

	"github.com/Kreijstal/circuijts/netkey"
)

// FlatStatement is one statement of the flattened form.
type FlatStatement interface {
	LineNumber() int
	flatStatement()
}

// FlatDeclaration introduces a component in the flattened form.
type FlatDeclaration struct {
	Line int
	Type string
	Name string
	// Polarity is the stored orientation of a source, if any.
	Polarity Polarity

	// Internal marks a component synthesized by a parallel block; Name is
	// then its graph label and the fields below describe it.
	Internal   bool
	Expression string
	NoiseID    string
	Direction  Direction
}

// PinConnection attaches one terminal of a component to a net.
type PinConnection struct {
	Line      int
	Component string
	Terminal  string
	Net       netkey.Key
}

// NetAlias states that Source resolves to Canonical.
type NetAlias struct {
	Line      int
	Source    netkey.Key
	Canonical netkey.Key
}

func (s FlatDeclaration) LineNumber() int { return s.Line }
func (s PinConnection) LineNumber() int   { return s.Line }
func (s NetAlias) LineNumber() int        { return s.Line }

func (FlatDeclaration) flatStatement() {}
func (PinConnection) flatStatement()   {}
func (NetAlias) flatStatement()        {}

// FormatFlat renders flattened statements one per line:
//
//	R R1
//	V V1 (-+)
//	controlled_source controlled_source#2 = gm*vgs (->)
//	R1.t1_series -> (in)
//	(ground) => (GND)
func FormatFlat(stmts []FlatStatement) string {
	lines := make([]string, 0, len(stmts))
	for _, s := range stmts {
		if line := FormatFlatStatement(s); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// FormatFlatStatement renders a single flattened statement; nil renders as "".
func FormatFlatStatement(s FlatStatement) string {
	switch st := s.(type) {
	case FlatDeclaration:
		line := st.Type + " " + st.Name
		switch {
		case st.Internal && st.NoiseID != "":
			line += fmt.Sprintf(" = %s (%s)", st.NoiseID, st.Direction)
		case st.Internal:
			line += fmt.Sprintf(" = %s (%s)", st.Expression, st.Direction)
		case st.Polarity != "":
			line += " (" + string(st.Polarity) + ")"
		}
		return line
	case PinConnection:
		return fmt.Sprintf("%s.%s -> (%s)", st.Component, st.Terminal, st.Net)
	case NetAlias:
		return fmt.Sprintf("(%s) => (%s)", st.Source, st.Canonical)
	default:
		return ""
	}
}
