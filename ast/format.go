// SPDX-License-Identifier: MIT
// Package: circuijts/ast
//
// format.go: rendering statements back to circuit-language text.

package ast

import (
	"fmt"
	"strings"
)

// Format renders statements one per line in circuit-language syntax.
//
//	R R1
//	M1 { G:(in), D:(out) }
//	(in) -- R1 -- V1 (-+) -- ->I1 -- [ R2 || gm*v (->) ] -- (GND)
//	(a):(b)
func Format(stmts []Statement) string {
	lines := make([]string, 0, len(stmts))
	for _, s := range stmts {
		if line := FormatStatement(s); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// FormatStatement renders a single statement; nil renders as "".
func FormatStatement(s Statement) string {
	switch st := s.(type) {
	case Declaration:
		return st.Type + " " + st.Name
	case ConnectionBlock:
		parts := make([]string, len(st.Connections))
		for i, c := range st.Connections {
			parts[i] = fmt.Sprintf("%s:(%s)", c.Terminal, c.Node)
		}
		return fmt.Sprintf("%s { %s }", st.Component, strings.Join(parts, ", "))
	case SeriesConnection:
		parts := make([]string, len(st.Path))
		for i, el := range st.Path {
			parts[i] = formatPathElement(el)
		}
		return strings.Join(parts, " -- ")
	case DirectAssignment:
		return fmt.Sprintf("(%s):(%s)", st.Source, st.Target)
	default:
		return ""
	}
}

func formatPathElement(el PathElement) string {
	switch e := el.(type) {
	case Node:
		return "(" + e.Key.String() + ")"
	case Component:
		return e.Name
	case Source:
		return fmt.Sprintf("%s (%s)", e.Name, e.Polarity)
	case NamedCurrent:
		return string(e.Direction) + e.Name
	case ParallelBlock:
		parts := make([]string, len(e.Elements))
		for i, pe := range e.Elements {
			parts[i] = formatParallelElement(pe)
		}
		return "[ " + strings.Join(parts, " || ") + " ]"
	case Error:
		return "<ERROR_IN_PATH: " + e.Message + ">"
	default:
		return "<UNKNOWN>"
	}
}

func formatParallelElement(pe ParallelElement) string {
	switch e := pe.(type) {
	case ParallelComponent:
		return e.Name
	case ControlledSource:
		return fmt.Sprintf("%s (%s)", e.Expression, e.Direction)
	case NoiseSource:
		return fmt.Sprintf("%s (%s)", e.ID, e.Direction)
	default:
		return "<UNKNOWN>"
	}
}
