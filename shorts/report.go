// SPDX-License-Identifier: MIT
// Package: circuijts/shorts
//
// report.go: plain-text rendering of detected shorts.

package shorts

import (
	"fmt"
	"strings"
)

// NoShortsMessage is the whole report when nothing was detected.
const NoShortsMessage = "No topological short circuits detected."

const reportHeader = "Detected Topological Short Circuits:"

// FormatReport renders shorts one per line under a header, or
// NoShortsMessage when the list is empty.
func FormatReport(shorts []Short) string {
	if len(shorts) == 0 {
		return NoShortsMessage
	}
	lines := make([]string, 0, len(shorts)+1)
	lines = append(lines, reportHeader)
	for _, s := range shorts {
		switch s := s.(type) {
		case ComponentSelfShort:
			lines = append(lines, fmt.Sprintf(
				"  - Component Short: '%s' (Type: %s) has terminals %s connected to the same net '%s' (canonical: '%s').",
				s.Component, s.Type, quotedList(s.Terminals), s.Net, s.Canonical))
		case GlobalShort:
			lines = append(lines, fmt.Sprintf(
				"  - Global Short: Key nets %s are connected together. (Canonical net: '%s')",
				quotedList(s.Nets[:]), s.Canonical))
		default:
			lines = append(lines, fmt.Sprintf("  - Unknown short type: %v", s))
		}
	}
	return strings.Join(lines, "\n")
}

// quotedList renders ["a", "b"] as ['a', 'b'].
func quotedList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
