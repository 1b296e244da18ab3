// SPDX-License-Identifier: MIT

// Package shorts finds topological short circuits in a built circuit.
//
// Detection is purely structural: no values, no simulation. A component is
// self-shorted when two of its terminals share a net (a resistor with both
// ends on one node, a MOSFET with gate tied to drain). A global short is two
// key supply rails, VDD and GND by default among others, aliased into a
// single net.
//
// Detect returns the findings as data; FormatReport turns them into the
// human-readable report.
package shorts
