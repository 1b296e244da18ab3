// SPDX-License-Identifier: MIT

// Package netreg tracks which net names denote the same electrical net.
//
// A Registry is a union-find structure over netkey.Key. Every key belongs to
// exactly one equivalence class; each class has a representative returned by
// Find. Unions prefer well-known supply rails as representatives, so a class
// holding GND is always represented by GND, and GND wins over VDD when the two
// are shorted together. The rail set and their priority are configurable with
// WithPreferredRails and WithRailPriority.
//
// PreferredName chooses a readable display name for a class, preferring plain
// user names over rails, rails over device terminals, and anything over a
// synthesized implicit key.
//
// A Registry is not safe for concurrent use. It is built fresh for each
// circuit and discarded with it.
package netreg
