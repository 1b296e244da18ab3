// SPDX-License-Identifier: MIT

// Package validate checks circuit descriptions beyond what building needs.
//
// Statements looks at the statement list alone: identifier formats,
// unknown or repeated declarations, references to undeclared components,
// empty blocks, block sizes over a type's arity and badly placed named
// currents. Graph looks at a built graph and compares how many distinct
// terminals of each component are wired with the arity of its type.
//
// Both return a diag.List and never stop at the first problem.
package validate
