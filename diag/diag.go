// SPDX-License-Identifier: MIT

// Package diag holds the problem kinds reported while building and
// validating a circuit.
//
// Problems are collected, not returned: the builder and validators append a
// Diagnostic for every issue and carry on with the rest of the input. Each
// Diagnostic wraps one of the sentinel errors below, so callers filter with
// errors.Is.
package diag

import (
	"errors"
	"fmt"
	"log/slog"
)

// Problem kinds.
var (
	// ErrUndeclaredComponent: a statement references a component never declared.
	ErrUndeclaredComponent = errors.New("undeclared component")
	// ErrMissingTerminalLabel: a connection block entry has no terminal name.
	ErrMissingTerminalLabel = errors.New("missing terminal label")
	// ErrMalformedSeriesPath: a series path is not node-anchored or holds a bad element.
	ErrMalformedSeriesPath = errors.New("malformed series path")
	// ErrArityExceeded: a component uses more terminals than its type allows.
	ErrArityExceeded = errors.New("arity exceeded")
	// ErrDuplicateTerminalWiring: one terminal is wired to two different nets.
	ErrDuplicateTerminalWiring = errors.New("duplicate terminal wiring")
	// ErrDuplicateDeclaration: a component name is declared twice.
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	// ErrUnknownComponentType: a declaration uses a type the database does not know.
	ErrUnknownComponentType = errors.New("unknown component type")
	// ErrUnderConnected: a component has fewer connections than its type needs.
	ErrUnderConnected = errors.New("under-connected component")
	// ErrInvalidStatement: a statement is structurally meaningless.
	ErrInvalidStatement = errors.New("invalid statement")
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	// Line is the source line, 0 when unknown.
	Line int
	// Err is one of the sentinel kinds above.
	Err error
	// Detail is a human-readable description.
	Detail string
}

// New returns a Diagnostic of kind err.
func New(line int, err error, format string, args ...any) Diagnostic {
	return Diagnostic{Line: line, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// Error renders "L<line>: <kind>: <detail>", omitting the line when unknown.
func (d Diagnostic) Error() string {
	msg := d.Err.Error()
	if d.Detail != "" {
		msg += ": " + d.Detail
	}
	if d.Line > 0 {
		return fmt.Sprintf("L%d: %s", d.Line, msg)
	}
	return msg
}

// Unwrap returns the sentinel kind.
func (d Diagnostic) Unwrap() error { return d.Err }

// LogValue groups the diagnostic fields for slog.
func (d Diagnostic) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", d.Line),
		slog.String("kind", d.Err.Error()),
		slog.String("detail", d.Detail),
	)
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Has reports whether any diagnostic in l is of kind err.
func (l List) Has(err error) bool {
	for _, d := range l {
		if errors.Is(d, err) {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics of kind err, in order.
func (l List) Filter(err error) List {
	var out List
	for _, d := range l {
		if errors.Is(d, err) {
			out = append(out, d)
		}
	}
	return out
}

// Err joins all diagnostics into one error, or returns nil for an empty list.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	errs := make([]error, len(l))
	for i, d := range l {
		errs[i] = d
	}
	return errors.Join(errs...)
}
