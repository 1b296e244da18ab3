// SPDX-License-Identifier: MIT

// Package components describes component types: how many terminals they
// have, what the terminals are called and how they are rendered.
//
// The Database interface is what the builder, reconstructor and validators
// consume. Catalog is the stock implementation, decoded from YAML; Default
// returns the catalog embedded in the binary.
package components

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Database answers metadata questions about component types.
type Database interface {
	// Arity returns the maximum terminal count of typ and whether typ is known.
	Arity(typ string) (int, bool)
	// IsMultiTerminal reports whether typ renders as a connection block.
	IsMultiTerminal(typ string) bool
	// PreferredTerminalOrder returns the block rendering order for typ.
	PreferredTerminalOrder(typ string) []string
	// Terminals returns the canonical terminal names of typ; nil when the
	// type accepts any label.
	Terminals(typ string) []string
	// IsSource reports whether typ is placed with a polarity in paths.
	IsSource(typ string) bool
	// IsBehavioral reports whether typ is synthesized rather than declared.
	IsBehavioral(typ string) bool
	// Types returns every known type, sorted.
	Types() []string
}

// ErrInvalidCatalog wraps every decode or validation failure of Load.
var ErrInvalidCatalog = errors.New("components: invalid catalog")

// Spec is one catalog entry.
type Spec struct {
	Type           string   `yaml:"type" validate:"required"`
	Arity          int      `yaml:"arity" validate:"min=1"`
	Terminals      []string `yaml:"terminals" validate:"omitempty,unique,dive,required"`
	MultiTerminal  bool     `yaml:"multi_terminal"`
	PreferredOrder []string `yaml:"preferred_order" validate:"omitempty,unique,dive,required"`
	Source         bool     `yaml:"source"`
	Behavioral     bool     `yaml:"behavioral"`
}

// Catalog is a Database backed by a list of Specs.
type Catalog struct {
	Components []Spec `yaml:"components" validate:"required,min=1,unique=Type,dive"`

	byType map[string]int
}

var _ Database = (*Catalog)(nil)

//go:embed catalog.yaml
var defaultCatalog string

var (
	validate = newValidator()

	defaultOnce sync.Once
	defaultCat  *Catalog
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		s := sl.Current().Interface().(Spec)
		if len(s.Terminals) > s.Arity {
			sl.ReportError(s.Terminals, "Terminals", "terminals", "lte_arity", "")
		}
		if s.Source && len(s.Terminals) != 2 {
			sl.ReportError(s.Terminals, "Terminals", "terminals", "source_pair", "")
		}
	}, Spec{})
	return v
}

// Load decodes and validates a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidCatalog, err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, describe(err))
	}
	c.index()
	return &c, nil
}

// Default returns the embedded catalog. It panics if the embedded data is
// broken, which only a bad edit of catalog.yaml can cause.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(strings.NewReader(defaultCatalog))
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}

func (c *Catalog) index() {
	c.byType = make(map[string]int, len(c.Components))
	for i, s := range c.Components {
		c.byType[s.Type] = i
	}
}

// describe flattens validator errors into one line.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", e.Namespace(), e.Tag()))
	}
	return strings.Join(parts, "; ")
}

// Lookup returns the Spec of typ.
func (c *Catalog) Lookup(typ string) (Spec, bool) {
	i, ok := c.byType[typ]
	if !ok {
		return Spec{}, false
	}
	return c.Components[i], true
}

// Types implements Database.
func (c *Catalog) Types() []string {
	out := make([]string, 0, len(c.Components))
	for _, s := range c.Components {
		out = append(out, s.Type)
	}
	slices.Sort(out)
	return out
}

// Arity implements Database.
func (c *Catalog) Arity(typ string) (int, bool) {
	s, ok := c.Lookup(typ)
	return s.Arity, ok
}

// IsMultiTerminal implements Database.
func (c *Catalog) IsMultiTerminal(typ string) bool {
	s, _ := c.Lookup(typ)
	return s.MultiTerminal
}

// PreferredTerminalOrder implements Database.
func (c *Catalog) PreferredTerminalOrder(typ string) []string {
	s, _ := c.Lookup(typ)
	return slices.Clone(s.PreferredOrder)
}

// Terminals implements Database.
func (c *Catalog) Terminals(typ string) []string {
	s, _ := c.Lookup(typ)
	return slices.Clone(s.Terminals)
}

// IsSource implements Database.
func (c *Catalog) IsSource(typ string) bool {
	s, _ := c.Lookup(typ)
	return s.Source
}

// IsBehavioral implements Database.
func (c *Catalog) IsBehavioral(typ string) bool {
	s, _ := c.Lookup(typ)
	return s.Behavioral
}
