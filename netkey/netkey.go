// SPDX-License-Identifier: MIT
// Package netkey defines Key, the identifier of an electrical net.
//
// A net can be named in three ways and Key keeps them apart explicitly:
//
//	Named("in")                user-chosen net name, e.g. (in), (GND)
//	DeviceTerminal("M1", "G")  terminal of a declared device, e.g. (M1.G)
//	Implicit(3)                synthesized net between two series elements
//
// Key is a small comparable value, so it can be used directly as a map key
// and compared with ==. The zero Key is invalid (IsZero reports true).
//
// Parse is the only place where the textual "Device.Terminal" convention is
// interpreted; it exists for parser collaborators that hand over raw node
// names. Everything downstream of the parser works on Key values.
package netkey

import (
	"slices"
	"strconv"
	"strings"
)

// Kind discriminates the three Key forms.
type Kind uint8

const (
	// KindNamed marks a user-named net.
	KindNamed Kind = iota + 1
	// KindDeviceTerminal marks a Component.Terminal qualified net.
	KindDeviceTerminal
	// KindImplicit marks a synthesized, sequentially numbered net.
	KindImplicit
)

// implicitPrefix is used only for rendering; it is never parsed back.
const implicitPrefix = "_implicit_"

// String returns a short name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindDeviceTerminal:
		return "device-terminal"
	case KindImplicit:
		return "implicit"
	default:
		return "invalid"
	}
}

// Key identifies an electrical net.
type Key struct {
	kind      Kind
	name      string // KindNamed
	component string // KindDeviceTerminal
	terminal  string // KindDeviceTerminal
	index     int    // KindImplicit
}

// Named returns the key of a user-named net.
func Named(name string) Key {
	return Key{kind: KindNamed, name: name}
}

// DeviceTerminal returns the key of the net attached to component's terminal.
func DeviceTerminal(component, terminal string) Key {
	return Key{kind: KindDeviceTerminal, component: component, terminal: terminal}
}

// Implicit returns the key of the n-th synthesized net.
func Implicit(n int) Key {
	return Key{kind: KindImplicit, index: n}
}

// Parse converts a raw node name into a Key.
//
// "M1.G" becomes DeviceTerminal("M1", "G"); anything without a dot (or with an
// empty side around the first dot) becomes Named. An empty string yields the
// zero Key.
func Parse(s string) Key {
	if s == "" {
		return Key{}
	}
	if dev, term, ok := strings.Cut(s, "."); ok && dev != "" && term != "" {
		return DeviceTerminal(dev, term)
	}
	return Named(s)
}

// Kind reports the form of k.
func (k Key) Kind() Kind { return k.kind }

// IsZero reports whether k is the invalid zero Key.
func (k Key) IsZero() bool { return k.kind == 0 }

// IsNamed reports whether k is a user-named net.
func (k Key) IsNamed() bool { return k.kind == KindNamed }

// IsDeviceTerminal reports whether k is Component.Terminal qualified.
func (k Key) IsDeviceTerminal() bool { return k.kind == KindDeviceTerminal }

// IsImplicit reports whether k was synthesized.
func (k Key) IsImplicit() bool { return k.kind == KindImplicit }

// Name returns the user name of a KindNamed key, "" otherwise.
func (k Key) Name() string { return k.name }

// Component returns the device part of a KindDeviceTerminal key, "" otherwise.
func (k Key) Component() string { return k.component }

// Terminal returns the terminal part of a KindDeviceTerminal key, "" otherwise.
func (k Key) Terminal() string { return k.terminal }

// Index returns the sequence number of a KindImplicit key, 0 otherwise.
func (k Key) Index() int { return k.index }

// String renders k the way it is written in the circuit language.
// Implicit keys render as "_implicit_<n>".
func (k Key) String() string {
	switch k.kind {
	case KindNamed:
		return k.name
	case KindDeviceTerminal:
		return k.component + "." + k.terminal
	case KindImplicit:
		return implicitPrefix + strconv.Itoa(k.index)
	default:
		return ""
	}
}

// Compare orders keys lexicographically by their rendered form, then by kind.
// It is a total order suitable for slices.SortFunc.
func Compare(a, b Key) int {
	if c := strings.Compare(a.String(), b.String()); c != 0 {
		return c
	}
	return int(a.kind) - int(b.kind)
}

// CompareByLength orders keys by rendered length first, then as Compare.
// Shorter names are preferred wherever a human-readable name is picked.
func CompareByLength(a, b Key) int {
	if la, lb := len(a.String()), len(b.String()); la != lb {
		return la - lb
	}
	return Compare(a, b)
}

// Sort sorts keys in place with Compare.
func Sort(keys []Key) {
	slices.SortFunc(keys, Compare)
}
