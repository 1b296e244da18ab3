// SPDX-License-Identifier: MIT
// Package: circuijts/netreg
//
// registry.go: union-find over netkey.Key with rail-aware tie-breaking.
//
// Union tie-break (applied to the two roots, in order):
//  1. Exactly one root is a preferred rail: it becomes the representative.
//  2. Both are preferred rails: the one with the better priority wins; rails
//     without a priority rank after ranked ones, and equal ranks fall back to
//     the lexicographically smaller name.
//  3. Neither is a rail: the root of the second argument becomes the
//     representative of the merged class.
//
// Determinism:
//   - Equivalence classes depend only on the set of unions performed.
//   - Rule 3 makes non-rail representatives depend on argument order;
//     callers that need stable names use PreferredName instead.
//   - All listing methods return keys sorted with netkey.Compare.

package netreg

import (
	"slices"

	"github.com/Kreijstal/circuijts/netkey"
)

// Registry tracks net-name equivalence classes.
// The zero value is not usable; construct with New.
type Registry struct {
	parent map[netkey.Key]netkey.Key
	sets   int
	cfg    config
}

// New returns an empty Registry configured by opts.
func New(opts ...Option) *Registry {
	return &Registry{
		parent: make(map[netkey.Key]netkey.Key),
		cfg:    newConfig(opts...),
	}
}

// Add registers k as a singleton class if it is not known yet.
// Complexity: O(1).
func (r *Registry) Add(k netkey.Key) {
	if _, ok := r.parent[k]; !ok {
		r.parent[k] = k
		r.sets++
	}
}

// Contains reports whether k has been registered.
func (r *Registry) Contains(k netkey.Key) bool {
	_, ok := r.parent[k]
	return ok
}

// Len returns the number of registered keys.
func (r *Registry) Len() int { return len(r.parent) }

// NumClasses returns the number of equivalence classes.
func (r *Registry) NumClasses() int { return r.sets }

// Find returns the representative of k's class, registering k first if needed.
// Paths are compressed on the way back.
// Complexity: amortized near O(1).
func (r *Registry) Find(k netkey.Key) netkey.Key {
	r.Add(k)
	root := k
	for r.parent[root] != root {
		root = r.parent[root]
	}
	for k != root {
		next := r.parent[k]
		r.parent[k] = root
		k = next
	}
	return root
}

// Same reports whether a and b are in one class. Unknown keys are registered.
func (r *Registry) Same(a, b netkey.Key) bool {
	return r.Find(a) == r.Find(b)
}

// Union merges the classes of a and b and reports whether a merge happened.
func (r *Registry) Union(a, b netkey.Key) bool {
	ra, rb := r.Find(a), r.Find(b)
	if ra == rb {
		return false
	}
	if r.wins(ra, rb) {
		r.parent[rb] = ra
	} else {
		r.parent[ra] = rb
	}
	r.sets--
	return true
}

// wins reports whether ra should represent the merge of ra and rb.
func (r *Registry) wins(ra, rb netkey.Key) bool {
	pa, pb := r.IsPreferredRail(ra), r.IsPreferredRail(rb)
	switch {
	case pa && !pb:
		return true
	case !pa && pb:
		return false
	case pa && pb:
		ia, okA := r.cfg.rank[ra.Name()]
		ib, okB := r.cfg.rank[rb.Name()]
		switch {
		case okA && okB && ia != ib:
			return ia < ib
		case okA && !okB:
			return true
		case !okA && okB:
			return false
		}
		return ra.Name() < rb.Name()
	default:
		return false
	}
}

// IsPreferredRail reports whether k is a user-named preferred rail.
func (r *Registry) IsPreferredRail(k netkey.Key) bool {
	if !k.IsNamed() {
		return false
	}
	_, ok := r.cfg.preferred[k.Name()]
	return ok
}

// Members returns every key in the class of k, sorted.
// Complexity: O(N α(N)) over all registered keys.
func (r *Registry) Members(k netkey.Key) []netkey.Key {
	root := r.Find(k)
	var out []netkey.Key
	for key := range r.parent {
		if r.Find(key) == root {
			out = append(out, key)
		}
	}
	netkey.Sort(out)
	return out
}

// Keys returns every registered key, sorted.
func (r *Registry) Keys() []netkey.Key {
	out := make([]netkey.Key, 0, len(r.parent))
	for k := range r.parent {
		out = append(out, k)
	}
	netkey.Sort(out)
	return out
}

// Representatives returns the representative of every class, sorted.
func (r *Registry) Representatives() []netkey.Key {
	seen := make(map[netkey.Key]struct{}, r.sets)
	out := make([]netkey.Key, 0, r.sets)
	for k := range r.parent {
		root := r.Find(k)
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		out = append(out, root)
	}
	netkey.Sort(out)
	return out
}

// Classes returns every class as a sorted member list, ordered by representative.
// Complexity: O(N log N).
func (r *Registry) Classes() [][]netkey.Key {
	byRoot := make(map[netkey.Key][]netkey.Key, r.sets)
	for k := range r.parent {
		root := r.Find(k)
		byRoot[root] = append(byRoot[root], k)
	}
	roots := make([]netkey.Key, 0, len(byRoot))
	for root := range byRoot {
		roots = append(roots, root)
	}
	netkey.Sort(roots)
	out := make([][]netkey.Key, len(roots))
	for i, root := range roots {
		members := byRoot[root]
		slices.SortFunc(members, netkey.Compare)
		out[i] = members
	}
	return out
}
