// SPDX-License-Identifier: MIT
// Package: circuijts/netreg
//
// naming.go: human-preferred display name of an equivalence class.

package netreg

import (
	"slices"

	"github.com/Kreijstal/circuijts/netkey"
)

// PreferredName picks a display name for the class of canonical.
//
// Tiers, first non-empty wins, each ordered by (length, lexicographic):
//  1. user-named keys that are not in knownRails
//  2. user-named keys in knownRails
//  3. device-terminal keys
//  4. the class representative itself
//
// Tier 4 is the only place an implicit key can come out. An implicit
// representative is returned whenever the class has no other name, so
// allowImplicit only documents the caller's intent at the call site.
// Keys the registry has never seen are returned unchanged. A nil knownRails
// means DefaultRails.
//
// Complexity: O(N α(N) + M log M) for N registered keys and M class members.
func (r *Registry) PreferredName(canonical netkey.Key, knownRails []string, allowImplicit bool) netkey.Key {
	if r == nil || !r.Contains(canonical) {
		return canonical
	}
	if knownRails == nil {
		knownRails = DefaultRails()
	}
	rails := make(map[string]struct{}, len(knownRails))
	for _, n := range knownRails {
		rails[n] = struct{}{}
	}

	var userNamed, railNamed, devTerms []netkey.Key
	for _, m := range r.Members(canonical) {
		switch m.Kind() {
		case netkey.KindNamed:
			if _, isRail := rails[m.Name()]; isRail {
				railNamed = append(railNamed, m)
			} else {
				userNamed = append(userNamed, m)
			}
		case netkey.KindDeviceTerminal:
			devTerms = append(devTerms, m)
		}
	}
	for _, tier := range [][]netkey.Key{userNamed, railNamed, devTerms} {
		if len(tier) > 0 {
			return slices.MinFunc(tier, netkey.CompareByLength)
		}
	}
	return r.Find(canonical)
}
