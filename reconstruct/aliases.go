// SPDX-License-Identifier: MIT
// Package: circuijts/reconstruct
//
// aliases.go: stage 5, net aliases.
//
// Each class with more than one member gets one DirectAssignment per other
// member, all pointing at a single target: a rail if the class holds one,
// otherwise the preferred display name. Implicit members are left out
// unless the class has nothing but implicit keys.

package reconstruct

import (
	"slices"

	"github.com/Kreijstal/circuijts/ast"
	"github.com/Kreijstal/circuijts/netkey"
)

func (r *run) aliases() {
	rails := make(map[string]bool, len(r.cfg.knownRails))
	for _, n := range r.cfg.knownRails {
		rails[n] = true
	}
	isRail := func(k netkey.Key) bool {
		return k.IsNamed() && (rails[k.Name()] || r.reg.IsPreferredRail(k))
	}

	emitted := make(map[[2]netkey.Key]struct{})
	for _, members := range r.reg.Classes() {
		if len(members) < 2 {
			continue
		}
		target := r.aliasTarget(members, isRail)
		for _, m := range members {
			if m == target {
				continue
			}
			if m.IsImplicit() && !target.IsImplicit() {
				continue
			}
			key := [2]netkey.Key(orderedPair(m, target))
			if _, dup := emitted[key]; dup {
				continue
			}
			emitted[key] = struct{}{}
			r.out = append(r.out, ast.DirectAssignment{Source: m, Target: target})
		}
	}
}

// aliasTarget picks the class representative when it is a rail, else the
// shortest rail member, else the preferred display name.
func (r *run) aliasTarget(members []netkey.Key, isRail func(netkey.Key) bool) netkey.Key {
	root := r.reg.Find(members[0])
	if isRail(root) {
		return root
	}
	var railMembers []netkey.Key
	for _, m := range members {
		if isRail(m) {
			railMembers = append(railMembers, m)
		}
	}
	if len(railMembers) > 0 {
		return slices.MinFunc(railMembers, netkey.CompareByLength)
	}
	return r.netName(root)
}
