package scimcore

import "github.com/netresearch/scim-ldap-bridge/internal/directory"

// DiffValues computes the minimal modification for a single LDAP
// attribute: absent-in-desired-but-present-in-current emits a delete of all
// current values; present-in-desired-but-absent-in-current emits an add of
// all desired values; present in both emits a replace only if the value set
// differs, compared order-independently. Returns nil if no modification is
// needed.
func DiffValues(ldapAttr string, current, desired []string) *directory.Modification {
	switch {
	case len(current) == 0 && len(desired) == 0:
		return nil
	case len(current) > 0 && len(desired) == 0:
		return &directory.Modification{Op: directory.ModDelete, Attribute: ldapAttr, Values: current}
	case len(current) == 0 && len(desired) > 0:
		return &directory.Modification{Op: directory.ModAdd, Attribute: ldapAttr, Values: desired}
	default:
		if sameValueSet(current, desired) {
			return nil
		}
		return &directory.Modification{Op: directory.ModReplace, Attribute: ldapAttr, Values: desired}
	}
}

// sameValueSet compares two value lists as multisets, ignoring order, for
// the diff policy's replace-vs-no-op decision.
func sameValueSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

// AppendModification appends mod to mods if mod is non-nil, so mapper
// implementations computing several independent per-attribute diffs can
// build their modification list without a nil check at each call site.
func AppendModification(mods []directory.Modification, mod *directory.Modification) []directory.Modification {
	if mod == nil {
		return mods
	}
	return append(mods, *mod)
}
