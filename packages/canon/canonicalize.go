package canon

import "sort"

// Canonicalize sorts the members of every object in the tree by key, in
// place, and returns v. Keys compare byte-wise. When an object repeats a key
// the last occurrence wins. Array order and scalars are never changed.
func Canonicalize(v *Value) *Value {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case Array:
		for i, item := range v.Items {
			v.Items[i] = Canonicalize(item)
		}
	case Object:
		collected := make(map[string]*Value, len(v.Members))
		for _, m := range v.Members {
			collected[m.Key] = m.Value
		}

		keys := make([]string, 0, len(collected))
		for k := range collected {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			members = append(members, Member{Key: k, Value: Canonicalize(collected[k])})
		}
		v.Members = members
	}

	return v
}

// IsSorted reports whether every object in the tree has its keys in
// non-decreasing order.
func (v *Value) IsSorted() bool {
	if v == nil {
		return true
	}
	switch v.Kind {
	case Array:
		for _, item := range v.Items {
			if !item.IsSorted() {
				return false
			}
		}
	case Object:
		for i, m := range v.Members {
			if i > 0 && v.Members[i-1].Key > m.Key {
				return false
			}
			if !m.Value.IsSorted() {
				return false
			}
		}
	}
	return true
}
