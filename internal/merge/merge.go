package merge

import "hookkit/internal/document"

// Stats counts what additions contributed to a merge.
type Stats struct {
	// Added is the number of keys copied from additions (at any depth).
	Added int
	// Appended is the number of list elements appended from additions.
	Appended int
	// Conflicts is the number of keys whose differing addition value was dropped.
	Conflicts int
}

// Documents merges additions into a copy of base. Neither input is modified.
//
// For every key of additions: a key missing from base is copied; two
// mappings merge recursively; two lists concatenate, skipping addition
// elements already equal to an element of the result; in any other case
// the base value stays.
func Documents(base, additions *document.Map) (*document.Map, Stats) {
	var stats Stats
	result := base.Clone()
	if result == nil {
		result = document.NewMap()
	}
	mergeInto(result, additions, &stats)
	return result, stats
}

func mergeInto(dst, additions *document.Map, stats *Stats) {
	for _, key := range additions.Keys() {
		add, _ := additions.Get(key)
		existing, ok := dst.Get(key)
		if !ok {
			dst.Set(key, document.Clone(add))
			stats.Added++
			continue
		}

		switch cur := existing.(type) {
		case *document.Map:
			if addMap, ok := add.(*document.Map); ok {
				mergeInto(cur, addMap, stats)
				continue
			}
		case []any:
			if addList, ok := add.([]any); ok {
				dst.Set(key, unionList(cur, addList, stats))
				continue
			}
		}

		// скаляры и несовпадающие типы: база не перезаписывается
		if !document.Equal(existing, add) {
			stats.Conflicts++
		}
	}
}

func unionList(base, additions []any, stats *Stats) []any {
	out := base
	for _, item := range additions {
		if containsEqual(out, item) {
			continue
		}
		out = append(out, document.Clone(item))
		stats.Appended++
	}
	return out
}

func containsEqual(list []any, item any) bool {
	for _, v := range list {
		if document.Equal(v, item) {
			return true
		}
	}
	return false
}
