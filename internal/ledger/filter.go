package ledger

import "strings"

// Matches reports whether an entry passes all three filter criteria. A zero
// kind matches every kind, a zero bucket matches every bucket, and an empty
// search matches everything. The search is a case-insensitive substring match
// against the entry's free-text fields; any one field matching is enough.
func Matches(e Entry, kind Kind, bucket Bucket, search string) bool {
	if kind != "" && e.Kind() != kind {
		return false
	}
	if bucket != "" && !e.Touches(bucket) {
		return false
	}
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, field := range e.SearchFields() {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// Filter returns the subset of entries matching all three criteria, in input
// order.
func Filter(entries []Entry, kind Kind, bucket Bucket, search string) []Entry {
	var matched []Entry
	for _, e := range entries {
		if Matches(e, kind, bucket, search) {
			matched = append(matched, e)
		}
	}
	return matched
}
