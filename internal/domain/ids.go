package domain

import "slices"

// NormalizeIDs returns a sorted copy of ids with duplicates removed.
// A nil or empty input yields an empty, non-nil slice.
func NormalizeIDs(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	slices.Sort(out)
	return slices.Compact(out)
}
