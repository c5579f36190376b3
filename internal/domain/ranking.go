package domain

import (
	"cmp"
	"slices"
)

// Rerank sorts entities by descending score (stable on ties, so pre-sort
// order breaks them) and assigns rank = position + 1. It is re-run in full
// after every mutation; N stays in the tens-to-hundreds, so a full re-sort
// is cheaper than maintaining deltas correctly.
func Rerank(entities []Entity) []Entity {
	out := CloneEntities(entities)
	slices.SortStableFunc(out, func(a, b Entity) int {
		return cmp.Compare(b.Score, a.Score)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
