package scoring

import (
	"cmp"
	"slices"

	"bazaar/internal/domain"
)

// StableSort returns a sorted copy of items. Elements that compare equal keep
// their input order; callers such as the top-5 recommendations depend on it.
func StableSort[T any](items []T, compare func(a, b T) int) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, compare)
	return out
}

// ByIDDesc orders items by numeric id, highest first.
func ByIDDesc(a, b domain.Item) int {
	return cmp.Compare(b.ID, a.ID)
}

// Scored pairs an item with a ranking score.
type Scored struct {
	Item  domain.Item
	Score float64
}

// ByScoreDesc orders scored items, highest first.
func ByScoreDesc(a, b Scored) int {
	return cmp.Compare(b.Score, a.Score)
}

// Top returns the first n items of an already ranked list.
func Top(ranked []Scored, n int) []domain.Item {
	n = max(0, min(n, len(ranked)))
	out := make([]domain.Item, n)
	for i := range n {
		out[i] = ranked[i].Item
	}
	return out
}
