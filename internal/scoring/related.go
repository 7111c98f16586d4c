package scoring

import "bazaar/internal/domain"

const DefaultRelatedLimit = 5

// PositionalMatch counts the indices at which a and b hold the same
// character. It is not a similarity metric: "abc" and "xabc" share nothing.
// Related-item ranking depends on exactly this definition.
func PositionalMatch(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for i := 0; i < len(ra) && i < len(rb); i++ {
		if ra[i] == rb[i] {
			n++
		}
	}
	return n
}

// Similarity scores a candidate against the reference item:
//
//	10·nameMatch + descMatch − |Δprice|/100
func Similarity(ref, cand domain.Item) float64 {
	nameMatch := PositionalMatch(cand.Name, ref.Name)
	descMatch := 0
	if cand.Description != "" && ref.Description != "" {
		descMatch = PositionalMatch(cand.Description, ref.Description)
	}
	distance := cand.Price - ref.Price
	if distance < 0 {
		distance = -distance
	}
	return float64(nameMatch*10+descMatch) - float64(distance)/100
}

// TopRelated ranks candidates by Similarity and keeps the first limit.
func TopRelated(ref domain.Item, candidates []domain.Item, limit int) []domain.Item {
	scored := make([]Scored, len(candidates))
	for i, c := range candidates {
		scored[i] = Scored{Item: c, Score: Similarity(ref, c)}
	}
	return Top(StableSort(scored, ByScoreDesc), limit)
}
