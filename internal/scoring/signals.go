// Package scoring holds the pure catalog algorithms: ledger netting, rating
// averages, comment redaction, summaries, the relevance score, page windows,
// stable ordering and the related-item heuristic. Nothing here touches the
// database; services feed it rows fetched through the gateway.
package scoring

import (
	"math"

	"bazaar/internal/domain"
)

// StockLevel nets a ledger of stock events. Anything that is not an add is
// treated as a removal. The result may be negative.
func StockLevel(events []domain.StockEvent) int64 {
	var total int64
	for _, e := range events {
		if e.Operation == domain.StockAdd {
			total += e.Quantity
		} else {
			total -= e.Quantity
		}
	}
	return total
}

// AverageRating returns the mean rating rounded to one decimal, or 0 when
// there are no ratings.
func AverageRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return roundHalfUp(sum/float64(len(ratings)), 1)
}

// LowestPrice returns the minimum of a price history, nil when empty.
func LowestPrice(history []int64) *int64 {
	if len(history) == 0 {
		return nil
	}
	low := history[0]
	for _, p := range history[1:] {
		if p < low {
			low = p
		}
	}
	return &low
}

// roundHalfUp rounds to the given number of decimals with ties going up,
// matching Math.round semantics.
func roundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}
