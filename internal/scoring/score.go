package scoring

import "math"

// Signals are the engagement inputs of the relevance score.
type Signals struct {
	Views     int
	Favorites int
	Sales     int
	Rating    float64
	Comments  int
}

const (
	viewWeight     = 0.1
	favoriteWeight = 2
	salesWeight    = 3
	ratingWeight   = 10
	commentWeight  = 5
)

// Score computes
//
//	0.1·views + 2·favorites + 3·sales + 10·rating + 5·ln(comments+1)
//
// rounded to two decimals.
func Score(s Signals) float64 {
	score := viewWeight*float64(s.Views) +
		favoriteWeight*float64(s.Favorites) +
		salesWeight*float64(s.Sales) +
		ratingWeight*s.Rating +
		commentWeight*math.Log(float64(s.Comments)+1)
	return roundHalfUp(score, 2)
}
