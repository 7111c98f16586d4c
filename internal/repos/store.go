package repos

import "github.com/jmoiron/sqlx"

// Store bundles every repository over one handle. Method names are unique
// across the embedded repos so the bundle exposes them all directly.
type Store struct {
	*ItemRepo
	*StockRepo
	*RatingRepo
	*EngagementRepo
	*TagRepo
	*CategoryRepo
	*PriceRepo
	*CommentRepo
	*UserRepo
	*HistoryRepo

	DB *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		ItemRepo:       NewItemRepo(db),
		StockRepo:      NewStockRepo(db),
		RatingRepo:     NewRatingRepo(db),
		EngagementRepo: NewEngagementRepo(db),
		TagRepo:        NewTagRepo(db),
		CategoryRepo:   NewCategoryRepo(db),
		PriceRepo:      NewPriceRepo(db),
		CommentRepo:    NewCommentRepo(db),
		UserRepo:       NewUserRepo(db),
		HistoryRepo:    NewHistoryRepo(db),
		DB:             db,
	}
}
