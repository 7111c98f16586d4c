package services

import (
	"context"

	"bazaar/internal/domain"
)

// Gateway is the data store as seen by the aggregation services. Lookups of
// missing rows return a nil pointer and a nil error; any error means the store
// itself failed.
type Gateway interface {
	FetchItemsPage(ctx context.Context, offset, limit int) ([]domain.Item, error)
	FetchItemByID(ctx context.Context, id int64) (*domain.Item, error)
	NearestItems(ctx context.Context, id int64, limit int) ([]domain.Item, error)
	LatestItems(ctx context.Context, limit int) ([]domain.Item, error)

	FetchStockEvents(ctx context.Context, itemID int64) ([]domain.StockEvent, error)
	FetchRatings(ctx context.Context, itemID int64) ([]float64, error)
	CountViews(ctx context.Context, itemID int64) (int, error)
	CountFavorites(ctx context.Context, itemID int64) (int, error)
	CountSales(ctx context.Context, itemID int64) (int, error)
	FetchTags(ctx context.Context, itemID int64) ([]string, error)
	FetchCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	FetchPriceHistory(ctx context.Context, itemID int64) ([]int64, error)
	CountComments(ctx context.Context, itemID int64) (int, error)
	FetchComments(ctx context.Context, itemID int64, limit int) ([]domain.CommentView, error)
	IsFavorited(ctx context.Context, userID, itemID int64) (bool, error)

	FetchUserByID(ctx context.Context, id int64) (*domain.User, error)
	FetchPurchaseHistory(ctx context.Context, userID int64) ([]domain.PurchaseRecord, error)
	HasPurchased(ctx context.Context, itemID, userID int64) (bool, error)

	RecordView(ctx context.Context, itemID int64, userID *int64, sessionID string) error
	RecordPurchase(ctx context.Context, itemID, userID int64) error
	RecordComment(ctx context.Context, itemID, userID int64, content string) error
}
