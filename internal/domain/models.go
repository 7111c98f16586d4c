package domain

import (
	"database/sql"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrCategoryCycle = errors.New("category chain does not terminate")
)

// Item is a catalog row as stored. Price is in whole currency units.
type Item struct {
	ID          int64         `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Description string        `db:"description" json:"description"`
	ImagePath   string        `db:"image_path" json:"image_path"`
	Price       int64         `db:"price" json:"price"`
	CategoryID  sql.NullInt64 `db:"category_id" json:"-"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// CategoryRef returns the category id or nil when the item is uncategorised.
func (i Item) CategoryRef() *int64 {
	if !i.CategoryID.Valid {
		return nil
	}
	id := i.CategoryID.Int64
	return &id
}

type Category struct {
	ID          int64         `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Description string        `db:"description" json:"description"`
	ParentID    sql.NullInt64 `db:"parent_id" json:"-"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

const (
	StockAdd    = "add"
	StockRemove = "remove"
)

type StockEvent struct {
	ItemID    int64  `db:"product_id"`
	Quantity  int64  `db:"quantity"`
	Operation string `db:"operation"` // add | remove
}

type Comment struct {
	ID        int64     `db:"id"`
	ItemID    int64     `db:"product_id"`
	UserID    int64     `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// CommentView is a comment ready for display: author resolved, text redacted.
type CommentView struct {
	AuthorName string `db:"name" json:"name"`
	Content    string `db:"content" json:"content"`
}

type PurchaseRecord struct {
	ItemID      int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	ImagePath   string    `db:"image_path" json:"image_path"`
	Price       int64     `db:"price" json:"price"`
	PurchasedAt time.Time `db:"created_at" json:"created_at"`
}

type EnrichedItem struct {
	Item
	CommentCount  int           `json:"comments_count"`
	Comments      []CommentView `json:"comments"`
	AverageRating float64       `json:"average_rating"`
	ViewCount     int           `json:"view_count"`
	FavoriteCount int           `json:"favorite_count"`
	Stock         int64         `json:"stock"`
	SalesCount    int           `json:"sales_count"`
	Tags          []string      `json:"tags"`
	CategoryPath  []Category    `json:"category_path"`
	LowestPrice   *int64        `json:"lowest_price"`
	IsFavorited   bool          `json:"is_favorited"`
	Score         float64       `json:"score"`
	Summary       string        `json:"summary"`
}

type ItemDetail struct {
	Item          EnrichedItem `json:"item"`
	Related       []Item       `json:"related_items"`
	AlreadyBought bool         `json:"already_bought"`
}

type Dashboard struct {
	User            *User            `json:"user"`
	Purchases       []PurchaseRecord `json:"purchases"`
	TotalSpend      int64            `json:"total_spend"`
	Recommendations []Item           `json:"recommendations"`
}
