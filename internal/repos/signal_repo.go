package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type RatingRepo struct{ db *sqlx.DB }

func NewRatingRepo(db *sqlx.DB) *RatingRepo { return &RatingRepo{db: db} }

func (r *RatingRepo) FetchRatings(ctx context.Context, itemID int64) ([]float64, error) {
	out := []float64{}
	err := r.db.SelectContext(ctx, &out, `SELECT rating FROM product_ratings WHERE product_id = ?`, itemID)
	return out, err
}

// AddRating stores one user rating. Test fixture helper; no route rates items.
func (r *RatingRepo) AddRating(ctx context.Context, itemID, userID int64, rating float64) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO product_ratings(product_id, user_id, rating) VALUES(?, ?, ?)
	`, itemID, userID, rating)
	return err
}

type TagRepo struct{ db *sqlx.DB }

func NewTagRepo(db *sqlx.DB) *TagRepo { return &TagRepo{db: db} }

// FetchTags returns tag names in join order; they are not re-sorted.
func (r *TagRepo) FetchTags(ctx context.Context, itemID int64) ([]string, error) {
	out := []string{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT t.name
	  FROM tags t
	  INNER JOIN product_tags pt ON t.id = pt.tag_id
	  WHERE pt.product_id = ?
	  ORDER BY pt.id
	`, itemID)
	return out, err
}

// TagItem attaches a tag, creating it on first use. Test fixture helper.
func (r *TagRepo) TagItem(ctx context.Context, itemID int64, name string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO tags(name) VALUES(?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
	  INSERT INTO product_tags(product_id, tag_id)
	  SELECT ?, id FROM tags WHERE name = ?
	`, itemID, name); err != nil {
		return err
	}
	return tx.Commit()
}

type PriceRepo struct{ db *sqlx.DB }

func NewPriceRepo(db *sqlx.DB) *PriceRepo { return &PriceRepo{db: db} }

func (r *PriceRepo) FetchPriceHistory(ctx context.Context, itemID int64) ([]int64, error) {
	out := []int64{}
	err := r.db.SelectContext(ctx, &out, `SELECT price FROM price_history WHERE product_id = ?`, itemID)
	return out, err
}

// RecordPrice appends a price history point. Test fixture helper.
func (r *PriceRepo) RecordPrice(ctx context.Context, itemID, price int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO price_history(product_id, price) VALUES(?, ?)`, itemID, price)
	return err
}
