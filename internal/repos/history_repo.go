package repos

import (
	"context"

	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

// HistoryRepo stores completed purchases.
type HistoryRepo struct{ db *sqlx.DB }

func NewHistoryRepo(db *sqlx.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// FetchPurchaseHistory lists a user's purchases, newest first. Purchases of
// items that no longer exist are skipped.
func (r *HistoryRepo) FetchPurchaseHistory(ctx context.Context, userID int64) ([]domain.PurchaseRecord, error) {
	out := []domain.PurchaseRecord{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT p.id, p.name, p.description, p.image_path, p.price, h.created_at
		FROM histories AS h
		INNER JOIN products AS p ON h.product_id = p.id
		WHERE h.user_id = ?
		ORDER BY h.id DESC
	`, userID)
	return out, err
}

// RecordPurchase appends a completed purchase. The stock ledger is left
// untouched; sales and stock are separate signals.
func (r *HistoryRepo) RecordPurchase(ctx context.Context, itemID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO histories(product_id, user_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	`, itemID, userID)
	return err
}

func (r *HistoryRepo) HasPurchased(ctx context.Context, itemID, userID int64) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM histories WHERE product_id = ? AND user_id = ?
	`, itemID, userID)
	return n > 0, err
}
